package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/pfrederiksen/cbb-gamelogs/internal/gamelog"
	"github.com/pfrederiksen/cbb-gamelogs/internal/logger"
	"github.com/pfrederiksen/cbb-gamelogs/internal/metrics"
	"github.com/pfrederiksen/cbb-gamelogs/internal/names"
)

const (
	BaseURL   = "https://www.sports-reference.com/cbb"
	UserAgent = "cbb-gamelogs/1.0 (github.com/pfrederiksen/cbb-gamelogs)"
	Timeout   = 30 * time.Second
)

// Config controls how pages are fetched.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// RequestInterval is the minimum gap between two requests. Zero disables
	// rate limiting.
	RequestInterval time.Duration
	MaxRetries      uint64
	RetryInterval   time.Duration

	// BreakerFailures consecutive failed fetches open the circuit breaker for
	// BreakerCooldown.
	BreakerFailures uint32
	BreakerCooldown time.Duration

	// Workers bounds concurrent team fetches in FetchSeason.
	Workers int
}

// DefaultConfig returns polite settings for the public site.
func DefaultConfig() Config {
	return Config{
		BaseURL:         BaseURL,
		UserAgent:       UserAgent,
		Timeout:         Timeout,
		RequestInterval: 3 * time.Second,
		MaxRetries:      4,
		RetryInterval:   2 * time.Second,
		BreakerFailures: 5,
		BreakerCooldown: time.Minute,
		Workers:         2,
	}
}

// Scraper fetches team game logs.
type Scraper struct {
	cfg     Config
	client  *http.Client
	cache   *PageCache
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	log     *logger.Logger
	metrics *metrics.Metrics
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) { s.client = c }
}

// WithCache serves pages from c when fresh and stores every fetched page.
func WithCache(c *PageCache) Option {
	return func(s *Scraper) { s.cache = c }
}

func WithLogger(l *logger.Logger) Option {
	return func(s *Scraper) { s.log = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scraper) { s.metrics = m }
}

// New creates a Scraper. Zero fields of cfg take their DefaultConfig values,
// except RequestInterval where zero means no limit.
func New(cfg Config, opts ...Option) *Scraper {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = def.RetryInterval
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = def.BreakerFailures
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = def.BreakerCooldown
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	s := &Scraper{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Inf, 1),
		log:     logger.Default(),
		metrics: metrics.Default(),
	}
	if cfg.RequestInterval > 0 {
		s.limiter = rate.NewLimiter(rate.Every(cfg.RequestInterval), 1)
	}
	for _, opt := range opts {
		opt(s)
	}

	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "sports-reference",
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, gamelog.ErrNoDataForScope) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.log.Warn("Circuit breaker state changed", logger.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})

	return s
}

// GameLogURL is the page holding a team's basic or advanced game log.
func (s *Scraper) GameLogURL(team names.ID, season int, kind gamelog.Kind) string {
	suffix := ""
	if kind == gamelog.Advanced {
		suffix = "-advanced"
	}
	return fmt.Sprintf("%s/schools/%s/men/%d-gamelogs%s.html", s.cfg.BaseURL, team, season, suffix)
}

func tableID(kind gamelog.Kind) string {
	if kind == gamelog.Advanced {
		return AdvancedTableID
	}
	return BasicTableID
}

func (s *Scraper) fetchTable(ctx context.Context, team names.ID, season int, kind gamelog.Kind) (gamelog.Table, error) {
	page, err := s.getPage(ctx, s.GameLogURL(team, season, kind))
	if err != nil {
		return gamelog.Table{}, err
	}
	return extractTable(page, tableID(kind))
}

// FetchBasic returns the raw basic game log table of team for season.
func (s *Scraper) FetchBasic(ctx context.Context, team names.ID, season int) (gamelog.Table, error) {
	return s.fetchTable(ctx, team, season, gamelog.Basic)
}

// FetchAdvanced returns the raw advanced game log table of team for season.
func (s *Scraper) FetchAdvanced(ctx context.Context, team names.ID, season int) (gamelog.Table, error) {
	return s.fetchTable(ctx, team, season, gamelog.Advanced)
}

// FetchTeamSeason fetches both tables of a team's season and returns the
// joined records. team may be any spelling the registry knows.
func (s *Scraper) FetchTeamSeason(ctx context.Context, team string, season int) ([]gamelog.Record, error) {
	if _, err := gamelog.LookupSeason(season); err != nil {
		return nil, err
	}
	id, err := names.NormalizeTeam(team, false)
	if err != nil {
		return nil, err
	}

	s.log.Debug("Scraping game logs", logger.Fields{"team": id, "season": season})

	basicTable, err := s.FetchBasic(ctx, id, season)
	if err != nil {
		return nil, err
	}
	basic, err := gamelog.ParseBasic(basicTable, id)
	if err != nil {
		return nil, errors.Wrapf(err, "basic game log of %s", id)
	}

	advancedTable, err := s.FetchAdvanced(ctx, id, season)
	if err != nil {
		return nil, err
	}
	advanced, err := gamelog.ParseAdvanced(advancedTable, id)
	if err != nil {
		return nil, errors.Wrapf(err, "advanced game log of %s", id)
	}

	return gamelog.Join(basic, advanced), nil
}

// SeasonResult is the outcome of FetchSeason.
type SeasonResult struct {
	Records []gamelog.Record
	// Missing lists teams with no game log page for the season: they did not
	// play D1 that season.
	Missing []names.ID
}

// FetchSeason scrapes every team in teams for season on the worker pool. A
// team without a page for the season is recorded in Missing and the batch
// continues. Any other failure, an open circuit breaker included, stops the
// batch and is returned, so a partial season is never reported as complete.
// Records are returned grouped in the order of teams.
func (s *Scraper) FetchSeason(ctx context.Context, season int, teams []names.ID) (*SeasonResult, error) {
	if _, err := gamelog.LookupSeason(season); err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return nil, errors.Wrap(err, "creating worker pool")
	}
	defer pool.Release()

	batchCtx, abort := context.WithCancel(ctx)
	defer abort()

	var (
		mu       sync.Mutex
		batchErr error
	)
	fail := func(team names.ID, err error) {
		mu.Lock()
		defer mu.Unlock()
		if batchErr == nil {
			batchErr = errors.Wrapf(err, "scraping %s", team)
			abort()
		}
	}

	perTeam := make([][]gamelog.Record, len(teams))
	missing := make([]bool, len(teams))

	var wg sync.WaitGroup
	for i, team := range teams {
		i, team := i, team
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if batchCtx.Err() != nil {
				return
			}
			records, err := s.FetchTeamSeason(batchCtx, string(team), season)
			switch {
			case err == nil:
				perTeam[i] = records
			case errors.Is(err, gamelog.ErrNoDataForScope):
				missing[i] = true
				s.metrics.IncrCounter("scraper.teams_missing")
				s.log.Warn("Team did not play D1 basketball this season", logger.Fields{
					"team":   team,
					"season": season,
					"error":  err.Error(),
				})
			default:
				fail(team, err)
			}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, errors.Wrap(err, "submitting task")
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if batchErr != nil {
		s.metrics.IncrCounter("scraper.seasons_aborted")
		s.log.Error("Season scrape aborted", logger.Fields{"season": season}, batchErr)
		return nil, batchErr
	}

	res := &SeasonResult{}
	for i, records := range perTeam {
		if missing[i] {
			res.Missing = append(res.Missing, teams[i])
			continue
		}
		res.Records = append(res.Records, records...)
	}
	s.metrics.SetGauge("scraper.records", float64(len(res.Records)))
	return res, nil
}
