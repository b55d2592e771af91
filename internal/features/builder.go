package features

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"

	"github.com/pfrederiksen/cbb-gamelogs/internal/gamelog"
	"github.com/pfrederiksen/cbb-gamelogs/internal/logger"
	"github.com/pfrederiksen/cbb-gamelogs/internal/metrics"
	"github.com/pfrederiksen/cbb-gamelogs/internal/names"
)

// DefaultWarmup is the number of opening games excluded from every team's rows.
const DefaultWarmup = 10

// Builder produces training rows from an Index. A Builder is safe for
// concurrent use once configured.
type Builder struct {
	warmup  int
	stats   []string
	log     *logger.Logger
	metrics *metrics.Metrics

	season *gamelog.Season
	phase  gamelog.Phase
}

// Option configures a Builder.
type Option func(*Builder)

// WithWarmup sets how many of a team's first games are excluded.
func WithWarmup(n int) Option {
	return func(b *Builder) { b.warmup = n }
}

// WithStats replaces the averaged statistics.
func WithStats(stats []string) Option {
	return func(b *Builder) { b.stats = append([]string(nil), stats...) }
}

func WithLogger(l *logger.Logger) Option {
	return func(b *Builder) { b.log = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Builder) { b.metrics = m }
}

// WithPhase only emits rows for games inside the given window of season.
// Earlier games still count towards the means.
func WithPhase(season gamelog.Season, phase gamelog.Phase) Option {
	return func(b *Builder) {
		b.season = &season
		b.phase = phase
	}
}

// NewBuilder returns a Builder with the default warm-up and statistics.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		warmup:  DefaultWarmup,
		stats:   DefaultStats,
		log:     logger.Default(),
		metrics: metrics.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.warmup < 0 {
		return nil, errors.Newf("warmup must not be negative, got %d", b.warmup)
	}
	if len(b.stats) == 0 {
		return nil, errors.New("at least one statistic is required")
	}
	return b, nil
}

// Stats returns the statistics the builder averages, in column order.
func (b *Builder) Stats() []string {
	return append([]string(nil), b.stats...)
}

// Skip records a game past the warm-up window that produced no row. Err
// matches gamelog.ErrNoDataForScope or ErrInsufficientHistory.
type Skip struct {
	Date     time.Time
	Opponent names.ID
	Err      error
}

// Result is the outcome of building one team's rows.
type Result struct {
	Team  names.ID
	Rows  []Row
	Skips []Skip
}

// Build produces the rows for team, whose name is normalized first. A team
// with no games in idx yields an empty result, not an error.
func (b *Builder) Build(idx *Index, team string) (*Result, error) {
	id, err := names.NormalizeTeam(team, false)
	if err != nil {
		return nil, err
	}

	res := &Result{Team: id}
	games, ok := idx.Log(id)
	if !ok {
		b.log.Debug("Team has no games in scope", logger.Fields{"team": id})
		return res, nil
	}

	for i := b.warmup; i < len(games); i++ {
		game := games[i]
		if b.season != nil && b.season.Phase(game.Date) != b.phase {
			continue
		}

		teamPrior := idx.before(id, game.Date)
		if len(teamPrior) == 0 {
			res.Skips = append(res.Skips, Skip{
				Date:     game.Date,
				Opponent: game.Opponent,
				Err: errors.Wrapf(ErrInsufficientHistory, "%s has no games before %s",
					id, game.Date.Format(gamelog.DateLayout)),
			})
			continue
		}

		if skip, ok := b.checkOpponent(idx, game); !ok {
			res.Skips = append(res.Skips, skip)
			continue
		}
		oppPrior := idx.before(game.Opponent, game.Date)

		res.Rows = append(res.Rows, newRow(game, meanOf(teamPrior, b.stats), meanOf(oppPrior, b.stats)))
	}

	b.metrics.AddCounter("features.rows_emitted", float64(len(res.Rows)))
	b.metrics.AddCounter("features.games_skipped", float64(len(res.Skips)))
	return res, nil
}

func (b *Builder) checkOpponent(idx *Index, game gamelog.Record) (Skip, bool) {
	skip := Skip{Date: game.Date, Opponent: game.Opponent}
	date := game.Date.Format(gamelog.DateLayout)

	if _, ok := idx.Log(game.Opponent); !ok {
		skip.Err = errors.Wrapf(gamelog.ErrNoDataForScope, "opponent %s has no games this season", game.Opponent)
	} else if len(idx.before(game.Opponent, game.Date)) == 0 {
		skip.Err = errors.Wrapf(ErrInsufficientHistory, "opponent %s has no games before %s", game.Opponent, date)
	} else {
		return Skip{}, true
	}

	b.metrics.IncrCounter("features.opponent_missing")
	b.log.Warn("Opponent didn't play D1 ball this season or has no prior games", logger.Fields{
		"team":     game.Team,
		"opponent": game.Opponent,
		"date":     date,
	})
	return skip, false
}

// BuildAll builds rows for every team on up to workers goroutines. Results are
// returned in the order of teams. The first error cancels the remaining work.
func (b *Builder) BuildAll(ctx context.Context, idx *Index, teams []string, workers int) ([]*Result, error) {
	if workers < 1 {
		workers = 1
	}

	start := time.Now()
	results := make([]*Result, len(teams))
	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx).WithCancelOnError()
	for i, team := range teams {
		i, team := i, team
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := b.Build(idx, team)
			if err != nil {
				return errors.Wrapf(err, "building rows for %q", team)
			}
			results[i] = res
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	b.metrics.RecordTiming("features.build_all", time.Since(start))
	return results, nil
}

// BuildTrainingRows is the one-shot form: it indexes log, then builds team's
// rows with the default statistics and the given warm-up.
func BuildTrainingRows(log []gamelog.Record, team string, warmup int) ([]Row, error) {
	b, err := NewBuilder(WithWarmup(warmup))
	if err != nil {
		return nil, err
	}
	res, err := b.Build(NewIndex(log), team)
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}
