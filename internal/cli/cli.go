package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/cbb-gamelogs/internal/config"
	"github.com/pfrederiksen/cbb-gamelogs/internal/features"
	"github.com/pfrederiksen/cbb-gamelogs/internal/gamelog"
	"github.com/pfrederiksen/cbb-gamelogs/internal/logger"
	"github.com/pfrederiksen/cbb-gamelogs/internal/metrics"
	"github.com/pfrederiksen/cbb-gamelogs/internal/names"
	"github.com/pfrederiksen/cbb-gamelogs/internal/scraper"
	"github.com/pfrederiksen/cbb-gamelogs/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// app carries the flags and the loaded configuration shared by subcommands.
type app struct {
	configPath  string
	dataDir     string
	storageKind string
	format      string
	metricsFile string
	verbose     bool

	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "cbb-gamelogs",
		Short: "Scrape college basketball game logs and build training features",
		Long: `A CLI tool to scrape men's college basketball game logs from
sports-reference.com and turn each season into leakage-free training rows:
for every game, the team's and the opponent's averages over earlier games.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file (or env: "+config.EnvConfigFile+")")
	pf.StringVar(&a.dataDir, "data-dir", config.DefaultDataDir, "Data directory for game logs, features and cached pages")
	pf.StringVar(&a.storageKind, "storage", config.StorageCSV, "Storage backend: csv or sqlite")
	pf.StringVar(&a.format, "format", string(FormatText), "Output format: text, json or csv")
	pf.StringVar(&a.metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	pf.BoolVar(&a.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newScrapeCmd(a),
		newFeaturesCmd(a),
		newTeamsCmd(a),
		newConferencesCmd(a),
		newNormalizeCmd(a),
		newSeasonsCmd(a),
	)

	return cmd
}

// setup loads the configuration and applies explicitly set flags on top.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = a.dataDir
	}
	if flags.Changed("storage") {
		cfg.Storage = a.storageKind
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = a.metricsFile
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if cfg.DataDir, err = storage.ExpandPath(cfg.DataDir); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	format := OutputFormat(strings.ToLower(a.format))
	if format != FormatText && format != FormatJSON && format != FormatCSV {
		return fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'csv')", a.format)
	}
	a.format = string(format)

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.log = logger.New(level, cmd.ErrOrStderr())
	logger.SetDefault(a.log)
	a.metrics = metrics.New()
	a.cfg = cfg

	a.log.Debug("Configuration loaded", logger.Fields{
		"data_dir": cfg.DataDir,
		"storage":  cfg.Storage,
	})
	return nil
}

func (a *app) outputFormat() OutputFormat {
	return OutputFormat(a.format)
}

// openStore opens the configured backend.
func (a *app) openStore(ctx context.Context) (storage.Store, error) {
	if a.cfg.Storage == config.StorageSQLite {
		if err := os.MkdirAll(a.cfg.DataDir, 0755); err != nil {
			return nil, errors.Wrap(err, "creating data directory")
		}
		return storage.OpenSQLite(ctx, a.cfg.DatabasePath())
	}
	return storage.NewFileStore(a.cfg.DataDir)
}

// finish writes the metrics textfile when one is configured.
func (a *app) finish() error {
	if a.cfg.MetricsFile == "" {
		return nil
	}
	path, err := storage.ExpandPath(a.cfg.MetricsFile)
	if err != nil {
		return err
	}
	return errors.Wrap(a.metrics.WriteTextfile(path), "writing metrics")
}

func newScrapeCmd(a *app) *cobra.Command {
	var (
		season  int
		teams   []string
		workers int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape a season's game logs and save them",
		Long: `Scrape the basic and advanced game logs of every D1 team (or the teams
given with --team) for one season, join them and save the season.
Teams without a page for the season are reported and skipped. Any other
fetch failure stops the scrape and leaves the saved season untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := gamelog.LookupSeason(season)
			if err != nil {
				return err
			}

			ids := names.AllTeams()
			if len(teams) > 0 {
				ids = ids[:0:0]
				for _, t := range teams {
					id, err := names.NormalizeTeam(t, false)
					if err != nil {
						return err
					}
					ids = append(ids, id)
				}
			}

			sc := a.cfg.ScraperSettings()
			if cmd.Flags().Changed("workers") {
				if workers < 1 {
					return fmt.Errorf("invalid workers: %d (must be at least 1)", workers)
				}
				sc.Workers = workers
			}
			opts := []scraper.Option{scraper.WithLogger(a.log), scraper.WithMetrics(a.metrics)}
			var cache *scraper.PageCache
			if a.cfg.Scraper.Cache && !noCache {
				cache = scraper.NewPageCache(a.cfg.CacheDir())
				cache.TTL = a.cfg.Scraper.CacheTTL
				if n := cache.CleanExpired(); n > 0 {
					a.log.Debug("Removed expired cached pages", logger.Fields{"count": n})
				}
				opts = append(opts, scraper.WithCache(cache))
			}

			start := time.Now()
			res, err := scraper.New(sc, opts...).FetchSeason(ctx, season, ids)
			if err != nil {
				return errors.Wrap(err, "scraping season")
			}
			if cache != nil {
				a.metrics.SetGauge("scraper.cached_pages", float64(cache.Size()))
			}

			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.SaveGameLogs(ctx, season, res.Records); err != nil {
				return err
			}

			a.log.Info("Scraped season", logger.Fields{
				"season":   s.Label(),
				"records":  len(res.Records),
				"missing":  len(res.Missing),
				"duration": time.Since(start).String(),
			})

			out := &ScrapeResult{
				Season:  s.Label(),
				Teams:   len(ids) - len(res.Missing),
				Games:   len(res.Records),
				Missing: res.Missing,
			}
			if err := WriteScrape(cmd.OutOrStdout(), out, a.outputFormat()); err != nil {
				return errors.Wrap(err, "writing output")
			}
			return a.finish()
		},
	}

	cmd.Flags().IntVar(&season, "season", 0, "Season by its ending year, e.g. 2019 for 2018-19 (required)")
	cmd.Flags().StringSliceVar(&teams, "team", nil, "Team to scrape (repeatable; default all teams)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent team fetches (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Always fetch pages from the network")
	cmd.MarkFlagRequired("season")

	return cmd
}

func newFeaturesCmd(a *app) *cobra.Command {
	var (
		season int
		team   string
		warmup int
		phase  string
		sortBy string
		noSave bool
	)

	cmd := &cobra.Command{
		Use:   "features",
		Short: "Build training rows from a saved season",
		Long: `Build one row per game from a season saved by "scrape": the mean of every
tracked statistic over the team's and the opponent's earlier games. The
first --warmup games of each team produce no rows.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := gamelog.LookupSeason(season)
			if err != nil {
				return err
			}

			opts := []features.Option{
				features.WithWarmup(a.cfg.Features.Warmup),
				features.WithStats(a.cfg.Stats()),
				features.WithLogger(a.log),
				features.WithMetrics(a.metrics),
			}
			if cmd.Flags().Changed("warmup") {
				opts = append(opts, features.WithWarmup(warmup))
			}
			switch gamelog.Phase(strings.ToLower(phase)) {
			case "", "all":
			case gamelog.PhaseRegular:
				opts = append(opts, features.WithPhase(s, gamelog.PhaseRegular))
			case gamelog.PhaseTournament:
				opts = append(opts, features.WithPhase(s, gamelog.PhaseTournament))
			default:
				return fmt.Errorf("invalid phase: %s (must be 'all', 'regular' or 'tournament')", phase)
			}
			order := SortOrder(strings.ToLower(sortBy))
			if !order.valid() {
				return fmt.Errorf("invalid sort: %s (must be 'date', 'team' or 'opponent')", sortBy)
			}

			b, err := features.NewBuilder(opts...)
			if err != nil {
				return err
			}

			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.LoadGameLogs(ctx, season)
			if err != nil {
				return err
			}
			idx := features.NewIndex(records)

			teams := []string{team}
			scope := names.Absent
			if team == "" {
				teams = teams[:0]
				for _, id := range idx.Teams() {
					teams = append(teams, string(id))
				}
			} else if scope, err = names.NormalizeTeam(team, false); err != nil {
				return err
			}

			results, err := b.BuildAll(ctx, idx, teams, a.cfg.Features.Workers)
			if err != nil {
				return err
			}

			out := &FeaturesResult{Season: s.Label(), Stats: b.Stats()}
			for _, res := range results {
				out.Rows = append(out.Rows, res.Rows...)
				out.Skipped += len(res.Skips)
			}
			sortRows(out.Rows, order)

			if !noSave {
				if err := store.SaveFeatures(ctx, season, scope, out.Stats, out.Rows); err != nil {
					return err
				}
				if out.Saved, err = store.FeatureCount(ctx, season, scope); err != nil {
					return err
				}
			}
			a.metrics.SetGauge("features.rows", float64(len(out.Rows)))

			if err := WriteFeatures(cmd.OutOrStdout(), out, a.outputFormat()); err != nil {
				return errors.Wrap(err, "writing output")
			}
			return a.finish()
		},
	}

	cmd.Flags().IntVar(&season, "season", 0, "Season by its ending year, e.g. 2019 for 2018-19 (required)")
	cmd.Flags().StringVar(&team, "team", "", "Only build rows for this team (default all teams)")
	cmd.Flags().IntVar(&warmup, "warmup", features.DefaultWarmup, "Games at the start of each team's season that produce no rows")
	cmd.Flags().StringVar(&phase, "phase", "all", "Only emit games in this window: all, regular or tournament")
	cmd.Flags().StringVar(&sortBy, "sort", string(SortByDate), "Sort rows by: date, team or opponent")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Print rows without saving them")
	cmd.MarkFlagRequired("season")

	return cmd
}

func newTeamsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List canonical team identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return WriteIDs(cmd.OutOrStdout(), "teams", names.AllTeams(), a.outputFormat())
		},
	}
}

func newConferencesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "conferences",
		Short: "List canonical conference identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return WriteIDs(cmd.OutOrStdout(), "conferences", names.AllConferences(), a.outputFormat())
		},
	}
}

func newNormalizeCmd(a *app) *cobra.Command {
	var (
		conference   bool
		ignoreErrors bool
	)

	cmd := &cobra.Command{
		Use:   "normalize NAME...",
		Short: "Map team or conference names to canonical identifiers",
		Example: `  cbb-gamelogs normalize "St. John's (NY)" "Kansas State NCAA"
  cbb-gamelogs normalize --conference "Pac 12 (South)"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]NameResult, 0, len(args))
			for _, raw := range args {
				r := NameResult{Input: raw}
				if conference {
					id, err := names.NormalizeConference(raw, ignoreErrors)
					if err != nil {
						return err
					}
					r.ID = id
				} else {
					t, err := names.ParseTeam(raw, ignoreErrors)
					if err != nil {
						return err
					}
					r.ID = t.ID
					r.MadeTournament = t.MadeTournament
				}
				out = append(out, r)
			}
			return WriteNames(cmd.OutOrStdout(), out, a.outputFormat())
		},
	}

	cmd.Flags().BoolVar(&conference, "conference", false, "Normalize conference names instead of team names")
	cmd.Flags().BoolVar(&ignoreErrors, "ignore-errors", false, "Report unknown names as empty instead of failing")

	return cmd
}

func newSeasonsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seasons",
		Short: "List supported seasons and their calendar windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return WriteSeasons(cmd.OutOrStdout(), gamelog.SupportedSeasons(), a.outputFormat())
		},
	}
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
