package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"yt-duration-match/domain/dto"
	"yt-duration-match/domain/repository"
	"yt-duration-match/infrastructure/cache"
	youtubeclient "yt-duration-match/infrastructure/clients/youtube"
	"yt-duration-match/infrastructure/configuration"
	"yt-duration-match/infrastructure/filestore"
	"yt-duration-match/infrastructure/logger"
	"yt-duration-match/infrastructure/persistence"
	"yt-duration-match/infrastructure/retry"
	"yt-duration-match/interfaces/console"
	"yt-duration-match/usecase"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

var errInterrupted = errors.New("interrupted")

type flags struct {
	minutes    int
	seconds    int
	maxResults int
	cacheFile  string
	noCache    bool
}

// NewRootCommand builds the command that searches for videos of an exact length
func NewRootCommand() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:           "yt-duration-match",
		Short:         "Find YouTube videos whose length matches a target duration exactly",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := configuration.LoadEnvFromFile("config.env", ".env"); err != nil {
				return err
			}
			cfg, err := configuration.LoadConfig()
			if err != nil {
				return err
			}
			applyFlags(cmd, f, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := logger.Configure(cfg.Logger.Format, cfg.Logger.Level); err != nil {
				return err
			}
			return runWithSignals(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&f.minutes, "minutes", "m", 20, "target minutes")
	cmd.Flags().IntVarP(&f.seconds, "seconds", "s", 22, "target seconds")
	cmd.Flags().IntVar(&f.maxResults, "max-results", 50, "maximum number of search results to collect")
	cmd.Flags().StringVar(&f.cacheFile, "cache-file", "cache.gob", "search cache file used by the file driver")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "bypass the search cache")
	return cmd
}

// applyFlags lets explicitly set flags win over config and environment
func applyFlags(cmd *cobra.Command, f *flags, cfg *configuration.Config) {
	if cmd.Flags().Changed("minutes") {
		cfg.App.Minutes = f.minutes
	}
	if cmd.Flags().Changed("seconds") {
		cfg.App.Seconds = f.seconds
	}
	if cmd.Flags().Changed("max-results") {
		cfg.YouTube.MaxResults = f.maxResults
	}
	if cmd.Flags().Changed("cache-file") {
		cfg.Cache.File = f.cacheFile
	}
	if f.noCache {
		cfg.Cache.Enabled = false
	}
}

// Execute runs the root command and exits non-zero on any error
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application returned an error")
		os.Exit(1)
	}
}

func runWithSignals(ctx context.Context, cfg *configuration.Config, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return Run(ctx, cfg, out)
	})

	g.Go(func() error {
		select {
		case <-interrupt:
			logger.GetLogger().Info("Application shutdown requested")
			return errInterrupted
		case <-ctx.Done():
			return nil
		}
	})

	return g.Wait()
}

// Run wires the stack from cfg, runs one search and prints the ranked matches to out.
// Extra client options are passed to the YouTube service.
func Run(ctx context.Context, cfg *configuration.Config, out io.Writer, clientOpts ...option.ClientOption) error {
	client, err := youtubeclient.NewYouTubeClient(ctx, &youtubeclient.Config{
		APIKey:     cfg.YouTube.APIKey,
		MaxResults: cfg.YouTube.MaxResults,
		SearchRetry: retry.Policy{
			MaxAttempts:    cfg.Retry.MaxAttempts,
			InitialBackoff: cfg.Retry.InitialBackoff,
			MaxBackoff:     cfg.Retry.MaxBackoff,
			Multiplier:     cfg.Retry.Multiplier,
		},
		RequestTimeout: cfg.YouTube.RequestTimeout,
	}, clientOpts...)
	if err != nil {
		return err
	}

	youtubeRepo := &persistence.YouTubeRepository{YouTubeAPIClient: client}

	if cfg.Cache.Enabled {
		store, closeStore, err := newCacheStore(ctx, cfg.Cache)
		if err != nil {
			return err
		}
		defer closeStore()

		searchCache, err := cache.NewSearchCache(ctx, store)
		if err != nil {
			return err
		}
		logger.GetLogger().WithFields(map[string]interface{}{
			"driver":  cfg.Cache.Driver,
			"entries": searchCache.Len(),
		}).Info("Search cache loaded")
		youtubeRepo.Cache = searchCache

		if gobStore, ok := store.(*filestore.GobStore); ok {
			defer logCacheFileSize(gobStore)
		}
	} else {
		logger.GetLogger().Info("Search cache disabled")
	}

	uc := usecase.NewDurationMatchUseCase(youtubeRepo)
	result, err := uc.FindMatches(ctx, &dto.DurationMatchRequest{
		Minutes: cfg.App.Minutes,
		Seconds: cfg.App.Seconds,
	})
	if err != nil {
		return err
	}

	return console.NewPrinter(out).Print(result.VideoIDs)
}

func newCacheStore(ctx context.Context, cfg configuration.Cache) (repository.ISearchCacheStore, func(), error) {
	switch cfg.Driver {
	case configuration.CacheDriverRedis:
		client, err := cache.NewCache(
			ctx,
			fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			cfg.Redis.Username,
			cfg.Redis.Password,
			cfg.Redis.DB,
		)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewRedisSearchStore(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }, nil
	case configuration.CacheDriverPostgres:
		db, err := persistence.NewPostgreSQLDB(persistence.PostgresConfig{
			Name:     cfg.Postgres.Name,
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := persistence.EnsureSearchCacheSchema(db); err != nil {
			closeDB(db)
			return nil, nil, err
		}
		return persistence.NewSearchCacheRepository(db), func() { closeDB(db) }, nil
	default:
		return filestore.NewGobStore(cfg.File), func() {}, nil
	}
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Error closing database")
	}
}

func logCacheFileSize(store *filestore.GobStore) {
	size, err := store.Size()
	if err != nil {
		return
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"path": store.Path(),
		"size": humanize.Bytes(uint64(size)),
	}).Debug("Search cache file")
}
