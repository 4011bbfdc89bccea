package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/glabrego/catfeed/internal/app"
	"github.com/glabrego/catfeed/internal/config"
	"github.com/glabrego/catfeed/internal/forum"
	"github.com/glabrego/catfeed/internal/logger"
	"github.com/glabrego/catfeed/internal/prefs"
	"github.com/glabrego/catfeed/internal/storage"
)

var (
	globalConfig  config.Config
	globalLogger  *slog.Logger
	globalService *app.Service
	globalClosers []io.Closer
)

var (
	configPath string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:           "catfeed",
	Short:         "Browse a forum category from the terminal",
	Long:          "Browse the posts of a forum category page by page, with sorting and display preferences that persist between sessions.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		cfg, err := config.Load(configPath, envFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		globalConfig = cfg

		log, closer, err := logger.Open(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return err
		}
		globalLogger = log
		globalClosers = append(globalClosers, closer)

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()
		durable, err := openDurableBackend(ctx, cfg)
		if err != nil {
			return err
		}

		store := prefs.NewStore(durable, prefs.NewMemoryBackend(), log)
		client := forum.NewClient(cfg.APIBaseURL, cfg.APIToken, &http.Client{Timeout: cfg.HTTPTimeout})
		globalService = app.NewService(client, store, log)
		return nil
	},
}

func init() {
	// Finalizers run even when a command fails, unlike PersistentPostRunE.
	cobra.OnFinalize(closeAll)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Path to config.toml")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to a .env file loaded before reading the environment")
}

// openDurableBackend returns the store for preferences that outlive the
// session. A sqlite database that cannot be written is reported as an error.
func openDurableBackend(ctx context.Context, cfg config.Config) (prefs.Backend, error) {
	switch cfg.PrefsBackend {
	case config.BackendRedis:
		store, err := storage.OpenRedis(ctx, cfg.RedisURL, "catfeed:")
		if err != nil {
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		globalClosers = append(globalClosers, store)
		return store, nil
	case config.BackendMemory:
		return prefs.NewMemoryBackend(), nil
	default:
		repo, err := storage.NewRepository(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("storage init error: %w", err)
		}
		globalClosers = append(globalClosers, repo)
		if err := repo.Init(ctx); err != nil {
			return nil, fmt.Errorf("storage schema error: %w", err)
		}
		if err := repo.CheckWritable(ctx); err != nil {
			return nil, fmt.Errorf("storage write check failed (%v). Verify CATFEED_DB_PATH is writable: %s", err, cfg.DBPath)
		}
		return repo, nil
	}
}

func closeAll() {
	for i := len(globalClosers) - 1; i >= 0; i-- {
		_ = globalClosers[i].Close()
	}
	globalClosers = nil
}
