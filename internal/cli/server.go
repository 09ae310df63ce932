package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quizzz-service/internal/app"
	"quizzz-service/internal/config"
	"quizzz-service/internal/extract"
	"quizzz-service/internal/infra/memory"
	pginfra "quizzz-service/internal/infra/postgres"
	redisinfra "quizzz-service/internal/infra/redis"
	transport "quizzz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	playTTL := config.TTLDuration(cfg.Play.TTL, 24*time.Hour)

	// Quiz persistence: Postgres when configured, in-memory otherwise.
	var (
		quizRepo   app.QuizRepository
		quizLoader memory.QuizLoader
	)
	if pool != nil {
		repo := pginfra.NewQuizRepository(pool)
		quizRepo = repo
		quizLoader = repo
	} else {
		store := memory.NewQuizStore()
		quizRepo = store
		quizLoader = store
	}

	// Play scoring reads go through a cache in front of the quiz store.
	var (
		quizSource app.QuizSource
		quizCache  app.QuizInvalidator
	)
	if redisClient != nil {
		cache := redisinfra.NewQuizCache(redisClient, quizLoader, quizTTL)
		quizSource, quizCache = cache, cache
	} else {
		cache := memory.NewQuizCache(quizLoader, quizTTL)
		quizSource, quizCache = cache, cache
	}

	var playRepo app.PlayRepository
	switch {
	case pool != nil:
		playRepo = pginfra.NewPlayRepository(pool)
	case redisClient != nil:
		playRepo = redisinfra.NewPlayStore(redisClient, playTTL)
	default:
		playRepo = memory.NewPlayStore()
	}

	extractor := extract.New(extract.Config{
		MaxFileSize: cfg.Import.MaxFileSize,
		Logger:      logger,
	})

	quizService := app.NewQuizService(quizRepo)
	quizService.SetCache(quizCache)
	playService := app.NewPlayService(playRepo, quizSource)
	api := transport.NewAPI(quizService, playService, extractor, logger)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      api.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("starting quizzz service", "port", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
