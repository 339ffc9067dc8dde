package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quiz-manager/internal/app"
	"quiz-manager/internal/config"
	"quiz-manager/internal/infra/fixture"
	"quiz-manager/internal/infra/memory"
	redcache "quiz-manager/internal/infra/redis"
	"quiz-manager/internal/logger"
	transport "quiz-manager/internal/transport/http"
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
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	service := app.NewQuizService()

	if cfg.Fixtures.Path != "" {
		fixtures, err := fixture.Parse(cfg.Fixtures.Path)
		if err != nil {
			return err
		}
		if err := fixtures.Apply(ctx, service); err != nil {
			return err
		}
		log.Info("fixtures loaded", zap.String("path", cfg.Fixtures.Path), zap.Int("quizzes", len(fixtures.Quizzes)))
	}

	cacheTTL := config.Duration(cfg.Cache.TTL, time.Minute)
	var questions transport.QuestionReader
	if cfg.Redis.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		questions = redcache.NewQuestionCache(client, service, cacheTTL)
		log.Info("question cache backed by redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		questions = memory.NewQuestionCache(service, cacheTTL)
	}

	handler := transport.NewHandler(service, questions, log)
	feed := transport.NewFeedHandler(service, log)
	router := transport.NewRouter(handler, feed, cfg.Server.CORSOrigins)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  config.Duration(cfg.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: config.Duration(cfg.Server.WriteTimeout, 15*time.Second),
	}

	go func() {
		log.Info("starting quiz manager", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server...")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
