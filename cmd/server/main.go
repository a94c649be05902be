package main

import (
	"context"
	"credable/internal/cache"
	"credable/internal/chat"
	"credable/internal/config"
	"credable/internal/logging"
	"credable/internal/service"
	"credable/internal/transport/rest"
	"credable/internal/transport/rest/middleware"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server exited")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("configuration loaded",
		zap.String("chatURL", cfg.Chat.URL),
		zap.Bool("chatKey", cfg.Chat.HasChatKey()),
		zap.Duration("chatTimeout", cfg.Chat.Timeout.Std()),
		zap.Float64("demoPacing", cfg.Demo.Pacing))

	// Rate limiting is optional; without redis the chat proxy is unthrottled
	var limiter cache.RateLimiter
	if cfg.RateLimitEnabled() {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Warn("redis unreachable, rate limiter will fail open",
				zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			logger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
		}
		limiter = cache.NewRateLimiter(cache.NewRedisCounter(rdb), cfg.Chat.RateLimit, time.Minute)
	} else {
		logger.Info("chat rate limiting disabled")
	}

	proxies, err := middleware.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return err
	}

	// Initialize services
	chatClient := chat.NewClient(cfg.Chat, logger)
	demoSvc := service.NewDemoService(cfg.Demo, logger)
	chatSvc := service.NewChatService(chatClient, limiter, logger)
	brainSvc := service.NewBrainService()

	router := rest.NewRouter(&rest.Container{
		DemoService:    demoSvc,
		ChatService:    chatSvc,
		BrainService:   brainSvc,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		TrustedProxies: proxies,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.Strings("endpoints", []string{
				"POST /v1/decisions",
				"GET  /v1/decisions/preview",
				"POST /v1/chat",
				"GET  /v1/brain/layout",
				"GET  /v1/brain/tour",
				"WS   /v1/ws/demo",
			}))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
