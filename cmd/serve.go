package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/uniconnect/ama-service/config"
	"github.com/uniconnect/ama-service/internal/cache"
	"github.com/uniconnect/ama-service/internal/gemini"
	"github.com/uniconnect/ama-service/internal/highlights"
	"github.com/uniconnect/ama-service/internal/postgres"
	"github.com/uniconnect/ama-service/internal/realtime"
	"github.com/uniconnect/ama-service/internal/service"
	grpcx "github.com/uniconnect/ama-service/internal/transport/grpc"
	httpx "github.com/uniconnect/ama-service/internal/transport/http"
	"github.com/uniconnect/ama-service/internal/transport/ws"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP/websocket API and the admin gRPC listener",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	log.Info("starting ama-service",
		slog.String("env", cfg.Logging.Env), slog.String("version", cfg.Logging.Version))

	// --- postgres ---
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// --- repos ---
	sessionRepo := postgres.NewSessionRepository(db.Pool)
	hostRepo := postgres.NewHostRepository(db.Pool)
	regRepo := postgres.NewRegistrationRepository(db.Pool)
	chatRepo := postgres.NewChatRepository(db.Pool)

	// --- AI ---
	var gen service.Generator
	var source highlights.Source = highlights.RuleSource{}
	if cfg.AI.APIKey != "" {
		g, err := gemini.New(ctx, gemini.Config{APIKey: cfg.AI.APIKey, Model: cfg.AI.Model})
		if err != nil {
			return fmt.Errorf("gemini: %w", err)
		}
		gen = g
		if cfg.Highlights.Source == "ai" {
			source = highlights.NewAISource(g, log)
		}
	} else {
		log.Warn("GEMINI_API_KEY is not set: email generation disabled, highlights use rules")
	}

	// --- redis (опционально) ---
	var hlCache service.HighlightCache
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewClient(ctx, cache.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer rdb.Close()
		hlCache = cache.NewHighlightCache(rdb, cfg.HighlightsTTL())
	}

	// --- services ---
	sessionSvc := service.NewSessionService(sessionRepo, hostRepo, cfg.Meeting.BaseURL)
	regSvc := service.NewRegistrationService(regRepo, cfg.Meeting.BaseURL)
	chatSvc := service.NewChatService(chatRepo, sessionRepo)
	emailSvc := service.NewEmailService(gen)
	hlSvc := service.NewHighlightService(sessionRepo, source, hlCache, log)

	// --- realtime ---
	hub := realtime.NewHub(chatSvc, log)
	wsServer := ws.NewServer(hub, ws.Config{PingInterval: cfg.PingInterval(), SendBuffer: cfg.WS.SendBuffer})

	// --- HTTP ---
	handler := httpx.NewHandler(sessionSvc, regSvc, chatSvc, hlSvc, emailSvc)
	router := httpx.NewRouter(handler, wsServer.HandleWS, httpx.RouterConfig{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout(),
	})
	httpSrv := httpx.NewServer(httpx.ServerConfig{
		Addr:            cfg.HTTP.Addr,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    cfg.RequestTimeout() + 5*time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: cfg.ShutdownTimeout(),
	}, router)
	// Shutdown не ждёт hijacked-соединения, их закрывает hub
	httpSrv.RegisterOnShutdown(hub.Close)

	return run(ctx, cfg, log, httpSrv, grpcx.NewServer(db, cfg.HealthCheckPeriod(), log))
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger, httpSrv *httpx.Server, grpcSrv *grpcx.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP listening", slog.String("addr", cfg.HTTP.Addr))
		return httpSrv.Run(gctx)
	})
	if cfg.GRPC.Addr != "" {
		g.Go(func() error {
			return grpcSrv.Run(gctx, cfg.GRPC.Addr)
		})
	}

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server stopped with error", slog.Any("err", err))
		return err
	}
	log.Info("stopped")
	return nil
}
