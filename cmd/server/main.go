// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"cinechat/internal/api"
	"cinechat/internal/catalog"
	"cinechat/internal/common/config"
	"cinechat/internal/common/logger"
	"cinechat/internal/common/observability"
	"cinechat/internal/conversation"
	"cinechat/internal/enrich"
	"cinechat/internal/generative"
	"cinechat/internal/recommend"
	"cinechat/internal/trailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting cinechat server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// --- Init External Clients ---
	// Both clients are optional: a missing credential disables the tier
	// and the resolver falls through to the curated table.
	var catalogClient *catalog.Client
	if cfg.APIs.CatalogEnabled() {
		catalogCfg := catalog.LoadConfig()
		catalogCfg.BaseURL = cfg.APIs.Catalog.BaseURL
		catalogCfg.APIKey = cfg.APIs.Catalog.APIKey
		catalogCfg.Timeout = config.GetDuration(cfg.APIs.Catalog.Timeout)
		catalogClient = catalog.NewClient(catalogCfg, log)
		zapLog.Info("Catalog client initialized")
	} else {
		zapLog.Warn("Catalog credential missing, discovery tier disabled")
	}

	var generativeClient *generative.Client
	if cfg.APIs.GenAIEnabled() {
		genCfg := generative.LoadConfig()
		genCfg.BaseURL = cfg.APIs.GenAI.BaseURL
		genCfg.APIKey = cfg.APIs.GenAI.APIKey
		genCfg.Model = cfg.APIs.GenAI.Model
		genCfg.MaxTokens = cfg.APIs.GenAI.MaxTokens
		genCfg.Temperature = cfg.APIs.GenAI.Temperature
		genCfg.Timeout = config.GetDuration(cfg.APIs.GenAI.Timeout)
		generativeClient = generative.NewClient(genCfg, log)
		zapLog.Info("Generative client initialized")
	} else {
		zapLog.Warn("Generative credential missing, generative tier disabled")
	}

	// --- Build Resolution Pipeline ---
	var discovery recommend.DiscoveryClient
	var generator recommend.Generator
	var enricher api.MovieEnricher
	var trailers api.TrailerResolver
	var lister api.MovieLister
	if catalogClient != nil {
		discovery = catalogClient
		enricher = enrich.NewEnricher(catalogClient, log)
		trailers = trailer.NewResolver(catalogClient, log)
		lister = catalogClient
	}
	if generativeClient != nil {
		generator = generativeClient
	}

	resolverCfg := recommend.LoadConfig()
	resolverCfg.DiscoveryEnabled = catalogClient != nil
	resolverCfg.GenerativeEnabled = generativeClient != nil
	resolverCfg.DiscoveryTimeout = config.GetDuration(cfg.APIs.Catalog.Timeout)
	resolverCfg.GenerativeTimeout = config.GetDuration(cfg.APIs.GenAI.Timeout)

	resolver := recommend.NewResolver(resolverCfg, discovery, generator, obs, log)

	// --- Conversation Engine ---
	engine := conversation.NewEngine(log)
	sessions := conversation.NewManager(engine, log)

	// --- HTTP Surface ---
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler := api.NewHandler(sessions, resolver, enricher, trailers, lister, log)
	handler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining...")
	shutdownTimeout := config.GetDuration(cfg.Server.ShutdownTimeout)
	if shutdownTimeout <= 0 {
		shutdownTimeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zapLog.Error("server shutdown error", zap.Error(err))
	}

	zapLog.Info("Server stopped")
}
