package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"business-agent-service/config"
	"business-agent-service/internal/agent/auth"
	agentHTTP "business-agent-service/internal/agent/delivery/http"
	"business-agent-service/internal/agent/dispatcher"
	fileRepo "business-agent-service/internal/agent/repository/file"
	"business-agent-service/internal/agent/usecase"
	"business-agent-service/internal/httpserver"
	"business-agent-service/internal/middleware"
	"business-agent-service/pkg/log"
	"business-agent-service/pkg/textnorm"
)

//go:generate swag init -g cmd/api/main.go -o docs

// @title       Business Agent API
// @description Conversational agent that answers business FAQs and dispatches configured actions.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Business Agent Service...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Business profiles dir: %s", cfg.Agents.ConfigDir)

	// 3. Shared outbound HTTP client. One pooled client serves both action
	// dispatch and token refresh.
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.Outbound.TimeoutSeconds) * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	// 4. Business profile repository
	repo, err := fileRepo.New(logger, cfg.Agents.ConfigDir)
	if err != nil {
		logger.Errorf(ctx, "Failed to load business profiles: %v", err)
		return
	}

	// 5. Agent domain
	authRegistry := auth.NewRegistry(logger, httpClient)
	disp := dispatcher.New(logger, httpClient, authRegistry)
	agentUC := usecase.New(logger, textnorm.New(), disp)
	agentHandler := agentHTTP.New(logger, agentUC, repo)

	// 6. HTTP Server
	mw := middleware.New(logger, cfg.RateLimit.PerMin)
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:       logger,
		Port:         cfg.HTTPServer.Port,
		Mode:         cfg.HTTPServer.Mode,
		Environment:  cfg.Environment.Name,
		Middleware:   mw,
		AgentHandler: agentHandler,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
