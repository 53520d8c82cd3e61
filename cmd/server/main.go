package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lfg-site/internal/chat"
	"lfg-site/internal/config"
	"lfg-site/internal/database"
	"lfg-site/internal/handlers"
	"lfg-site/internal/logging"
	"lfg-site/internal/metrics"
	"lfg-site/internal/middleware"
	"lfg-site/internal/router"
	"lfg-site/internal/services"
	"lfg-site/internal/site"
	"lfg-site/internal/starfield"
	"lfg-site/internal/websocket"
	"lfg-site/internal/worker"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	logCloser := logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer logCloser.Close()

	slog.Info("🚀 Starting LFG.tech site...", "env", cfg.Env, "target", cfg.DeployTarget)
	if err := cfg.Validate(); err != nil {
		logging.Fatal("✗ Invalid configuration", "error", err)
	}
	slog.Info("✓ Environment variables loaded")

	ctx := context.Background()

	// ──── Step 2: Initialize Redis Clients (optional) ────
	redisClients, err := database.NewRedisClients(ctx, cfg.RedisURL)
	if err != nil {
		logging.Fatal("✗ Redis connection failed", "error", err)
	}
	defer redisClients.Close()
	if redisClients != nil {
		slog.Info("✓ Redis connected")
	} else {
		slog.Info("✓ Redis not configured, using in-process state")
	}

	// ──── Step 3: Initialize Chat Completer ────
	var completer chat.Completer
	switch cfg.ChatProvider {
	case config.ProviderGemini:
		gemini, err := services.NewGeminiCompleter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiConcurrentReqs)
		if err != nil {
			logging.Fatal("✗ Gemini client initialization failed", "error", err)
		}
		defer gemini.Close()
		completer = gemini
	default:
		completer = services.NewOpenRouterClient(services.OpenRouterConfig{
			APIKey:  cfg.OpenRouterAPIKey,
			URL:     cfg.OpenRouterURL,
			Model:   cfg.OpenRouterModel,
			Referer: cfg.PublicURL,
			Timeout: cfg.ChatTimeout,
		})
	}
	if cfg.ChatConfigured() {
		slog.Info("✓ Chat completer initialized", "provider", cfg.ChatProvider)
	} else {
		slog.Warn("chat provider has no API key, turns will answer with the not-configured fallback", "provider", cfg.ChatProvider)
	}

	// ──── Step 4: Start WebSocket Hub and Chat Registry ────
	wsHub := websocket.NewHub(nil)
	if redisClients != nil {
		wsHub = websocket.NewHub(redisClients.PubSub)
	}

	registry := chat.NewRegistry(completer, chat.RegistryOptions{
		TTL:         cfg.ChatSessionTTL,
		MaxSessions: cfg.ChatMaxSessions,
		Observer:    wsHub.Publish,
		OnTurn: func(profile string, outcome chat.Outcome) {
			metrics.ObserveTurn(profile, string(outcome))
		},
		OnCount:   metrics.SetSessions,
		OnUnmount: wsHub.CloseSession,
	})
	slog.Info("✓ Chat registry started", "ttl", registry.TTL(), "max_sessions", cfg.ChatMaxSessions)

	// ──── Step 5: Start Lead Notification Workers ────
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.LeadNotifyTo)

	var leads handlers.LeadQueue
	var workerPool *worker.Pool
	if emailService.Enabled() {
		var queue worker.Queue = worker.NewMemoryQueue(100)
		if redisClients != nil {
			queue = worker.NewRedisQueue(redisClients.Commands)
		}
		workerPool = worker.NewPool(queue, emailService, cfg.WorkerCount)
		workerPool.OnResult(func(outcome string) {
			metrics.LeadNotifications.WithLabelValues(outcome).Inc()
		})
		workerPool.Start()
		leads = workerPool
		slog.Info(fmt.Sprintf("✓ Worker pool started (%d goroutines)", cfg.WorkerCount))
	} else {
		slog.Info("✓ Lead notifications disabled (LEAD_NOTIFY_TO not set)")
	}

	// ──── Step 6: Initialize Handlers ────
	s := site.New(cfg.BasePath, cfg.AssetPrefix, cfg.APIBaseURL)
	s.Stars = starfield.Options{Count: cfg.StarCount, Speed: cfg.StarSpeed}

	sessions := middleware.NewSessionAuth(cfg.SessionSecret, cfg.ChatSessionTTL)
	formspree := services.NewFormspreeClient(cfg.FormspreeURL, cfg.ChatTimeout)

	chatHandler := handlers.NewChatHandler(registry, sessions, wsHub)
	contactHandler := handlers.NewContactHandler(formspree, leads, s)
	pagesHandler := handlers.NewPagesHandler(s)

	var apiLimiter func(http.Handler) http.Handler
	if redisClients != nil {
		apiLimiter = middleware.NewRedisRateLimiter(redisClients.Commands, cfg.APIRateLimit, time.Minute).Middleware
	} else {
		local := middleware.NewRateLimiter(cfg.APIRateLimit)
		defer local.Stop()
		apiLimiter = local.Middleware
	}

	// ──── Step 7: Start HTTP Server ────
	r := router.New(s, sessions, apiLimiter, chatHandler, contactHandler, pagesHandler, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// A chat turn holds its request open until the completion returns.
		WriteTimeout: cfg.ChatTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		slog.Info("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)

		registry.Close()
		if workerPool != nil {
			workerPool.Stop()
		}
	}()

	slog.Info(fmt.Sprintf("✓ LFG.tech ready on http://localhost:%s%s/", cfg.Port, s.BasePath), "api", s.API("/api/v1"))

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logging.Fatal("Server error", "error", err)
	}
	<-stopped
}
