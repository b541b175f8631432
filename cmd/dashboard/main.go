package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veltmach/procboard/internal/config"
	"github.com/veltmach/procboard/internal/handlers"
	"github.com/veltmach/procboard/internal/notify"
	"github.com/veltmach/procboard/internal/session"
	"github.com/veltmach/procboard/internal/upstream"
	"github.com/veltmach/procboard/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Session store (Redis with in-memory fallback)
	store := session.NewStore(cfg.Session.RedisAddr, time.Duration(cfg.Session.TTLHours)*time.Hour)
	sessions := session.NewManager(store, cfg.JWTSecret, cfg.Session.CookieName,
		time.Duration(cfg.Session.TTLHours)*time.Hour, cfg.IsProduction())

	// 3. Upstream workflow API client
	api := upstream.NewClient(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second)
	log.Printf("Upstream API: %s", cfg.Upstream.BaseURL)

	// 4. Websocket hub for notification push
	hub := websocket.NewHub()
	go hub.Run()

	// 5. HTTP router
	router, err := handlers.NewRouter(api, sessions, hub)
	if err != nil {
		log.Fatalf("Failed to set up router: %v", err)
	}

	// 6. Notification poller (60s interval per connected session)
	pollCtx, stopPoller := context.WithCancel(context.Background())
	notify.NewPoller(hub, api, store).Start(pollCtx)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Dashboard listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	stopPoller()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
