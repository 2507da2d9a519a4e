package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nadifa/guestbook/internal/config"
	"github.com/nadifa/guestbook/internal/handler"
	"github.com/nadifa/guestbook/internal/logging"
	"github.com/nadifa/guestbook/internal/render"
	"github.com/nadifa/guestbook/internal/service"
	"github.com/nadifa/guestbook/internal/storage"
	"github.com/nadifa/guestbook/internal/ui"
	"github.com/nadifa/guestbook/pkg/visitor"
)

func main() {
	logging.Setup()

	cfg, err := config.Load(".")
	if err != nil {
		logging.Fatal("load config failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, *cfg)
	if err != nil {
		logging.Fatal("open storage failed", "backend", cfg.Backend, "error", err)
	}
	defer store.Close()

	renderer, err := render.New()
	if err != nil {
		logging.Fatal("load templates failed", "error", err)
	}
	assets, err := handler.NewAssets(cfg.HeaderOffset)
	if err != nil {
		logging.Fatal("build assets failed", "error", err)
	}

	notify := ui.DefaultNotifierConfig()
	notify.DisplayDelay = cfg.NotifyDelay
	notify.FadeDuration = cfg.FadeDuration

	h := handler.New(store)
	guestbook := handler.NewGuestbookHandler(store, renderer, service.Deps{
		Scheduler: ui.HeldScheduler,
		Notify:    notify,
	})
	limiter := handler.NewRateLimiter(ctx, cfg.RateLimit)

	mux := http.NewServeMux()
	// API
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/messages", guestbook.ListMessages)
	mux.HandleFunc("GET "+handler.StylesheetPath, assets.Stylesheet)
	mux.HandleFunc("GET "+handler.ScriptPath, assets.Script)

	// ページとフォーム送信
	mux.HandleFunc("GET /", guestbook.Index)
	mux.HandleFunc("POST /greet", guestbook.Greet)
	mux.HandleFunc("POST /messages", guestbook.SubmitMessage)
	mux.HandleFunc("POST /form/clear", guestbook.ClearForm)
	mux.HandleFunc("POST /messages/clear", guestbook.ClearMessages)

	// 外側から: セキュリティヘッダー → 訪問者 → ログ → POST のレート制限
	var root http.Handler = mux
	root = handler.PostsOnly(limiter.Middleware)(root)
	root = handler.RequestLogger(root)
	root = visitor.Middleware(visitor.SecretBytes(cfg.SessionSecret))(root)
	root = handler.SecurityHeaders(root)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      root,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "backend", cfg.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
