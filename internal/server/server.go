// Package server はプレゼンテーション API の HTTP サーバーです。
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/shouni/go-deck-kit/internal/api/handlers"
	"github.com/shouni/go-deck-kit/internal/api/middleware"
	"github.com/shouni/go-deck-kit/pkg/config"
)

// Server は HTTP サーバーです。
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        config.Config
}

// New はルーティングとミドルウェアを設定したサーバーを生成します。
func New(cfg config.Config, logger *slog.Logger, handler *handlers.APIHandler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           NewRouter(logger, handler),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			// 生成 AI の応答待ちを含むため、リクエストのタイムアウトより長く取ります。
			WriteTimeout: cfg.RequestTimeout + 30*time.Second,
			IdleTimeout:  120 * time.Second,
		},
		logger: logger,
		cfg:    cfg,
	}
}

// NewRouter は API のルーターを生成します。
func NewRouter(logger *slog.Logger, handler *handlers.APIHandler) http.Handler {
	router := chi.NewRouter()
	router.Use(chimw.Recoverer)
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))
	handler.Routes(router)
	return router
}

// Run はサーバーを起動し、SIGINT または SIGTERM を受けるか ctx が終了するまで待機します。
// 停止時は処理中のリクエストの完了を待ちます。
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server started", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP サーバーでエラーが発生しました: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("サーバーの停止に失敗しました: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
