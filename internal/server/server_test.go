package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shouni/go-deck-kit/internal/api/handlers"
	"github.com/shouni/go-deck-kit/pkg/config"
	"github.com/shouni/go-deck-kit/pkg/domain"
	"github.com/shouni/go-deck-kit/pkg/workflow"
)

// emptyService は何も保存されていない状態のサービスです。
type emptyService struct{}

func (emptyService) Create(context.Context, workflow.CreateRequest) (domain.Presentation, error) {
	return domain.Presentation{}, domain.ErrGeneration
}

func (emptyService) Get(context.Context, string) (domain.Presentation, error) {
	return domain.Presentation{}, domain.ErrNotFound
}

func (emptyService) List(context.Context) ([]domain.Presentation, error) {
	return nil, nil
}

func (emptyService) Download(context.Context, string) (workflow.Document, error) {
	return workflow.Document{}, domain.ErrNotFound
}

func (emptyService) Configure(context.Context, string, workflow.ConfigureRequest) (domain.Presentation, error) {
	return domain.Presentation{}, domain.ErrNotFound
}

func newTestHandler() (*handlers.APIHandler, *slog.Logger) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handlers.NewAPIHandler(emptyService{}, domain.DefaultThemeCatalog(), logger), logger
}

func TestNewRouter(t *testing.T) {
	h, logger := newTestHandler()
	srv := httptest.NewServer(NewRouter(logger, h))
	defer srv.Close()

	tests := []struct {
		path string
		want int
	}{
		{"/health/live", http.StatusOK},
		{"/api/v1/presentations", http.StatusOK},
		{"/api/v1/presentations/7c1f1b1e-0000-4000-8000-000000000000", http.StatusNotFound},
		{"/api/v1/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}

	// メトリクスにはルートパターンが記録される
	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `path="/api/v1/presentations/{id}"`) {
		t.Errorf("ID を含まないパスでメトリクスが記録されていません")
	}
}

func TestServer_RunStopsOnContextCancel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.ShutdownTimeout = time.Second

	h, logger := newTestHandler()
	s := New(cfg, logger, h)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("サーバーが停止しませんでした")
	}
}
