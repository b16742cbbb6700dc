package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestRequestLogger_Level(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{"成功", http.StatusOK, "INFO"},
		{"クライアントエラー", http.StatusNotFound, "WARN"},
		{"サーバーエラー", http.StatusBadGateway, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			}))

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/themes", nil))

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("ログの解析に失敗しました: %v (%s)", err, buf.String())
			}
			if entry["level"] != tt.want {
				t.Errorf("level = %v, want %s", entry["level"], tt.want)
			}
			if entry["status"] != float64(tt.status) || entry["bytes"] != float64(4) {
				t.Errorf("記録内容が違います: %v", entry)
			}
			if entry["path"] != "/api/v1/themes" {
				t.Errorf("path = %v", entry["path"])
			}
		})
	}
}

func TestRequestLogger_ImplicitOK(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	r := chi.NewRouter()
	r.Use(RequestLogger(logger))
	r.Get("/api/v1/presentations/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/presentations/abc", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("ログの解析に失敗しました: %v (%s)", err, buf.String())
	}
	if entry["status"] != float64(http.StatusOK) || entry["level"] != "INFO" {
		t.Errorf("WriteHeader を呼ばない応答は 200 として記録されるはずです: %v", entry)
	}
	if entry["route"] != "/api/v1/presentations/{id}" || entry["bytes"] != float64(11) {
		t.Errorf("記録内容が違います: %v", entry)
	}
}

func TestLevelFor(t *testing.T) {
	tests := map[int]slog.Level{
		http.StatusOK:                  slog.LevelInfo,
		http.StatusFound:               slog.LevelInfo,
		http.StatusBadRequest:          slog.LevelWarn,
		http.StatusUnprocessableEntity: slog.LevelWarn,
		http.StatusInternalServerError: slog.LevelError,
		http.StatusServiceUnavailable:  slog.LevelError,
	}
	for status, want := range tests {
		if got := levelFor(status); got != want {
			t.Errorf("levelFor(%d) = %v, want %v", status, got, want)
		}
	}
}

func TestMetricsMiddleware_RoutePattern(t *testing.T) {
	var got string
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req)
			got = routePattern(req)
		})
	})
	r.Use(MetricsMiddleware())
	r.Get("/api/v1/presentations/{id}/download", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/presentations/7c1f1b1e-0000-4000-8000-000000000000/download", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got != "/api/v1/presentations/{id}/download" {
		t.Errorf("routePattern = %q", got)
	}
}

func TestRoutePattern_Unmatched(t *testing.T) {
	if got := routePattern(httptest.NewRequest(http.MethodGet, "/nowhere", nil)); got != "unmatched" {
		t.Errorf("routePattern = %q", got)
	}
}
