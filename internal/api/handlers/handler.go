// Package handlers はプレゼンテーション API の HTTP ハンドラーです。
package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apierrors "github.com/shouni/go-deck-kit/internal/api/errors"
	"github.com/shouni/go-deck-kit/pkg/domain"
	"github.com/shouni/go-deck-kit/pkg/workflow"
)

// maxBodyBytes はリクエストボディの上限です。
const maxBodyBytes = 1 << 20

// PresentationService はハンドラーが利用するワークフロー操作です。
type PresentationService interface {
	Create(ctx context.Context, req workflow.CreateRequest) (domain.Presentation, error)
	Get(ctx context.Context, id string) (domain.Presentation, error)
	List(ctx context.Context) ([]domain.Presentation, error)
	Download(ctx context.Context, id string) (workflow.Document, error)
	Configure(ctx context.Context, id string, req workflow.ConfigureRequest) (domain.Presentation, error)
}

// APIHandler はプレゼンテーション API のハンドラーです。
type APIHandler struct {
	service PresentationService
	themes  *domain.ThemeCatalog
	logger  *slog.Logger
}

// NewAPIHandler は APIHandler を初期化します。
func NewAPIHandler(service PresentationService, themes *domain.ThemeCatalog, logger *slog.Logger) *APIHandler {
	return &APIHandler{
		service: service,
		themes:  themes,
		logger:  logger.With(slog.String("component", "api_handler")),
	}
}

// Routes はルーティングを登録します。
func (h *APIHandler) Routes(r chi.Router) {
	r.Get("/health/live", h.HealthLive)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/themes", h.ListThemes)
		r.Get("/layouts", h.ListLayouts)

		r.Route("/presentations", func(r chi.Router) {
			r.Get("/", h.ListPresentations)
			r.Post("/", h.CreatePresentation)
			r.Get("/{id}", h.GetPresentation)
			r.Get("/{id}/download", h.DownloadPresentation)
			r.Post("/{id}/configure", h.ConfigurePresentation)
		})
	})
}

// HealthLive はプロセスの生存確認です。
func (h *APIHandler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreatePresentation は POST /api/v1/presentations を処理します。
func (h *APIHandler) CreatePresentation(w http.ResponseWriter, r *http.Request) {
	var req workflow.CreateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		if stderrors.Is(err, io.EOF) {
			apierrors.ValidationError(w, "request body is required")
			return
		}
		apierrors.ValidationError(w, err.Error())
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// ListPresentations は GET /api/v1/presentations を処理します。
func (h *APIHandler) ListPresentations(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}
	if list == nil {
		list = []domain.Presentation{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GetPresentation は GET /api/v1/presentations/{id} を処理します。
func (h *APIHandler) GetPresentation(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DownloadPresentation は GET /api/v1/presentations/{id}/download を処理します。
func (h *APIHandler) DownloadPresentation(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Download(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "download", err)
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Data)
}

// ConfigurePresentation は POST /api/v1/presentations/{id}/configure を処理します。
// ボディが空の場合は現在の設定のまま作り直します。
func (h *APIHandler) ConfigurePresentation(w http.ResponseWriter, r *http.Request) {
	var req workflow.ConfigureRequest
	if err := decodeJSON(w, r, &req); err != nil && !stderrors.Is(err, io.EOF) {
		apierrors.ValidationError(w, err.Error())
		return
	}

	p, err := h.service.Configure(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, r, "configure", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ListThemes は GET /api/v1/themes を処理します。
func (h *APIHandler) ListThemes(w http.ResponseWriter, _ *http.Request) {
	names := h.themes.Names()
	out := make([]domain.Theme, 0, len(names))
	for _, name := range names {
		if t, ok := h.themes.Lookup(name); ok {
			out = append(out, t)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

type layoutResponse struct {
	Name     domain.Layout `json:"name"`
	Required []string      `json:"required"`
	Optional []string      `json:"optional"`
}

// ListLayouts は GET /api/v1/layouts を処理します。
func (h *APIHandler) ListLayouts(w http.ResponseWriter, _ *http.Request) {
	layouts := domain.SupportedLayouts()
	out := make([]layoutResponse, 0, len(layouts))
	for _, l := range layouts {
		f := l.Fields()
		out = append(out, layoutResponse{Name: l, Required: f.Required, Optional: f.Optional})
	}
	writeJSON(w, http.StatusOK, out)
}

// fail はエラーを記録し、対応するエラー応答を書き出します。
func (h *APIHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, code := apierrors.StatusFor(err)
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.LogAttrs(r.Context(), level, "Request failed",
		slog.String("operation", op),
		slog.String("code", code),
		slog.String("error", err.Error()),
	)
	apierrors.FromDomain(w, err)
}

// decodeJSON はボディを JSON として読み込みます。型の合わない値はエラーになります。
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if stderrors.Is(err, io.EOF) {
			return err
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
