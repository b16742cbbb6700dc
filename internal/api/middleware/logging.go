package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// serveRecorded は next を実行し、応答のステータスコードと本文のバイト数を返します。
// WriteHeader が呼ばれなかった応答は 200 として扱います。
func serveRecorded(next http.Handler, w http.ResponseWriter, r *http.Request) (int, int) {
	ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
	next.ServeHTTP(ww, r)

	status := ww.Status()
	if status == 0 {
		status = http.StatusOK
	}
	return status, ww.BytesWritten()
}

// levelFor はステータスコードに対応するログレベルを返します。
func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// RequestLogger はリクエストごとに1行のアクセスログを出力します。
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			status, size := serveRecorded(next, w, r)

			logger.Log(r.Context(), levelFor(status), "HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"route", routePattern(r),
				"status", status,
				"bytes", size,
				"elapsed", time.Since(start),
				"remote", r.RemoteAddr,
			)
		})
	}
}
