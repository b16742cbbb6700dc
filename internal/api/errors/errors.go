// Package errors はエラー応答を {"error": {"code": "...", "message": "..."}} の形式で書き出します。
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/shouni/go-deck-kit/pkg/domain"
)

// エラーコードの定義です。
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeGenerationError = "GENERATION_ERROR"
	CodeRenderingError  = "RENDERING_ERROR"
	CodeStorageError    = "STORAGE_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError はエラー応答を書き出します。
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// ValidationError は 400 を返します。
func ValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, CodeValidationError, message)
}

// NotFound は 404 を返します。
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, CodeNotFound, message)
}

// StatusFor はドメインのエラーを HTTP ステータスとエラーコードに対応付けます。
func StatusFor(err error) (int, string) {
	switch {
	case stderrors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, CodeValidationError
	case stderrors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case stderrors.Is(err, domain.ErrGeneration):
		return http.StatusBadGateway, CodeGenerationError
	case stderrors.Is(err, domain.ErrRendering):
		return http.StatusInternalServerError, CodeRenderingError
	case stderrors.Is(err, domain.ErrStorage):
		return http.StatusInternalServerError, CodeStorageError
	default:
		return http.StatusInternalServerError, CodeInternalError
	}
}

// FromDomain はドメインのエラーに対応するエラー応答を書き出します。
// 内部エラーの詳細はクライアントに返しません。
func FromDomain(w http.ResponseWriter, err error) {
	status, code := StatusFor(err)
	message := err.Error()
	if code == CodeInternalError {
		message = "internal server error"
	}
	WriteError(w, status, code, message)
}
