package domain

import (
	"errors"
	"fmt"
)

// パイプラインが呼び出し元へ返すエラーの分類です。errors.Is で判定します。
var (
	// ErrValidation は呼び出し元の入力が不正な場合のエラーです。
	ErrValidation = errors.New("validation error")
	// ErrGeneration は生成 AI の呼び出し失敗、または利用できない応答を表します。
	ErrGeneration = errors.New("generation error")
	// ErrRendering はスライドの必須フィールドが欠けている場合のエラーです。
	ErrRendering = errors.New("rendering error")
	// ErrStorage は成果物の読み書きに失敗した場合のエラーです。
	ErrStorage = errors.New("storage error")
	// ErrNotFound は指定された ID のプレゼンテーションが存在しない場合のエラーです。
	ErrNotFound = errors.New("presentation not found")
)

// NewValidationError は ErrValidation をラップしたエラーを生成します。
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
