package prompts

import (
	"fmt"
	"strings"
	"text/template"
)

// PromptBuilder は、AIプロンプトを構築する契約です。
type PromptBuilder interface {
	Build(req Request) (string, error)
}

// SlidePromptBuilder はデッキ生成用のテンプレートを保持します。
type SlidePromptBuilder struct {
	tmpl *template.Template
}

// NewSlidePromptBuilder は埋め込みテンプレートを解析して SlidePromptBuilder を初期化します。
func NewSlidePromptBuilder() (*SlidePromptBuilder, error) {
	return NewSlidePromptBuilderFromText(SlidesPrompt)
}

// NewSlidePromptBuilderFromText は任意のテンプレート文字列から SlidePromptBuilder を初期化します。
func NewSlidePromptBuilderFromText(content string) (*SlidePromptBuilder, error) {
	if content == "" {
		return nil, fmt.Errorf("プロンプトテンプレート (go:embed) の読み込みに失敗しました: 内容が空です")
	}

	tmpl, err := template.New("slides").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("プロンプトテンプレートの解析に失敗: %w", err)
	}

	return &SlidePromptBuilder{tmpl: tmpl}, nil
}

// Build は、トピックとレイアウト列から1つの生成リクエスト文字列を組み立てます。
func (b *SlidePromptBuilder) Build(req Request) (string, error) {
	var sb strings.Builder
	if err := b.tmpl.Execute(&sb, newTemplateData(req)); err != nil {
		return "", fmt.Errorf("プロンプトテンプレートの実行に失敗しました: %w", err)
	}

	return sb.String(), nil
}
