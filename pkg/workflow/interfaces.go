package workflow

import (
	"context"
	"io"

	"github.com/shouni/go-deck-kit/pkg/domain"
)

// Workflow は、デッキ生成ワークフローの各工程を担当する Runner を構築するためのインターフェースを定義します。
type Workflow interface {
	BuildScriptRunner() (ScriptRunner, error)
	BuildRenderRunner() (RenderRunner, error)
	BuildPublishRunner() (PublishRunner, error)
}

// ScriptRunner は、トピックとレイアウト列からスライドの並びを生成する責務を持ちます。
type ScriptRunner interface {
	Run(ctx context.Context, topic string, slideCount int, layouts []domain.Layout) ([]domain.Slide, error)
}

// RenderRunner は、スライドの並びをテーマで描画し、バイナリ文書に変換する責務を持ちます。
type RenderRunner interface {
	Run(ctx context.Context, title string, slides []domain.Slide, theme domain.Theme) ([]byte, error)
	ContentType() string
	FileExt() string
}

// PublishRunner は、スライドの並びを編集可能な Markdown の下書きとして出力する責務を持ちます。
type PublishRunner interface {
	Run(ctx context.Context, topic string, slides []domain.Slide, w io.Writer) error
}
