package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/shouni/go-deck-kit/pkg/domain"
	"github.com/shouni/go-deck-kit/pkg/publisher"
)

// DefaultPublisherRunner は pkg/publisher を利用してスライドの下書きを書き出す標準実装です。
type DefaultPublisherRunner struct {
	publisher *publisher.OutlinePublisher
}

func NewDefaultPublisherRunner(pub *publisher.OutlinePublisher) *DefaultPublisherRunner {
	return &DefaultPublisherRunner{publisher: pub}
}

// Run はスライドの下書き Markdown を w に書き出します。
func (pr *DefaultPublisherRunner) Run(ctx context.Context, topic string, slides []domain.Slide, w io.Writer) error {
	if _, err := io.WriteString(w, pr.BuildMarkdown(topic, slides)); err != nil {
		return fmt.Errorf("下書きの書き出しに失敗しました: %w", err)
	}
	return nil
}

// BuildMarkdown は保存処理を行わず、Markdown 文字列のみを生成して返却します。
func (pr *DefaultPublisherRunner) BuildMarkdown(topic string, slides []domain.Slide) string {
	return pr.publisher.BuildMarkdown(topic, slides)
}
