package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-deck-kit/pkg/domain"
	"github.com/shouni/go-deck-kit/pkg/renderer"
)

// DeckRenderRunner はスライドの並びを描画し、バイナリ文書へ変換します。
type DeckRenderRunner struct {
	renderer renderer.Renderer
	encoder  renderer.Encoder
}

// NewDeckRenderRunner は DeckRenderRunner を初期化します。
func NewDeckRenderRunner(r renderer.Renderer, enc renderer.Encoder) *DeckRenderRunner {
	return &DeckRenderRunner{renderer: r, encoder: enc}
}

// Run はスライドをテーマで描画し、文書のバイト列を返します。
func (rr *DeckRenderRunner) Run(ctx context.Context, title string, slides []domain.Slide, theme domain.Theme) ([]byte, error) {
	deck, err := rr.renderer.Render(slides, theme)
	if err != nil {
		return nil, err
	}
	deck.Title = title

	doc, err := rr.encoder.Encode(deck)
	if err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: 文書が空です", domain.ErrRendering)
	}

	slog.InfoContext(ctx, "RenderRunner: Document rendered",
		"slides", len(deck.Canvases),
		"theme", theme.Name,
		"bytes", len(doc),
	)
	return doc, nil
}

// ContentType は出力文書の MIME タイプを返します。
func (rr *DeckRenderRunner) ContentType() string {
	return rr.encoder.ContentType()
}

// FileExt は出力文書の拡張子を返します。
func (rr *DeckRenderRunner) FileExt() string {
	return rr.encoder.FileExt()
}
