package prompts

import (
	_ "embed"

	"github.com/shouni/go-deck-kit/pkg/domain"
)

//go:embed slides.md
var SlidesPrompt string

// Request はデッキ生成プロンプトの入力です。Layouts の長さは SlideCount と一致している前提です。
type Request struct {
	Topic      string
	SlideCount int
	Layouts    []domain.Layout
}

// TemplateData はプロンプトテンプレートに渡すデータ構造です。
type TemplateData struct {
	Topic      string
	SlideCount int
	Slides     []SlideBlock
}

// SlideBlock は1枚分の出力指示です。
type SlideBlock struct {
	Index  int
	Layout domain.Layout
	Lines  []string
}

// fieldLines は各レイアウトで応答に含めてほしい行の雛形です。
var fieldLines = map[domain.Layout][]string{
	domain.LayoutTitle: {
		"Title: <Slide Title>",
		"Subtitle: <Slide Subtitle>",
	},
	domain.LayoutBulletPoints: {
		"Title: <Slide Title>",
		"* Point 1",
		"* Point 2",
		"* Point 3",
	},
	domain.LayoutTwoColumn: {
		"Title: <Slide Title>",
		"Left:",
		"* Left Point 1",
		"* Left Point 2",
		"Right:",
		"* Right Point 1",
		"* Right Point 2",
	},
	domain.LayoutContentWithImage: {
		"Title: <Slide Title>",
		"Content:",
		"* Text line 1",
		"* Text line 2",
		"Image: <Image Placeholder>",
	},
}

func newTemplateData(req Request) TemplateData {
	blocks := make([]SlideBlock, 0, len(req.Layouts))
	for i, l := range req.Layouts {
		layout := domain.NormalizeLayout(string(l))
		blocks = append(blocks, SlideBlock{
			Index:  i + 1,
			Layout: layout,
			Lines:  fieldLines[layout],
		})
	}
	return TemplateData{
		Topic:      req.Topic,
		SlideCount: req.SlideCount,
		Slides:     blocks,
	}
}
