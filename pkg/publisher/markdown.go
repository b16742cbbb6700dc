package publisher

import (
	"fmt"
	"strings"

	"github.com/shouni/go-deck-kit/pkg/domain"
)

// OutlinePublisher は、スライドの並びを人が編集できる Markdown の下書きとして出力します。
// 出力は生成 AI に指示する区切り形式と同じなので、parser.DecodeSegments でそのまま読み戻せます。
type OutlinePublisher struct{}

func NewOutlinePublisher() *OutlinePublisher {
	return &OutlinePublisher{}
}

// BuildMarkdown は、トピックを見出しにしてスライドごとのブロックを生成します。
func (op *OutlinePublisher) BuildMarkdown(topic string, slides []domain.Slide) string {
	var sb strings.Builder

	if topic != "" {
		sb.WriteString(fmt.Sprintf("# %s\n\n", topic))
	}

	for i, s := range slides {
		sb.WriteString(fmt.Sprintf("## Slide %d: Layout: %s\n", i+1, s.Layout()))
		sb.WriteString(fmt.Sprintf("Title: %s\n", s.Heading()))

		switch v := s.(type) {
		case domain.TitleSlide:
			if v.Subtitle != "" {
				sb.WriteString(fmt.Sprintf("Subtitle: %s\n", v.Subtitle))
			}
		case domain.BulletSlide:
			writeBullets(&sb, v.Points)
		case domain.TwoColumnSlide:
			sb.WriteString("Left:\n")
			writeBullets(&sb, v.LeftPoints)
			sb.WriteString("Right:\n")
			writeBullets(&sb, v.RightPoints)
		case domain.ContentImageSlide:
			sb.WriteString("Content:\n")
			writeBullets(&sb, v.Content)
			if v.ImagePath != "" {
				sb.WriteString(fmt.Sprintf("Image: %s\n", v.ImagePath))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeBullets(sb *strings.Builder, items []string) {
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("* %s\n", item))
	}
}
