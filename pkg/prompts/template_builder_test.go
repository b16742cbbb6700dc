package prompts

import (
	"strings"
	"testing"

	"github.com/shouni/go-deck-kit/pkg/domain"
)

func TestSlidePromptBuilder_Build(t *testing.T) {
	pb, err := NewSlidePromptBuilder()
	if err != nil {
		t.Fatalf("初期化に失敗しました: %v", err)
	}

	req := Request{
		Topic:      "Orbital Mechanics",
		SlideCount: 4,
		Layouts: []domain.Layout{
			domain.LayoutTitle,
			domain.LayoutBulletPoints,
			domain.LayoutTwoColumn,
			domain.LayoutContentWithImage,
		},
	}
	got, err := pb.Build(req)
	if err != nil {
		t.Fatalf("Build に失敗しました: %v", err)
	}

	wantContains := []string{
		"Generate 4 slides on the topic 'Orbital Mechanics'",
		"exactly 4 objects",
		"## Slide 1: Layout: title\nTitle: <Slide Title>\nSubtitle: <Slide Subtitle>",
		"## Slide 2: Layout: bullet_points\nTitle: <Slide Title>\n* Point 1",
		"## Slide 3: Layout: two_column",
		"Left:\n* Left Point 1",
		"Right:\n* Right Point 1",
		"## Slide 4: Layout: content_with_image",
		"Image: <Image Placeholder>",
		"layout, title, subtitle, points, left_points, right_points, content, image_path",
	}
	for _, want := range wantContains {
		if !strings.Contains(got, want) {
			t.Errorf("プロンプトに %q が含まれていません:\n%s", want, got)
		}
	}

	if n := strings.Count(got, "## Slide "); n != 4 {
		t.Errorf("スライドブロック数が違います: %d", n)
	}
}

func TestSlidePromptBuilder_Deterministic(t *testing.T) {
	pb, err := NewSlidePromptBuilder()
	if err != nil {
		t.Fatal(err)
	}
	req := Request{Topic: "Tides", SlideCount: 1, Layouts: []domain.Layout{domain.LayoutBulletPoints}}
	a, _ := pb.Build(req)
	b, _ := pb.Build(req)
	if a != b {
		t.Error("同じ入力から異なるプロンプトが生成されました")
	}
}

func TestNewSlidePromptBuilderFromText(t *testing.T) {
	if _, err := NewSlidePromptBuilderFromText(""); err == nil {
		t.Error("空のテンプレートでエラーが発生しませんでした")
	}
	if _, err := NewSlidePromptBuilderFromText("{{.Topic"); err == nil {
		t.Error("壊れたテンプレートでエラーが発生しませんでした")
	}
}
