package publisher

import (
	"reflect"
	"strings"
	"testing"

	"github.com/shouni/go-deck-kit/pkg/domain"
	"github.com/shouni/go-deck-kit/pkg/parser"
)

func TestBuildMarkdown(t *testing.T) {
	slides := []domain.Slide{
		domain.TitleSlide{Title: "Orbital Mechanics", Subtitle: "Basics"},
		domain.BulletSlide{Title: "Laws", Points: []string{"Ellipses", "Equal areas"}},
	}

	got := NewOutlinePublisher().BuildMarkdown("Orbital Mechanics", slides)
	want := "# Orbital Mechanics\n\n" +
		"## Slide 1: Layout: title\nTitle: Orbital Mechanics\nSubtitle: Basics\n\n" +
		"## Slide 2: Layout: bullet_points\nTitle: Laws\n* Ellipses\n* Equal areas\n\n"
	if got != want {
		t.Errorf("BuildMarkdown() =\n%s\nwant\n%s", got, want)
	}
}

func TestBuildMarkdown_ReadsBackWithParser(t *testing.T) {
	slides := []domain.Slide{
		domain.TitleSlide{Title: "Orbital Mechanics", Subtitle: "Basics"},
		domain.BulletSlide{Title: "Laws", Points: []string{"Ellipses", "Equal areas"}},
		domain.TwoColumnSlide{Title: "Compare", LeftPoints: []string{"LEO", "MEO"}, RightPoints: []string{"GEO"}},
		domain.ContentImageSlide{Title: "Transfer", Content: []string{"Hohmann", "Bi-elliptic"}, ImagePath: "images/transfer.png"},
	}

	md := NewOutlinePublisher().BuildMarkdown("Orbital Mechanics", slides)
	if strings.Count(md, "## Slide ") != len(slides) {
		t.Fatalf("ブロック数が違います:\n%s", md)
	}

	got := parser.DecodeSegments(md)
	if !reflect.DeepEqual(got, slides) {
		t.Errorf("読み戻した結果が一致しません:\n%#v\nwant\n%#v", got, slides)
	}
}
