package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UntitledSlide はタイトルを復元できなかったスライドに与える代替タイトルです。
const UntitledSlide = "Untitled Slide"

// Slide は解析済みの1枚のスライドです。レイアウトごとの具象型で表現します。
type Slide interface {
	Layout() Layout
	Heading() string
	Validate() error

	isSlide()
}

// TitleSlide は表紙スライドです。
type TitleSlide struct {
	Title    string
	Subtitle string
}

// BulletSlide は箇条書きスライドです。未知のレイアウトもこの型に縮退します。
type BulletSlide struct {
	Title  string
	Points []string
}

// TwoColumnSlide は左右2列の箇条書きスライドです。
type TwoColumnSlide struct {
	Title       string
	LeftPoints  []string
	RightPoints []string
}

// ContentImageSlide は本文と画像領域を持つスライドです。
// Content は行の並びとして扱い、描画時は箇条書きになります。
type ContentImageSlide struct {
	Title     string
	Content   []string
	ImagePath string
}

func (TitleSlide) Layout() Layout        { return LayoutTitle }
func (BulletSlide) Layout() Layout       { return LayoutBulletPoints }
func (TwoColumnSlide) Layout() Layout    { return LayoutTwoColumn }
func (ContentImageSlide) Layout() Layout { return LayoutContentWithImage }

func (s TitleSlide) Heading() string        { return s.Title }
func (s BulletSlide) Heading() string       { return s.Title }
func (s TwoColumnSlide) Heading() string    { return s.Title }
func (s ContentImageSlide) Heading() string { return s.Title }

func (s TitleSlide) Validate() error        { return requireTitle(s) }
func (s BulletSlide) Validate() error       { return requireTitle(s) }
func (s TwoColumnSlide) Validate() error    { return requireTitle(s) }
func (s ContentImageSlide) Validate() error { return requireTitle(s) }

func (TitleSlide) isSlide()        {}
func (BulletSlide) isSlide()       {}
func (TwoColumnSlide) isSlide()    {}
func (ContentImageSlide) isSlide() {}

func requireTitle(s Slide) error {
	if strings.TrimSpace(s.Heading()) == "" {
		return fmt.Errorf("%w: %s slide is missing required field %q", ErrRendering, s.Layout(), FieldTitle)
	}
	return nil
}

// slideJSON はスライドの JSON 表現です。layout を判別子として持ちます。
type slideJSON struct {
	Layout      Layout   `json:"layout"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Points      []string `json:"points,omitempty"`
	LeftPoints  []string `json:"left_points,omitempty"`
	RightPoints []string `json:"right_points,omitempty"`
	Content     []string `json:"content,omitempty"`
	ImagePath   string   `json:"image_path,omitempty"`
}

func toSlideJSON(s Slide) slideJSON {
	out := slideJSON{Layout: s.Layout(), Title: s.Heading()}
	switch v := s.(type) {
	case TitleSlide:
		out.Subtitle = v.Subtitle
	case BulletSlide:
		out.Points = v.Points
	case TwoColumnSlide:
		out.LeftPoints = v.LeftPoints
		out.RightPoints = v.RightPoints
	case ContentImageSlide:
		out.Content = v.Content
		out.ImagePath = v.ImagePath
	}
	return out
}

func (j slideJSON) toSlide() Slide {
	switch j.Layout {
	case LayoutTitle:
		return TitleSlide{Title: j.Title, Subtitle: j.Subtitle}
	case LayoutTwoColumn:
		return TwoColumnSlide{Title: j.Title, LeftPoints: j.LeftPoints, RightPoints: j.RightPoints}
	case LayoutContentWithImage:
		return ContentImageSlide{Title: j.Title, Content: j.Content, ImagePath: j.ImagePath}
	default:
		return BulletSlide{Title: j.Title, Points: j.Points}
	}
}

// MarshalSlides はスライド列を layout 判別子付きの JSON 配列に変換します。
func MarshalSlides(slides []Slide) ([]byte, error) {
	out := make([]slideJSON, 0, len(slides))
	for _, s := range slides {
		out = append(out, toSlideJSON(s))
	}
	return json.MarshalIndent(out, "", "  ")
}

// UnmarshalSlides は MarshalSlides の出力をスライド列に戻します。
func UnmarshalSlides(data []byte) ([]Slide, error) {
	var raw []slideJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("スライド JSON のデコードに失敗しました: %w", err)
	}
	slides := make([]Slide, 0, len(raw))
	for _, r := range raw {
		slides = append(slides, r.toSlide())
	}
	return slides, nil
}
