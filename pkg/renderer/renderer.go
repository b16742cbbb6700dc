package renderer

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/go-deck-kit/pkg/domain"
)

// maxImageBytes を超える画像は埋め込まずにプレースホルダーを表示します。
const maxImageBytes = 20 << 20

// Renderer はスライドの並びとテーマからデッキを組み立てるインターフェースです。
type Renderer interface {
	Render(slides []domain.Slide, theme domain.Theme) (*Deck, error)
}

// SlideRenderer は固定配置でキャンバスを組み立てる Renderer の実装です。
type SlideRenderer struct {
	// imageDir は相対パスの画像を解決する基準ディレクトリです。空の場合はカレントディレクトリです。
	imageDir string
}

// NewSlideRenderer は SlideRenderer を初期化します。
func NewSlideRenderer(imageDir string) *SlideRenderer {
	return &SlideRenderer{imageDir: imageDir}
}

// palette はテーマから解決した描画用の色とサイズです。
type palette struct {
	title      domain.RGB
	content    domain.RGB
	background domain.RGB
	baseSize   int
}

func newPalette(theme domain.Theme) (palette, error) {
	if err := theme.Validate(); err != nil {
		return palette{}, fmt.Errorf("%w: %w", domain.ErrRendering, err)
	}
	return palette{
		title:      domain.MustRGB(theme.TitleColor),
		content:    domain.MustRGB(theme.ContentColor),
		background: domain.MustRGB(theme.BackgroundColor),
		baseSize:   theme.FontSize,
	}, nil
}

// Render はすべてのスライドを検証してからキャンバスを組み立てます。
// 1枚でも必須項目が欠けていれば、何も描画せずに domain.ErrRendering を返します。
func (r *SlideRenderer) Render(slides []domain.Slide, theme domain.Theme) (*Deck, error) {
	if len(slides) == 0 {
		return nil, fmt.Errorf("%w: 描画するスライドがありません", domain.ErrRendering)
	}
	for i, s := range slides {
		if s == nil {
			return nil, fmt.Errorf("%w: slide %d is nil", domain.ErrRendering, i+1)
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
	}

	pal, err := newPalette(theme)
	if err != nil {
		return nil, err
	}

	deck := &Deck{Font: theme.Font, Canvases: make([]Canvas, 0, len(slides))}
	for _, s := range slides {
		deck.Canvases = append(deck.Canvases, r.renderSlide(s, pal))
	}
	return deck, nil
}

func (r *SlideRenderer) renderSlide(s domain.Slide, pal palette) Canvas {
	c := Canvas{Layout: s.Layout()}
	c.Ops = append(c.Ops, Op{Kind: OpBackground, Box: fullPage, Color: pal.background})

	switch v := s.(type) {
	case domain.TitleSlide:
		c.Ops = append(c.Ops,
			Op{Kind: OpText, Box: coverTitleBox, Text: v.Title, Color: pal.title, FontSize: pal.baseSize + titleSizeBoost, Align: AlignCenter},
			Op{Kind: OpText, Box: coverSubtitleBox, Text: v.Subtitle, Color: pal.content, FontSize: pal.baseSize, Align: AlignCenter},
		)
	case domain.TwoColumnSlide:
		c.Ops = append(c.Ops,
			heading(v.Title, pal),
			bullets(leftColumnBox, v.LeftPoints, pal, AlignLeft),
			bullets(rightColumnBox, v.RightPoints, pal, AlignRight),
		)
	case domain.ContentImageSlide:
		c.Ops = append(c.Ops,
			heading(v.Title, pal),
			bullets(contentBox, v.Content, pal, AlignLeft),
			r.imageOp(v.ImagePath, pal),
		)
	case domain.BulletSlide:
		c.Ops = append(c.Ops, heading(v.Title, pal), bullets(bodyBox, v.Points, pal, AlignLeft))
	default:
		c.Ops = append(c.Ops, heading(s.Heading(), pal), bullets(bodyBox, nil, pal, AlignLeft))
	}
	return c
}

func heading(title string, pal palette) Op {
	return Op{Kind: OpText, Box: headingBox, Text: title, Color: pal.title, FontSize: pal.baseSize + headingSizeBoost, Align: AlignLeft}
}

func bullets(box Box, lines []string, pal palette, align Align) Op {
	return Op{Kind: OpBullets, Box: box, Lines: append([]string(nil), lines...), Color: pal.content, FontSize: pal.baseSize, Align: align}
}

// imageOp は画像を読み込めた場合は画像命令を、そうでなければプレースホルダーを返します。
// 画像の不備で描画全体を失敗させることはありません。
func (r *SlideRenderer) imageOp(path string, pal palette) Op {
	placeholder := Op{Kind: OpPlaceholder, Box: imageBox, Text: imageNotFoundMessage, Color: pal.content, FontSize: pal.baseSize, Align: AlignCenter}
	if strings.TrimSpace(path) == "" {
		return placeholder
	}

	img, err := r.loadImage(path)
	if err != nil {
		slog.Warn("Image could not be embedded, using placeholder", "path", path, "error", err)
		return placeholder
	}
	return Op{Kind: OpImage, Box: imageBox, Image: img}
}

func (r *SlideRenderer) loadImage(path string) (*ImageData, error) {
	if !filepath.IsAbs(path) && r.imageDir != "" {
		path = filepath.Join(r.imageDir, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("通常のファイルではありません: %s", path)
	}
	if info.Size() > maxImageBytes {
		return nil, fmt.Errorf("画像が大きすぎます: %d bytes", info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("対応していない画像形式です: %w", err)
	}
	if format == "jpeg" {
		format = "jpg"
	}
	return &ImageData{Name: path, Format: format, Data: data}, nil
}
