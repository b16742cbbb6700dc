package renderer

import "github.com/shouni/go-deck-kit/pkg/domain"

// OpKind は描画命令の種類です。
type OpKind int

const (
	OpBackground OpKind = iota
	OpText
	OpBullets
	OpImage
	OpPlaceholder
)

func (k OpKind) String() string {
	switch k {
	case OpBackground:
		return "background"
	case OpText:
		return "text"
	case OpBullets:
		return "bullets"
	case OpImage:
		return "image"
	case OpPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Align はテキストの水平方向の揃え位置です。値は PDF のセル揃え指定と同じです。
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Box はページ左上を原点とするインチ単位の矩形です。
type Box struct {
	X, Y, W, H float64
}

// ImageData は描画時点で読み込み済みの画像です。
type ImageData struct {
	Name   string
	Format string // png, jpg, gif
	Data   []byte
}

// Op は1つの描画命令です。Kind によって使うフィールドが異なります。
type Op struct {
	Kind     OpKind
	Box      Box
	Text     string
	Lines    []string
	Color    domain.RGB
	FontSize int
	Align    Align
	Image    *ImageData
}

// Canvas は1枚のスライドに対応する描画命令の並びです。
type Canvas struct {
	Layout domain.Layout
	Ops    []Op
}

// Deck はシリアライズ前のデッキ全体です。
type Deck struct {
	Title    string
	Font     string
	Canvases []Canvas
}

// Texts はキャンバス上の全テキストを描画順に返します。
func (c Canvas) Texts() []string {
	var out []string
	for _, op := range c.Ops {
		switch op.Kind {
		case OpText, OpPlaceholder:
			out = append(out, op.Text)
		case OpBullets:
			out = append(out, op.Lines...)
		}
	}
	return out
}

// Find は指定した種類の最初の描画命令を返します。
func (c Canvas) Find(kind OpKind) (Op, bool) {
	for _, op := range c.Ops {
		if op.Kind == kind {
			return op, true
		}
	}
	return Op{}, false
}
