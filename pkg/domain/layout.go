package domain

import (
	"strings"
)

// Layout はスライドの構造テンプレートを識別するタグです。
type Layout string

const (
	LayoutTitle            Layout = "title"
	LayoutBulletPoints     Layout = "bullet_points"
	LayoutTwoColumn        Layout = "two_column"
	LayoutContentWithImage Layout = "content_with_image"
)

// フィールド名はプロンプトと JSON 応答の両方で共通です。
const (
	FieldLayout      = "layout"
	FieldTitle       = "title"
	FieldSubtitle    = "subtitle"
	FieldPoints      = "points"
	FieldLeftPoints  = "left_points"
	FieldRightPoints = "right_points"
	FieldContent     = "content"
	FieldImagePath   = "image_path"
)

// LayoutFields は各レイアウトが要求するフィールドの定義です。
type LayoutFields struct {
	Required []string
	Optional []string
}

var supportedLayouts = []Layout{
	LayoutTitle,
	LayoutBulletPoints,
	LayoutTwoColumn,
	LayoutContentWithImage,
}

var layoutSchema = map[Layout]LayoutFields{
	LayoutTitle: {
		Required: []string{FieldTitle},
		Optional: []string{FieldSubtitle},
	},
	LayoutBulletPoints: {
		Required: []string{FieldTitle},
		Optional: []string{FieldPoints},
	},
	LayoutTwoColumn: {
		Required: []string{FieldTitle},
		Optional: []string{FieldLeftPoints, FieldRightPoints},
	},
	LayoutContentWithImage: {
		Required: []string{FieldTitle},
		Optional: []string{FieldContent, FieldImagePath},
	},
}

// SupportedLayouts はサポートされているレイアウトを定義順で返します。
func SupportedLayouts() []Layout {
	out := make([]Layout, len(supportedLayouts))
	copy(out, supportedLayouts)
	return out
}

// IsValid はタグが閉じた語彙に含まれるかを判定します（大文字小文字を区別）。
func (l Layout) IsValid() bool {
	_, ok := layoutSchema[l]
	return ok
}

func (l Layout) String() string {
	return string(l)
}

// Fields はレイアウトのフィールド定義を返します。未知のタグは bullet_points として扱います。
func (l Layout) Fields() LayoutFields {
	if f, ok := layoutSchema[l]; ok {
		return f
	}
	return layoutSchema[LayoutBulletPoints]
}

// ParseLayout は AI 応答などに含まれる表記揺れを吸収してタグを解決します。
// "Two Column" や "content-with-image" のような表記も受け付けます。
func ParseLayout(s string) (Layout, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, "`*_\"'[]()")
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(strings.TrimSpace(s))
	l := Layout(s)
	return l, l.IsValid()
}

// NormalizeLayout は未知のタグを bullet_points に縮退させます。
func NormalizeLayout(s string) Layout {
	if l, ok := ParseLayout(s); ok {
		return l
	}
	return LayoutBulletPoints
}

// ReconcileLayouts はレイアウト列をスライド枚数に合わせます。
// 不足分は bullet_points で埋め、超過分は切り詰めます。入力スライスは変更しません。
func ReconcileLayouts(layouts []Layout, slideCount int) []Layout {
	if slideCount < 0 {
		slideCount = 0
	}
	out := make([]Layout, slideCount)
	for i := range out {
		if i < len(layouts) {
			out[i] = layouts[i]
		} else {
			out[i] = LayoutBulletPoints
		}
	}
	return out
}

// ParseLayouts は文字列のタグ列を検証しながら変換します。
// 未知のタグが含まれる場合は ErrValidation を返します。
func ParseLayouts(tags []string) ([]Layout, error) {
	out := make([]Layout, 0, len(tags))
	for _, tag := range tags {
		l := Layout(tag)
		if !l.IsValid() {
			return nil, NewValidationError("unsupported layout type: %q", tag)
		}
		out = append(out, l)
	}
	return out, nil
}
