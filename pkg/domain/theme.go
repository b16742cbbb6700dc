package domain

import (
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultThemeName は未指定時および未知のテーマ名の描画時に使われるテーマです。
const DefaultThemeName = "default"

// Theme はデッキ全体に適用するフォントと配色の組です。色は6桁の16進文字列です。
type Theme struct {
	Name            string `json:"name" yaml:"-"`
	Font            string `json:"font" yaml:"font"`
	FontSize        int    `json:"font_size" yaml:"font_size"`
	TitleColor      string `json:"title_color" yaml:"title_color"`
	ContentColor    string `json:"content_color" yaml:"content_color"`
	BackgroundColor string `json:"background_color" yaml:"background_color"`
}

// RGB は 0-255 の色成分です。
type RGB struct {
	R, G, B int
}

var builtinThemes = map[string]Theme{
	"default": {
		Font:            "Arial",
		FontSize:        24,
		TitleColor:      "000000",
		ContentColor:    "333333",
		BackgroundColor: "FFFFFF",
	},
	"dark": {
		Font:            "Calibri",
		FontSize:        24,
		TitleColor:      "FFFFFF",
		ContentColor:    "DDDDDD",
		BackgroundColor: "000000",
	},
	"light": {
		Font:            "Verdana",
		FontSize:        22,
		TitleColor:      "00274D",
		ContentColor:    "00509E",
		BackgroundColor: "EAF2F8",
	},
}

// ThemeCatalog はテーマ名から Theme を引き当てる静的なカタログです。
type ThemeCatalog struct {
	themes map[string]Theme
}

// NewThemeCatalog は組み込みテーマに extra を上書きマージしたカタログを生成します。
func NewThemeCatalog(extra map[string]Theme) (*ThemeCatalog, error) {
	themes := make(map[string]Theme, len(builtinThemes)+len(extra))
	for name, t := range builtinThemes {
		t.Name = name
		themes[name] = t
	}
	for name, t := range extra {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("テーマ名が空です")
		}
		t.Name = name
		if err := t.Validate(); err != nil {
			return nil, err
		}
		themes[name] = t
	}
	return &ThemeCatalog{themes: themes}, nil
}

// DefaultThemeCatalog は組み込みテーマのみのカタログを返します。
func DefaultThemeCatalog() *ThemeCatalog {
	c, _ := NewThemeCatalog(nil)
	return c
}

// LoadThemeCatalog は YAML ファイルで定義された追加テーマを読み込みます。
// path が空の場合は組み込みテーマのみを返します。
//
//	ocean:
//	  font: Georgia
//	  font_size: 22
//	  title_color: "003B5C"
//	  content_color: "1F4E79"
//	  background_color: "E6F2FA"
func LoadThemeCatalog(path string) (*ThemeCatalog, error) {
	if path == "" {
		return DefaultThemeCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("テーマファイルの読み込みに失敗しました (%s): %w", path, err)
	}
	var extra map[string]Theme
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("テーマファイルの解析に失敗しました (%s): %w", path, err)
	}
	return NewThemeCatalog(extra)
}

// Lookup は名前に一致するテーマを返します。
func (c *ThemeCatalog) Lookup(name string) (Theme, bool) {
	t, ok := c.themes[name]
	return t, ok
}

// Has はテーマが登録済みかを判定します。
func (c *ThemeCatalog) Has(name string) bool {
	_, ok := c.themes[name]
	return ok
}

// Resolve は描画用にテーマを解決します。未知の名前は default にフォールバックします。
func (c *ThemeCatalog) Resolve(name string) Theme {
	if t, ok := c.themes[name]; ok {
		return t
	}
	return c.themes[DefaultThemeName]
}

// Names は登録済みのテーマ名をソートして返します。
func (c *ThemeCatalog) Names() []string {
	names := make([]string, 0, len(c.themes))
	for name := range c.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate はテーマの属性が描画可能な値かを検証します。
func (t Theme) Validate() error {
	if strings.TrimSpace(t.Font) == "" {
		return fmt.Errorf("テーマ %q: font が空です", t.Name)
	}
	if t.FontSize <= 0 {
		return fmt.Errorf("テーマ %q: font_size は正の値が必要です", t.Name)
	}
	for field, c := range map[string]string{
		"title_color":      t.TitleColor,
		"content_color":    t.ContentColor,
		"background_color": t.BackgroundColor,
	} {
		if _, err := ParseHexColor(c); err != nil {
			return fmt.Errorf("テーマ %q: %s: %w", t.Name, field, err)
		}
	}
	return nil
}

// ParseHexColor は "1F4E79" 形式（先頭の # は任意）の色を RGB に変換します。
func ParseHexColor(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("色は6桁の16進数で指定してください: %q", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return RGB{}, fmt.Errorf("不正な16進カラーです: %q", s)
	}
	return RGB{R: int(b[0]), G: int(b[1]), B: int(b[2])}, nil
}

// MustRGB は検証済みの色を RGB に変換します。不正な値は黒になります。
func MustRGB(s string) RGB {
	c, _ := ParseHexColor(s)
	return c
}
