package renderer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"

	"github.com/shouni/go-deck-kit/pkg/domain"
)

func darkTheme(t *testing.T) domain.Theme {
	t.Helper()
	theme, ok := domain.DefaultThemeCatalog().Lookup("dark")
	if !ok {
		t.Fatal("dark テーマが見つかりません")
	}
	return theme
}

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 50, B: 50, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("画像ファイルの作成に失敗しました: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("PNG のエンコードに失敗しました: %v", err)
	}
	return path
}

func TestRender_Layouts(t *testing.T) {
	theme := darkTheme(t)
	slides := []domain.Slide{
		domain.TitleSlide{Title: "Orbital Mechanics", Subtitle: "Basics"},
		domain.BulletSlide{Title: "Laws", Points: []string{"one", "two"}},
		domain.TwoColumnSlide{Title: "Compare", LeftPoints: []string{"l"}, RightPoints: []string{"r"}},
	}

	deck, err := NewSlideRenderer("").Render(slides, theme)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if len(deck.Canvases) != len(slides) {
		t.Fatalf("キャンバス数が違います: got %d, want %d", len(deck.Canvases), len(slides))
	}

	t.Run("表紙", func(t *testing.T) {
		c := deck.Canvases[0]
		title := c.Ops[1]
		if title.Box != coverTitleBox || title.Align != AlignCenter || title.FontSize != theme.FontSize+10 {
			t.Errorf("表紙タイトルの配置が違います: %+v", title)
		}
		if title.Color != domain.MustRGB(theme.TitleColor) {
			t.Errorf("タイトル色が違います: %+v", title.Color)
		}
		if sub := c.Ops[2]; sub.Box != coverSubtitleBox || sub.FontSize != theme.FontSize {
			t.Errorf("サブタイトルの配置が違います: %+v", sub)
		}
		if bg := c.Ops[0]; bg.Kind != OpBackground || bg.Color != domain.MustRGB(theme.BackgroundColor) {
			t.Errorf("背景が違います: %+v", bg)
		}
	})

	t.Run("箇条書き", func(t *testing.T) {
		c := deck.Canvases[1]
		if got := c.Texts(); !reflect.DeepEqual(got, []string{"Laws", "one", "two"}) {
			t.Errorf("テキストが違います: %v", got)
		}
		op, _ := c.Find(OpBullets)
		if op.Box != bodyBox || op.Align != AlignLeft {
			t.Errorf("本文の配置が違います: %+v", op)
		}
	})

	t.Run("2列", func(t *testing.T) {
		c := deck.Canvases[2]
		left, right := c.Ops[2], c.Ops[3]
		if left.Box != leftColumnBox || left.Align != AlignLeft {
			t.Errorf("左列が違います: %+v", left)
		}
		if right.Box != rightColumnBox || right.Align != AlignRight {
			t.Errorf("右列が違います: %+v", right)
		}
	})
}

func TestRender_Image(t *testing.T) {
	theme := darkTheme(t)
	dir := t.TempDir()
	pngPath := writePNG(t, dir, "orbit.png")
	notImage := filepath.Join(dir, "notes.png")
	if err := os.WriteFile(notImage, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		wantKind OpKind
	}{
		{"存在する PNG", pngPath, OpImage},
		{"基準ディレクトリからの相対パス", "orbit.png", OpImage},
		{"存在しないパス", filepath.Join(dir, "missing.png"), OpPlaceholder},
		{"画像ではないファイル", notImage, OpPlaceholder},
		{"ディレクトリ", dir, OpPlaceholder},
		{"空のパス", "", OpPlaceholder},
	}

	r := NewSlideRenderer(dir)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slides := []domain.Slide{domain.ContentImageSlide{Title: "Pic", Content: []string{"text"}, ImagePath: tt.path}}
			deck, err := r.Render(slides, theme)
			if err != nil {
				t.Fatalf("画像の不備で描画が失敗しました: %v", err)
			}
			op := deck.Canvases[0].Ops[3]
			if op.Kind != tt.wantKind {
				t.Fatalf("命令の種類が違います: got %s, want %s", op.Kind, tt.wantKind)
			}
			if op.Box != imageBox {
				t.Errorf("画像領域の配置が違います: %+v", op.Box)
			}
			if op.Kind == OpPlaceholder && op.Text != "Image Not Found" {
				t.Errorf("プレースホルダーの文言が違います: %q", op.Text)
			}
			if op.Kind == OpImage && op.Image.Format != "png" {
				t.Errorf("画像形式が違います: %q", op.Image.Format)
			}
		})
	}
}

func TestRender_AbortsOnInvalidSlide(t *testing.T) {
	slides := []domain.Slide{
		domain.TitleSlide{Title: "ok"},
		domain.BulletSlide{Title: "", Points: []string{"orphan"}},
	}
	deck, err := NewSlideRenderer("").Render(slides, darkTheme(t))
	if !errors.Is(err, domain.ErrRendering) {
		t.Fatalf("ErrRendering が返されませんでした: %v", err)
	}
	if deck != nil {
		t.Error("失敗時にデッキが返されました")
	}

	if _, err := NewSlideRenderer("").Render(nil, darkTheme(t)); !errors.Is(err, domain.ErrRendering) {
		t.Errorf("空のスライド列で ErrRendering が返されませんでした: %v", err)
	}

	bad := darkTheme(t)
	bad.TitleColor = "zzz"
	if _, err := NewSlideRenderer("").Render([]domain.Slide{domain.TitleSlide{Title: "x"}}, bad); !errors.Is(err, domain.ErrRendering) {
		t.Errorf("不正なテーマで ErrRendering が返されませんでした: %v", err)
	}
}

func TestPDFEncoder_Encode(t *testing.T) {
	dir := t.TempDir()
	pngPath := writePNG(t, dir, "orbit.png")
	slides := []domain.Slide{
		domain.TitleSlide{Title: "Orbital Mechanics", Subtitle: "Über die Bahnen"},
		domain.BulletSlide{Title: "Laws", Points: []string{"Ellipses", "Equal areas"}},
		domain.TwoColumnSlide{Title: "Compare", LeftPoints: []string{"LEO"}, RightPoints: []string{"GEO"}},
		domain.ContentImageSlide{Title: "Transfer", Content: []string{"Hohmann"}, ImagePath: pngPath},
		domain.ContentImageSlide{Title: "Missing", Content: []string{"none"}, ImagePath: "nope.png"},
	}
	deck, err := NewSlideRenderer("").Render(slides, darkTheme(t))
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	deck.Title = "Orbital Mechanics"

	enc := NewPDFEncoder()
	data, err := enc.Encode(deck)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("PDF ヘッダーがありません: %q", data[:min(len(data), 8)])
	}
	if enc.ContentType() != "application/pdf" || enc.FileExt() != ".pdf" {
		t.Errorf("メタ情報が違います: %s %s", enc.ContentType(), enc.FileExt())
	}

	if _, err := enc.Encode(&Deck{}); !errors.Is(err, domain.ErrRendering) {
		t.Errorf("空のデッキで ErrRendering が返されませんでした: %v", err)
	}
}

// pageObject は PDF のページオブジェクト (ページツリーを除く) に一致します。
var pageObject = regexp.MustCompile(`/Type /Page\n`)

func TestPDFEncoder_OnePagePerSlide(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		slides := make([]domain.Slide, 0, n)
		for i := range n {
			slides = append(slides, domain.BulletSlide{Title: "Slide", Points: []string{strings.Repeat("x", i+1)}})
		}
		deck, err := NewSlideRenderer("").Render(slides, darkTheme(t))
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		data, err := NewPDFEncoder().Encode(deck)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if got := len(pageObject.FindAll(data, -1)); got != n {
			t.Errorf("%d 枚のスライドで %d ページになりました", n, got)
		}
	}
}

// findTestFont はテストで使える TrueType フォントを探します。
// DECK_TEST_FONT、fpdf モジュール同梱のフォント、システムフォントの順に探します。
func findTestFont(t *testing.T) string {
	t.Helper()
	var candidates []string
	if p := os.Getenv("DECK_TEST_FONT"); p != "" {
		candidates = append(candidates, p)
	}
	if out, err := exec.Command("go", "list", "-m", "-f", "{{.Dir}}", "github.com/go-pdf/fpdf").Output(); err == nil {
		candidates = append(candidates, filepath.Join(strings.TrimSpace(string(out)), "font", "DejaVuSansCondensed.ttf"))
	}
	candidates = append(candidates,
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	)
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	t.Skip("TrueType フォントが見つからないためスキップします")
	return ""
}

func TestPDFEncoder_UTF8Font(t *testing.T) {
	enc, err := LoadPDFEncoder(findTestFont(t))
	if err != nil {
		t.Fatalf("フォントの読み込みに失敗しました: %v", err)
	}
	if !enc.HasUTF8Font() {
		t.Fatal("TrueType フォントが設定されていません")
	}

	slides := []domain.Slide{
		domain.TitleSlide{Title: "Орбитальная механика", Subtitle: "Ωμέγα"},
		domain.BulletSlide{Title: "軌道力学", Points: []string{"ケプラーの法則", "Hohmann"}},
	}
	deck, err := NewSlideRenderer("").Render(slides, darkTheme(t))
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	family, tr, err := enc.selectFont(fpdf.New("P", "in", "Letter", ""), deck)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if family != utf8FontFamily {
		t.Errorf("family = %q, want %q", family, utf8FontFamily)
	}
	for _, s := range []string{"軌道力学", "Орбитальная механика", "Ωμέγα"} {
		if got := tr(s); got != s {
			t.Errorf("tr(%q) = %q: 文字が置き換えられました", s, got)
		}
	}

	data, err := enc.Encode(deck)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if !bytes.Contains(data, []byte("/Encoding /Identity-H")) {
		t.Error("Unicode フォントが埋め込まれていません")
	}
	if got := len(pageObject.FindAll(data, -1)); got != 2 {
		t.Errorf("ページ数 = %d, want 2", got)
	}
}

func TestPDFEncoder_CoreFontFallback(t *testing.T) {
	deck, err := NewSlideRenderer("").Render([]domain.Slide{
		domain.BulletSlide{Title: "軌道力学", Points: []string{"Café — intro"}},
	}, darkTheme(t))
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	enc := NewPDFEncoder()
	family, tr, err := enc.selectFont(fpdf.New("P", "in", "Letter", ""), deck)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if family != "Helvetica" {
		t.Errorf("family = %q, want Helvetica", family)
	}
	// 標準フォントでは cp1252 外の文字が置き換えられる
	if got := tr("軌道力学"); got != "...." {
		t.Errorf("tr(軌道力学) = %q, want %q", got, "....")
	}
	if got := tr("Café"); got != "Caf\xe9" {
		t.Errorf("tr(Café) = %q", got)
	}

	data, err := enc.Encode(deck)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if bytes.Contains(data, []byte("/Identity-H")) {
		t.Error("フォント未設定なのに Unicode フォントが埋め込まれました")
	}
}

func TestNeedsUTF8Font(t *testing.T) {
	tests := map[string]bool{
		"Orbital Mechanics": false,
		"Über die Bahnen":   false,
		"Café — 10 €":       false,
		"“quoted” • item":   false,
		"軌道力学":              true,
		"Ωμέγα":             true,
		"Орбита":            true,
		"":                  false,
	}
	for in, want := range tests {
		if got := NeedsUTF8Font(in); got != want {
			t.Errorf("NeedsUTF8Font(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoadPDFEncoder(t *testing.T) {
	enc, err := LoadPDFEncoder("")
	if err != nil || enc.HasUTF8Font() {
		t.Errorf("パス未指定では標準フォントになるはずです: %v", err)
	}

	if _, err := LoadPDFEncoder(filepath.Join(t.TempDir(), "missing.ttf")); !errors.Is(err, domain.ErrRendering) {
		t.Errorf("存在しないファイルで ErrRendering が返されませんでした: %v", err)
	}

	bogus := filepath.Join(t.TempDir(), "bogus.ttf")
	if err := os.WriteFile(bogus, []byte("this is not a font file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPDFEncoder(bogus); !errors.Is(err, domain.ErrRendering) {
		t.Errorf("フォントでないファイルで ErrRendering が返されませんでした: %v", err)
	}

	if _, err := NewPDFEncoderWithFont([]byte("OTTO0000000000")); !errors.Is(err, domain.ErrRendering) {
		t.Errorf("CFF の OpenType で ErrRendering が返されませんでした: %v", err)
	}
}

func TestMapFontFamily(t *testing.T) {
	tests := map[string]string{
		"Arial":           "Helvetica",
		"Calibri":         "Helvetica",
		"Verdana":         "Helvetica",
		"Times New Roman": "Times",
		"Courier New":     "Courier",
		"":                "Helvetica",
	}
	for in, want := range tests {
		if got := MapFontFamily(in); got != want {
			t.Errorf("MapFontFamily(%q) = %q, want %q", in, got, want)
		}
	}
}
