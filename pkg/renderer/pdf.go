package renderer

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/shouni/go-deck-kit/pkg/domain"
)

const (
	// ContentTypePDF は PDFEncoder が出力する文書の MIME タイプです。
	ContentTypePDF = "application/pdf"
	// FileExtPDF は PDFEncoder が出力する文書の拡張子です。
	FileExtPDF = ".pdf"

	creatorName   = "go-deck-kit"
	bulletMarker  = "• "
	pointsPerInch = 72.0
	lineSpacing   = 1.25

	// utf8FontFamily は FONT_PATH から登録した TrueType フォントのファミリー名です。
	utf8FontFamily = "DeckUTF8"
)

// Encoder は Deck をバイナリ文書に変換するインターフェースです。
type Encoder interface {
	Encode(deck *Deck) ([]byte, error)
	ContentType() string
	FileExt() string
}

// PDFEncoder は Deck を1キャンバス1ページの PDF に変換します。
// utf8Font が空の場合は PDF 標準フォント (cp1252) で描画するため、
// cp1252 に含まれない文字は置き換えられます。
type PDFEncoder struct {
	utf8Font []byte
}

// NewPDFEncoder は標準フォントを使う PDFEncoder を初期化します。
func NewPDFEncoder() *PDFEncoder {
	return &PDFEncoder{}
}

// NewPDFEncoderWithFont は TrueType フォントのバイト列を埋め込む PDFEncoder を初期化します。
// テーマのフォント指定に関わらず、すべてのテキストをこのフォントで描画します。
// OpenType (CFF) と TrueType Collection は扱えません。
func NewPDFEncoderWithFont(ttf []byte) (*PDFEncoder, error) {
	if !isTrueType(ttf) {
		return nil, fmt.Errorf("%w: TrueType フォントではありません", domain.ErrRendering)
	}
	return &PDFEncoder{utf8Font: ttf}, nil
}

// LoadPDFEncoder は fontPath の TrueType フォントを読み込んで PDFEncoder を返します。
// fontPath が空なら標準フォントを使います。
func LoadPDFEncoder(fontPath string) (*PDFEncoder, error) {
	if fontPath == "" {
		return NewPDFEncoder(), nil
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("%w: フォントファイルの読み込みに失敗しました (%s): %w", domain.ErrRendering, fontPath, err)
	}
	enc, err := NewPDFEncoderWithFont(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fontPath, err)
	}
	return enc, nil
}

// isTrueType は sfnt ヘッダーが TrueType アウトラインを示すかを判定します。
func isTrueType(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	tag := string(data[:4])
	return tag == "\x00\x01\x00\x00" || tag == "true"
}

// HasUTF8Font は TrueType フォントが設定されているかを返します。
func (e *PDFEncoder) HasUTF8Font() bool { return len(e.utf8Font) > 0 }

func (e *PDFEncoder) ContentType() string { return ContentTypePDF }
func (e *PDFEncoder) FileExt() string     { return FileExtPDF }

// Encode は Deck を PDF のバイト列に変換します。
func (e *PDFEncoder) Encode(deck *Deck) ([]byte, error) {
	if deck == nil || len(deck.Canvases) == 0 {
		return nil, fmt.Errorf("%w: 空のデッキは出力できません", domain.ErrRendering)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           fpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetTitle(deck.Title, true)
	pdf.SetCreator(creatorName, true)

	family, tr, err := e.selectFont(pdf, deck)
	if err != nil {
		return nil, err
	}

	for _, c := range deck.Canvases {
		pdf.AddPage()
		for _, op := range c.Ops {
			drawOp(pdf, op, family, tr)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: PDF の出力に失敗しました: %w", domain.ErrRendering, err)
	}
	return buf.Bytes(), nil
}

// selectFont は描画に使うフォントファミリーと文字列の変換関数を決めます。
func (e *PDFEncoder) selectFont(pdf *fpdf.Fpdf, deck *Deck) (string, func(string) string, error) {
	if e.HasUTF8Font() {
		pdf.AddUTF8FontFromBytes(utf8FontFamily, "", e.utf8Font)
		if err := pdf.Error(); err != nil {
			return "", nil, fmt.Errorf("%w: フォントの登録に失敗しました: %w", domain.ErrRendering, err)
		}
		return utf8FontFamily, func(s string) string { return s }, nil
	}

	if lossy := deckNeedsUTF8Font(deck); lossy != "" {
		slog.Warn("Text outside cp1252 will be replaced; set FONT_PATH to a TrueType font",
			"title", deck.Title, "sample", lossy)
	}
	return MapFontFamily(deck.Font), pdf.UnicodeTranslatorFromDescriptor(""), nil
}

// cp1252Extras は cp1252 の 0x80-0x9F に割り当てられた Unicode 文字です。
var cp1252Extras = map[rune]bool{
	'€': true, '‚': true, 'ƒ': true, '„': true, '…': true, '†': true, '‡': true,
	'ˆ': true, '‰': true, 'Š': true, '‹': true, 'Œ': true, 'Ž': true, '‘': true,
	'’': true, '“': true, '”': true, '•': true, '–': true, '—': true, '˜': true,
	'™': true, 'š': true, '›': true, 'œ': true, 'ž': true, 'Ÿ': true,
}

// NeedsUTF8Font は s に標準フォントで表せない文字が含まれるかを返します。
func NeedsUTF8Font(s string) bool {
	for _, r := range s {
		if r > 0xFF && !cp1252Extras[r] {
			return true
		}
	}
	return false
}

// deckNeedsUTF8Font は標準フォントで表せない最初のテキストを返します。
func deckNeedsUTF8Font(deck *Deck) string {
	for _, c := range deck.Canvases {
		for _, op := range c.Ops {
			if NeedsUTF8Font(op.Text) {
				return op.Text
			}
			for _, line := range op.Lines {
				if NeedsUTF8Font(line) {
					return line
				}
			}
		}
	}
	return ""
}

func drawOp(pdf *fpdf.Fpdf, op Op, family string, tr func(string) string) {
	switch op.Kind {
	case OpBackground:
		pdf.SetFillColor(op.Color.R, op.Color.G, op.Color.B)
		pdf.Rect(op.Box.X, op.Box.Y, op.Box.W, op.Box.H, "F")
	case OpText, OpPlaceholder:
		if strings.TrimSpace(op.Text) == "" {
			return
		}
		setText(pdf, op, family)
		pdf.SetXY(op.Box.X, op.Box.Y)
		pdf.MultiCell(op.Box.W, lineHeight(op.FontSize), tr(op.Text), "", string(op.Align), false)
	case OpBullets:
		setText(pdf, op, family)
		y := op.Box.Y
		for _, line := range op.Lines {
			pdf.SetXY(op.Box.X, y)
			pdf.MultiCell(op.Box.W, lineHeight(op.FontSize), tr(bulletMarker+line), "", string(op.Align), false)
			y = pdf.GetY()
		}
	case OpImage:
		if op.Image == nil {
			return
		}
		opts := fpdf.ImageOptions{ImageType: op.Image.Format, ReadDpi: false}
		pdf.RegisterImageOptionsReader(op.Image.Name, opts, bytes.NewReader(op.Image.Data))
		pdf.ImageOptions(op.Image.Name, op.Box.X, op.Box.Y, op.Box.W, op.Box.H, false, opts, 0, "")
	}
}

func setText(pdf *fpdf.Fpdf, op Op, family string) {
	pdf.SetFont(family, "", float64(op.FontSize))
	pdf.SetTextColor(op.Color.R, op.Color.G, op.Color.B)
}

// lineHeight はポイント単位のフォントサイズから行の高さ (インチ) を求めます。
func lineHeight(fontSize int) float64 {
	return float64(fontSize) / pointsPerInch * lineSpacing
}

// MapFontFamily はテーマのフォント名を PDF の標準フォントに対応付けます。
func MapFontFamily(font string) string {
	f := strings.ToLower(font)
	switch {
	case strings.Contains(f, "times"), strings.Contains(f, "georgia"), strings.Contains(f, "serif") && !strings.Contains(f, "sans"):
		return "Times"
	case strings.Contains(f, "courier"), strings.Contains(f, "mono"), strings.Contains(f, "consolas"):
		return "Courier"
	default:
		return "Helvetica"
	}
}
