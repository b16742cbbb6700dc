package parser

import (
	"encoding/json"
	"strings"

	"github.com/shouni/go-deck-kit/pkg/domain"
)

const (
	fieldKeyLayout   = "layout"
	fieldKeyTitle    = "title"
	fieldKeySubtitle = "subtitle"
	fieldKeyPoints   = "points"
	fieldKeyLeft     = "left"
	fieldKeyRight    = "right"
	fieldKeyContent  = "content"
	fieldKeyImage    = "image"
)

// segment は "## Slide N" 区切りで切り出した1ブロックの生テキストです。
type segment struct {
	header string
	lines  []string
}

// slideDraft は1ブロックを走査しながら集めた中間データです。
type slideDraft struct {
	layoutTag  string
	hasLayout  bool
	title      string
	subtitle   string
	imagePath  string
	points     []string
	left       []string
	right      []string
	content    []string
	loose      []string // セクション外の箇条書き
	plain      []string // 記号もラベルもない行
	headerText string
}

// splitSegments は応答を区切り行ごとのブロックに分割します。
// 最初の区切り行より前の前置きは捨てます。
func splitSegments(raw string) []segment {
	var segments []segment
	var current *segment

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if header, ok := matchSlideHeader(trimmed); ok {
			segments = append(segments, segment{header: header})
			current = &segments[len(segments)-1]
			continue
		}
		if current != nil && trimmed != "" {
			current.lines = append(current.lines, trimmed)
		}
	}
	return segments
}

// matchSlideHeader は行が区切り行かどうかを判定し、スライド番号より後ろの文字列を返します。
// 見出し記号も区切り記号もない "Slide 3 shows ..." のような本文は区切りとみなしません。
func matchSlideHeader(line string) (string, bool) {
	m := SlideHeaderRegex.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	marker, rest := m[1], strings.TrimSpace(m[3])
	if marker == "" && rest != "" && !strings.HasPrefix(rest, ":") && !strings.HasPrefix(rest, "-") {
		return "", false
	}
	return rest, true
}

// DecodeSegments は "## Slide N" 区切りの応答をスライドに変換します。
// 区切り行が1つもない場合は nil を返します。
func DecodeSegments(raw string) []domain.Slide {
	segments := splitSegments(raw)
	if len(segments) == 0 {
		return nil
	}
	slides := make([]domain.Slide, 0, len(segments))
	for _, seg := range segments {
		slides = append(slides, decodeSegment(seg))
	}
	return slides
}

func decodeSegment(seg segment) domain.Slide {
	d := &slideDraft{}
	d.readHeader(seg.header)

	section := ""
	for _, line := range seg.lines {
		if isDecorationLine(line) {
			continue
		}
		if key, value, ok := matchField(line); ok {
			section = d.applyField(key, value, section)
			continue
		}
		if m := BulletRegex.FindStringSubmatch(line); m != nil {
			d.addItem(section, CleanText(m[1]))
			continue
		}
		text := CleanText(leadingHeadingMark.ReplaceAllString(line, ""))
		if text == "" {
			continue
		}
		if section == fieldKeyContent || section == fieldKeyLeft || section == fieldKeyRight || section == fieldKeyPoints {
			d.addItem(section, text)
			continue
		}
		d.plain = append(d.plain, text)
	}
	return d.build()
}

// isDecorationLine は区切り線やコードフェンスなど、内容を持たない行を判定します。
func isDecorationLine(line string) bool {
	return strings.HasPrefix(line, "```") || strings.Trim(line, "-=*_ ") == ""
}

// readHeader は区切り行の残りからレイアウト名と見出しを読み取ります。
func (d *slideDraft) readHeader(header string) {
	header = CleanText(strings.TrimLeft(header, ":-–— "))
	if m := LayoutLabelRegex.FindStringSubmatch(header); m != nil {
		d.setLayout(m[1])
		return
	}
	d.headerText = strings.Trim(header, ":-–— *")
}

func (d *slideDraft) setLayout(value string) {
	d.hasLayout = true
	d.layoutTag = strings.TrimSpace(CleanText(value))
}

// matchField はラベル行を判定します。"- **Title:** x" のような箇条書き付きのラベルも受け付けます。
func matchField(line string) (string, string, bool) {
	candidates := []string{CleanText(leadingHeadingMark.ReplaceAllString(line, ""))}
	if m := BulletRegex.FindStringSubmatch(line); m != nil {
		candidates = append(candidates, CleanText(m[1]))
	}
	for _, c := range candidates {
		if m := FieldRegex.FindStringSubmatch(c); m != nil {
			return normalizeFieldKey(m[1]), strings.TrimSpace(m[2]), true
		}
	}
	return "", "", false
}

func normalizeFieldKey(label string) string {
	label = strings.ToLower(label)
	switch {
	case strings.HasPrefix(label, fieldKeyLeft):
		return fieldKeyLeft
	case strings.HasPrefix(label, fieldKeyRight):
		return fieldKeyRight
	case strings.HasPrefix(label, fieldKeyImage):
		return fieldKeyImage
	default:
		return label
	}
}

// applyField はラベル行を反映し、以降の箇条書きの格納先セクションを返します。
func (d *slideDraft) applyField(key, value, section string) string {
	switch key {
	case fieldKeyLayout:
		d.setLayout(value)
		return section
	case fieldKeyTitle:
		d.title = CleanText(value)
		return ""
	case fieldKeySubtitle:
		d.subtitle = CleanText(value)
		return ""
	case fieldKeyImage:
		d.imagePath = cleanImagePath(value)
		return ""
	default:
		for _, item := range inlineItems(value) {
			d.addItem(key, item)
		}
		return key
	}
}

// inlineItems は "Left Points: [\"a\", \"b\"]" のようなインライン値を要素に分解します。
func inlineItems(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if strings.HasPrefix(value, "[") {
		var list []string
		if err := json.Unmarshal([]byte(value), &list); err == nil {
			return cleanAll(list)
		}
	}
	return cleanAll([]string{value})
}

func (d *slideDraft) addItem(section, item string) {
	if item == "" {
		return
	}
	switch section {
	case fieldKeyLeft:
		d.left = append(d.left, item)
	case fieldKeyRight:
		d.right = append(d.right, item)
	case fieldKeyContent:
		d.content = append(d.content, item)
	case fieldKeyPoints:
		d.points = append(d.points, item)
	default:
		d.loose = append(d.loose, item)
	}
}

func (d *slideDraft) resolvedTitle() string {
	if d.title != "" {
		return d.title
	}
	return orUntitled(d.headerText)
}

// allBullets はセクションを問わず収集した箇条書きを出現順に近い形で返します。
func (d *slideDraft) allBullets() []string {
	var out []string
	out = append(out, d.points...)
	out = append(out, d.loose...)
	out = append(out, d.left...)
	out = append(out, d.right...)
	out = append(out, d.content...)
	return out
}

// build はレイアウトごとの具象スライドを組み立てます。
// レイアウト名が無い、または未知の場合は箇条書きスライドに縮退します。
func (d *slideDraft) build() domain.Slide {
	title := d.resolvedTitle()

	layout, ok := domain.ParseLayout(d.layoutTag)
	if !d.hasLayout || !ok {
		return domain.BulletSlide{Title: title, Points: d.allBullets()}
	}

	switch layout {
	case domain.LayoutTitle:
		subtitle := d.subtitle
		if subtitle == "" && len(d.plain) > 0 {
			subtitle = d.plain[0]
		}
		return domain.TitleSlide{Title: title, Subtitle: subtitle}
	case domain.LayoutTwoColumn:
		left, right := d.left, d.right
		if len(left) == 0 && len(right) == 0 && len(d.loose) > 0 {
			half := (len(d.loose) + 1) / 2
			left, right = d.loose[:half], d.loose[half:]
		}
		return domain.TwoColumnSlide{Title: title, LeftPoints: left, RightPoints: right}
	case domain.LayoutContentWithImage:
		content := d.content
		if len(content) == 0 {
			content = append(append(content, d.loose...), d.plain...)
		}
		return domain.ContentImageSlide{Title: title, Content: content, ImagePath: d.imagePath}
	default:
		points := append(append([]string(nil), d.points...), d.loose...)
		points = append(points, d.content...)
		if len(points) == 0 {
			points = d.plain
		}
		return domain.BulletSlide{Title: title, Points: points}
	}
}

// DecodeBullets は区切り行のないテキストから箇条書きスライドを1枚だけ復元します。
// タイトルも箇条書きも見つからない場合は false を返します。
func DecodeBullets(raw string) (domain.Slide, bool) {
	var title string
	var points []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if isDecorationLine(line) {
			continue
		}
		if key, value, ok := matchField(line); ok {
			if key == fieldKeyTitle && title == "" {
				title = CleanText(value)
			}
			continue
		}
		if m := BulletRegex.FindStringSubmatch(line); m != nil {
			if item := CleanText(m[1]); item != "" {
				points = append(points, item)
			}
			continue
		}
		if title == "" && strings.HasPrefix(line, "#") {
			title = CleanText(leadingHeadingMark.ReplaceAllString(line, ""))
		}
	}
	if title == "" && len(points) == 0 {
		return nil, false
	}
	return domain.BulletSlide{Title: orUntitled(title), Points: points}, true
}
