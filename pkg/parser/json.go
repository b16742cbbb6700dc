package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shouni/go-deck-kit/pkg/domain"
)

var errNoJSON = errors.New("JSON 形式のスライドが見つかりません")

// flexString は文字列以外 (数値や真偽値) が来ても文字列として受け取ります。
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*f = ""
	case []any, map[string]any:
		return fmt.Errorf("文字列として解釈できない値です: %s", truncateString(string(b), 40))
	default:
		*f = flexString(fmt.Sprint(t))
	}
	return nil
}

// flexList は文字列の配列と単一の文字列の両方を受け付けます。
// 単一の文字列は改行で分割します。
type flexList []string

func (f *flexList) UnmarshalJSON(b []byte) error {
	var list []flexString
	if err := json.Unmarshal(b, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, string(item))
		}
		*f = out
		return nil
	}
	var single flexString
	if err := json.Unmarshal(b, &single); err != nil {
		return err
	}
	*f = splitLines(string(single))
	return nil
}

// slideObject は生成 AI が返す JSON スライドの1要素です。
type slideObject struct {
	Layout      flexString `json:"layout"`
	Title       flexString `json:"title"`
	Subtitle    flexString `json:"subtitle"`
	Points      flexList   `json:"points"`
	Bullets     flexList   `json:"bullets"`
	LeftPoints  flexList   `json:"left_points"`
	RightPoints flexList   `json:"right_points"`
	Content     flexList   `json:"content"`
	ImagePath   flexString `json:"image_path"`
	Image       flexString `json:"image"`
}

// slidesEnvelope は {"slides": [...]} 形式の応答を受け取ります。
// 要素は1件ずつ解釈するため、生の JSON のまま保持します。
type slidesEnvelope struct {
	Slides []json.RawMessage `json:"slides"`
}

// recoverKeyOrder は解釈できない要素から文字列を拾う際のキーの順序です。
var recoverKeyOrder = []string{"title", "subtitle", "points", "bullets", "content", "left_points", "right_points"}

// DecodeJSON は応答から JSON のスライド配列を取り出して変換します。
// 配列が見つからない、または1件も要素がない場合はエラーを返します。
func DecodeJSON(raw string) ([]domain.Slide, error) {
	var lastErr error
	for _, candidate := range jsonCandidates(raw) {
		elements, err := decodeElements(candidate)
		if err != nil {
			lastErr = err
			continue
		}
		if !containsObject(elements) {
			continue
		}
		slides := make([]domain.Slide, 0, len(elements))
		for i, elem := range elements {
			var obj slideObject
			if err := json.Unmarshal(elem, &obj); err != nil {
				slog.Warn("Malformed slide element degraded to bullet_points", "index", i, "error", err)
				slides = append(slides, degradeElement(elem))
				continue
			}
			slides = append(slides, obj.toSlide())
		}
		return slides, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", errNoJSON, lastErr)
	}
	return nil, errNoJSON
}

// jsonCandidates は JSON として解釈を試みる部分文字列を優先順に返します。
func jsonCandidates(raw string) []string {
	var candidates []string
	if m := jsonBlockRegex.FindStringSubmatch(raw); len(m) > 1 {
		candidates = append(candidates, m[1])
	}
	if start, end := strings.Index(raw, "["), strings.LastIndex(raw, "]"); start >= 0 && end > start {
		candidates = append(candidates, raw[start:end+1])
	}
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		candidates = append(candidates, raw[start:end+1])
	}
	return candidates
}

// decodeElements は配列または {"slides": [...]} から要素を取り出します。
// 要素の中身はここでは解釈しません。
func decodeElements(candidate string) ([]json.RawMessage, error) {
	candidate = strings.TrimSpace(candidate)
	if strings.HasPrefix(candidate, "{") {
		var env slidesEnvelope
		if err := json.Unmarshal([]byte(candidate), &env); err != nil {
			return nil, err
		}
		return env.Slides, nil
	}
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &elements); err != nil {
		return nil, err
	}
	return elements, nil
}

// containsObject は要素に JSON オブジェクトが1つでも含まれるかを返します。
// 文字列だけの配列は箇条書きの値であり、スライドの並びとは見なしません。
func containsObject(elements []json.RawMessage) bool {
	for _, elem := range elements {
		if trimmed := strings.TrimSpace(string(elem)); strings.HasPrefix(trimmed, "{") {
			return true
		}
	}
	return false
}

// degradeElement は型の合わない要素を箇条書きスライドに縮退させます。
// 見出しは未設定とし、要素内の文字列をすべて箇条書きとして拾います。
func degradeElement(elem json.RawMessage) domain.Slide {
	var v any
	_ = json.Unmarshal(elem, &v)

	var texts []string
	if obj, ok := v.(map[string]any); ok {
		seen := make(map[string]bool, len(recoverKeyOrder))
		for _, key := range recoverKeyOrder {
			seen[key] = true
			texts = collectStrings(obj[key], texts)
		}
		rest := make([]string, 0, len(obj))
		for key := range obj {
			if !seen[key] && key != "layout" && key != "image_path" && key != "image" {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			texts = collectStrings(obj[key], texts)
		}
	} else {
		texts = collectStrings(v, texts)
	}

	return domain.BulletSlide{Title: domain.UntitledSlide, Points: cleanAll(texts)}
}

// collectStrings は値に含まれる文字列を深さ優先で out に追加します。
func collectStrings(v any, out []string) []string {
	switch t := v.(type) {
	case string:
		out = append(out, t)
	case []any:
		for _, item := range t {
			out = collectStrings(item, out)
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			out = collectStrings(t[key], out)
		}
	}
	return out
}

func (o slideObject) toSlide() domain.Slide {
	title := orUntitled(CleanText(string(o.Title)))
	points := o.Points
	if len(points) == 0 {
		points = o.Bullets
	}

	layout, ok := domain.ParseLayout(string(o.Layout))
	if !ok {
		layout = domain.LayoutBulletPoints
	}

	switch layout {
	case domain.LayoutTitle:
		return domain.TitleSlide{Title: title, Subtitle: CleanText(string(o.Subtitle))}
	case domain.LayoutTwoColumn:
		return domain.TwoColumnSlide{
			Title:       title,
			LeftPoints:  cleanAll(o.LeftPoints),
			RightPoints: cleanAll(o.RightPoints),
		}
	case domain.LayoutContentWithImage:
		content := o.Content
		if len(content) == 0 {
			content = points
		}
		image := string(o.ImagePath)
		if image == "" {
			image = string(o.Image)
		}
		return domain.ContentImageSlide{
			Title:     title,
			Content:   cleanAll(content),
			ImagePath: cleanImagePath(image),
		}
	default:
		return domain.BulletSlide{Title: title, Points: cleanAll(points)}
	}
}
