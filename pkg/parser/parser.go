package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-deck-kit/pkg/domain"
)

// Parser は生成 AI の生テキスト応答をスライドの並びに変換するインターフェースです。
type Parser interface {
	// Parse は応答とプロンプト生成に使ったレイアウト列を受け取り、スライドを返します。
	// layouts は位置の参考としてのみ使い、応答中のレイアウト表記を優先します。
	Parse(raw string, layouts []domain.Layout) ([]domain.Slide, error)
}

// SlideParser は JSON、区切り付きテキスト、箇条書きの順に解析を試みる Parser の実装です。
type SlideParser struct{}

// NewSlideParser は SlideParser を初期化します。
func NewSlideParser() *SlideParser {
	return &SlideParser{}
}

// Parse は3段階のフォールバックで応答を解析します。
// 1件もスライドを復元できない場合は domain.ErrGeneration を返します。
func (p *SlideParser) Parse(raw string, layouts []domain.Layout) ([]domain.Slide, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: 生成 AI の応答が空です", domain.ErrGeneration)
	}

	slides, err := DecodeJSON(raw)
	if err == nil {
		slog.Debug("Parsed reply as JSON", "slides", len(slides))
		return p.logMismatches(slides, layouts), nil
	}
	slog.Debug("JSON parse failed, falling back to segment parsing", "error", err)

	if slides = DecodeSegments(raw); len(slides) > 0 {
		slog.Debug("Parsed reply as slide segments", "slides", len(slides))
		return p.logMismatches(slides, layouts), nil
	}

	if slide, ok := DecodeBullets(raw); ok {
		slog.Warn("Reply had no slide structure, recovered a single bullet slide",
			"reply", truncateString(raw, 120))
		return []domain.Slide{slide}, nil
	}

	return nil, fmt.Errorf("%w: 応答からスライドを1件も復元できませんでした: %s",
		domain.ErrGeneration, truncateString(raw, 80))
}

// logMismatches は要求とのずれを記録します。応答に含まれたスライドはそのまま返し、
// 不足分の補完や超過分の切り捨ては行いません。
func (p *SlideParser) logMismatches(slides []domain.Slide, layouts []domain.Layout) []domain.Slide {
	if len(layouts) == 0 {
		return slides
	}
	if len(slides) != len(layouts) {
		slog.Warn("Reply slide count differs from the request",
			"requested", len(layouts), "received", len(slides))
	}
	for i, s := range slides {
		if i >= len(layouts) {
			break
		}
		if s.Layout() != layouts[i] {
			slog.Debug("Slide layout differs from the requested layout",
				"index", i, "requested", layouts[i], "received", s.Layout())
		}
	}
	return slides
}
