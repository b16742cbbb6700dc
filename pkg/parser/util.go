package parser

import (
	"strings"

	"github.com/shouni/go-deck-kit/pkg/domain"
)

// CleanText は太字・斜体・下線などの軽量マークアップを取り除きます。
func CleanText(s string) string {
	s = boldStarRegex.ReplaceAllString(s, "$1")
	s = boldUnderRegex.ReplaceAllString(s, "$1")
	s = italicStarRegex.ReplaceAllString(s, "$1$2$3")
	s = italicUnderRegex.ReplaceAllString(s, "$1$2$3")
	s = underlineTagRegex.ReplaceAllString(s, "")
	s = inlineCodeRegex.ReplaceAllString(s, "$1")
	// 対応の取れていない強調記号は両端からだけ落とす
	s = strings.Trim(strings.TrimSpace(s), "*")
	return strings.TrimSpace(s)
}

// cleanAll は各要素に CleanText を適用し、空になった要素を除外します。
func cleanAll(items []string) []string {
	var out []string
	for _, item := range items {
		if c := CleanText(item); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// cleanImagePath は画像パスから引用符と未記入のプレースホルダーを取り除きます。
func cleanImagePath(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'`")
	s = strings.TrimSpace(s)
	if placeholderRegex.MatchString(s) {
		return ""
	}
	switch strings.ToLower(s) {
	case "none", "null", "n/a":
		return ""
	}
	return s
}

// orUntitled はタイトルが空の場合に代替タイトルを返します。
func orUntitled(title string) string {
	if strings.TrimSpace(title) == "" {
		return domain.UntitledSlide
	}
	return title
}

// splitLines は改行で区切られたテキストを行の並びに変換し、箇条書き記号を取り除きます。
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if m := BulletRegex.FindStringSubmatch(line); m != nil {
			line = m[1]
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// truncateString は長い応答をログ向けに切り詰めます。
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
