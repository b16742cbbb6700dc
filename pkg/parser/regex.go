package parser

import "regexp"

var (
	// jsonBlockRegex は ```json ... ``` で囲まれたコードブロックの中身をキャプチャします。
	jsonBlockRegex = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*\\S)\\s*```")

	// SlideHeaderRegex は "## Slide 1: Layout: title" や "**Slide 2 - ...**" 形式の区切り行を特定します。
	// グループ1は見出し記号、グループ2はスライド番号、グループ3は残りの文字列です。
	SlideHeaderRegex = regexp.MustCompile(`(?i)^(#{1,6}\s*|\*\*\s*|__\s*)?slide\s+(\d+)\b\s*(.*)$`)

	// LayoutLabelRegex はヘッダー行などに埋め込まれた "Layout: xxx" を取り出します。
	LayoutLabelRegex = regexp.MustCompile(`(?i)layout\s*[:：]\s*(.+)$`)

	// FieldRegex は "Title: value" 形式のラベル行をキャプチャします。
	FieldRegex = regexp.MustCompile(`(?i)^(layout|title|subtitle|points|left(?:[\s_]*(?:points|column))?|right(?:[\s_]*(?:points|column))?|content|image(?:[\s_]*path)?)\s*[:：]\s*(.*)$`)

	// BulletRegex は "* item", "- item", "• item", "1. item" 形式の箇条書き行をキャプチャします。
	BulletRegex = regexp.MustCompile(`^(?:[*\-•+]|\d{1,2}[.)])\s+(.*)$`)

	boldStarRegex      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnderRegex     = regexp.MustCompile(`__(.+?)__`)
	italicStarRegex    = regexp.MustCompile(`(^|[^\w*])\*(\S(?:.*?\S)?)\*([^\w*]|$)`)
	italicUnderRegex   = regexp.MustCompile(`(^|[^\w_])_(\S(?:.*?\S)?)_([^\w_]|$)`)
	underlineTagRegex  = regexp.MustCompile(`(?i)</?u>`)
	inlineCodeRegex    = regexp.MustCompile("`([^`]*)`")
	placeholderRegex   = regexp.MustCompile(`^<[^<>]*>$`)
	leadingHeadingMark = regexp.MustCompile(`^#{1,6}\s*`)
)
