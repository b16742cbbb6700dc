package generator

import (
	"context"
)

// Generator は、プロンプトを受け取り生成 AI の生テキスト応答を返す外部コラボレーターです。
// 内部でのリトライは行いません。タイムアウトは呼び出し側が ctx で指定します。
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc は通常の関数を Generator として扱うためのアダプターです。
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate は f(ctx, prompt) を呼び出します。
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
