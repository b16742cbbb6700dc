package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-deck-kit/pkg/domain"
	"github.com/shouni/go-deck-kit/pkg/generator"
	"github.com/shouni/go-deck-kit/pkg/parser"
	"github.com/shouni/go-deck-kit/pkg/prompts"
)

// DeckScriptRunner はプロンプト生成、生成 AI 呼び出し、応答解析を順に行います。
type DeckScriptRunner struct {
	promptBuilder prompts.PromptBuilder
	generator     generator.Generator
	parser        parser.Parser
}

// NewDeckScriptRunner は依存関係を注入して初期化します。
func NewDeckScriptRunner(pb prompts.PromptBuilder, gen generator.Generator, p parser.Parser) *DeckScriptRunner {
	return &DeckScriptRunner{
		promptBuilder: pb,
		generator:     gen,
		parser:        p,
	}
}

// Run はトピックとレイアウト列からスライドの並びを生成します。
// layouts は呼び出し側で slideCount に揃えておく必要があります。
func (sr *DeckScriptRunner) Run(ctx context.Context, topic string, slideCount int, layouts []domain.Layout) ([]domain.Slide, error) {
	finalPrompt, err := sr.promptBuilder.Build(prompts.Request{
		Topic:      topic,
		SlideCount: slideCount,
		Layouts:    layouts,
	})
	if err != nil {
		return nil, fmt.Errorf("プロンプト生成に失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "ScriptRunner: Generating slides", "topic", topic, "slides", slideCount)
	startTime := time.Now()

	raw, err := sr.generator.Generate(ctx, finalPrompt)
	if err != nil {
		return nil, err
	}

	slides, err := sr.parser.Parse(raw, layouts)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "ScriptRunner: Slides parsed",
		"requested", slideCount,
		"parsed", len(slides),
		"duration", time.Since(startTime).Round(time.Millisecond),
	)
	return slides, nil
}
