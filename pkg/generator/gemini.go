package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/go-deck-kit/pkg/domain"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const defaultRateBurst = 1

// GeminiGenerator は go-gemini-client を用いた Generator の実装です。
// クライアントはプロセス起動時に一度だけ生成し、ここへ明示的に渡します。
type GeminiGenerator struct {
	aiClient gemini.GenerativeModel
	model    string
	limiter  *rate.Limiter
}

// NewGeminiGenerator は GeminiGenerator を初期化します。
// interval が 0 以下の場合、呼び出し間隔の制限は行いません。
func NewGeminiGenerator(aiClient gemini.GenerativeModel, model string, interval time.Duration) (*GeminiGenerator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient は必須です")
	}
	if model == "" {
		return nil, fmt.Errorf("model は必須です")
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if interval > 0 {
		limiter = rate.NewLimiter(rate.Every(interval), defaultRateBurst)
	}

	return &GeminiGenerator{
		aiClient: aiClient,
		model:    model,
		limiter:  limiter,
	}, nil
}

// Generate は Gemini API を呼び出し、応答テキストを返します。
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: レート制限の待機中に中断されました: %w", domain.ErrGeneration, err)
	}

	slog.InfoContext(ctx, "Calling Gemini API", "model", g.model, "prompt_length", len(prompt))
	startTime := time.Now()

	resp, err := g.aiClient.GenerateContent(ctx, prompt, g.model)
	if err != nil {
		return "", fmt.Errorf("%w: Gemini API の呼び出しに失敗しました: %w", domain.ErrGeneration, err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", fmt.Errorf("%w: Gemini API から空の応答が返されました", domain.ErrGeneration)
	}

	slog.InfoContext(ctx, "Gemini API call completed",
		"model", g.model,
		"response_length", len(resp.Text),
		"duration", time.Since(startTime).Round(time.Millisecond),
	)
	return resp.Text, nil
}

// NewGeminiClient は gemini クライアントを初期化します。
func NewGeminiClient(ctx context.Context, apiKey string, temperature float32) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(temperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}
