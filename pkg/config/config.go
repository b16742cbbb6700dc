package config

import (
	"time"
)

// デフォルト値の定義
const (
	DefaultGeminiModel     = "gemini-3-flash-preview"
	DefaultTemperature     = float32(0.4)
	DefaultRateInterval    = 2 * time.Second
	DefaultRequestTimeout  = 120 * time.Second
	DefaultStoragePath     = "presentations"
	DefaultHTTPAddr        = ":8080"
	DefaultCacheTTL        = 10 * time.Minute
	DefaultShutdownTimeout = 15 * time.Second
)

// Config は Go Deck Kit の各 Runner を動作させるための基本設定です。
type Config struct {
	// --- AI Model Settings ---
	GeminiModel string
	Temperature float32

	// --- Google AI (Gemini API) Settings ---
	GeminiAPIKey string

	// --- Generation Settings ---
	RateInterval time.Duration

	// --- Storage Settings ---
	StoragePath string
	ImageDir    string // content_with_image の相対パスを解決する基準
	ThemesFile  string // 追加テーマを定義した YAML（任意）
	CacheTTL    time.Duration

	// --- Rendering Settings ---
	FontPath string // 非 Latin 文字を描画する TrueType フォント（任意）

	// --- Server Settings ---
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// --- Timeout ---
	RequestTimeout time.Duration
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultConfig() Config {
	return Config{
		GeminiModel:     DefaultGeminiModel,
		Temperature:     DefaultTemperature,
		RateInterval:    DefaultRateInterval,
		StoragePath:     DefaultStoragePath,
		CacheTTL:        DefaultCacheTTL,
		HTTPAddr:        DefaultHTTPAddr,
		ShutdownTimeout: DefaultShutdownTimeout,
		RequestTimeout:  DefaultRequestTimeout,
	}
}
