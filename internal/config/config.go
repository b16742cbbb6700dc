package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shouni/go-utils/envutil"

	pkgconfig "github.com/shouni/go-deck-kit/pkg/config"
)

// LoadConfig は環境変数から設定を読み込み、未設定の項目は既定値で補います。
func LoadConfig() (pkgconfig.Config, error) {
	cfg := pkgconfig.DefaultConfig()

	cfg.GeminiAPIKey = envutil.GetEnv("GEMINI_API_KEY", "")
	cfg.GeminiModel = envutil.GetEnv("GEMINI_MODEL", cfg.GeminiModel)
	cfg.StoragePath = envutil.GetEnv("STORAGE_PATH", cfg.StoragePath)
	cfg.ImageDir = envutil.GetEnv("IMAGE_DIR", cfg.ImageDir)
	cfg.ThemesFile = envutil.GetEnv("THEMES_FILE", cfg.ThemesFile)
	cfg.HTTPAddr = envutil.GetEnv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.FontPath = envutil.GetEnv("FONT_PATH", cfg.FontPath)

	var err error
	if cfg.RateInterval, err = durationEnv("RATE_INTERVAL", cfg.RateInterval); err != nil {
		return cfg, err
	}
	if cfg.RequestTimeout, err = durationEnv("REQUEST_TIMEOUT", cfg.RequestTimeout); err != nil {
		return cfg, err
	}
	if cfg.CacheTTL, err = durationEnv("CACHE_TTL", cfg.CacheTTL); err != nil {
		return cfg, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return cfg, err
	}

	if v := envutil.GetEnv("GEMINI_TEMPERATURE", ""); v != "" {
		t, err := strconv.ParseFloat(v, 32)
		if err != nil || t < 0 || t > 2 {
			return cfg, fmt.Errorf("GEMINI_TEMPERATURE は 0 から 2 の数値で指定してください: %q", v)
		}
		cfg.Temperature = float32(t)
	}
	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := envutil.GetEnv(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def, fmt.Errorf("%s の形式が不正です (例: 30s): %q", key, v)
	}
	return d, nil
}
