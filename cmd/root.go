package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shouni/go-utils/envutil"
	"github.com/spf13/cobra"

	"github.com/shouni/go-deck-kit/internal/config"
	pkgconfig "github.com/shouni/go-deck-kit/pkg/config"
	"github.com/shouni/go-deck-kit/pkg/domain"
	"github.com/shouni/go-deck-kit/pkg/generator"
	"github.com/shouni/go-deck-kit/pkg/workflow"
)

// appOptions はグローバルフラグの値です。
type appOptions struct {
	LogLevel    string
	LogFormat   string
	Model       string
	StoragePath string
	ImageDir    string
	ThemesFile  string
	FontPath    string
}

var opts appOptions

var rootCmd = &cobra.Command{
	Use:   "deck-kit",
	Short: "トピックからスライドデッキを生成します。",
	Long: `生成 AI にスライドの内容を書かせ、テーマを適用した文書として保存します。
保存したデッキは ID で取得・ダウンロード・再構成できます。`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
}

// addAppFlags はアプリケーション全般に適用されるグローバルフラグを定義します。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ログ設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", envutil.GetEnv("LOG_LEVEL", "info"), "ログレベル (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", envutil.GetEnv("LOG_FORMAT", "text"), "ログ形式 (text, json)")

	// --- 環境変数の上書き ---
	rootCmd.PersistentFlags().StringVar(&opts.Model, "model", "", "使用する Gemini モデル名 (GEMINI_MODEL を上書き)")
	rootCmd.PersistentFlags().StringVar(&opts.StoragePath, "storage", "", "デッキの保存先ディレクトリ (STORAGE_PATH を上書き)")
	rootCmd.PersistentFlags().StringVar(&opts.ImageDir, "image-dir", "", "画像パスの解決基準ディレクトリ (IMAGE_DIR を上書き)")
	rootCmd.PersistentFlags().StringVar(&opts.ThemesFile, "themes", "", "追加テーマの YAML ファイル (THEMES_FILE を上書き)")
	rootCmd.PersistentFlags().StringVar(&opts.FontPath, "font", "", "非 Latin 文字用の TrueType フォント (FONT_PATH を上書き)")
}

func init() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(
		serveCmd,
		createCmd,
		draftCmd,
		showCmd,
		listCmd,
		downloadCmd,
		configureCmd,
		themesCmd,
	)
}

// Execute はアプリケーションのメインエントリポイントです。
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// setupLogger はフラグに従ってデフォルトのロガーを設定します。
func setupLogger(cmd *cobra.Command, _ []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.LogLevel)); err != nil {
		return fmt.Errorf("不正なログレベルです: %q", opts.LogLevel)
	}
	slog.SetDefault(newLogger(cmd.ErrOrStderr(), opts.LogFormat, level))
	return nil
}

func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// loadConfig は環境変数の設定にフラグの上書きを適用します。
func loadConfig() (pkgconfig.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, err
	}
	if opts.Model != "" {
		cfg.GeminiModel = opts.Model
	}
	if opts.StoragePath != "" {
		cfg.StoragePath = opts.StoragePath
	}
	if opts.ImageDir != "" {
		cfg.ImageDir = opts.ImageDir
	}
	if opts.ThemesFile != "" {
		cfg.ThemesFile = opts.ThemesFile
	}
	if opts.FontPath != "" {
		cfg.FontPath = opts.FontPath
	}
	return cfg, nil
}

// newManager は Manager を組み立てます。
// API キーがない場合は生成を行わない Generator を使い、保存済みデッキの参照だけを可能にします。
func newManager(ctx context.Context, cfg pkgconfig.Config) (*workflow.Manager, error) {
	args := workflow.ManagerArgs{Config: cfg}
	if cfg.GeminiAPIKey == "" {
		args.Generator = unavailableGenerator()
	}
	return workflow.New(ctx, args)
}

func unavailableGenerator() generator.Generator {
	return generator.GeneratorFunc(func(context.Context, string) (string, error) {
		return "", fmt.Errorf("%w: GEMINI_API_KEY が設定されていません", domain.ErrGeneration)
	})
}

// requireAPIKey は生成 AI を使うコマンドの実行前チェックです。
func requireAPIKey(_ *cobra.Command, _ []string) error {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("環境変数 GEMINI_API_KEY が設定されていません。Gemini API の利用には必須です")
	}
	return nil
}
