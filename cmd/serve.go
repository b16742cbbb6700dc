package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-deck-kit/internal/api/handlers"
	"github.com/shouni/go-deck-kit/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "プレゼンテーション API の HTTP サーバーを起動します。",
	Args:  cobra.NoArgs,
	RunE:  serveCommand,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "待ち受けアドレス (HTTP_ADDR を上書き)")
}

func serveCommand(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.HTTPAddr = serveAddr
	}
	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set; create and configure requests will fail")
	}

	m, err := newManager(ctx, cfg)
	if err != nil {
		return err
	}

	logger := slog.Default()
	h := handlers.NewAPIHandler(m, m.Themes(), logger)
	return server.New(cfg, logger, h).Run(ctx)
}
