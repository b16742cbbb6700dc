package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shouni/go-deck-kit/pkg/domain"
	"github.com/shouni/go-deck-kit/pkg/workflow"
)

// deckFlags は create / draft / configure で共通の入力フラグです。
type deckFlags struct {
	Topic      string
	SlideCount int
	Theme      string
	Layouts    []string
	OutputFile string
}

var deckOpts deckFlags

var createCmd = &cobra.Command{
	Use:     "create [topic]",
	Short:   "新しいデッキを生成して保存します。",
	Args:    cobra.MaximumNArgs(1),
	PreRunE: requireAPIKey,
	RunE:    createCommand,
}

var draftCmd = &cobra.Command{
	Use:     "draft [topic]",
	Short:   "スライドを生成し、保存せずに Markdown の下書きを出力します。",
	Args:    cobra.MaximumNArgs(1),
	PreRunE: requireAPIKey,
	RunE:    draftCommand,
}

var configureCmd = &cobra.Command{
	Use:   "configure <id>",
	Short: "保存済みデッキの設定を変更して作り直します。",
	Long: `指定したフラグの項目だけを上書きし、同じ ID でデッキを作り直します。
フラグを1つも指定しない場合は現在の設定のまま作り直します。`,
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAPIKey,
	RunE:    configureCommand,
}

func addDeckFlags(c *cobra.Command) {
	c.Flags().StringVarP(&deckOpts.Topic, "topic", "t", "", "デッキのトピック")
	c.Flags().IntVarP(&deckOpts.SlideCount, "num-slides", "n", domain.DefaultSlideCount, fmt.Sprintf("スライドの枚数 (%d-%d)", domain.MinSlides, domain.MaxSlides))
	c.Flags().StringSliceVarP(&deckOpts.Layouts, "layouts", "l", nil, "先頭から順に使うレイアウト (例: title,two_column)")
}

func init() {
	addDeckFlags(createCmd)
	createCmd.Flags().StringVar(&deckOpts.Theme, "theme", domain.DefaultThemeName, "適用するテーマ名")
	createCmd.Flags().StringVarP(&deckOpts.OutputFile, "output", "o", "", "生成した文書の書き出し先 (任意)")

	addDeckFlags(draftCmd)

	addDeckFlags(configureCmd)
	configureCmd.Flags().StringVar(&deckOpts.Theme, "theme", "", "適用するテーマ名")
	configureCmd.Flags().StringVarP(&deckOpts.OutputFile, "output", "o", "", "作り直した文書の書き出し先 (任意)")
}

// topicFrom は位置引数か --topic からトピックを取り出します。
func topicFrom(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return deckOpts.Topic
}

// createRequestFrom は明示的に指定されたフラグだけを要求に含めます。
func createRequestFrom(cmd *cobra.Command, args []string) workflow.CreateRequest {
	req := workflow.CreateRequest{Topic: topicFrom(args), Layouts: deckOpts.Layouts}
	if cmd.Flags().Changed("num-slides") {
		n := deckOpts.SlideCount
		req.SlideCount = &n
	}
	if cmd.Flags().Changed("theme") {
		theme := deckOpts.Theme
		req.Theme = &theme
	}
	return req
}

func createCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := newManager(ctx, cfg)
	if err != nil {
		return err
	}

	p, err := m.Create(ctx, createRequestFrom(cmd, args))
	if err != nil {
		return fmt.Errorf("デッキの作成に失敗しました: %w", err)
	}
	slog.Info("Presentation created", "id", p.ID, "slides", p.SlideCount, "theme", p.Theme)

	if deckOpts.OutputFile != "" {
		if err := writeDocument(cmd, m, p.ID, deckOpts.OutputFile); err != nil {
			return err
		}
	}
	return printJSON(cmd.OutOrStdout(), p)
}

func draftCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := newManager(ctx, cfg)
	if err != nil {
		return err
	}

	if err := m.DraftTo(ctx, createRequestFrom(cmd, args), cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("下書きの生成に失敗しました: %w", err)
	}
	return nil
}

func configureCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := newManager(ctx, cfg)
	if err != nil {
		return err
	}

	var req workflow.ConfigureRequest
	flags := cmd.Flags()
	if flags.Changed("topic") {
		topic := deckOpts.Topic
		req.Topic = &topic
	}
	if flags.Changed("num-slides") {
		n := deckOpts.SlideCount
		req.SlideCount = &n
	}
	if flags.Changed("theme") {
		theme := deckOpts.Theme
		req.Theme = &theme
	}
	if flags.Changed("layouts") {
		layouts := deckOpts.Layouts
		req.Layouts = &layouts
	}

	p, err := m.Configure(ctx, args[0], req)
	if err != nil {
		return fmt.Errorf("デッキの再構成に失敗しました: %w", err)
	}
	slog.Info("Presentation updated", "id", p.ID, "slides", p.SlideCount, "theme", p.Theme)

	if deckOpts.OutputFile != "" {
		if err := writeDocument(cmd, m, p.ID, deckOpts.OutputFile); err != nil {
			return err
		}
	}
	return printJSON(cmd.OutOrStdout(), p)
}

// writeDocument は保存済みの文書を path に書き出します。"-" は標準出力です。
func writeDocument(cmd *cobra.Command, m *workflow.Manager, id, path string) error {
	doc, err := m.Download(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("文書の取得に失敗しました: %w", err)
	}
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(doc.Data)
		return err
	}
	if strings.HasSuffix(path, string(os.PathSeparator)) {
		path += doc.FileName
	}
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		return fmt.Errorf("文書の書き込みに失敗しました (%s): %w", path, err)
	}
	slog.Info("Document written", "path", path, "bytes", len(doc.Data))
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
