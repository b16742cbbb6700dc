package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shouni/go-deck-kit/pkg/domain"
)

var downloadOutput string

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "保存済みデッキのメタデータを表示します。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		m, err := newManager(ctx, cfg)
		if err != nil {
			return err
		}
		p, err := m.Get(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), p)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "保存済みデッキの一覧を表示します。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		m, err := newManager(ctx, cfg)
		if err != nil {
			return err
		}
		list, err := m.List(ctx)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSLIDES\tTHEME\tSTATUS\tTOPIC")
		for _, p := range list {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", p.ID, p.SlideCount, p.Theme, p.Status, p.Topic)
		}
		return tw.Flush()
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "保存済みデッキの文書を書き出します。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		m, err := newManager(ctx, cfg)
		if err != nil {
			return err
		}
		out := downloadOutput
		if out == "" {
			out = "./"
		}
		return writeDocument(cmd, m, args[0], out)
	},
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "利用できるテーマとレイアウトを表示します。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		catalog, err := domain.LoadThemeCatalog(cfg.ThemesFile)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "THEME\tFONT\tSIZE\tTITLE\tCONTENT\tBACKGROUND")
		for _, name := range catalog.Names() {
			t, _ := catalog.Lookup(name)
			fmt.Fprintf(tw, "%s\t%s\t%d\t#%s\t#%s\t#%s\n", name, t.Font, t.FontSize, t.TitleColor, t.ContentColor, t.BackgroundColor)
		}
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "LAYOUT\tREQUIRED\tOPTIONAL")
		for _, l := range domain.SupportedLayouts() {
			f := l.Fields()
			fmt.Fprintf(tw, "%s\t%v\t%v\n", l, f.Required, f.Optional)
		}
		return tw.Flush()
	},
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "書き出し先のパス (既定はカレントディレクトリの <id>.pdf、'-' で標準出力)")
}
