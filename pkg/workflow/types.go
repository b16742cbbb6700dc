package workflow

import (
	"github.com/shouni/go-deck-kit/pkg/config"
	"github.com/shouni/go-deck-kit/pkg/domain"
	"github.com/shouni/go-deck-kit/pkg/generator"
	"github.com/shouni/go-deck-kit/pkg/prompts"
	"github.com/shouni/go-deck-kit/pkg/store"
)

// ManagerArgs は Manager の初期化に必要な依存関係です。
// nil の項目は Config から既定の実装を組み立てます。
type ManagerArgs struct {
	Config        config.Config
	Generator     generator.Generator
	PromptBuilder prompts.PromptBuilder
	Themes        *domain.ThemeCatalog
	Store         store.Store
}

// CreateRequest は新規作成の入力です。ポインタの項目は省略可能です。
type CreateRequest struct {
	Topic      string   `json:"topic"`
	SlideCount *int     `json:"num_slides,omitempty"`
	Theme      *string  `json:"theme,omitempty"`
	Layouts    []string `json:"layouts,omitempty"`
}

// ConfigureRequest は再構成の入力です。指定された項目だけを既存のメタデータに上書きします。
type ConfigureRequest struct {
	Topic      *string   `json:"topic,omitempty"`
	SlideCount *int      `json:"num_slides,omitempty"`
	Theme      *string   `json:"theme,omitempty"`
	Layouts    *[]string `json:"layouts,omitempty"`
}

// IsEmpty は更新する項目が1つも指定されていない場合に true を返します。
func (r ConfigureRequest) IsEmpty() bool {
	return r.Topic == nil && r.SlideCount == nil && r.Theme == nil && r.Layouts == nil
}

// Document はダウンロード用の文書です。
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}
