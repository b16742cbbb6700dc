package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shouni/go-deck-kit/pkg/config"
	"github.com/shouni/go-deck-kit/pkg/domain"
	"github.com/shouni/go-deck-kit/pkg/generator"
	"github.com/shouni/go-deck-kit/pkg/prompts"
	"github.com/shouni/go-deck-kit/pkg/store"
)

// Manager は、ワークフローの各工程を担う Runner 群を構築し、
// プレゼンテーションの作成・取得・ダウンロード・再構成を提供します。
type Manager struct {
	cfg           config.Config
	generator     generator.Generator
	promptBuilder prompts.PromptBuilder
	themes        *domain.ThemeCatalog
	store         store.Store

	scriptRunner  ScriptRunner
	renderRunner  RenderRunner
	publishRunner PublishRunner
}

// New は、設定と依存関係を基に新しい Manager を初期化します。
func New(ctx context.Context, args ManagerArgs) (*Manager, error) {
	gen, err := initializeGenerator(ctx, args.Config, args.Generator)
	if err != nil {
		return nil, err
	}

	pb, err := initializePromptBuilder(args.PromptBuilder)
	if err != nil {
		return nil, err
	}

	themes := args.Themes
	if themes == nil {
		if themes, err = domain.LoadThemeCatalog(args.Config.ThemesFile); err != nil {
			return nil, fmt.Errorf("テーマカタログの読み込みに失敗しました: %w", err)
		}
	}

	m := &Manager{
		cfg:           args.Config,
		generator:     gen,
		promptBuilder: pb,
		themes:        themes,
	}

	if m.scriptRunner, err = m.BuildScriptRunner(); err != nil {
		return nil, err
	}
	if m.renderRunner, err = m.BuildRenderRunner(); err != nil {
		return nil, err
	}
	if m.publishRunner, err = m.BuildPublishRunner(); err != nil {
		return nil, err
	}

	m.store = args.Store
	if m.store == nil {
		fs, err := store.NewFileStore(args.Config.StoragePath, m.renderRunner.FileExt(), args.Config.CacheTTL)
		if err != nil {
			return nil, err
		}
		m.store = fs
	}
	return m, nil
}

// initializeGenerator は Generator を初期化します。
// 引数として既存の Generator が渡された場合はそれを返し、nil の場合は Gemini クライアントから作成します。
func initializeGenerator(ctx context.Context, cfg config.Config, gen generator.Generator) (generator.Generator, error) {
	if gen != nil {
		return gen, nil
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY が設定されていません")
	}
	aiClient, err := generator.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Temperature)
	if err != nil {
		return nil, err
	}
	return generator.NewGeminiGenerator(aiClient, cfg.GeminiModel, cfg.RateInterval)
}

// initializePromptBuilder は PromptBuilder を初期化します。
// 引数として既存のビルダーが渡された場合はそれを返し、nil の場合は新規作成します。
func initializePromptBuilder(pb prompts.PromptBuilder) (prompts.PromptBuilder, error) {
	if pb != nil {
		return pb, nil
	}
	b, err := prompts.NewSlidePromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("SlidePromptBuilder の新規作成に失敗しました: %w", err)
	}
	return b, nil
}

// Themes はテーマカタログを返します。
func (m *Manager) Themes() *domain.ThemeCatalog {
	return m.themes
}

// Create は入力を検証し、パイプラインを実行して新しいプレゼンテーションを保存します。
func (m *Manager) Create(ctx context.Context, req CreateRequest) (domain.Presentation, error) {
	topic := strings.TrimSpace(req.Topic)
	if err := domain.ValidateTopic(topic); err != nil {
		return domain.Presentation{}, err
	}

	slideCount := domain.DefaultSlideCount
	if req.SlideCount != nil {
		slideCount = *req.SlideCount
	}
	if err := domain.ValidateSlideCount(slideCount); err != nil {
		return domain.Presentation{}, err
	}

	themeName := domain.DefaultThemeName
	if req.Theme != nil {
		if err := m.validateTheme(*req.Theme); err != nil {
			return domain.Presentation{}, err
		}
		themeName = *req.Theme
	}

	layouts, err := domain.ParseLayouts(req.Layouts)
	if err != nil {
		return domain.Presentation{}, err
	}

	id := uuid.NewString()
	p := domain.Presentation{
		ID:          id,
		Topic:       topic,
		SlideCount:  slideCount,
		Theme:       themeName,
		Layouts:     domain.ReconcileLayouts(layouts, slideCount),
		Status:      domain.StatusCreated,
		DownloadURL: domain.DownloadURLFor(id),
	}

	if err := m.generateAndSave(ctx, operationCreate, p); err != nil {
		return domain.Presentation{}, err
	}
	return p, nil
}

// Get は保存済みのメタデータを返します。
func (m *Manager) Get(ctx context.Context, id string) (domain.Presentation, error) {
	return m.store.Load(ctx, id)
}

// List は保存済みのメタデータをすべて返します。
func (m *Manager) List(ctx context.Context) ([]domain.Presentation, error) {
	return m.store.List(ctx)
}

// Download は保存済みの文書を返します。
func (m *Manager) Download(ctx context.Context, id string) (Document, error) {
	data, err := m.store.ReadDocument(ctx, id)
	if err != nil {
		return Document{}, err
	}
	return Document{
		FileName:    id + m.renderRunner.FileExt(),
		ContentType: m.renderRunner.ContentType(),
		Data:        data,
	}, nil
}

// Configure は指定された項目だけを既存のメタデータに反映し、同じ ID で作り直します。
func (m *Manager) Configure(ctx context.Context, id string, req ConfigureRequest) (domain.Presentation, error) {
	p, err := m.store.Load(ctx, id)
	if err != nil {
		return domain.Presentation{}, err
	}

	if req.Topic != nil {
		topic := strings.TrimSpace(*req.Topic)
		if err := domain.ValidateTopic(topic); err != nil {
			return domain.Presentation{}, err
		}
		p.Topic = topic
	}
	if req.SlideCount != nil {
		if err := domain.ValidateSlideCount(*req.SlideCount); err != nil {
			return domain.Presentation{}, err
		}
		p.SlideCount = *req.SlideCount
	}
	if req.Theme != nil {
		if err := m.validateTheme(*req.Theme); err != nil {
			return domain.Presentation{}, err
		}
		p.Theme = *req.Theme
	}
	if req.Layouts != nil {
		layouts, err := domain.ParseLayouts(*req.Layouts)
		if err != nil {
			return domain.Presentation{}, err
		}
		p.Layouts = layouts
	}

	// 枚数だけが変わった場合も保存済みのレイアウト列を合わせ直す
	p.Layouts = domain.ReconcileLayouts(p.Layouts, p.SlideCount)
	p.Status = domain.StatusUpdated
	p.DownloadURL = domain.DownloadURLFor(p.ID)

	if err := m.generateAndSave(ctx, operationConfigure, p); err != nil {
		return domain.Presentation{}, err
	}
	return p, nil
}

// Draft はスライドを生成し、描画や保存をせずに下書き Markdown を返します。
func (m *Manager) Draft(ctx context.Context, req CreateRequest) (string, error) {
	var sb strings.Builder
	if err := m.DraftTo(ctx, req, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// DraftTo はスライドを生成し、下書き Markdown を w に書き出します。
func (m *Manager) DraftTo(ctx context.Context, req CreateRequest, w io.Writer) error {
	topic := strings.TrimSpace(req.Topic)
	if err := domain.ValidateTopic(topic); err != nil {
		return err
	}
	slideCount := domain.DefaultSlideCount
	if req.SlideCount != nil {
		slideCount = *req.SlideCount
	}
	if err := domain.ValidateSlideCount(slideCount); err != nil {
		return err
	}
	layouts, err := domain.ParseLayouts(req.Layouts)
	if err != nil {
		return err
	}
	layouts = domain.ReconcileLayouts(layouts, slideCount)

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	slides, err := m.scriptRunner.Run(ctx, topic, slideCount, layouts)
	if err != nil {
		pipelineRuns.WithLabelValues(operationDraft, outcomeFailure).Inc()
		return err
	}
	pipelineRuns.WithLabelValues(operationDraft, outcomeSuccess).Inc()
	return m.publishRunner.Run(ctx, topic, slides, w)
}

func (m *Manager) validateTheme(name string) error {
	if !m.themes.Has(name) {
		return domain.NewValidationError("unsupported theme: %q (available: %s)", name, strings.Join(m.themes.Names(), ", "))
	}
	return nil
}

// generateAndSave はプロンプト生成から保存までを実行します。
// 文書の保存に失敗した場合、メタデータは書き込まれません。
func (m *Manager) generateAndSave(ctx context.Context, operation string, p domain.Presentation) (err error) {
	if err := p.Validate(); err != nil {
		return err
	}

	startTime := time.Now()
	defer func() {
		outcome := outcomeSuccess
		if err != nil {
			outcome = outcomeFailure
		}
		pipelineRuns.WithLabelValues(operation, outcome).Inc()
		pipelineDuration.WithLabelValues(operation).Observe(time.Since(startTime).Seconds())
	}()

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	slog.InfoContext(ctx, "Pipeline started",
		"operation", operation,
		"id", p.ID,
		"topic", p.Topic,
		"slides", p.SlideCount,
		"theme", p.Theme,
	)

	slides, err := m.scriptRunner.Run(ctx, p.Topic, p.SlideCount, p.Layouts)
	if err != nil {
		slog.ErrorContext(ctx, "Slide generation failed", "id", p.ID, "error", err)
		return err
	}
	for _, s := range slides {
		slidesGenerated.WithLabelValues(string(s.Layout())).Inc()
	}

	doc, err := m.renderRunner.Run(ctx, p.Topic, slides, m.themes.Resolve(p.Theme))
	if err != nil {
		slog.ErrorContext(ctx, "Rendering failed", "id", p.ID, "error", err)
		return err
	}

	if err := m.store.Save(ctx, p, doc); err != nil {
		slog.ErrorContext(ctx, "Saving presentation failed", "id", p.ID, "error", err)
		return err
	}

	slog.InfoContext(ctx, "Pipeline completed",
		"operation", operation,
		"id", p.ID,
		"status", p.Status,
		"duration", time.Since(startTime).Round(time.Millisecond),
	)
	return nil
}

func (m *Manager) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.cfg.RequestTimeout > 0 {
		return context.WithTimeout(ctx, m.cfg.RequestTimeout)
	}
	return context.WithCancel(ctx)
}
