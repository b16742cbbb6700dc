package workflow

import (
	"github.com/shouni/go-deck-kit/pkg/parser"
	"github.com/shouni/go-deck-kit/pkg/publisher"
	"github.com/shouni/go-deck-kit/pkg/renderer"
	"github.com/shouni/go-deck-kit/pkg/runner"
)

// BuildScriptRunner は、スライド生成を担当する Runner を作成します。
func (m *Manager) BuildScriptRunner() (ScriptRunner, error) {
	return runner.NewDeckScriptRunner(m.promptBuilder, m.generator, parser.NewSlideParser()), nil
}

// BuildRenderRunner は、描画と PDF 変換を担当する Runner を作成します。
func (m *Manager) BuildRenderRunner() (RenderRunner, error) {
	enc, err := renderer.LoadPDFEncoder(m.cfg.FontPath)
	if err != nil {
		return nil, err
	}
	r := renderer.NewSlideRenderer(m.cfg.ImageDir)
	return runner.NewDeckRenderRunner(r, enc), nil
}

// BuildPublishRunner は、下書き Markdown の出力を担当する Runner を作成します。
func (m *Manager) BuildPublishRunner() (PublishRunner, error) {
	return runner.NewDefaultPublisherRunner(publisher.NewOutlinePublisher()), nil
}
