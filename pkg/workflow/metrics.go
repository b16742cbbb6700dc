package workflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// pipelineRuns はパイプラインの実行回数です。
	pipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deck_pipeline_runs_total",
			Help: "Number of slide deck pipeline runs",
		},
		[]string{"operation", "outcome"},
	)

	// pipelineDuration はプロンプト生成から保存までの所要時間です。
	pipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deck_pipeline_duration_seconds",
			Help:    "Duration of slide deck pipeline runs in seconds",
			Buckets: []float64{1, 2.5, 5, 10, 20, 40, 80, 160},
		},
		[]string{"operation"},
	)

	// slidesGenerated は解析で得られたスライドの枚数です。
	slidesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deck_slides_generated_total",
			Help: "Number of slides recovered from generation replies",
		},
		[]string{"layout"},
	)
)
