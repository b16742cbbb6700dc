package domain

import (
	"fmt"
	"strings"
)

const (
	// MinSlides と MaxSlides は1回の生成で要求できるスライド枚数の範囲です。
	MinSlides = 1
	MaxSlides = 20
	// DefaultSlideCount は枚数が省略された場合の値です。
	DefaultSlideCount = 5

	// DownloadURLFormat はダウンロード先の URL 形式です。
	DownloadURLFormat = "/api/v1/presentations/%s/download"
)

// Status はプレゼンテーションのライフサイクル状態です。
type Status string

const (
	StatusCreated Status = "created"
	StatusUpdated Status = "updated"
)

// Presentation は保存済みプレゼンテーションのメタデータ（JSON サイドカー）です。
type Presentation struct {
	ID          string   `json:"id"`
	Topic       string   `json:"topic"`
	SlideCount  int      `json:"num_slides"`
	Theme       string   `json:"theme"`
	Layouts     []Layout `json:"layouts"`
	Status      Status   `json:"status"`
	DownloadURL string   `json:"download_url"`
}

// DownloadURLFor は ID からダウンロード URL を組み立てます。
func DownloadURLFor(id string) string {
	return fmt.Sprintf(DownloadURLFormat, id)
}

// ValidateTopic はトピックが空でないことを検証します。
func ValidateTopic(topic string) error {
	if strings.TrimSpace(topic) == "" {
		return NewValidationError("topic is required")
	}
	return nil
}

// ValidateSlideCount は枚数が許容範囲内かを検証します。
func ValidateSlideCount(n int) error {
	if n < MinSlides || n > MaxSlides {
		return NewValidationError("num_slides must be an integer between %d and %d", MinSlides, MaxSlides)
	}
	return nil
}

// Validate は保存前のメタデータの整合性を検証します。
func (p Presentation) Validate() error {
	if err := ValidateTopic(p.Topic); err != nil {
		return err
	}
	if err := ValidateSlideCount(p.SlideCount); err != nil {
		return err
	}
	if len(p.Layouts) != p.SlideCount {
		return NewValidationError("layouts length %d does not match num_slides %d", len(p.Layouts), p.SlideCount)
	}
	for _, l := range p.Layouts {
		if !l.IsValid() {
			return NewValidationError("unsupported layout type: %q", l)
		}
	}
	return nil
}
