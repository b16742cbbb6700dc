package renderer

// ページ寸法と各レイアウトの配置 (インチ)。
const (
	PageWidth  = 10.0
	PageHeight = 7.5

	titleSizeBoost       = 10
	headingSizeBoost     = 5
	imageNotFoundMessage = "Image Not Found"
)

var (
	fullPage = Box{X: 0, Y: 0, W: PageWidth, H: PageHeight}

	coverTitleBox    = Box{X: 1, Y: 2.0, W: 8, H: 1.5}
	coverSubtitleBox = Box{X: 1, Y: 3.5, W: 8, H: 1}

	headingBox = Box{X: 1, Y: 0.5, W: 8, H: 1}
	bodyBox    = Box{X: 1, Y: 1.7, W: 8, H: 5}

	leftColumnBox  = Box{X: 1, Y: 1.7, W: 4, H: 4}
	rightColumnBox = Box{X: 5.5, Y: 1.7, W: 4, H: 4}

	contentBox = Box{X: 1, Y: 1.7, W: 5, H: 4}
	imageBox   = Box{X: 7, Y: 1.7, W: 2, H: 2}
)
