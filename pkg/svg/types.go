package svg

import (
	"github.com/egandro/global-temperature-heatmap/pkg/dataset"
	"github.com/egandro/global-temperature-heatmap/pkg/palette"
	"github.com/egandro/global-temperature-heatmap/pkg/scale"
)

// Options control what is drawn and how large. Zero sizes fall back to the
// package defaults.
type Options struct {
	Palette         palette.Palette
	BaseTemperature float64
	Width           int // cell grid width
	Height          int // cell grid height
	LegendWidth     int
	Title           string
}

// Heatmap holds the computed scales for one dataset.
type Heatmap struct {
	data *dataset.Dataset
	opts Options

	years     []int
	minTemp   float64
	maxTemp   float64
	threshold *scale.Threshold
	xScale    *scale.Band
	yScale    *scale.Band
	legendX   *scale.Linear

	dims heatmapDimensions
}

type svgText struct {
	X, Y float64
	Text string
}

type svgTick struct {
	Pos   float64
	Label string
}

type svgCell struct {
	X, Y, Width, Height float64
	Fill                string
	Year                int
	Month               int // 0-based
	Temp                string
	Tooltip             string
}

type svgSwatch struct {
	X, Width  float64
	Fill      string
	TextColor string
	Range     string
}

type svgData struct {
	Width, Height float64
	CenterX       float64
	Title         string
	Description   string

	GridX, GridY          float64
	GridWidth, GridHeight float64
	XTicks, YTicks        []svgTick
	XLabel, YLabel        svgText
	Cells                 []svgCell

	LegendX, LegendY float64
	LegendWidth      float64
	LegendHeight     float64
	LegendTicks      []svgTick
	Swatches         []svgSwatch
}

type pageData struct {
	Title       string
	Description string
	SVG         string
}

type heatmapDimensions struct {
	width        float64
	height       float64
	gridX        float64
	gridY        float64
	legendY      float64
	legendHeight float64
}
