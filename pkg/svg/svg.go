package svg

import (
	"bytes"
	"embed"
	"fmt"
	"math"
	"strconv"
	"text/template"

	"github.com/egandro/global-temperature-heatmap/pkg/dataset"
	"github.com/egandro/global-temperature-heatmap/pkg/palette"
	"github.com/egandro/global-temperature-heatmap/pkg/scale"
)

const (
	defaultWidth       = 1300
	defaultHeight      = 500
	defaultLegendWidth = 400

	paddingTop    = 80
	paddingLeft   = 100
	paddingRight  = 100
	legendLeft    = 60
	legendGap     = 80
	legendSpan    = 300 // total height shared by all swatches
	paddingBottom = 50

	yearTickEvery = 10
	legendTick    = 10
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"px":  px,
	"add": func(a, b float64) float64 { return a + b },
}).ParseFS(templateFS, "templates/*.tmpl"))

// New computes the scales for ds. It fails on an empty or invalid dataset
// and on an empty palette.
func New(ds *dataset.Dataset, opts Options) (*Heatmap, error) {
	if ds == nil {
		return nil, dataset.ErrEmptyDataset
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	opts = withDefaults(opts)

	h := &Heatmap{data: ds, opts: opts}

	var err error
	h.minTemp, h.maxTemp, err = ds.Extent(opts.BaseTemperature)
	if err != nil {
		return nil, err
	}
	h.threshold, err = scale.NewThreshold(h.minTemp, h.maxTemp, opts.Palette)
	if err != nil {
		return nil, fmt.Errorf("failed to build colour scale: %w", err)
	}

	h.years = ds.Years()
	h.xScale = scale.NewBand(h.years, 0, float64(opts.Width))
	h.yScale = scale.NewBandRound([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, 0, float64(opts.Height))
	h.legendX = scale.NewLinear(h.minTemp, h.maxTemp, 0, float64(opts.LegendWidth))

	h.dims = h.calculateDimensions()
	return h, nil
}

func withDefaults(opts Options) Options {
	if len(opts.Palette) == 0 {
		opts.Palette = palette.Default()
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.LegendWidth <= 0 {
		opts.LegendWidth = defaultLegendWidth
	}
	if opts.Title == "" {
		opts.Title = "Monthly Global Land-Surface Temperature"
	}
	return opts
}

func (h *Heatmap) calculateDimensions() heatmapDimensions {
	var dims heatmapDimensions
	dims.gridX = paddingLeft
	dims.gridY = paddingTop
	dims.legendHeight = legendSpan / float64(len(h.opts.Palette))
	dims.legendY = dims.gridY + float64(h.opts.Height) + legendGap

	dims.width = dims.gridX + float64(h.opts.Width) + paddingRight
	if lw := legendLeft + float64(h.opts.LegendWidth) + paddingRight; lw > dims.width {
		dims.width = lw
	}
	dims.height = dims.legendY + dims.legendHeight + legendTick + paddingBottom
	return dims
}

// Threshold returns the colour scale.
func (h *Heatmap) Threshold() *scale.Threshold {
	return h.threshold
}

// Legend returns one bucket per palette colour.
func (h *Heatmap) Legend() []scale.Bucket {
	return h.threshold.Buckets()
}

// Description is the subtitle, e.g. "1753 - 2015: base temperature 8.66℃".
func (h *Heatmap) Description() string {
	return fmt.Sprintf("%d - %d: base temperature %s℃", h.years[0], h.years[len(h.years)-1], formatFloat(h.opts.BaseTemperature))
}

// Generate renders the SVG document.
func (h *Heatmap) Generate() (string, error) {
	if len(h.data.MonthlyVariance) == 0 {
		return "", fmt.Errorf("no temperature data available")
	}

	data := svgData{
		Width:        h.dims.width,
		Height:       h.dims.height,
		CenterX:      h.dims.width / 2,
		Title:        h.opts.Title,
		Description:  h.Description(),
		GridX:        h.dims.gridX,
		GridY:        h.dims.gridY,
		GridWidth:    float64(h.opts.Width),
		GridHeight:   float64(h.opts.Height),
		LegendX:      legendLeft,
		LegendY:      h.dims.legendY,
		LegendWidth:  float64(h.opts.LegendWidth),
		LegendHeight: h.dims.legendHeight,
	}

	data.YLabel = svgText{X: -(h.dims.gridY + float64(h.opts.Height)/2), Y: 40, Text: "Months"}
	data.XLabel = svgText{X: h.dims.gridX + float64(h.opts.Width)/2, Y: h.dims.gridY + float64(h.opts.Height) + 45, Text: "Years"}

	for _, year := range h.years {
		if year%yearTickEvery != 0 {
			continue
		}
		c, _ := h.xScale.Center(year)
		data.XTicks = append(data.XTicks, svgTick{Pos: c, Label: strconv.Itoa(year)})
	}
	for _, m := range h.yScale.Domain() {
		c, _ := h.yScale.Center(m)
		data.YTicks = append(data.YTicks, svgTick{Pos: c, Label: dataset.MonthName(m)})
	}

	for _, r := range h.data.MonthlyVariance {
		x, _ := h.xScale.Position(r.Year)
		y, _ := h.yScale.Position(r.MonthIndex())
		temp := r.Temperature(h.opts.BaseTemperature)

		data.Cells = append(data.Cells, svgCell{
			X:       x,
			Y:       y,
			Width:   h.xScale.Bandwidth(),
			Height:  h.yScale.Bandwidth(),
			Fill:    h.threshold.ColorFor(temp).Hex(),
			Year:    r.Year,
			Month:   r.MonthIndex(),
			Temp:    formatFloat(temp),
			Tooltip: tooltip(r, temp),
		})
	}

	for _, b := range h.threshold.Boundaries() {
		data.LegendTicks = append(data.LegendTicks, svgTick{Pos: h.legendX.Map(b), Label: fmt.Sprintf("%.1f", b)})
	}
	for _, c := range h.threshold.Palette() {
		lo, hi, ok := h.threshold.InvertExtent(c)
		if !ok {
			continue
		}
		x0, x1 := h.legendX.Map(lo), h.legendX.Map(hi)
		data.Swatches = append(data.Swatches, svgSwatch{
			X:         x0,
			Width:     x1 - x0,
			Fill:      c.Hex(),
			TextColor: palette.TextColor(c),
			Range:     fmt.Sprintf("%.2f℃ - %.2f℃", lo, hi),
		})
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "heatmap.svg.tmpl", data); err != nil {
		return "", fmt.Errorf("failed to execute SVG template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePage renders a standalone HTML page embedding the SVG.
func (h *Heatmap) GeneratePage() (string, error) {
	svgContent, err := h.Generate()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = templates.ExecuteTemplate(&buf, "page.html.tmpl", pageData{
		Title:       h.opts.Title,
		Description: h.Description(),
		SVG:         svgContent,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute page template: %w", err)
	}
	return buf.String(), nil
}

func tooltip(r dataset.Record, temp float64) string {
	return fmt.Sprintf("%d - %s\n%.2f℃\n%.2f", r.Year, dataset.MonthName(r.MonthIndex()), temp, r.Variance)
}

// px formats a coordinate with at most two decimals.
func px(v float64) string {
	return formatFloat(math.Round(v*100) / 100)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
