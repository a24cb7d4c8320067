// Package scale maps data values onto colours and pixel positions.
package scale

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/egandro/global-temperature-heatmap/pkg/palette"
)

var (
	// ErrInvalidBucketCount is returned when fewer than one bucket is requested.
	ErrInvalidBucketCount = errors.New("bucket count must be at least 1")
	// ErrInvalidRange is returned for non-finite bounds or min > max.
	ErrInvalidRange = errors.New("invalid value range")
)

// Thresholds splits [min, max] into count equal-width buckets and returns the
// count-1 interior boundaries. Both extremes are excluded.
func Thresholds(min, max float64, count int) ([]float64, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBucketCount, count)
	}
	if !isFinite(min) || !isFinite(max) || min > max || !isFinite(max-min) {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, min, max)
	}

	step := (max - min) / float64(count)
	bounds := make([]float64, 0, count-1)
	for i := 1; i < count; i++ {
		bounds = append(bounds, min+float64(i)*step)
	}
	return bounds, nil
}

// Threshold is a step function from temperature to palette colour. Buckets
// are half-open: bucket i covers [bounds[i-1], bounds[i]), the first bucket is
// open downwards and the last one upwards.
type Threshold struct {
	min, max float64
	bounds   []float64
	palette  palette.Palette
}

// Bucket describes one colour band, as used by the legend.
type Bucket struct {
	Index int            `json:"index"`
	Color colorful.Color `json:"-"`
	Hex   string         `json:"color"`
	Lower float64        `json:"lower"`
	Upper float64        `json:"upper"`
}

// NewThreshold builds a threshold scale with one bucket per palette colour
// over the data range [min, max].
func NewThreshold(min, max float64, p palette.Palette) (*Threshold, error) {
	bounds, err := Thresholds(min, max, len(p))
	if err != nil {
		return nil, err
	}
	return &Threshold{
		min:     min,
		max:     max,
		bounds:  bounds,
		palette: append(palette.Palette(nil), p...),
	}, nil
}

// Boundaries returns a copy of the interior boundaries.
func (t *Threshold) Boundaries() []float64 {
	return append([]float64(nil), t.bounds...)
}

// Palette returns a copy of the palette.
func (t *Threshold) Palette() palette.Palette {
	return append(palette.Palette(nil), t.palette...)
}

// Domain returns the data extent the scale was built for.
func (t *Threshold) Domain() (float64, float64) {
	return t.min, t.max
}

// Index returns the bucket index for v: the smallest i with v < bounds[i],
// or the last index when v is at or above every boundary. NaN has no bucket
// and yields -1.
func (t *Threshold) Index(v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	return sort.Search(len(t.bounds), func(i int) bool {
		return v < t.bounds[i]
	})
}

// ColorFor returns the palette colour of v's bucket. NaN yields the zero colour.
func (t *Threshold) ColorFor(v float64) colorful.Color {
	i := t.Index(v)
	if i < 0 {
		return colorful.Color{}
	}
	return t.palette[i]
}

// Extent returns the value interval of bucket i. The open ends of the first
// and last bucket are clamped to the data min and max.
func (t *Threshold) Extent(i int) (lower, upper float64) {
	lower, upper = t.min, t.max
	if i > 0 {
		lower = t.bounds[i-1]
	}
	if i < len(t.bounds) {
		upper = t.bounds[i]
	}
	return lower, upper
}

// InvertExtent returns the value interval that maps to c. If c occurs more
// than once the first occurrence wins; ok is false when c is not in the palette.
func (t *Threshold) InvertExtent(c colorful.Color) (lower, upper float64, ok bool) {
	i := t.palette.IndexOf(c)
	if i < 0 {
		return 0, 0, false
	}
	lower, upper = t.Extent(i)
	return lower, upper, true
}

// Buckets lists every bucket in palette order.
func (t *Threshold) Buckets() []Bucket {
	out := make([]Bucket, len(t.palette))
	for i, c := range t.palette {
		lo, hi := t.Extent(i)
		out[i] = Bucket{Index: i, Color: c, Hex: c.Hex(), Lower: lo, Upper: hi}
	}
	return out
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
