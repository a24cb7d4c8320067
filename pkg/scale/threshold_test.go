package scale

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egandro/global-temperature-heatmap/pkg/palette"
)

var abc = palette.MustParse("#ff0000", "#00ff00", "#0000ff")

func TestThresholds(t *testing.T) {
	bounds, err := Thresholds(0, 9, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 6}, bounds)

	bounds, err = Thresholds(2, 5, 1)
	require.NoError(t, err)
	assert.Empty(t, bounds)
}

func TestThresholds_Errors(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		count    int
		want     error
	}{
		{"zero buckets", 0, 1, 0, ErrInvalidBucketCount},
		{"negative buckets", 0, 1, -3, ErrInvalidBucketCount},
		{"min above max", 2, 1, 3, ErrInvalidRange},
		{"nan min", math.NaN(), 1, 3, ErrInvalidRange},
		{"inf max", 0, math.Inf(1), 3, ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Thresholds(tt.min, tt.max, tt.count)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestThresholds_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	p := palette.Default()

	for i := 0; i < 200; i++ {
		min := rng.Float64()*20 - 10
		max := min + 0.01 + rng.Float64()*20

		bounds, err := Thresholds(min, max, len(p))
		require.NoError(t, err)
		require.Len(t, bounds, len(p)-1)

		for j, b := range bounds {
			assert.Greater(t, b, min)
			assert.Less(t, b, max)
			if j > 0 {
				assert.Greater(t, b, bounds[j-1])
			}
		}
	}
}

func TestThreshold_ColorFor_Scenario(t *testing.T) {
	th, err := NewThreshold(0, 9, abc)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 6}, th.Boundaries())

	tests := []struct {
		v    float64
		want colorful.Color
	}{
		{0, abc[0]},
		{3, abc[1]},
		{5, abc[1]},
		{6, abc[2]},
		{9, abc[2]},
		{-100, abc[0]},
		{100, abc[2]},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, th.ColorFor(tt.v), "value %v", tt.v)
	}
}

func TestThreshold_MinMaxBuckets(t *testing.T) {
	p := palette.Default()
	th, err := NewThreshold(1.684, 13.888, p)
	require.NoError(t, err)

	assert.Equal(t, p[0], th.ColorFor(1.684))
	assert.Equal(t, p[len(p)-1], th.ColorFor(13.888))
}

func TestThreshold_Monotonic(t *testing.T) {
	th, err := NewThreshold(-3, 7, palette.Default())
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 500; i++ {
		v1 := rng.Float64()*14 - 5
		v2 := rng.Float64()*14 - 5
		if v1 > v2 {
			v1, v2 = v2, v1
		}
		assert.LessOrEqual(t, th.Index(v1), th.Index(v2), "v1=%v v2=%v", v1, v2)
	}
}

func TestThreshold_BoundaryRoundTrip(t *testing.T) {
	th, err := NewThreshold(-3, 7, palette.Default())
	require.NoError(t, err)

	for i, b := range th.Boundaries() {
		below := math.Nextafter(b, math.Inf(-1))
		assert.Equal(t, i+1, th.Index(b))
		assert.Equal(t, i, th.Index(below))
	}
}

func TestThreshold_Degenerate(t *testing.T) {
	th, err := NewThreshold(4.2, 4.2, abc)
	require.NoError(t, err)
	assert.Equal(t, []float64{4.2, 4.2}, th.Boundaries())

	assert.NotPanics(t, func() {
		assert.Equal(t, abc[2], th.ColorFor(4.2))
	})
	assert.Equal(t, abc[0], th.ColorFor(4.1))
}

func TestThreshold_SingleColour(t *testing.T) {
	p := abc[:1]
	th, err := NewThreshold(0, 10, p)
	require.NoError(t, err)
	assert.Empty(t, th.Boundaries())
	assert.Equal(t, p[0], th.ColorFor(-5))
	assert.Equal(t, p[0], th.ColorFor(50))

	lo, hi, ok := th.InvertExtent(p[0])
	require.True(t, ok)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 10.0, hi)
}

func TestThreshold_EmptyPalette(t *testing.T) {
	_, err := NewThreshold(0, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidBucketCount)
}

func TestThreshold_NaN(t *testing.T) {
	th, err := NewThreshold(0, 9, abc)
	require.NoError(t, err)
	assert.Equal(t, -1, th.Index(math.NaN()))
	assert.Equal(t, colorful.Color{}, th.ColorFor(math.NaN()))
}

func TestThreshold_InvertExtent(t *testing.T) {
	th, err := NewThreshold(0, 9, abc)
	require.NoError(t, err)

	lo, hi, ok := th.InvertExtent(abc[0])
	require.True(t, ok)
	assert.Equal(t, [2]float64{0, 3}, [2]float64{lo, hi})

	lo, hi, ok = th.InvertExtent(abc[1])
	require.True(t, ok)
	assert.Equal(t, [2]float64{3, 6}, [2]float64{lo, hi})

	lo, hi, ok = th.InvertExtent(abc[2])
	require.True(t, ok)
	assert.Equal(t, [2]float64{6, 9}, [2]float64{lo, hi})

	_, _, ok = th.InvertExtent(colorful.Color{R: 0.5, G: 0.5, B: 0.5})
	assert.False(t, ok)
}

func TestThreshold_InvertExtentDuplicateColour(t *testing.T) {
	p := palette.MustParse("#000000", "#ffffff", "#000000")
	th, err := NewThreshold(0, 9, p)
	require.NoError(t, err)

	lo, hi, ok := th.InvertExtent(p[2])
	require.True(t, ok)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 3.0, hi)
}

func TestThreshold_BucketsCoverDomain(t *testing.T) {
	p := palette.Default()
	th, err := NewThreshold(1.684, 13.888, p)
	require.NoError(t, err)

	buckets := th.Buckets()
	require.Len(t, buckets, len(p))
	assert.Equal(t, 1.684, buckets[0].Lower)
	assert.Equal(t, 13.888, buckets[len(buckets)-1].Upper)

	for i, b := range buckets {
		assert.Equal(t, i, b.Index)
		assert.Equal(t, p[i].Hex(), b.Hex)
		assert.Less(t, b.Lower, b.Upper)
		assert.Equal(t, b.Color, th.ColorFor(b.Lower))
		if i > 0 {
			assert.Equal(t, buckets[i-1].Upper, b.Lower)
		}
	}
}

func TestThreshold_CopiesInputs(t *testing.T) {
	p := palette.MustParse("#ff0000", "#00ff00")
	th, err := NewThreshold(0, 2, p)
	require.NoError(t, err)

	p[0] = colorful.Color{}
	assert.Equal(t, "#ff0000", th.Palette()[0].Hex())

	b := th.Boundaries()
	b[0] = 42
	assert.Equal(t, []float64{1}, th.Boundaries())
}

func FuzzThresholds(f *testing.F) {
	f.Add(0.0, 9.0, 3)
	f.Add(1.684, 13.888, 11)
	f.Add(-5.0, -5.0, 4)
	f.Add(3.0, 1.0, 2)
	f.Add(0.0, 1.0, 0)

	f.Fuzz(func(t *testing.T, min, max float64, count int) {
		if count > 1<<12 {
			t.Skip()
		}
		bounds, err := Thresholds(min, max, count)
		if err != nil {
			return
		}
		if len(bounds) != count-1 {
			t.Fatalf("got %d boundaries, want %d", len(bounds), count-1)
		}
		for _, b := range bounds {
			if b < min || b > max || math.IsNaN(b) {
				t.Fatalf("boundary %v outside [%v, %v]", b, min, max)
			}
		}
	})
}
