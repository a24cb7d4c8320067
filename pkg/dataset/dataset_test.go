package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "baseTemperature": 8.66,
  "monthlyVariance": [
    {"year": 1754, "month": 1, "variance": -1.5},
    {"year": 1753, "month": 1, "variance": -1.366},
    {"year": 1753, "month": 2, "variance": -2.223},
    {"year": 1753, "month": 3, "variance": 0.211},
    {"year": 1754, "month": 2, "variance": 1.25}
  ]
}`

func TestDecode(t *testing.T) {
	ds, err := Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	assert.Equal(t, 8.66, ds.BaseTemperature)
	require.Len(t, ds.MonthlyVariance, 5)
	assert.Equal(t, Record{Year: 1753, Month: 2, Variance: -2.223}, ds.MonthlyVariance[2])
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"malformed", `{"monthlyVariance": [`, "failed to decode dataset"},
		{"empty", `{"baseTemperature": 8.66, "monthlyVariance": []}`, ErrEmptyDataset.Error()},
		{"missing list", `{"baseTemperature": 8.66}`, ErrEmptyDataset.Error()},
		{"month zero", `{"monthlyVariance": [{"year": 1800, "month": 0, "variance": 1}]}`, "out of range"},
		{"month thirteen", `{"monthlyVariance": [{"year": 1800, "month": 13, "variance": 1}]}`, "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExtent(t *testing.T) {
	ds, err := Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	min, max, err := ds.Extent(DefaultBaseTemperature)
	require.NoError(t, err)
	assert.InDelta(t, 6.437, min, 1e-9)
	assert.InDelta(t, 9.91, max, 1e-9)

	_, _, err = (&Dataset{}).Extent(DefaultBaseTemperature)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestTemperatures(t *testing.T) {
	ds := &Dataset{MonthlyVariance: []Record{{Variance: -1}, {Variance: 2}}}
	assert.Equal(t, []float64{9, 12}, ds.Temperatures(10))
}

func TestYears(t *testing.T) {
	ds, err := Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	assert.Equal(t, []int{1753, 1754}, ds.Years())
}

func TestSummarize(t *testing.T) {
	ds, err := Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	s, err := ds.Summarize(8.66)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Records)
	assert.Equal(t, 1753, s.FirstYear)
	assert.Equal(t, 1754, s.LastYear)
	assert.Equal(t, -2.223, s.MinVariance)
	assert.Equal(t, 1.25, s.MaxVariance)
	assert.InDelta(t, 9.91, s.MaxTemperature, 1e-9)

	_, err = (&Dataset{}).Summarize(8.66)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestRecord(t *testing.T) {
	r := Record{Year: 1900, Month: 12, Variance: 0.5}
	assert.Equal(t, 11, r.MonthIndex())
	assert.InDelta(t, 9.16, r.Temperature(8.66), 1e-9)
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "January", MonthName(0))
	assert.Equal(t, "December", MonthName(11))
	assert.Equal(t, "", MonthName(12))
	assert.Equal(t, "", MonthName(-1))
}
