package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"time"
)

// DefaultBaseTemperature is the baseline (°C) that variances are measured against.
const DefaultBaseTemperature = 8.66

// ErrEmptyDataset is returned when a document has no monthly records.
var ErrEmptyDataset = errors.New("dataset has no monthly records")

// Record is one month of temperature deviation from the baseline.
type Record struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"` // 1-12
	Variance float64 `json:"variance"`
}

// Temperature returns the absolute temperature for the given baseline.
func (r Record) Temperature(base float64) float64 {
	return r.Variance + base
}

// MonthIndex returns the zero-based month, as used for the grid rows.
func (r Record) MonthIndex() int {
	return r.Month - 1
}

// Dataset mirrors the upstream JSON document.
type Dataset struct {
	BaseTemperature float64  `json:"baseTemperature"`
	MonthlyVariance []Record `json:"monthlyVariance"`
}

// Summary is a short description of a dataset, used by the CLI and the API.
type Summary struct {
	Records         int     `json:"records"`
	FirstYear       int     `json:"firstYear"`
	LastYear        int     `json:"lastYear"`
	BaseTemperature float64 `json:"baseTemperature"`
	MinTemperature  float64 `json:"minTemperature"`
	MaxTemperature  float64 `json:"maxTemperature"`
	MinVariance     float64 `json:"minVariance"`
	MaxVariance     float64 `json:"maxVariance"`
}

// Decode reads and validates a dataset document.
func Decode(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks that there is at least one record and every month is 1-12.
func (d *Dataset) Validate() error {
	if len(d.MonthlyVariance) == 0 {
		return ErrEmptyDataset
	}
	for i, r := range d.MonthlyVariance {
		if r.Month < 1 || r.Month > 12 {
			return fmt.Errorf("record %d (%d): month %d out of range 1-12", i, r.Year, r.Month)
		}
		if math.IsNaN(r.Variance) || math.IsInf(r.Variance, 0) {
			return fmt.Errorf("record %d (%d-%02d): variance is not finite", i, r.Year, r.Month)
		}
	}
	return nil
}

// Temperatures returns the absolute temperature of every record, in order.
func (d *Dataset) Temperatures(base float64) []float64 {
	out := make([]float64, len(d.MonthlyVariance))
	for i, r := range d.MonthlyVariance {
		out[i] = r.Temperature(base)
	}
	return out
}

// VarianceExtent returns the lowest and highest variance.
func (d *Dataset) VarianceExtent() (min, max float64, err error) {
	if len(d.MonthlyVariance) == 0 {
		return 0, 0, ErrEmptyDataset
	}
	min, max = math.Inf(1), math.Inf(-1)
	for _, r := range d.MonthlyVariance {
		min = math.Min(min, r.Variance)
		max = math.Max(max, r.Variance)
	}
	return min, max, nil
}

// Extent returns the lowest and highest absolute temperature.
func (d *Dataset) Extent(base float64) (min, max float64, err error) {
	min, max, err = d.VarianceExtent()
	if err != nil {
		return 0, 0, err
	}
	return min + base, max + base, nil
}

// Years returns the distinct years in ascending order.
func (d *Dataset) Years() []int {
	seen := make(map[int]struct{})
	var years []int
	for _, r := range d.MonthlyVariance {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		years = append(years, r.Year)
	}
	sort.Ints(years)
	return years
}

// Summarize describes the dataset using the given baseline.
func (d *Dataset) Summarize(base float64) (Summary, error) {
	vmin, vmax, err := d.VarianceExtent()
	if err != nil {
		return Summary{}, err
	}
	years := d.Years()
	return Summary{
		Records:         len(d.MonthlyVariance),
		FirstYear:       years[0],
		LastYear:        years[len(years)-1],
		BaseTemperature: base,
		MinTemperature:  vmin + base,
		MaxTemperature:  vmax + base,
		MinVariance:     vmin,
		MaxVariance:     vmax,
	}, nil
}

// MonthName returns the English name of a zero-based month index.
func MonthName(index int) string {
	if index < 0 || index > 11 {
		return ""
	}
	return time.Month(index + 1).String()
}
