package scale

import "math"

// Band maps an ordinal domain onto equal bands of a continuous range. There is
// no padding between bands.
type Band struct {
	index     map[int]int
	domain    []int
	start     float64
	step      float64
	bandwidth float64
}

// NewBand spreads domain over [start, stop]. Duplicate domain values are
// ignored; the first occurrence keeps its slot.
func NewBand(domain []int, start, stop float64) *Band {
	return newBand(domain, start, stop, false)
}

// NewBandRound is NewBand with integer step and bandwidth. The remainder left
// by rounding is split evenly before the first and after the last band.
func NewBandRound(domain []int, start, stop float64) *Band {
	return newBand(domain, start, stop, true)
}

func newBand(domain []int, start, stop float64, round bool) *Band {
	b := &Band{index: make(map[int]int, len(domain))}
	for _, v := range domain {
		if _, ok := b.index[v]; ok {
			continue
		}
		b.index[v] = len(b.domain)
		b.domain = append(b.domain, v)
	}

	n := float64(len(b.domain))
	if n == 0 {
		b.start = start
		return b
	}

	b.step = (stop - start) / n
	if round {
		b.step = math.Floor(b.step)
	}
	b.start = start + (stop-start-b.step*n)/2
	b.bandwidth = b.step
	if round {
		b.start = math.Round(b.start)
		b.bandwidth = math.Round(b.bandwidth)
	}
	return b
}

// Position returns the start of v's band. ok is false when v is not in the domain.
func (b *Band) Position(v int) (float64, bool) {
	i, ok := b.index[v]
	if !ok {
		return 0, false
	}
	return b.start + float64(i)*b.step, true
}

// Center returns the middle of v's band.
func (b *Band) Center(v int) (float64, bool) {
	p, ok := b.Position(v)
	return p + b.bandwidth/2, ok
}

// Bandwidth is the width of a single band.
func (b *Band) Bandwidth() float64 {
	return b.bandwidth
}

// Domain returns the de-duplicated domain in insertion order.
func (b *Band) Domain() []int {
	return append([]int(nil), b.domain...)
}
