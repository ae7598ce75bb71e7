package layout

import (
	"math"
	"strconv"
)

// defaultTickCount is the target number of ticks derived from a data range.
const defaultTickCount = 6

// deriveTicks returns ~n rounded tick values covering [lo, hi].
// Values snap to a 1/2/5 progression so labels stay readable.
func deriveTicks(lo, hi float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}

	step := niceNum((hi-lo)/float64(n-1), true)
	start := math.Ceil(lo/step) * step
	end := math.Floor(hi/step) * step

	var ticks []float64
	for v := start; v <= end+step/2; v += step {
		// Snap near-zero accumulation error to exactly zero.
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		ticks = append(ticks, v)
	}
	return ticks
}

// deriveLogTicks returns the powers of ten covering [lo, hi], lo > 0.
func deriveLogTicks(lo, hi float64) []float64 {
	start := int(math.Floor(math.Log10(lo)))
	end := int(math.Ceil(math.Log10(hi)))

	ticks := make([]float64, 0, end-start+1)
	for e := start; e <= end; e++ {
		ticks = append(ticks, math.Pow(10, float64(e)))
	}
	return ticks
}

// niceNum rounds x to a "nice" value (1, 2, or 5 times a power of ten).
func niceNum(x float64, round bool) float64 {
	exp := math.Floor(math.Log10(x))
	frac := x / math.Pow(10, exp)

	var nice float64
	if round {
		switch {
		case frac < 1.5:
			nice = 1
		case frac < 3:
			nice = 2
		case frac < 7:
			nice = 5
		default:
			nice = 10
		}
	} else {
		switch {
		case frac <= 1:
			nice = 1
		case frac <= 2:
			nice = 2
		case frac <= 5:
			nice = 5
		default:
			nice = 10
		}
	}
	return nice * math.Pow(10, exp)
}

// tickLabel formats a tick value without trailing zero noise.
func tickLabel(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
