package props

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/stitts-dev/prop-engine/internal/models"
)

const (
	trendWindow       = 5
	trendScale        = 5.0
	varianceScale     = 50.0
	fullMinutes       = 35.0
	unreadableMinutes = 0.5
)

// RecentTrend fits a least-squares line through values in chronological
// order and returns its slope scaled into [-1, 1]. ok is false with fewer
// than two values.
func RecentTrend(values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, values, nil, false)
	return clamp(slope/trendScale, -1, 1), true
}

// Consistency maps population variance onto [0, 1]; 1 is perfectly steady.
func Consistency(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	variance := stat.PopVariance(values, nil)
	return clamp(1-math.Min(variance/varianceScale, 1), 0, 1), true
}

// PlayingTime is average minutes over 35, capped at 1. Blank entries are
// skipped; a single unreadable entry makes the factor 0.5.
func PlayingTime(raw []string) (float64, bool) {
	minutes := make([]float64, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		m, err := models.ParseMinutes(r)
		if err != nil {
			return unreadableMinutes, true
		}
		minutes = append(minutes, m)
	}
	if len(minutes) == 0 {
		return 0, false
	}
	return math.Min(stat.Mean(minutes, nil)/fullMinutes, 1.0), true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
