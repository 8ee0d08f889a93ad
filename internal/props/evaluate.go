package props

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/tuning"
)

// Evaluate scores a prop against the player's recent games, newest first.
// It performs no I/O; an empty history produces the default analysis.
func Evaluate(prop models.PropLine, games []models.StatObservation, tables tuning.Tables) models.PropAnalysis {
	if len(games) == 0 {
		return DefaultAnalysis(prop, models.ErrMissingHistoricalData)
	}

	keys := prop.StatType.HistoryKeys()
	if keys == nil {
		keys = []string{strings.ToLower(string(prop.StatType))}
	}

	values := validValues(games, keys)
	hitRate := HitRate(values, prop.Line, prop.Direction)
	average := 0.0
	if len(values) > 0 {
		average = stat.Mean(values, nil)
	}

	factors := Factors(games, keys)
	confidence := Confidence(hitRate, average, prop.Line, factors, tables.PropFactorWeights)

	return models.PropAnalysis{
		PropID:                 prop.PropID,
		PlayerName:             prop.PlayerName,
		StatType:               prop.StatType,
		Line:                   prop.Line,
		Direction:              prop.Direction,
		ConfidenceScore:        round2(confidence),
		HitRate:                round2(hitRate),
		AverageStat:            round2(average),
		GamesAnalyzed:          len(values),
		PaceAdjustedProjection: round2(average),
		Factors:                factors,
		Recommendation:         Recommend(confidence),
		Notes:                  notes(prop, hitRate, average, factors),
	}
}

func validValues(games []models.StatObservation, keys []string) []float64 {
	values := make([]float64, 0, len(games))
	for _, g := range games {
		if v, ok := g.Value(keys); ok {
			values = append(values, v)
		}
	}
	return values
}

// HitRate is the percentage of values that clear the line in the prop's
// direction, 0 when there are none.
func HitRate(values []float64, line float64, dir models.Direction) float64 {
	if len(values) == 0 {
		return 0
	}
	hits := 0
	for _, v := range values {
		if (dir == models.Over && v > line) || (dir == models.Under && v < line) {
			hits++
		}
	}
	return float64(hits) / float64(len(values)) * 100
}

// Factors derives the history factors. Keys without data are omitted.
func Factors(games []models.StatObservation, keys []string) map[string]float64 {
	factors := map[string]float64{}

	if len(games) >= trendWindow {
		recent := validValues(games[:trendWindow], keys)
		// newest first on input; the fit runs oldest to newest
		for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
			recent[i], recent[j] = recent[j], recent[i]
		}
		if trend, ok := RecentTrend(recent); ok {
			factors[tuning.RecentTrend] = trend
		}
	}

	if c, ok := Consistency(validValues(games, keys)); ok {
		factors[tuning.Consistency] = c
	}

	factors[tuning.HomeAway] = 0.0
	factors[tuning.Rest] = 0.0

	minutes := make([]string, 0, len(games))
	for _, g := range games {
		minutes = append(minutes, g.Minutes)
	}
	if pt, ok := PlayingTime(minutes); ok {
		factors[tuning.PlayingTime] = pt
	}

	return factors
}

// Confidence combines hit rate, distance of the average from the line and
// the weighted factors, clamped to [0, 100].
func Confidence(hitRate, average, line float64, factors map[string]float64, weights tuning.WeightTable) float64 {
	boost := math.Min(math.Abs(average-line)*2, 10)
	if average <= line {
		boost = -boost
	}

	adjustment := 0.0
	for _, k := range weights.Keys() {
		adjustment += factors[k] * weights[k]
	}

	return clamp(hitRate+boost+adjustment, 0, 100)
}

// Recommend bands a history confidence. The bands do not depend on direction.
func Recommend(confidence float64) models.Recommendation {
	switch {
	case confidence >= 70:
		return models.StrongBet
	case confidence >= 58:
		return models.Bet
	case confidence >= 45:
		return models.Neutral
	case confidence >= 30:
		return models.Avoid
	default:
		return models.StrongAvoid
	}
}

func notes(prop models.PropLine, hitRate, average float64, factors map[string]float64) string {
	var out []string

	switch {
	case hitRate >= 70:
		out = append(out, fmt.Sprintf("Player has hit this prop in %.0f%% of recent games (strong track record).", hitRate))
	case hitRate >= 50:
		out = append(out, fmt.Sprintf("Player has hit this prop in %.0f%% of recent games (decent track record).", hitRate))
	default:
		out = append(out, fmt.Sprintf("Player has only hit this prop in %.0f%% of recent games (poor track record).", hitRate))
	}

	switch {
	case average > prop.Line:
		out = append(out, fmt.Sprintf("Player's average (%.1f) is %.1f above the line.", average, average-prop.Line))
	case average < prop.Line:
		out = append(out, fmt.Sprintf("Player's average (%.1f) is %.1f below the line.", average, prop.Line-average))
	default:
		out = append(out, "Player's average matches the line exactly.")
	}

	if trend := factors[tuning.RecentTrend]; trend > 0.3 {
		out = append(out, "Player is trending up recently.")
	} else if trend < -0.3 {
		out = append(out, "Player is trending down recently.")
	}

	if c, ok := factors[tuning.Consistency]; ok {
		if c > 0.7 {
			out = append(out, "Player has been very consistent.")
		} else if c < 0.3 {
			out = append(out, "Player's performance has been inconsistent.")
		}
	}

	return strings.Join(out, " ")
}
