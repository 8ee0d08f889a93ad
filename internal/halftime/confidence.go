package halftime

import (
	"math"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/tuning"
)

const neutralConsistency = 50.0

// ConfidenceInputs are the signals scored into a live projection's confidence.
type ConfidenceInputs struct {
	ProjectedFinal        float64
	Line                  float64
	CurrentValue          float64
	HistoricalConsistency float64
	Shooting              models.ShootingMetrics
	FoulTrouble           bool
	Blowout               bool
	UtilizationRate       float64
	PlusMinus             int
	OpponentDefRank       int
	AssistToTurnover      *float64
}

// Confidence starts from 50 and adds banded contributions for distance from
// the line, progress toward it, shooting, plus/minus, opponent defense,
// ball security and consistency, then applies the risk penalties. The
// result is clamped to [0, 100].
func Confidence(in ConfidenceInputs, th tuning.Thresholds) float64 {
	confidence := 50.0

	distance := in.ProjectedFinal - in.Line
	sign := -1.0
	if distance > 0 {
		sign = 1.0
	}
	distancePct := 0.0
	if in.Line > 0 {
		distancePct = distance / in.Line * 100
	}
	switch abs := math.Abs(distancePct); {
	case abs > 20:
		confidence += 20 * sign
	case abs > 10:
		confidence += 12 * sign
	case abs > 5:
		confidence += 6 * sign
	}

	switch progress := Progress(in.CurrentValue, in.Line); {
	case progress >= 60:
		confidence += 18
	case progress >= 50:
		confidence += 10
	case progress >= 40:
		confidence += 4
	case progress < 30:
		confidence -= 8
	}

	switch ts := in.Shooting.TSPct; {
	case ts >= 65:
		confidence += 10
	case ts >= 55:
		confidence += 6
	case ts >= 45:
		confidence += 2
	case ts < 35:
		confidence -= 6
	}

	switch pm := in.PlusMinus; {
	case pm >= 10:
		confidence += 8
	case pm >= 5:
		confidence += 4
	case pm <= -10:
		confidence -= 6
	case pm <= -5:
		confidence -= 3
	}

	switch rank := in.OpponentDefRank; {
	case rank >= 25:
		confidence += 6
	case rank >= 20:
		confidence += 3
	case rank <= 5:
		confidence -= 6
	case rank <= 10:
		confidence -= 3
	}

	if ato := in.AssistToTurnover; ato != nil {
		switch {
		case *ato >= 3.0:
			confidence += 4
		case *ato >= 2.0:
			confidence += 2
		case *ato < 1.0:
			confidence -= 2
		}
	}

	if in.HistoricalConsistency > 70 {
		confidence += 4
	} else if in.HistoricalConsistency < 30 {
		confidence -= 4
	}

	if in.FoulTrouble {
		confidence -= 10
	}
	if in.Blowout {
		confidence -= 12
	}
	if in.UtilizationRate > th.HighUtilization {
		confidence -= 4
	}

	return clamp(confidence, 0, 100)
}

// Progress is the current value as a percentage of the line.
func Progress(current, line float64) float64 {
	if line <= 0 {
		return 0
	}
	return current / line * 100
}

// Recommend classifies a confidence score. A projection above the line reads
// the score as support for the over; at or below the line the bands are
// shifted toward avoid.
func Recommend(confidence, distance float64) models.Recommendation {
	if distance > 0 {
		switch {
		case confidence >= 75:
			return models.StrongBet
		case confidence >= 65:
			return models.Bet
		case confidence >= 55:
			return models.Lean
		case confidence >= 45:
			return models.Neutral
		}
		return models.Avoid
	}

	switch {
	case confidence <= 25:
		return models.StrongAvoid
	case confidence <= 35:
		return models.Avoid
	case confidence <= 45:
		return models.Neutral
	}
	return models.Lean
}
