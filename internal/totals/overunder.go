package totals

import (
	"math"

	"github.com/stitts-dev/prop-engine/internal/models"
)

const baseVariance = 4.0

// projectionVariance is the half-width of the projected range. It widens
// with pace deviation, streaky shooting and three-point volume.
func projectionVariance(pace paceState, home, away models.TeamShootingProfile) float64 {
	paceMult := 1.0 + math.Abs(pace.deviation)*0.02

	shootingMult := 1.0
	for _, s := range []models.TeamShootingProfile{home, away} {
		switch s.VarianceLevel {
		case models.ExtremeHot, models.ExtremeCold:
			shootingMult += 0.15
		case models.Hot, models.Cold:
			shootingMult += 0.08
		}
	}

	fg3Rate := (home.LiveFG3Rate + away.LiveFG3Rate) / 2
	threeMult := 1.0 + math.Max(0, (fg3Rate-35)*0.01)

	return baseVariance * paceMult * shootingMult * threeMult
}

// overUnder measures the projected total against the reference line. With
// no usable reference the line is the season-implied total rounded to the
// nearest half point.
func overUnder(projectedTotal, variance float64, reference *float64, seasonTotal float64, home, away models.TeamShootingProfile, pace paceState) models.OverUnderRecommendation {
	line := math.Round(seasonTotal*2) / 2
	estimated := true
	if reference != nil && *reference > 0 {
		line = *reference
		estimated = false
	}

	edge := projectedTotal - line
	edgePct := edge / math.Max(line, 1) * 100

	confidence := 50.0
	if math.Abs(pace.deviation) < 5 {
		confidence += 10
	}
	for _, s := range []models.TeamShootingProfile{home, away} {
		if s.VarianceLevel == models.Normal {
			confidence += 5
		}
	}
	switch abs := math.Abs(edge); {
	case abs > 4:
		confidence += 10
	case abs > 2:
		confidence += 5
	}
	confidence = clamp(confidence, 20, 90)

	return models.OverUnderRecommendation{
		ProjectedTotal:     round1(projectedTotal),
		ProjectedRangeLow:  round1(projectedTotal - variance),
		ProjectedRangeHigh: round1(projectedTotal + variance),
		ReferenceLine:      line,
		LineEstimated:      estimated,
		Edge:               round1(edge),
		EdgePct:            round1(edgePct),
		Recommendation:     ClassifyOverUnder(edge, confidence),
		Confidence:         round1(confidence),
	}
}

// ClassifyOverUnder turns an edge over the line and a confidence into a call.
func ClassifyOverUnder(edge, confidence float64) models.OverUnderCall {
	switch {
	case edge > 4 && confidence >= 65:
		return models.StrongOver
	case edge > 1.5 && confidence >= 50:
		return models.LeanOver
	case edge < -4 && confidence >= 65:
		return models.StrongUnder
	case edge < -1.5 && confidence >= 50:
		return models.LeanUnder
	}
	return models.NeutralCall
}

// totalConfidence scores how predictable the rest of the game is, clamped
// to [15, 95].
func totalConfidence(pace paceState, home, away models.TeamShootingProfile, stars []models.StarPlayerImpact, blowout, closeGame bool) float64 {
	confidence := 50.0

	switch deviation := math.Abs(pace.deviation); {
	case deviation < 5:
		confidence += 12
	case deviation < 10:
		confidence += 6
	default:
		confidence -= 8
	}

	for _, s := range []models.TeamShootingProfile{home, away} {
		if s.VarianceLevel == models.Normal {
			confidence += 5
		} else if isExtreme(s.VarianceLevel) {
			confidence -= 6
		}
	}

	for _, s := range stars {
		if s.FoulTrouble {
			confidence -= 4
		}
	}
	if blowout {
		confidence -= 12
	}
	if closeGame {
		confidence -= 3
	}
	return clamp(confidence, 15, 95)
}
