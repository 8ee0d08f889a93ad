package halftime

import (
	"math"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/tuning"
)

// Pace ratings relative to the league-average scoring rate.
const (
	PaceVeryFast = "very_fast"
	PaceFast     = "fast"
	PaceAverage  = "average"
	PaceSlow     = "slow"
)

const blowoutTotalDamp = 0.92

// PaceRating bands a scoring rate expressed as a multiple of league average.
func PaceRating(comparison float64) string {
	switch {
	case comparison >= 1.15:
		return PaceVeryFast
	case comparison >= 1.05:
		return PaceFast
	case comparison >= 0.95:
		return PaceAverage
	}
	return PaceSlow
}

// PaceSustainability regresses extreme scoring rates toward the average.
func PaceSustainability(comparison float64, t tuning.Tables) float64 {
	switch {
	case comparison >= 1.2:
		return 0.90
	case comparison >= 1.1:
		return 0.93
	case comparison <= 0.85:
		return 1.05
	}
	return t.PaceSustainability
}

// ProjectTeamTotals extrapolates the combined score over the minutes left
// and splits the remainder across the third and fourth quarters.
func ProjectTeamTotals(g models.LiveGame, t tuning.Tables) models.TeamTotalsProjection {
	elapsed := g.ElapsedMinutes()
	remaining := g.RemainingMinutes()
	total := float64(g.TotalScore())

	perMinute := total / elapsed
	comparison := perMinute / (t.League.TotalPoints / models.RegulationMinutes)
	rating := PaceRating(comparison)
	blowout := Blowout(g.ScoreDifferential(), t.Thresholds)
	sustainability := PaceSustainability(comparison, t)

	remainingTotal := total * (remaining / elapsed) * sustainability
	if blowout {
		remainingTotal *= blowoutTotalDamp
	}
	q3, q4 := splitQuarters(remainingTotal, elapsed, remaining, t.HalftimeQ3PaceFactor)

	confidence := 60.0
	switch {
	case comparison >= 0.95 && comparison <= 1.05:
		confidence += 15
	case comparison >= 0.90 && comparison <= 1.10:
		confidence += 8
	default:
		confidence -= 10
	}
	if blowout {
		confidence -= 15
	}

	return models.TeamTotalsProjection{
		GameID:                  g.GameID,
		HomeTeam:                g.HomeTeamAbbr,
		AwayTeam:                g.AwayTeamAbbr,
		CurrentTotal:            g.TotalScore(),
		ScoreDifferential:       g.ScoreDifferential(),
		ElapsedMinutes:          elapsed,
		PointsPerMinute:         round2(perMinute),
		PaceRating:              rating,
		LeagueAvgPaceComparison: round2(comparison),
		PaceSustainability:      round2(sustainability),
		ProjectedRemainingTotal: round1(remainingTotal),
		ProjectedFinalTotal:     round1(total + remainingTotal),
		ProjectedQ3Total:        round1(q3),
		ProjectedQ4Total:        round1(q4),
		TotalConfidence:         round1(clamp(confidence, 0, 100)),
		BlowoutRisk:             blowout,
	}
}

// splitQuarters allocates the projected remaining points to the minutes left
// in each of the third and fourth quarters. The third quarter runs slower by
// q3Factor and the difference carries into the fourth.
func splitQuarters(remainingTotal, elapsed, remaining, q3Factor float64) (q3, q4 float64) {
	if remaining <= 0 {
		return 0, 0
	}
	q3Minutes := clamp(3*models.QuarterMinutes-math.Max(elapsed, models.HalfMinutes), 0, models.QuarterMinutes)
	q4Minutes := clamp(models.RegulationMinutes-math.Max(elapsed, 3*models.QuarterMinutes), 0, models.QuarterMinutes)

	rate := remainingTotal / remaining
	q3 = rate * q3Minutes * q3Factor
	q4 = rate*q4Minutes + rate*q3Minutes*(1-q3Factor)
	return q3, q4
}
