package totals

import (
	"math"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/tuning"
)

// q4Factor reflects how the score margin shapes fourth-quarter scoring.
func q4Factor(scoreDifferential int, t tuning.Tables) float64 {
	margin := math.Abs(float64(scoreDifferential))
	switch {
	case margin >= t.Thresholds.BlowoutMargin:
		return t.Q4BlowoutFactor
	case margin <= t.Thresholds.CloseGameMargin:
		return t.Q4CloseFactor
	}
	return t.Q4ModerateFactor
}

// splitRemaining divides the combined remaining projection between the third
// and fourth quarters given the current period.
func splitRemaining(remainingTotal float64, g models.LiveGame, elapsed float64, t tuning.Tables) (q3, q4 float64) {
	q3Share := t.TotalsQ3PaceFactor / (t.TotalsQ3PaceFactor + q4Factor(g.ScoreDifferential(), t))

	switch {
	case g.Period >= 4:
		return 0, remainingTotal
	case g.Period == 3:
		left := math.Max(0, (models.QuarterMinutes-(elapsed-models.HalfMinutes))/models.QuarterMinutes)
		q3 = remainingTotal * left * q3Share
		return q3, remainingTotal - q3
	}
	q3 = remainingTotal * q3Share
	return q3, remainingTotal - q3
}

// projectQuarters splits the remaining projection per team by offensive
// rating share and derives an overtime probability from the projected final
// margin.
func projectQuarters(remainingTotal float64, g models.LiveGame, ratings models.RatingsPair, elapsed float64, t tuning.Tables) (models.TeamQuarterProjection, models.TeamQuarterProjection, float64, float64) {
	q3, q4 := splitRemaining(remainingTotal, g, elapsed, t)

	homeOff, awayOff := ratings.Home.OffRating, ratings.Away.OffRating
	homeShare := homeOff / math.Max(homeOff+awayOff, 1)
	awayShare := 1.0 - homeShare

	homeFinal := float64(g.HomeScore) + (q3+q4)*homeShare
	awayFinal := float64(g.AwayScore) + (q3+q4)*awayShare
	otProbability := clamp(15-math.Abs(homeFinal-awayFinal)*2, 0, 25)

	homeQ := models.TeamQuarterProjection{
		TeamAbbr:            g.HomeTeamAbbr,
		Q3Projected:         round1(q3 * homeShare),
		Q4Projected:         round1(q4 * homeShare),
		OTProbability:       round1(otProbability),
		ProjectedFinalScore: round1(homeFinal),
	}
	awayQ := models.TeamQuarterProjection{
		TeamAbbr:            g.AwayTeamAbbr,
		Q3Projected:         round1(q3 * awayShare),
		Q4Projected:         round1(q4 * awayShare),
		OTProbability:       round1(otProbability),
		ProjectedFinalScore: round1(awayFinal),
	}
	return homeQ, awayQ, q3, q4
}
