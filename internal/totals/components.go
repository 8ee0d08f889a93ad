package totals

import (
	"math"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/tuning"
)

// gameFlowProjection scales the extrapolated rate by how competitive the
// game is.
func gameFlowProjection(scoreDifferential int, scoringRate, remaining float64, th tuning.Thresholds) float64 {
	base := scoringRate * remaining
	margin := math.Abs(float64(scoreDifferential))
	switch {
	case margin >= th.BlowoutMargin:
		return base * 0.85
	case margin <= th.CloseGameMargin:
		return base * 1.03
	case margin <= th.ModerateLeadMargin:
		return base * 0.97
	}
	return base * 0.92
}

// ratingsProjection expects each offense to score at its season rating over
// the remaining share of a game, adjusted for the opposing defense. A side
// without ratings carries the league-average stand-ins.
func ratingsProjection(ratings models.RatingsPair, remaining float64, league tuning.LeagueAverages) float64 {
	fraction := remaining / models.RegulationMinutes
	pace := (ratings.Home.Pace + ratings.Away.Pace) / 2
	home := pace * ratings.Home.OffRating / 100 * fraction
	away := pace * ratings.Away.OffRating / 100 * fraction

	home *= league.PointsPerPossession * 100 / math.Max(ratings.Away.DefRating, 80)
	away *= league.PointsPerPossession * 100 / math.Max(ratings.Home.DefRating, 80)
	return home + away
}

// seasonAverageTotal is the combined score the teams' season pace and
// offense imply.
func seasonAverageTotal(ratings models.RatingsPair) float64 {
	pace := (ratings.Home.Pace + ratings.Away.Pace) / 2
	offense := (ratings.Home.OffRating + ratings.Away.OffRating) / 2
	return pace * (offense / 100) * 2
}

func regressionProjection(seasonTotal, remaining float64) float64 {
	return seasonTotal * remaining / models.RegulationMinutes
}
