// Package totals projects a live game's remaining and final combined score,
// quarter splits, spread and over/under edge from six blended estimates.
package totals

import (
	"math"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/tuning"
)

// Pace trends.
const (
	PaceAccelerating = "accelerating"
	PaceDecelerating = "decelerating"
	PaceSteady       = "steady"
)

// paceState keeps the unrounded pace figures the components are built from.
type paceState struct {
	possessions     float64 // average of both teams' estimated possessions
	per48           float64
	pppHome         float64
	pppAway         float64
	homeSeasonPace  float64
	awaySeasonPace  float64
	matchupExpected float64
	deviation       float64 // percent above the matchup's expected pace
	trend           string
	q1, q2          *float64
}

func analyzePace(g models.LiveGame, home, away models.TeamAggregate, ratings models.RatingsPair, elapsed float64) paceState {
	s := paceState{
		possessions:    (home.EstimatedPossessions + away.EstimatedPossessions) / 2,
		pppHome:        float64(home.Points) / math.Max(home.EstimatedPossessions, 1),
		pppAway:        float64(away.Points) / math.Max(away.EstimatedPossessions, 1),
		homeSeasonPace: ratings.Home.Pace,
		awaySeasonPace: ratings.Away.Pace,
		trend:          PaceSteady,
	}
	s.per48 = s.possessions * (models.RegulationMinutes / math.Max(elapsed, 1))
	s.matchupExpected = (s.homeSeasonPace + s.awaySeasonPace) / 2
	s.deviation = (s.per48 - s.matchupExpected) / math.Max(s.matchupExpected, 1) * 100

	if g.Period >= 2 {
		perQuarter := float64(g.TotalScore()) / float64(g.Period)
		q1 := perQuarter * 1.02
		q2 := perQuarter * 0.98
		s.q1, s.q2 = &q1, &q2

		switch {
		case s.deviation > 5:
			s.trend = PaceAccelerating
		case s.deviation < -5:
			s.trend = PaceDecelerating
		}
	}
	return s
}

func (s paceState) record() models.PaceAnalysis {
	out := models.PaceAnalysis{
		PossessionsElapsed:   round1(s.possessions),
		PossessionsPer48Live: round1(s.per48),
		PPPHome:              round3(s.pppHome),
		PPPAway:              round3(s.pppAway),
		HomeSeasonPace:       round1(s.homeSeasonPace),
		AwaySeasonPace:       round1(s.awaySeasonPace),
		MatchupExpectedPace:  round1(s.matchupExpected),
		PaceDeviation:        round1(s.deviation),
		PaceTrend:            s.trend,
	}
	if s.q1 != nil {
		v := round1(*s.q1)
		out.Q1Pace = &v
	}
	if s.q2 != nil {
		v := round1(*s.q2)
		out.Q2Pace = &v
	}
	return out
}

// paceProjection estimates remaining points from possessions: the live
// possession rate regressed 30% toward the matchup's season pace and damped
// for the rest of the game, times points per possession regressed toward
// the league average.
func paceProjection(s paceState, home, away models.TeamAggregate, elapsed, remaining float64, league tuning.LeagueAverages) float64 {
	livePPP := float64(home.Points+away.Points) / math.Max(home.EstimatedPossessions+away.EstimatedPossessions, 1)

	livePerMinute := s.possessions / math.Max(elapsed, 1)
	expectedPerMinute := s.matchupExpected / models.RegulationMinutes
	perMinute := (livePerMinute*0.70 + expectedPerMinute*0.30) * 0.97

	ppp := livePPP*0.75 + league.PointsPerPossession*0.25
	return perMinute * remaining * ppp * 2
}
