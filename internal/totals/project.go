package totals

import (
	"errors"
	"math"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/tuning"
)

// ErrEmptyBoxScore is returned when neither team has a box score row.
var ErrEmptyBoxScore = errors.New("box score has no players")

// Project runs the six-component total model over gathered inputs. It is
// pure: everything it reads comes from in and t.
func Project(in *models.GameInputs, t tuning.Tables) (*models.GameTotalProjection, error) {
	snap := in.Snapshot
	if len(snap.Home) == 0 && len(snap.Away) == 0 {
		return nil, ErrEmptyBoxScore
	}

	g := snap.Game
	th := t.Thresholds
	home := models.AggregateTeam(snap.Home)
	away := models.AggregateTeam(snap.Away)

	elapsed := g.ElapsedMinutes()
	remaining := g.RemainingMinutes()
	currentTotal := g.TotalScore()
	scoringRate := float64(currentTotal) / math.Max(elapsed, 1)

	margin := math.Abs(float64(g.ScoreDifferential()))
	blowout := margin >= th.BlowoutMargin
	closeGame := margin <= th.CloseGameMargin

	pace := analyzePace(g, home, away, in.Ratings, elapsed)
	homeShooting := shootingProfile(g.HomeTeamAbbr, snap.Home, home, in.Season, t)
	awayShooting := shootingProfile(g.AwayTeamAbbr, snap.Away, away, in.Season, t)
	stars := starImpacts(snap, home, away, in.Season, remaining, t)
	seasonTotal := seasonAverageTotal(in.Ratings)

	components := map[string]float64{
		tuning.PaceComponent:     paceProjection(pace, home, away, elapsed, remaining, t.League),
		tuning.ShootingComponent: shootingProjection(homeShooting, awayShooting, scoringRate, remaining),
		tuning.StarUtilization:   starProjection(stars, scoringRate, remaining),
		tuning.GameFlow:          gameFlowProjection(g.ScoreDifferential(), scoringRate, remaining, th),
		tuning.TeamRatings:       ratingsProjection(in.Ratings, remaining, t.League),
		tuning.Regression:        regressionProjection(seasonTotal, remaining),
	}

	projectedRemaining := 0.0
	for _, key := range t.TotalsWeights.Keys() {
		projectedRemaining += components[key] * t.TotalsWeights[key]
	}
	projectedFinal := float64(currentTotal) + projectedRemaining

	homeQ, awayQ, q3, q4 := projectQuarters(projectedRemaining, g, in.Ratings, elapsed, t)
	variance := projectionVariance(pace, homeShooting, awayShooting)

	reported := make(map[string]float64, len(components))
	for k, v := range components {
		reported[k] = round1(v)
	}
	factors := make(map[string]float64, len(t.TotalsWeights))
	for k, v := range t.TotalsWeights {
		factors[k] = round3(v)
	}

	return &models.GameTotalProjection{
		GameID:                  g.GameID,
		HomeTeam:                g.HomeTeamAbbr,
		AwayTeam:                g.AwayTeamAbbr,
		HomeScore:               g.HomeScore,
		AwayScore:               g.AwayScore,
		CurrentTotal:            currentTotal,
		ScoreDifferential:       g.ScoreDifferential(),
		Period:                  g.Period,
		GameClock:               g.GameClock,
		ElapsedMinutes:          round1(elapsed),
		RemainingMinutes:        round1(remaining),
		Pace:                    pace.record(),
		HomeShooting:            homeShooting,
		AwayShooting:            awayShooting,
		StarPlayers:             stars,
		HomeQuarters:            homeQ,
		AwayQuarters:            awayQ,
		ComponentProjections:    reported,
		ProjectedQ3Total:        round1(q3),
		ProjectedQ4Total:        round1(q4),
		ProjectedRemainingTotal: round1(projectedRemaining),
		ProjectedFinalTotal:     round1(projectedFinal),
		Spread:                  predictSpread(g, stars, in.Ratings, pace),
		OverUnder:               overUnder(projectedFinal, variance, in.ReferenceLine, seasonTotal, homeShooting, awayShooting, pace),
		TotalConfidence:         round1(totalConfidence(pace, homeShooting, awayShooting, stars, blowout, closeGame)),
		BlowoutRisk:             blowout,
		ModelFactors:            factors,
		Notes:                   analysisNotes(pace, homeShooting, awayShooting, stars, blowout, g),
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
