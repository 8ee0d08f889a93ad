package totals

import (
	"math"

	"github.com/stitts-dev/prop-engine/internal/models"
)

// Momentum indicators.
const (
	MomentumHome    = "home"
	MomentumAway    = "away"
	MomentumNeutral = "neutral"
)

// predictSpread blends the live home margin with the net-rating margin and
// shifts it by the star impact differential.
func predictSpread(g models.LiveGame, stars []models.StarPlayerImpact, ratings models.RatingsPair, pace paceState) models.SpreadPrediction {
	current := g.Spread()

	ratingSpread := (ratings.Home.NetRating() - ratings.Away.NetRating()) / 2
	projected := float64(current)*0.60 + ratingSpread*0.40

	homeImpact, awayImpact := 0.0, 0.0
	for _, s := range stars {
		if s.Home {
			homeImpact += s.ImpactOnTeamTotal
		} else {
			awayImpact += s.ImpactOnTeamTotal
		}
	}
	starDiff := homeImpact - awayImpact
	projected += starDiff * 0.3

	momentum := MomentumNeutral
	if pace.trend == PaceAccelerating {
		switch {
		case current > 5:
			momentum = MomentumHome
		case current < -5:
			momentum = MomentumAway
		}
	}

	margin := math.Abs(projected)
	confidence := 50.0
	if math.Abs(float64(current)) > 15 {
		confidence += 15
	}
	if ratings.Known() {
		confidence += 10
	}

	return models.SpreadPrediction{
		CurrentSpread:               current,
		HomeLead:                    current > 0,
		ProjectedFinalSpread:        round1(projected),
		SpreadConfidence:            round1(clamp(confidence, 20, 85)),
		StarPerformanceDifferential: round1(starDiff),
		MomentumIndicator:           momentum,
		CloseGameProbability:        round1(clamp(45-margin*3, 5, 60)),
		BlowoutProbability:          round1(clamp(margin*2.5-10, 2, 50)),
	}
}
