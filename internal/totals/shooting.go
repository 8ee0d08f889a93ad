package totals

import (
	"math"
	"sort"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/tuning"
)

const baselinePlayers = 5

// shootingProfile compares a team's live shooting to a season baseline built
// from its five heaviest-minute players, weighted by minutes. League
// averages stand in when none of them has season stats.
func shootingProfile(abbr string, players []models.LivePlayerStats, agg models.TeamAggregate, season map[int]*models.SeasonStats, t tuning.Tables) models.TeamShootingProfile {
	fga := float64(agg.FGAttempted)
	fta := float64(agg.FTAttempted)
	fg3a := float64(agg.FG3Attempted)

	liveEFG := (float64(agg.FGMade) + 0.5*float64(agg.FG3Made)) / math.Max(fga, 1) * 100
	liveTS := float64(agg.Points) / math.Max(2*(fga+0.44*fta), 1) * 100
	liveFG3Rate := fg3a / math.Max(fga, 1) * 100
	liveFG3Pct := float64(agg.FG3Made) / math.Max(fg3a, 1) * 100
	liveFTRate := fta / math.Max(fga, 1) * 100
	liveFTPct := float64(agg.FTMade) / math.Max(fta, 1) * 100

	league := t.League
	seasonEFG := league.EFGPct
	seasonTS := league.TSPct
	seasonFG3Rate := league.ThreePointRate
	seasonFG3Pct := league.ThreePointPct
	seasonFTRate := league.FreeThrowRate
	known := false

	if fg, fg3, ok := weightedSeasonShooting(players, season); ok {
		known = true
		seasonFG3Pct = fg3 * 100
		seasonEFG = (fg + 0.5*fg3*(seasonFG3Rate/100)) * 100
		seasonTS = seasonEFG * 1.08
	}

	deviation := liveEFG - seasonEFG
	regression := 1.0
	if math.Abs(deviation) > 5 {
		regression = 1.0 - deviation*t.ShootingRegressionRate/100
	}

	return models.TeamShootingProfile{
		TeamAbbr:            abbr,
		LiveEFGPct:          round1(liveEFG),
		LiveTSPct:           round1(liveTS),
		LiveFG3Rate:         round1(liveFG3Rate),
		LiveFG3Pct:          round1(liveFG3Pct),
		LiveFTRate:          round1(liveFTRate),
		LiveFTPct:           round1(liveFTPct),
		SeasonEFGPct:        round1(seasonEFG),
		SeasonTSPct:         round1(seasonTS),
		SeasonFG3Rate:       round1(seasonFG3Rate),
		SeasonFG3Pct:        round1(seasonFG3Pct),
		SeasonFTRate:        round1(seasonFTRate),
		SeasonBaselineKnown: known,
		RegressionFactor:    round3(regression),
		VarianceLevel:       varianceLevel(deviation),
	}
}

// weightedSeasonShooting returns minutes-weighted season FG% and 3P% as
// fractions. Weights are shares of the top five's minutes, so players
// without season stats dilute the result.
func weightedSeasonShooting(players []models.LivePlayerStats, season map[int]*models.SeasonStats) (fg, fg3 float64, ok bool) {
	top := make([]models.LivePlayerStats, len(players))
	copy(top, players)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Minutes > top[j].Minutes
	})
	if len(top) > baselinePlayers {
		top = top[:baselinePlayers]
	}

	totalMinutes := 0.0
	for _, p := range top {
		totalMinutes += p.Minutes
	}
	if totalMinutes <= 0 {
		return 0, 0, false
	}

	found := false
	for _, p := range top {
		stats := season[p.PlayerID]
		if stats == nil {
			continue
		}
		w := p.Minutes / totalMinutes
		fg += models.NormalizePct(stats.FGPct) * w
		fg3 += models.NormalizePct(stats.FG3Pct) * w
		found = true
	}
	return fg, fg3, found && fg > 0
}

func varianceLevel(deviation float64) string {
	switch {
	case deviation > 8:
		return models.ExtremeHot
	case deviation > 3:
		return models.Hot
	case deviation > -3:
		return models.Normal
	case deviation > -8:
		return models.Cold
	}
	return models.ExtremeCold
}

func isExtreme(level string) bool {
	return level == models.ExtremeHot || level == models.ExtremeCold
}

// shootingProjection extrapolates the scoring rate, damps it slightly and
// scales it by the teams' average regression factor.
func shootingProjection(home, away models.TeamShootingProfile, scoringRate, remaining float64) float64 {
	regression := (home.RegressionFactor + away.RegressionFactor) / 2
	projected := scoringRate * remaining * 0.97 * regression

	switch fg3Rate := (home.LiveFG3Rate + away.LiveFG3Rate) / 2; {
	case fg3Rate > 42:
		projected *= 1.02
	case fg3Rate < 30:
		projected *= 0.98
	}
	return projected
}
