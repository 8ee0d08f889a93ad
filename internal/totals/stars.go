package totals

import (
	"math"
	"sort"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/tuning"
)

const (
	starsPerTeam  = 3
	hotRatio      = 1.25
	coldRatio     = 0.75
	hotIndicator  = "hot"
	coldIndicator = "cold"
)

type usage struct {
	player models.LivePlayerStats
	rate   float64
}

// starImpacts picks each team's three heaviest-usage players and projects
// their remaining points against a season-implied baseline.
func starImpacts(snap models.LiveSnapshot, home, away models.TeamAggregate, season map[int]*models.SeasonStats, remaining float64, t tuning.Tables) []models.StarPlayerImpact {
	stars := make([]models.StarPlayerImpact, 0, 2*starsPerTeam)
	blowout := math.Abs(float64(snap.Game.ScoreDifferential())) >= t.Thresholds.BlowoutMargin

	sides := []struct {
		abbr    string
		isHome  bool
		players []models.LivePlayerStats
		agg     models.TeamAggregate
	}{
		{snap.Game.HomeTeamAbbr, true, snap.Home, home},
		{snap.Game.AwayTeamAbbr, false, snap.Away, away},
	}

	for _, side := range sides {
		ranked := make([]usage, 0, len(side.players))
		for _, p := range side.players {
			if p.Minutes < t.Thresholds.StarMinMinutes {
				continue
			}
			ranked = append(ranked, usage{
				player: p,
				rate:   p.UsedPossessions() / math.Max(side.agg.EstimatedPossessions, 1) * 100,
			})
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].rate > ranked[j].rate
		})
		if len(ranked) > starsPerTeam {
			ranked = ranked[:starsPerTeam]
		}

		for _, u := range ranked {
			stars = append(stars, starImpact(u, side.abbr, side.isHome, season[u.player.PlayerID], blowout, remaining, t))
		}
	}
	return stars
}

func starImpact(u usage, abbr string, isHome bool, season *models.SeasonStats, blowout bool, remaining float64, t tuning.Tables) models.StarPlayerImpact {
	p := u.player
	starterMinutes := t.League.StarterMinutes

	ts := 0.0
	if p.FGAttempted > 0 || p.FTAttempted > 0 {
		ts = float64(p.Points) / math.Max(2*(float64(p.FGAttempted)+0.44*float64(p.FTAttempted)), 1) * 100
	}

	foulTrouble := p.Fouls >= t.Thresholds.FoulTrouble
	risk := models.MinutesRiskNormal
	switch {
	case foulTrouble:
		risk = models.MinutesRiskFoul
	case blowout:
		risk = models.MinutesRiskBlowout
	}

	seasonPPG, seasonKnown := season.Average(models.StatPoints)

	indicator := models.Normal
	if seasonKnown && p.Minutes >= t.Thresholds.HotColdMinMinutes {
		livePerMinute := float64(p.Points) / math.Max(p.Minutes, 1)
		ratio := livePerMinute / math.Max(seasonPPG/starterMinutes, 0.01)
		switch {
		case ratio > hotRatio:
			indicator = hotIndicator
		case ratio < coldRatio:
			indicator = coldIndicator
		}
	}

	minutes := math.Min(remaining, models.HalfMinutes)
	switch risk {
	case models.MinutesRiskFoul:
		minutes *= 0.75
	case models.MinutesRiskBlowout:
		if p.Starter {
			minutes *= 0.70
		} else {
			minutes *= 1.15
		}
	}
	minutes = math.Min(minutes, remaining)

	points := 0.0
	if p.Minutes > 0 {
		livePerMinute := float64(p.Points) / p.Minutes
		rate := livePerMinute * 0.85
		if seasonKnown {
			rate = livePerMinute*0.60 + seasonPPG/starterMinutes*0.40
		}
		points = rate * minutes
	}

	baseline := points
	if seasonKnown {
		baseline = seasonPPG * remaining / models.RegulationMinutes
	}

	impact := models.StarPlayerImpact{
		PlayerName:        p.PlayerName,
		PlayerID:          p.PlayerID,
		TeamAbbr:          abbr,
		Home:              isHome,
		Points:            p.Points,
		Minutes:           round1(p.Minutes),
		UsageRate:         round1(u.rate),
		CurrentEfficiency: round1(ts),
		FoulTrouble:       foulTrouble,
		FoulCount:         p.Fouls,
		ProjectedPoints:   round1(points),
		ProjectedMinutes:  round1(minutes),
		HotColdIndicator:  indicator,
		MinutesRisk:       risk,
		ImpactOnTeamTotal: round1(points - baseline),
	}
	if seasonKnown {
		v := round1(seasonPPG)
		impact.SeasonPPG = &v
	}
	return impact
}

// starProjection adjusts the extrapolated rate by the stars' combined
// impact, foul trouble and hot or cold shooting. It never drops below 70%
// of the plain extrapolation.
func starProjection(stars []models.StarPlayerImpact, scoringRate, remaining float64) float64 {
	base := scoringRate * remaining * 0.95
	if len(stars) == 0 {
		return base
	}

	impact := 0.0
	for _, s := range stars {
		impact += s.ImpactOnTeamTotal
		if s.FoulTrouble {
			base -= 3.5
		}
		switch s.HotColdIndicator {
		case hotIndicator:
			base += 1.5
		case coldIndicator:
			base -= 1.0
		}
	}
	return math.Max(base+impact*0.5, scoringRate*remaining*0.70)
}
