// Package halftime projects live player stat lines and the basic game total
// from an in-progress box score.
package halftime

import (
	"math"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/tuning"
)

// Shooting derives the percentage splits for a live box score row. Each
// percentage is zero when its attempt count is zero.
func Shooting(p models.LivePlayerStats) models.ShootingMetrics {
	var m models.ShootingMetrics
	fga := float64(p.FGAttempted)
	if fga > 0 {
		m.FGPct = round1(float64(p.FGMade) / fga * 100)
		m.EFGPct = round1((float64(p.FGMade) + 0.5*float64(p.FG3Made)) / fga * 100)
		m.PointsPerShot = round2(float64(p.Points) / fga)
	}
	if p.FG3Attempted > 0 {
		m.FG3Pct = round1(float64(p.FG3Made) / float64(p.FG3Attempted) * 100)
	}
	if p.FTAttempted > 0 {
		m.FTPct = round1(float64(p.FTMade) / float64(p.FTAttempted) * 100)
	}
	if tsa := fga + 0.44*float64(p.FTAttempted); tsa > 0 {
		m.TSPct = round1(float64(p.Points) / (2 * tsa) * 100)
	}
	return m
}

// AssistToTurnover is nil when the ratio is undefined (no turnovers and no
// assists). With no turnovers the assist count itself is used.
func AssistToTurnover(p models.LivePlayerStats) *float64 {
	if p.Turnovers == 0 {
		if p.Assists > 0 {
			v := float64(p.Assists)
			return &v
		}
		return nil
	}
	v := round2(float64(p.Assists) / float64(p.Turnovers))
	return &v
}

// Utilization is the player's share of the team's used possessions, as a
// percentage. known is false when the team has used none.
func Utilization(p models.LivePlayerStats, team models.TeamAggregate) (rate float64, known bool) {
	if team.UsedPossessions <= 0 {
		return 0, false
	}
	return p.UsedPossessions() / team.UsedPossessions * 100, true
}

// UtilizationMultiplier damps very high usage and lifts low usage.
func UtilizationMultiplier(rate float64, known bool) float64 {
	if !known {
		return 1.0
	}
	switch {
	case rate > 30:
		return 0.90 + (30-rate)*0.01
	case rate < 15:
		return 1.05
	}
	return 1.0
}

// PaceFactor compares the combined scoring rate to the league-average rate.
func PaceFactor(totalScore int, elapsed float64, league tuning.LeagueAverages) float64 {
	if elapsed <= 0 {
		return 1.0
	}
	expected := league.TotalPoints / models.RegulationMinutes
	if expected <= 0 {
		return 1.0
	}
	return (float64(totalScore) / elapsed) / expected
}

func PlusMinusFactor(plusMinus int, minutes float64) float64 {
	if minutes <= 0 {
		return 1.0
	}
	factor := 1.0 + float64(plusMinus)/minutes*0.02
	return clamp(factor, 0.85, 1.15)
}

// OpponentDefAdjustment bands the opponent's defensive rank, 1 best to 30 worst.
func OpponentDefAdjustment(rank int) float64 {
	switch {
	case rank <= 5:
		return 0.90
	case rank <= 10:
		return 0.95
	case rank <= 20:
		return 1.0
	case rank <= 25:
		return 1.05
	}
	return 1.10
}

// ShootingEfficiencyFactor lifts hot shooters and trims cold ones. Points use
// true shooting, threes use 3P%, other stats get a small boost for
// efficient scorers.
func ShootingEfficiencyFactor(m models.ShootingMetrics, st models.StatType) float64 {
	switch st {
	case models.StatPoints:
		switch {
		case m.TSPct >= 70:
			return 1.12
		case m.TSPct >= 60:
			return 1.08
		case m.TSPct >= 55:
			return 1.04
		case m.TSPct >= 45:
			return 1.0
		case m.TSPct >= 35:
			return 0.95
		}
		return 0.90
	case models.StatThrees:
		switch {
		case m.FG3Pct >= 50:
			return 1.10
		case m.FG3Pct >= 40:
			return 1.05
		case m.FG3Pct >= 33:
			return 1.0
		case m.FG3Pct >= 20:
			return 0.95
		}
		return 0.90
	}
	if m.TSPct >= 55 {
		return 1.02
	}
	return 1.0
}

// ShotVolumeFactor bands shots per minute, FGA plus 0.44 FTA. Volume matters
// more for points than for other stats.
func ShotVolumeFactor(fga, fta int, minutes float64, st models.StatType) float64 {
	if minutes <= 0 {
		return 1.0
	}
	perMinute := (float64(fga) + 0.44*float64(fta)) / minutes

	if st == models.StatPoints {
		switch {
		case perMinute >= 1.0:
			return 1.15
		case perMinute >= 0.75:
			return 1.10
		case perMinute >= 0.5:
			return 1.05
		case perMinute >= 0.3:
			return 1.0
		}
		return 0.90
	}

	switch {
	case perMinute >= 0.75:
		return 1.05
	case perMinute >= 0.4:
		return 1.0
	}
	return 0.95
}

// FoulTrouble is reached at the foul threshold or above the per-minute foul rate.
func FoulTrouble(fouls int, minutes float64, th tuning.Thresholds) bool {
	if fouls >= th.FoulTrouble {
		return true
	}
	return minutes > 0 && float64(fouls)/minutes > th.FoulRatePerMinute
}

func Blowout(scoreDifferential int, th tuning.Thresholds) bool {
	return math.Abs(float64(scoreDifferential)) >= th.BlowoutMargin
}

// FatigueFactor scales production for schedule fatigue.
func FatigueFactor(backToBack bool, restDays int, t tuning.Tables) float64 {
	if backToBack {
		return t.BackToBackFactor
	}
	if restDays >= t.RestedDays {
		return t.RestedFactor
	}
	return 1.0
}

// MinutesProjection extrapolates the player's minutes share over the rest
// of the game, cut for foul trouble and adjusted for blowout rotations. It
// never exceeds half a game or the minutes left.
func MinutesProjection(minutes, elapsed, remaining float64, foulTrouble, blowout, starter bool) float64 {
	if elapsed <= 0 || remaining <= 0 {
		return 0
	}
	projected := minutes * remaining / elapsed

	if foulTrouble {
		projected *= 0.75
	}
	if blowout {
		if starter {
			projected *= 0.70
		} else {
			projected *= 1.15
		}
	}
	return math.Min(projected, math.Min(models.HalfMinutes, remaining))
}

// ScoreSituationMultiplier reflects rotation patterns: garbage time in
// blowouts, heavier star minutes in tight games.
func ScoreSituationMultiplier(scoreDifferential int, blowout bool) float64 {
	margin := math.Abs(float64(scoreDifferential))
	switch {
	case blowout:
		return 0.75
	case margin <= 5:
		return 1.08
	case margin <= 10:
		return 1.03
	}
	return 1.0
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
