// Package tuning holds the named constants the projection engines are built
// from: league averages, thresholds and the weighted-combination tables.
package tuning

import (
	"fmt"
	"math"
	"sort"
)

// Live projector component keys.
const (
	FirstHalfTrend     = "first_half_trend"
	ShootingEfficiency = "shooting_efficiency"
	ShotVolume         = "shot_volume"
	OpponentDefense    = "opponent_defense"
	ScoreSituation     = "score_situation"
	Historical2HAvg    = "historical_2h_avg"
	PaceAdjustment     = "pace_adjustment"
	PlusMinusFactor    = "plus_minus_factor"
	UtilizationRate    = "utilization_rate"
	FatigueFactor      = "fatigue_factor"
)

// Game totals component keys.
const (
	PaceComponent     = "pace_component"
	ShootingComponent = "shooting_component"
	StarUtilization   = "star_utilization"
	GameFlow          = "game_flow"
	TeamRatings       = "team_ratings"
	Regression        = "regression"
)

// Prop history factor keys.
const (
	RecentTrend = "recent_trend"
	Consistency = "consistency"
	HomeAway    = "home_away"
	Rest        = "rest"
	PlayingTime = "playing_time"
)

const weightTolerance = 1e-6

// WeightTable maps component names to their coefficient.
type WeightTable map[string]float64

func (w WeightTable) Sum() float64 {
	total := 0.0
	for _, k := range w.Keys() {
		total += w[k]
	}
	return total
}

// Keys returns the component names in a stable order so that sums over the
// table are reproducible bit for bit.
func (w WeightTable) Keys() []string {
	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Normalized reports whether the coefficients sum to 1.0.
func (w WeightTable) Normalized() bool {
	return math.Abs(w.Sum()-1.0) <= weightTolerance
}

// Clone returns an independent copy.
func (w WeightTable) Clone() WeightTable {
	out := make(WeightTable, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

type LeagueAverages struct {
	Pace                float64 // possessions per 48
	TotalPoints         float64 // combined score per game
	OffRating           float64
	DefRating           float64
	PointsPerPossession float64
	EFGPct              float64
	TSPct               float64
	ThreePointRate      float64 // share of FGA taken from three
	ThreePointPct       float64
	FreeThrowRate       float64
	DefRank             int
	StarterMinutes      float64 // minutes used to convert season ppg into a per-minute rate
}

type Thresholds struct {
	BlowoutMargin        float64
	CloseGameMargin      float64
	ModerateLeadMargin   float64
	FoulTrouble          int
	FoulRatePerMinute    float64
	MinPlayerMinutes     float64 // live players below this are not projected
	StarMinMinutes       float64
	HotColdMinMinutes    float64
	SuggestionConfidence float64
	RecommendedProp      float64 // slip confidence needed for a recommended bet
	HighUtilization      float64
}

// SecondHalfShares approximates a player's second-half average as a fixed
// share of the season per-game average.
type SecondHalfShares struct {
	Points   float64
	Rebounds float64
	Assists  float64
}

type Tables struct {
	League     LeagueAverages
	Thresholds Thresholds
	SecondHalf SecondHalfShares

	ProjectionWeights WeightTable
	TotalsWeights     WeightTable
	// PropFactorWeights are confidence points per unit of factor, not a
	// normalized blend.
	PropFactorWeights WeightTable

	HalftimeQ3PaceFactor   float64
	PaceSustainability     float64
	TotalsQ3PaceFactor     float64
	Q4CloseFactor          float64
	Q4ModerateFactor       float64
	Q4BlowoutFactor        float64
	ShootingRegressionRate float64
	BackToBackFactor       float64
	RestedFactor           float64
	RestedDays             int
}

// Default returns the calibrated constants the engines ship with.
func Default() Tables {
	return Tables{
		League: LeagueAverages{
			Pace:                100.0,
			TotalPoints:         225.0,
			OffRating:           114.0,
			DefRating:           114.0,
			PointsPerPossession: 1.14,
			EFGPct:              52.5,
			TSPct:               57.5,
			ThreePointRate:      38.0,
			ThreePointPct:       36.0,
			FreeThrowRate:       25.0,
			DefRank:             15,
			StarterMinutes:      34.0,
		},
		Thresholds: Thresholds{
			BlowoutMargin:        20,
			CloseGameMargin:      8,
			ModerateLeadMargin:   15,
			FoulTrouble:          3,
			FoulRatePerMinute:    0.125,
			MinPlayerMinutes:     5,
			StarMinMinutes:       3,
			HotColdMinMinutes:    8,
			SuggestionConfidence: 60,
			RecommendedProp:      58,
			HighUtilization:      35,
		},
		SecondHalf: SecondHalfShares{
			Points:   0.48,
			Rebounds: 0.52,
			Assists:  0.48,
		},
		ProjectionWeights: WeightTable{
			FirstHalfTrend:     0.18,
			ShootingEfficiency: 0.18,
			ShotVolume:         0.15,
			OpponentDefense:    0.14,
			ScoreSituation:     0.10,
			Historical2HAvg:    0.08,
			PaceAdjustment:     0.07,
			PlusMinusFactor:    0.05,
			UtilizationRate:    0.03,
			FatigueFactor:      0.02,
		},
		TotalsWeights: WeightTable{
			PaceComponent:     0.30,
			ShootingComponent: 0.25,
			StarUtilization:   0.20,
			GameFlow:          0.10,
			TeamRatings:       0.10,
			Regression:        0.05,
		},
		PropFactorWeights: WeightTable{
			RecentTrend: 8,
			Consistency: 10,
			HomeAway:    5,
			Rest:        3,
			PlayingTime: 8,
		},
		HalftimeQ3PaceFactor:   0.92,
		PaceSustainability:     0.95,
		TotalsQ3PaceFactor:     0.91,
		Q4CloseFactor:          1.06,
		Q4ModerateFactor:       0.98,
		Q4BlowoutFactor:        0.88,
		ShootingRegressionRate: 0.40,
		BackToBackFactor:       0.92,
		RestedFactor:           1.02,
		RestedDays:             3,
	}
}

// Validate checks the invariants the engines rely on. Servers call it at
// startup and refuse to run with a table that fails.
func (t Tables) Validate() error {
	for name, table := range map[string]WeightTable{
		"projection weights": t.ProjectionWeights,
		"totals weights":     t.TotalsWeights,
	} {
		if len(table) == 0 {
			return fmt.Errorf("%s: empty table", name)
		}
		for k, v := range table {
			if v < 0 {
				return fmt.Errorf("%s: negative coefficient %s=%v", name, k, v)
			}
		}
		if !table.Normalized() {
			return fmt.Errorf("%s: coefficients sum to %.6f, want 1.0", name, table.Sum())
		}
	}

	if t.League.TotalPoints <= 0 || t.League.Pace <= 0 || t.League.PointsPerPossession <= 0 {
		return fmt.Errorf("league averages must be positive")
	}
	if t.Thresholds.BlowoutMargin <= 0 || t.Thresholds.FoulTrouble <= 0 {
		return fmt.Errorf("blowout and foul trouble thresholds must be positive")
	}
	if t.Thresholds.CloseGameMargin >= t.Thresholds.ModerateLeadMargin ||
		t.Thresholds.ModerateLeadMargin >= t.Thresholds.BlowoutMargin {
		return fmt.Errorf("score margins must satisfy close < moderate < blowout")
	}
	return nil
}

// WithOverrides applies the deployment-tunable thresholds.
func (t Tables) WithOverrides(blowoutMargin float64, foulTrouble int) Tables {
	out := t
	out.ProjectionWeights = t.ProjectionWeights.Clone()
	out.TotalsWeights = t.TotalsWeights.Clone()
	out.PropFactorWeights = t.PropFactorWeights.Clone()
	if blowoutMargin > 0 {
		out.Thresholds.BlowoutMargin = blowoutMargin
	}
	if foulTrouble > 0 {
		out.Thresholds.FoulTrouble = foulTrouble
	}
	return out
}
