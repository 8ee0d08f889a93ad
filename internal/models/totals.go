package models

type PaceAnalysis struct {
	PossessionsElapsed   float64  `json:"first_half_possessions_est"`
	PossessionsPer48Live float64  `json:"possessions_per_48_live"`
	PPPHome              float64  `json:"points_per_possession_home"`
	PPPAway              float64  `json:"points_per_possession_away"`
	HomeSeasonPace       float64  `json:"home_season_pace"`
	AwaySeasonPace       float64  `json:"away_season_pace"`
	MatchupExpectedPace  float64  `json:"matchup_expected_pace"`
	PaceDeviation        float64  `json:"pace_deviation"`
	PaceTrend            string   `json:"pace_trend"`
	Q1Pace               *float64 `json:"q1_pace,omitempty"`
	Q2Pace               *float64 `json:"q2_pace,omitempty"`
}

// Shooting variance levels.
const (
	ExtremeHot  = "extreme_hot"
	Hot         = "hot"
	Normal      = "normal"
	Cold        = "cold"
	ExtremeCold = "extreme_cold"
)

type TeamShootingProfile struct {
	TeamAbbr string `json:"team_abbr"`

	LiveEFGPct  float64 `json:"live_efg_pct"`
	LiveTSPct   float64 `json:"live_ts_pct"`
	LiveFG3Rate float64 `json:"live_fg3_rate"`
	LiveFG3Pct  float64 `json:"live_fg3_pct"`
	LiveFTRate  float64 `json:"live_ft_rate"`
	LiveFTPct   float64 `json:"live_ft_pct"`

	SeasonEFGPct  float64 `json:"season_efg_pct"`
	SeasonTSPct   float64 `json:"season_ts_pct"`
	SeasonFG3Rate float64 `json:"season_fg3_rate"`
	SeasonFG3Pct  float64 `json:"season_fg3_pct"`
	SeasonFTRate  float64 `json:"season_ft_rate"`
	// SeasonBaselineKnown is false when league averages stood in for the
	// roster's season shooting.
	SeasonBaselineKnown bool `json:"season_baseline_known"`

	RegressionFactor float64 `json:"shooting_regression_factor"`
	VarianceLevel    string  `json:"shooting_variance_level"`
}

// Star minutes risk tags.
const (
	MinutesRiskNormal  = "normal"
	MinutesRiskFoul    = "foul_risk"
	MinutesRiskBlowout = "blowout_risk"
)

type StarPlayerImpact struct {
	PlayerName        string   `json:"player_name"`
	PlayerID          int      `json:"player_id"`
	TeamAbbr          string   `json:"team_abbr"`
	Home              bool     `json:"home"`
	Points            int      `json:"first_half_points"`
	Minutes           float64  `json:"first_half_minutes"`
	UsageRate         float64  `json:"usage_rate"`
	CurrentEfficiency float64  `json:"current_efficiency"`
	FoulTrouble       bool     `json:"foul_trouble"`
	FoulCount         int      `json:"foul_count"`
	SeasonPPG         *float64 `json:"season_ppg,omitempty"`
	ProjectedPoints   float64  `json:"projected_2h_points"`
	ProjectedMinutes  float64  `json:"projected_2h_minutes"`
	HotColdIndicator  string   `json:"hot_cold_indicator"`
	MinutesRisk       string   `json:"minutes_risk"`
	ImpactOnTeamTotal float64  `json:"impact_on_team_total"`
}

type TeamQuarterProjection struct {
	TeamAbbr            string  `json:"team_abbr"`
	Q3Projected         float64 `json:"q3_projected"`
	Q4Projected         float64 `json:"q4_projected"`
	OTProbability       float64 `json:"ot_probability"`
	ProjectedFinalScore float64 `json:"projected_final_score"`
}

type SpreadPrediction struct {
	CurrentSpread               int     `json:"current_spread"`
	HomeLead                    bool    `json:"home_lead"`
	ProjectedFinalSpread        float64 `json:"projected_final_spread"`
	SpreadConfidence            float64 `json:"spread_confidence"`
	StarPerformanceDifferential float64 `json:"star_performance_differential"`
	MomentumIndicator           string  `json:"momentum_indicator"`
	CloseGameProbability        float64 `json:"close_game_probability"`
	BlowoutProbability          float64 `json:"blowout_probability"`
}

type OverUnderRecommendation struct {
	ProjectedTotal     float64       `json:"projected_total"`
	ProjectedRangeLow  float64       `json:"projected_range_low"`
	ProjectedRangeHigh float64       `json:"projected_range_high"`
	ReferenceLine      float64       `json:"reference_line"`
	LineEstimated      bool          `json:"line_estimated"`
	Edge               float64       `json:"edge"`
	EdgePct            float64       `json:"edge_pct"`
	Recommendation     OverUnderCall `json:"recommendation"`
	Confidence         float64       `json:"confidence"`
}

// GameTotalProjection is the advanced multi-component total projection.
type GameTotalProjection struct {
	GameID            string  `json:"game_id"`
	HomeTeam          string  `json:"home_team"`
	AwayTeam          string  `json:"away_team"`
	HomeScore         int     `json:"home_score"`
	AwayScore         int     `json:"away_score"`
	CurrentTotal      int     `json:"current_total"`
	ScoreDifferential int     `json:"score_differential"`
	Period            int     `json:"period"`
	GameClock         string  `json:"game_clock"`
	ElapsedMinutes    float64 `json:"elapsed_minutes"`
	RemainingMinutes  float64 `json:"remaining_minutes"`

	Pace         PaceAnalysis        `json:"pace_analysis"`
	HomeShooting TeamShootingProfile `json:"home_shooting"`
	AwayShooting TeamShootingProfile `json:"away_shooting"`
	StarPlayers  []StarPlayerImpact  `json:"star_players"`

	HomeQuarters TeamQuarterProjection `json:"home_quarters"`
	AwayQuarters TeamQuarterProjection `json:"away_quarters"`

	// ComponentProjections are each model's remaining-points estimate.
	ComponentProjections map[string]float64 `json:"component_projections"`

	ProjectedQ3Total        float64 `json:"projected_q3_total"`
	ProjectedQ4Total        float64 `json:"projected_q4_total"`
	ProjectedRemainingTotal float64 `json:"projected_second_half_total"`
	ProjectedFinalTotal     float64 `json:"projected_final_total"`

	Spread    SpreadPrediction        `json:"spread_prediction"`
	OverUnder OverUnderRecommendation `json:"over_under"`

	TotalConfidence float64            `json:"total_confidence"`
	BlowoutRisk     bool               `json:"blowout_risk"`
	ModelFactors    map[string]float64 `json:"model_factors"`
	Notes           []string           `json:"analysis_notes"`
}
