package models

// ShootingMetrics are percentages on a 0-100 scale, each zero when its
// attempt count is zero.
type ShootingMetrics struct {
	FGPct         float64 `json:"fg_pct"`
	FG3Pct        float64 `json:"fg3_pct"`
	FTPct         float64 `json:"ft_pct"`
	EFGPct        float64 `json:"efg_pct"`
	TSPct         float64 `json:"ts_pct"`
	PointsPerShot float64 `json:"points_per_shot"`
}

// EfficiencyRating bands true shooting.
func (m ShootingMetrics) EfficiencyRating() string {
	switch {
	case m.TSPct >= 65:
		return "elite"
	case m.TSPct >= 58:
		return "excellent"
	case m.TSPct >= 52:
		return "good"
	case m.TSPct >= 45:
		return "average"
	default:
		return "poor"
	}
}

// PlayerProjection is the live projection of one player's stat line.
type PlayerProjection struct {
	PlayerID   int      `json:"player_id"`
	PlayerName string   `json:"player_name"`
	TeamAbbr   string   `json:"team_abbreviation"`
	StatType   StatType `json:"prop_type"`
	PropLine   float64  `json:"prop_line"`

	CurrentValue   float64 `json:"first_half_value"`
	CurrentMinutes float64 `json:"first_half_minutes"`

	ProjectedRemaining float64 `json:"projected_second_half"`
	ProjectedFinal     float64 `json:"projected_final"`

	ConfidenceScore float64        `json:"confidence_score"`
	Recommendation  Recommendation `json:"recommendation"`

	Components map[string]float64 `json:"components"`
	Factors    map[string]float64 `json:"factors"`

	FoulTrouble       bool    `json:"foul_trouble"`
	BlowoutWarning    bool    `json:"blowout_warning"`
	PaceFactor        float64 `json:"pace_factor"`
	UtilizationRate   float64 `json:"utilization_rate"`
	UtilizationKnown  bool    `json:"utilization_known"`
	FatigueFactor     float64 `json:"fatigue_factor"`
	MinutesProjection float64 `json:"minutes_projection"`

	Shooting          ShootingMetrics `json:"shooting_metrics"`
	EfficiencyRating  string          `json:"efficiency_rating"`
	AssistToTurnover  *float64        `json:"assist_to_turnover,omitempty"`
	OpponentDefRank   int             `json:"opponent_def_rank"`
	OpponentDefRating float64         `json:"opponent_def_rating"`
	TeamOffRating     float64         `json:"team_off_rating"`

	SeasonAverage           *float64 `json:"season_average,omitempty"`
	SecondHalfHistoricalAvg *float64 `json:"second_half_historical_avg,omitempty"`
	HistoricalConsistency   *float64 `json:"historical_consistency,omitempty"`
	PlusMinus               int      `json:"plus_minus"`

	Notes []string `json:"notes,omitempty"`
}

// Suggestion is a ranked, actionable live prop.
type Suggestion struct {
	PlayerName      string         `json:"player_name"`
	TeamAbbr        string         `json:"team_abbreviation"`
	StatType        StatType       `json:"prop_type"`
	PropLine        float64        `json:"prop_line"`
	CurrentValue    float64        `json:"current_value"`
	ProjectedFinal  float64        `json:"projected_final"`
	ConfidenceScore float64        `json:"confidence_score"`
	Recommendation  Recommendation `json:"recommendation"`
	Edge            float64        `json:"edge"`
	RiskLevel       RiskLevel      `json:"risk_level"`
	KeyFactors      []string       `json:"key_factors"`
}

// TeamTotalsProjection is the basic pace-extrapolated total.
type TeamTotalsProjection struct {
	GameID            string  `json:"game_id"`
	HomeTeam          string  `json:"home_team"`
	AwayTeam          string  `json:"away_team"`
	CurrentTotal      int     `json:"current_total"`
	ScoreDifferential int     `json:"score_differential"`
	ElapsedMinutes    float64 `json:"elapsed_minutes"`

	PointsPerMinute         float64 `json:"first_half_pace"`
	PaceRating              string  `json:"pace_rating"`
	LeagueAvgPaceComparison float64 `json:"league_avg_pace_comparison"`
	PaceSustainability      float64 `json:"pace_sustainability"`

	ProjectedRemainingTotal float64 `json:"projected_second_half_total"`
	ProjectedFinalTotal     float64 `json:"projected_final_total"`
	ProjectedQ3Total        float64 `json:"projected_q3_total"`
	ProjectedQ4Total        float64 `json:"projected_q4_total"`

	TotalConfidence float64 `json:"total_confidence"`
	BlowoutRisk     bool    `json:"blowout_risk"`
}
