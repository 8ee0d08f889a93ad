package models

// PlayerRef identifies a player as resolved by a directory provider.
type PlayerRef struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	TeamID   int    `json:"team_id,omitempty"`
	TeamAbbr string `json:"team_abbr,omitempty"`
}

type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Abbr string `json:"abbr"`
}

// PropLine is a proposed prop bet. PlayerID is zero when the caller only knows
// the player's name.
type PropLine struct {
	PropID       string    `json:"prop_id"`
	PlayerName   string    `json:"player_name"`
	PlayerID     int       `json:"player_id,omitempty"`
	StatType     StatType  `json:"stat_type"`
	Line         float64   `json:"line"`
	Direction    Direction `json:"over_under"`
	OpponentName string    `json:"opponent_name,omitempty"`
}

// PropAnalysis is the history-based evaluation of a single prop.
type PropAnalysis struct {
	PropID                 string             `json:"prop_id"`
	PlayerName             string             `json:"player_name"`
	StatType               StatType           `json:"stat_type"`
	Line                   float64            `json:"line"`
	Direction              Direction          `json:"over_under"`
	ConfidenceScore        float64            `json:"confidence_score"`
	HitRate                float64            `json:"hit_rate_last_10"`
	AverageStat            float64            `json:"average_stat"`
	GamesAnalyzed          int                `json:"games_analyzed"`
	OpponentDefensiveRank  *int               `json:"opponent_defensive_rank,omitempty"`
	PaceAdjustedProjection float64            `json:"pace_adjusted_projection"`
	Factors                map[string]float64 `json:"factors"`
	Recommendation         Recommendation     `json:"recommendation"`
	Notes                  string             `json:"analysis_notes"`
}

type Parlay struct {
	PropIDs     []string `json:"props"`
	Confidence  float64  `json:"confidence"`
	Description string   `json:"description"`
}

// SlipAnalysis summarizes a set of analyzed props.
type SlipAnalysis struct {
	OverallConfidence float64        `json:"overall_confidence"`
	RiskAssessment    RiskLevel      `json:"risk_assessment"`
	RecommendedBets   []string       `json:"recommended_bets"`
	ParlaySuggestions []Parlay       `json:"parlay_suggestions"`
	PropAnalyses      []PropAnalysis `json:"prop_analyses"`
}
