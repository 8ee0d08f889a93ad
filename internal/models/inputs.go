package models

import "time"

// GameInputs is everything a live analysis needs after the gather phase.
// Missing entries in the maps mean the collaborator had nothing to offer.
type GameInputs struct {
	Snapshot LiveSnapshot `json:"snapshot"`
	Ratings  RatingsPair  `json:"ratings"`

	Season     map[int]*SeasonStats       `json:"season,omitempty"`
	History    map[int][]StatObservation  `json:"history,omitempty"`
	BackToBack map[int]bool               `json:"back_to_back,omitempty"`

	// PropLines are caller-supplied lines keyed by player name.
	PropLines     map[string]map[StatType]float64 `json:"prop_lines,omitempty"`
	ReferenceLine *float64                        `json:"reference_line,omitempty"`

	AnalyzedAt time.Time `json:"analyzed_at"`
	// Notes explain defaults substituted while gathering.
	Notes []string `json:"notes,omitempty"`
}

// SeasonFor returns the player's season stats or nil.
func (in GameInputs) SeasonFor(playerID int) *SeasonStats {
	if in.Season == nil {
		return nil
	}
	return in.Season[playerID]
}

// HalftimeAnalysis is the complete live analysis of one game.
type HalftimeAnalysis struct {
	GameID            string               `json:"game_id"`
	GameInfo          LiveGame             `json:"game_info"`
	ScoreDifferential int                  `json:"score_differential"`
	TotalScore        int                  `json:"total_score"`
	Ratings           RatingsPair          `json:"team_ratings"`
	NetRatings        map[string]float64   `json:"net_ratings"`
	GameTotals        TeamTotalsProjection `json:"game_total_analysis"`
	Players           []PlayerProjection   `json:"player_analyses"`
	Suggestions       []Suggestion         `json:"suggestions"`
	Warnings          []string             `json:"warnings"`
	Enhanced          *GameTotalProjection `json:"enhanced_game_totals,omitempty"`
	Notes             []string             `json:"notes,omitempty"`
	AnalyzedAt        string               `json:"analyzed_at"`
}
