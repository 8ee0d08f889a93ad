package models

// Recommendation is the categorical call attached to a player prop.
type Recommendation string

const (
	StrongAvoid Recommendation = "strong_avoid"
	Avoid       Recommendation = "avoid"
	Neutral     Recommendation = "neutral"
	Lean        Recommendation = "lean"
	Bet         Recommendation = "bet"
	StrongBet   Recommendation = "strong_bet"
)

var recommendationRank = map[Recommendation]int{
	StrongAvoid: 0,
	Avoid:       1,
	Neutral:     2,
	Lean:        3,
	Bet:         4,
	StrongBet:   5,
}

// Rank orders recommendations from strongest avoid to strongest bet.
func (r Recommendation) Rank() int {
	if rank, ok := recommendationRank[r]; ok {
		return rank
	}
	return recommendationRank[Neutral]
}

// Actionable reports whether the call suggests placing the bet.
func (r Recommendation) Actionable() bool {
	return r == StrongBet || r == Bet || r == Lean
}

// OverUnderCall is the recommendation for a game total.
type OverUnderCall string

const (
	StrongOver  OverUnderCall = "strong_over"
	LeanOver    OverUnderCall = "lean_over"
	NeutralCall OverUnderCall = "neutral"
	LeanUnder   OverUnderCall = "lean_under"
	StrongUnder OverUnderCall = "strong_under"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)
