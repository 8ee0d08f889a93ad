package models

// Defensive rank categories.
const (
	DefRankPoints   = "pts"
	DefRankRebounds = "reb"
	DefRankAssists  = "ast"
	DefRankThrees   = "3pm"
)

// League-average ratings used whenever a team's ratings are unavailable.
const (
	DefaultOffRating = 114.0
	DefaultDefRating = 114.0
	DefaultPace      = 100.0
	DefaultDefRank   = 15
)

// TeamRatings carries season ratings for one team. Ranks run from 1 (best
// defense) to 30 (worst). Defaulted marks league-average stand-ins.
type TeamRatings struct {
	TeamID    int            `json:"team_id"`
	TeamAbbr  string         `json:"team_abbr"`
	OffRating float64        `json:"off_rating"`
	DefRating float64        `json:"def_rating"`
	Pace      float64        `json:"pace"`
	DefRanks  map[string]int `json:"def_ranks"`
	Defaulted bool           `json:"defaulted"`
}

func DefaultTeamRatings(teamID int, abbr string) TeamRatings {
	return TeamRatings{
		TeamID:    teamID,
		TeamAbbr:  abbr,
		OffRating: DefaultOffRating,
		DefRating: DefaultDefRating,
		Pace:      DefaultPace,
		DefRanks: map[string]int{
			DefRankPoints:   DefaultDefRank,
			DefRankRebounds: DefaultDefRank,
			DefRankAssists:  DefaultDefRank,
			DefRankThrees:   DefaultDefRank,
		},
		Defaulted: true,
	}
}

func (r TeamRatings) NetRating() float64 {
	return r.OffRating - r.DefRating
}

// DefRankFor returns the defensive rank relevant to a stat, 15 when the stat
// has no ranked category or the rank is missing.
func (r TeamRatings) DefRankFor(st StatType) int {
	category := st.DefensiveCategory()
	if category == "" {
		return DefaultDefRank
	}
	if rank, ok := r.DefRanks[category]; ok && rank > 0 {
		return rank
	}
	return DefaultDefRank
}

// RatingsPair holds both sides' ratings for a game.
type RatingsPair struct {
	Home TeamRatings `json:"home"`
	Away TeamRatings `json:"away"`
}

// Known reports whether both teams have real, non-default ratings.
func (p RatingsPair) Known() bool {
	return !p.Home.Defaulted && !p.Away.Defaulted
}
