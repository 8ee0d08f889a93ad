package models

// TeamAggregate sums a team's live box score rows.
type TeamAggregate struct {
	Points       int     `json:"total_points"`
	Rebounds     int     `json:"total_rebounds"`
	Assists      int     `json:"total_assists"`
	Steals       int     `json:"total_steals"`
	Blocks       int     `json:"total_blocks"`
	Turnovers    int     `json:"total_turnovers"`
	Fouls        int     `json:"total_fouls"`
	FGMade       int     `json:"total_fg_made"`
	FGAttempted  int     `json:"total_fg_attempted"`
	FG3Made      int     `json:"total_fg3_made"`
	FG3Attempted int     `json:"total_fg3_attempted"`
	FTMade       int     `json:"total_ft_made"`
	FTAttempted  int     `json:"total_ft_attempted"`
	Minutes      float64 `json:"total_minutes"`
	// UsedPossessions counts turnovers at full weight, matching the
	// per-player usage numerator.
	UsedPossessions float64 `json:"used_possessions"`
	// EstimatedPossessions is FGA + 0.44*FTA + 0.96*TOV.
	EstimatedPossessions float64 `json:"estimated_possessions"`
}

func AggregateTeam(players []LivePlayerStats) TeamAggregate {
	var agg TeamAggregate
	for _, p := range players {
		agg.Points += p.Points
		agg.Rebounds += p.Rebounds
		agg.Assists += p.Assists
		agg.Steals += p.Steals
		agg.Blocks += p.Blocks
		agg.Turnovers += p.Turnovers
		agg.Fouls += p.Fouls
		agg.FGMade += p.FGMade
		agg.FGAttempted += p.FGAttempted
		agg.FG3Made += p.FG3Made
		agg.FG3Attempted += p.FG3Attempted
		agg.FTMade += p.FTMade
		agg.FTAttempted += p.FTAttempted
		agg.Minutes += p.Minutes
	}
	fga := float64(agg.FGAttempted)
	fta := float64(agg.FTAttempted)
	tov := float64(agg.Turnovers)
	agg.UsedPossessions = fga + 0.44*fta + tov
	agg.EstimatedPossessions = fga + 0.44*fta + 0.96*tov
	return agg
}
