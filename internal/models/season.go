package models

// SeasonStats holds a player's season per-game averages. Shooting
// percentages are fractions in [0, 1].
type SeasonStats struct {
	PlayerID    int     `json:"player_id"`
	GamesPlayed int     `json:"games_played"`
	Points      float64 `json:"avg_points"`
	Rebounds    float64 `json:"avg_rebounds"`
	Assists     float64 `json:"avg_assists"`
	Threes      float64 `json:"avg_threes"`
	Minutes     float64 `json:"avg_minutes"`
	FGPct       float64 `json:"fg_pct"`
	FG3Pct      float64 `json:"fg3_pct"`
	FTPct       float64 `json:"ft_pct"`

	SecondHalfPoints   float64 `json:"second_half_avg_points"`
	SecondHalfRebounds float64 `json:"second_half_avg_rebounds"`
	SecondHalfAssists  float64 `json:"second_half_avg_assists"`
}

// NormalizePct accepts either a fraction or a 0-100 percentage.
func NormalizePct(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

// DeriveSecondHalf fills the second-half averages as fixed shares of the
// per-game averages.
func (s *SeasonStats) DeriveSecondHalf(pointsShare, reboundsShare, assistsShare float64) {
	s.SecondHalfPoints = s.Points * pointsShare
	s.SecondHalfRebounds = s.Rebounds * reboundsShare
	s.SecondHalfAssists = s.Assists * assistsShare
}

// Average returns the season per-game value for points, rebounds or assists.
func (s *SeasonStats) Average(st StatType) (float64, bool) {
	if s == nil {
		return 0, false
	}
	switch st {
	case StatPoints:
		return s.Points, s.Points > 0
	case StatRebounds:
		return s.Rebounds, s.Rebounds > 0
	case StatAssists:
		return s.Assists, s.Assists > 0
	case StatThrees:
		return s.Threes, s.Threes > 0
	}
	return 0, false
}

func (s *SeasonStats) SecondHalfAverage(st StatType) (float64, bool) {
	if s == nil {
		return 0, false
	}
	switch st {
	case StatPoints:
		return s.SecondHalfPoints, s.SecondHalfPoints > 0
	case StatRebounds:
		return s.SecondHalfRebounds, s.SecondHalfRebounds > 0
	case StatAssists:
		return s.SecondHalfAssists, s.SecondHalfAssists > 0
	}
	return 0, false
}
