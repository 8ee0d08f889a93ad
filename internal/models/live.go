package models

import (
	"math"
	"strings"
	"time"
)

const (
	RegulationMinutes = 48.0
	QuarterMinutes    = 12.0
	OvertimeMinutes   = 5.0
	HalfMinutes       = 24.0
)

// GameStatus follows the live scoreboard feed: 1 scheduled, 2 in progress, 3 final.
type GameStatus int

const (
	GameScheduled  GameStatus = 1
	GameInProgress GameStatus = 2
	GameFinal      GameStatus = 3
)

// LiveGame is the scoreboard portion of a live snapshot.
type LiveGame struct {
	GameID       string     `json:"game_id"`
	Status       GameStatus `json:"game_status"`
	StatusText   string     `json:"game_status_text"`
	Period       int        `json:"period"`
	GameClock    string     `json:"game_clock"`
	HomeTeamID   int        `json:"home_team_id"`
	HomeTeamName string     `json:"home_team_name"`
	HomeTeamAbbr string     `json:"home_team_abbr"`
	HomeScore    int        `json:"home_score"`
	AwayTeamID   int        `json:"away_team_id"`
	AwayTeamName string     `json:"away_team_name"`
	AwayTeamAbbr string     `json:"away_team_abbr"`
	AwayScore    int        `json:"away_score"`
	GameDate     time.Time  `json:"game_date"`
	IsHalftime   bool       `json:"is_halftime"`
}

// ScoreDifferential is the absolute margin between the teams.
func (g LiveGame) ScoreDifferential() int {
	d := g.HomeScore - g.AwayScore
	if d < 0 {
		return -d
	}
	return d
}

// Spread is the signed home margin.
func (g LiveGame) Spread() int {
	return g.HomeScore - g.AwayScore
}

func (g LiveGame) TotalScore() int {
	return g.HomeScore + g.AwayScore
}

// ElapsedMinutes estimates game time played from the period and clock,
// floored at one minute so per-minute rates stay finite.
func (g LiveGame) ElapsedMinutes() float64 {
	if g.IsHalftime {
		return HalfMinutes
	}
	if g.Period <= 0 {
		return 1.0
	}

	var elapsed, periodLength float64
	if g.Period <= 4 {
		elapsed = float64(g.Period-1) * QuarterMinutes
		periodLength = QuarterMinutes
	} else {
		elapsed = RegulationMinutes + float64(g.Period-5)*OvertimeMinutes
		periodLength = OvertimeMinutes
	}

	remaining, ok := ParseGameClock(g.GameClock)
	if !ok {
		remaining = periodLength
	}
	remaining = math.Min(math.Max(remaining, 0), periodLength)

	return math.Max(elapsed+periodLength-remaining, 1.0)
}

// GameMinutes is the scheduled length of the game given the current period.
func (g LiveGame) GameMinutes() float64 {
	if g.Period > 4 {
		return RegulationMinutes + float64(g.Period-4)*OvertimeMinutes
	}
	return RegulationMinutes
}

func (g LiveGame) RemainingMinutes() float64 {
	return math.Max(g.GameMinutes()-g.ElapsedMinutes(), 0)
}

// ParseGameClock returns the minutes left in the current period. It accepts
// the feed's ISO form ("PT05M30.00S") and plain "5:30". ok is false for an
// empty or unreadable clock.
func ParseGameClock(clock string) (float64, bool) {
	if strings.TrimSpace(clock) == "" {
		return 0, false
	}
	m, err := ParseMinutes(clock)
	if err != nil {
		return 0, false
	}
	return m, true
}

// LivePlayerStats is one in-progress box score row.
type LivePlayerStats struct {
	PlayerID     int     `json:"player_id"`
	PlayerName   string  `json:"player_name"`
	TeamID       int     `json:"team_id"`
	TeamAbbr     string  `json:"team_abbreviation"`
	MinutesRaw   string  `json:"minutes,omitempty"`
	Minutes      float64 `json:"minutes_float"`
	Points       int     `json:"points"`
	Rebounds     int     `json:"rebounds"`
	Assists      int     `json:"assists"`
	Steals       int     `json:"steals"`
	Blocks       int     `json:"blocks"`
	Turnovers    int     `json:"turnovers"`
	Fouls        int     `json:"fouls"`
	FGMade       int     `json:"fg_made"`
	FGAttempted  int     `json:"fg_attempted"`
	FG3Made      int     `json:"fg3_made"`
	FG3Attempted int     `json:"fg3_attempted"`
	FTMade       int     `json:"ft_made"`
	FTAttempted  int     `json:"ft_attempted"`
	PlusMinus    int     `json:"plus_minus"`
	Starter      bool    `json:"starter"`
}

// StatValue returns the live value for a stat category; unknown categories are 0.
func (p LivePlayerStats) StatValue(st StatType) float64 {
	switch st {
	case StatPoints:
		return float64(p.Points)
	case StatRebounds:
		return float64(p.Rebounds)
	case StatAssists:
		return float64(p.Assists)
	case StatThrees:
		return float64(p.FG3Made)
	case StatSteals:
		return float64(p.Steals)
	case StatBlocks:
		return float64(p.Blocks)
	case StatTurnovers:
		return float64(p.Turnovers)
	case StatPointsRebounds:
		return float64(p.Points + p.Rebounds)
	case StatPointsAssists:
		return float64(p.Points + p.Assists)
	case StatReboundsAssists:
		return float64(p.Rebounds + p.Assists)
	case StatPointsRebAssists:
		return float64(p.Points + p.Rebounds + p.Assists)
	}
	return 0
}

// UsedPossessions is FGA + 0.44*FTA + TOV, the possessions a player ended.
func (p LivePlayerStats) UsedPossessions() float64 {
	return float64(p.FGAttempted) + 0.44*float64(p.FTAttempted) + float64(p.Turnovers)
}

// LiveSnapshot is one point-in-time read of a game and both box scores.
type LiveSnapshot struct {
	Game LiveGame          `json:"game"`
	Home []LivePlayerStats `json:"home"`
	Away []LivePlayerStats `json:"away"`
}

// IsHome reports whether the player belongs to the home side.
func (s LiveSnapshot) IsHome(p LivePlayerStats) bool {
	if p.TeamID != 0 && s.Game.HomeTeamID != 0 {
		return p.TeamID == s.Game.HomeTeamID
	}
	return p.TeamAbbr == s.Game.HomeTeamAbbr
}

func (s LiveSnapshot) Players() []LivePlayerStats {
	all := make([]LivePlayerStats, 0, len(s.Home)+len(s.Away))
	all = append(all, s.Home...)
	return append(all, s.Away...)
}
