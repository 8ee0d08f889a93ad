package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/pkg/logger"
)

// NBALiveClient reads the public live-data CDN: today's scoreboard and
// per-game box scores.
type NBALiveClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *logrus.Logger
}

func NewNBALiveClient(baseURL string, log *logrus.Logger) *NBALiveClient {
	if log == nil {
		log = logger.Discard()
	}
	return &NBALiveClient{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log,
	}
}

type liveTeam struct {
	TeamID      int          `json:"teamId"`
	TeamName    string       `json:"teamName"`
	TeamCity    string       `json:"teamCity"`
	TeamTricode string       `json:"teamTricode"`
	Score       int          `json:"score"`
	Players     []livePlayer `json:"players"`
}

type liveGameFeed struct {
	GameID         string   `json:"gameId"`
	GameCode       string   `json:"gameCode"`
	GameStatus     int      `json:"gameStatus"`
	GameStatusText string   `json:"gameStatusText"`
	Period         int      `json:"period"`
	GameClock      string   `json:"gameClock"`
	GameTimeUTC    string   `json:"gameTimeUTC"`
	HomeTeam       liveTeam `json:"homeTeam"`
	AwayTeam       liveTeam `json:"awayTeam"`
}

type livePlayer struct {
	Status     string          `json:"status"`
	PersonID   int             `json:"personId"`
	Starter    string          `json:"starter"`
	Played     string          `json:"played"`
	FirstName  string          `json:"firstName"`
	FamilyName string          `json:"familyName"`
	Statistics livePlayerStats `json:"statistics"`
}

type livePlayerStats struct {
	Minutes                string  `json:"minutes"`
	Points                 int     `json:"points"`
	ReboundsTotal          int     `json:"reboundsTotal"`
	Assists                int     `json:"assists"`
	Steals                 int     `json:"steals"`
	Blocks                 int     `json:"blocks"`
	Turnovers              int     `json:"turnovers"`
	FoulsPersonal          int     `json:"foulsPersonal"`
	FieldGoalsMade         int     `json:"fieldGoalsMade"`
	FieldGoalsAttempted    int     `json:"fieldGoalsAttempted"`
	ThreePointersMade      int     `json:"threePointersMade"`
	ThreePointersAttempted int     `json:"threePointersAttempted"`
	FreeThrowsMade         int     `json:"freeThrowsMade"`
	FreeThrowsAttempted    int     `json:"freeThrowsAttempted"`
	PlusMinusPoints        float64 `json:"plusMinusPoints"`
}

// TodaysGames returns every game on today's scoreboard.
func (c *NBALiveClient) TodaysGames(ctx context.Context) ([]models.LiveGame, error) {
	var resp struct {
		Scoreboard struct {
			Games []liveGameFeed `json:"games"`
		} `json:"scoreboard"`
	}
	if err := c.get(ctx, "/scoreboard/todaysScoreboard_00.json", &resp); err != nil {
		return nil, fmt.Errorf("fetching scoreboard: %w", err)
	}

	games := make([]models.LiveGame, 0, len(resp.Scoreboard.Games))
	for _, g := range resp.Scoreboard.Games {
		games = append(games, toLiveGame(g))
	}
	c.logger.WithField("games", len(games)).Debug("Fetched scoreboard")
	return games, nil
}

// Snapshot reads a game's box score. Players who have not played are left
// out and each side is ordered by points. An unknown id returns
// models.ErrGameNotFound.
func (c *NBALiveClient) Snapshot(ctx context.Context, gameID string) (*models.LiveSnapshot, error) {
	var resp struct {
		Game liveGameFeed `json:"game"`
	}
	if err := c.get(ctx, fmt.Sprintf("/boxscore/boxscore_%s.json", gameID), &resp); err != nil {
		return nil, err
	}
	if resp.Game.GameID == "" {
		return nil, models.ErrGameNotFound
	}

	g := resp.Game
	snap := &models.LiveSnapshot{
		Game: toLiveGame(g),
		Home: c.players(g.HomeTeam),
		Away: c.players(g.AwayTeam),
	}

	logger.WithGameContext(c.logger, gameID).WithFields(logrus.Fields{
		"home_players": len(snap.Home),
		"away_players": len(snap.Away),
	}).Debug("Fetched box score")
	return snap, nil
}

func (c *NBALiveClient) players(team liveTeam) []models.LivePlayerStats {
	out := make([]models.LivePlayerStats, 0, len(team.Players))
	for _, p := range team.Players {
		if p.Status != "ACTIVE" && p.Played != "1" {
			continue
		}
		s := p.Statistics
		minutes, err := models.ParseMinutes(s.Minutes)
		if err != nil {
			c.logger.WithError(err).WithField("player_id", p.PersonID).Debug("Unreadable minutes")
			continue
		}
		if minutes <= 0 {
			continue
		}

		out = append(out, models.LivePlayerStats{
			PlayerID:     p.PersonID,
			PlayerName:   strings.TrimSpace(p.FirstName + " " + p.FamilyName),
			TeamID:       team.TeamID,
			TeamAbbr:     team.TeamTricode,
			MinutesRaw:   s.Minutes,
			Minutes:      minutes,
			Points:       s.Points,
			Rebounds:     s.ReboundsTotal,
			Assists:      s.Assists,
			Steals:       s.Steals,
			Blocks:       s.Blocks,
			Turnovers:    s.Turnovers,
			Fouls:        s.FoulsPersonal,
			FGMade:       s.FieldGoalsMade,
			FGAttempted:  s.FieldGoalsAttempted,
			FG3Made:      s.ThreePointersMade,
			FG3Attempted: s.ThreePointersAttempted,
			FTMade:       s.FreeThrowsMade,
			FTAttempted:  s.FreeThrowsAttempted,
			PlusMinus:    int(s.PlusMinusPoints),
			Starter:      p.Starter == "1",
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Points > out[j].Points
	})
	return out
}

func toLiveGame(g liveGameFeed) models.LiveGame {
	return models.LiveGame{
		GameID:       g.GameID,
		Status:       models.GameStatus(g.GameStatus),
		StatusText:   g.GameStatusText,
		Period:       g.Period,
		GameClock:    g.GameClock,
		HomeTeamID:   g.HomeTeam.TeamID,
		HomeTeamName: g.HomeTeam.TeamName,
		HomeTeamAbbr: g.HomeTeam.TeamTricode,
		HomeScore:    g.HomeTeam.Score,
		AwayTeamID:   g.AwayTeam.TeamID,
		AwayTeamName: g.AwayTeam.TeamName,
		AwayTeamAbbr: g.AwayTeam.TeamTricode,
		AwayScore:    g.AwayTeam.Score,
		GameDate:     gameDate(g),
		IsHalftime:   isHalftime(g),
	}
}

// isHalftime trusts the status text first, then an in-progress second
// period with the clock run out.
func isHalftime(g liveGameFeed) bool {
	if strings.Contains(strings.ToLower(g.GameStatusText), "halftime") {
		return true
	}
	if g.Period != 2 || models.GameStatus(g.GameStatus) != models.GameInProgress {
		return false
	}
	switch g.GameClock {
	case "", "PT00M00.00S", "0:00":
		return true
	}
	return false
}

// gameDate prefers the local date in the game code ("20250115/BOSLAL").
func gameDate(g liveGameFeed) time.Time {
	if len(g.GameCode) >= 8 {
		if t, err := time.Parse("20060102", g.GameCode[:8]); err == nil {
			return t
		}
	}
	if t, err := time.Parse(time.RFC3339, g.GameTimeUTC); err == nil {
		return t
	}
	return time.Time{}
}

func (c *NBALiveClient) get(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	// the CDN answers 403 for objects that do not exist
	case http.StatusNotFound, http.StatusForbidden:
		return models.ErrGameNotFound
	default:
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
