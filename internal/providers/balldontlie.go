package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/tuning"
	"github.com/stitts-dev/prop-engine/pkg/logger"
)

const maxStatsPerPage = 100

// BallDontLieClient reads player identities, game logs, season averages and
// schedules from the BALLDONTLIE API. Its player and team ids are its own;
// live feed ids are translated by name or abbreviation.
type BallDontLieClient struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	rateLimiter *rate.Limiter
	secondHalf  tuning.SecondHalfShares
	now         func() time.Time
	logger      *logrus.Logger

	teamsMu sync.Mutex
	teams   []ballDontLieTeam
}

// NewBallDontLieClient creates a client allowing ratePerMinute requests per
// minute, bursting up to the same number.
func NewBallDontLieClient(baseURL, apiKey string, ratePerMinute int, secondHalf tuning.SecondHalfShares, log *logrus.Logger) *BallDontLieClient {
	if ratePerMinute < 1 {
		ratePerMinute = 1
	}
	if log == nil {
		log = logger.Discard()
	}
	return &BallDontLieClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		rateLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMinute)), ratePerMinute),
		secondHalf:  secondHalf,
		now:         time.Now,
		logger:      log,
	}
}

type ballDontLieTeam struct {
	ID           int    `json:"id"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
	City         string `json:"city"`
	Name         string `json:"name"`
	FullName     string `json:"full_name"`
	Abbreviation string `json:"abbreviation"`
}

type ballDontLiePlayer struct {
	ID        int             `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Position  string          `json:"position"`
	Team      ballDontLieTeam `json:"team"`
}

type ballDontLieGame struct {
	ID               int    `json:"id"`
	Date             string `json:"date"`
	Season           int    `json:"season"`
	Status           string `json:"status"`
	HomeTeamScore    int    `json:"home_team_score"`
	VisitorTeamScore int    `json:"visitor_team_score"`
}

// ballDontLieStats leaves a stat nil when the API reports null, as it does
// for players who did not play.
type ballDontLieStats struct {
	ID       int             `json:"id"`
	Game     ballDontLieGame `json:"game"`
	Min      string          `json:"min"`
	Fg3m     *int            `json:"fg3m"`
	Reb      *int            `json:"reb"`
	Ast      *int            `json:"ast"`
	Stl      *int            `json:"stl"`
	Blk      *int            `json:"blk"`
	Turnover *int            `json:"turnover"`
	Pts      *int            `json:"pts"`
}

func (s ballDontLieStats) values() map[string]float64 {
	out := make(map[string]float64, 7)
	for key, v := range map[string]*int{
		models.KeyPoints:    s.Pts,
		models.KeyRebounds:  s.Reb,
		models.KeyAssists:   s.Ast,
		models.KeyThrees:    s.Fg3m,
		models.KeySteals:    s.Stl,
		models.KeyBlocks:    s.Blk,
		models.KeyTurnovers: s.Turnover,
	} {
		if v != nil {
			out[key] = float64(*v)
		}
	}
	return out
}

type ballDontLieSeasonAverage struct {
	PlayerID    int     `json:"player_id"`
	Season      int     `json:"season"`
	GamesPlayed int     `json:"games_played"`
	Min         string  `json:"min"`
	Pts         float64 `json:"pts"`
	Reb         float64 `json:"reb"`
	Ast         float64 `json:"ast"`
	Fg3m        float64 `json:"fg3m"`
	FgPct       float64 `json:"fg_pct"`
	Fg3Pct      float64 `json:"fg3_pct"`
	FtPct       float64 `json:"ft_pct"`
}

// SearchPlayer returns the first player matching the name, or nil when none
// does.
func (c *BallDontLieClient) SearchPlayer(ctx context.Context, name string) (*models.PlayerRef, error) {
	params := url.Values{}
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return nil, nil
	case 1:
		params.Set("last_name", parts[0])
	default:
		params.Set("first_name", parts[0])
		params.Set("last_name", strings.Join(parts[1:], " "))
	}

	var resp struct {
		Data []ballDontLiePlayer `json:"data"`
	}
	if err := c.get(ctx, "/v1/players", params, &resp); err != nil {
		return nil, fmt.Errorf("searching player %q: %w", name, err)
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}

	p := resp.Data[0]
	return &models.PlayerRef{
		ID:       p.ID,
		Name:     strings.TrimSpace(p.FirstName + " " + p.LastName),
		TeamID:   p.Team.ID,
		TeamAbbr: p.Team.Abbreviation,
	}, nil
}

// SearchTeam matches a team by name, full name or abbreviation, falling back
// to a partial name match.
func (c *BallDontLieClient) SearchTeam(ctx context.Context, name string) (*models.TeamRef, error) {
	teams, err := c.allTeams(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, nil
	}
	for _, t := range teams {
		if strings.ToLower(t.Name) == needle || strings.ToLower(t.FullName) == needle || strings.ToLower(t.Abbreviation) == needle {
			return teamRef(t), nil
		}
	}
	for _, t := range teams {
		if strings.Contains(strings.ToLower(t.Name), needle) || strings.Contains(strings.ToLower(t.FullName), needle) {
			return teamRef(t), nil
		}
	}
	return nil, nil
}

func teamRef(t ballDontLieTeam) *models.TeamRef {
	return &models.TeamRef{ID: t.ID, Name: t.FullName, Abbr: t.Abbreviation}
}

// RecentStats returns the player's last n games of the current season, newest
// first.
func (c *BallDontLieClient) RecentStats(ctx context.Context, playerID int, n int) ([]models.StatObservation, error) {
	params := url.Values{}
	params.Set("player_ids[]", strconv.Itoa(playerID))
	params.Set("seasons[]", strconv.Itoa(currentSeason(c.now())))
	params.Set("per_page", strconv.Itoa(maxStatsPerPage))

	var resp struct {
		Data []ballDontLieStats `json:"data"`
	}
	if err := c.get(ctx, "/v1/stats", params, &resp); err != nil {
		return nil, fmt.Errorf("fetching stats for player %d: %w", playerID, err)
	}

	games := make([]models.StatObservation, 0, len(resp.Data))
	for _, s := range resp.Data {
		games = append(games, models.StatObservation{
			GameID:   strconv.Itoa(s.Game.ID),
			GameDate: parseGameDate(s.Game.Date),
			Minutes:  s.Min,
			Stats:    s.values(),
		})
	}
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].GameDate.After(games[j].GameDate)
	})
	if n > 0 && len(games) > n {
		games = games[:n]
	}
	return games, nil
}

// SeasonStats resolves the live player by name and returns their current
// season averages, or nil when the player or the averages are unknown.
func (c *BallDontLieClient) SeasonStats(ctx context.Context, player models.PlayerRef) (*models.SeasonStats, error) {
	ref, err := c.SearchPlayer(ctx, player.Name)
	if err != nil || ref == nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("season", strconv.Itoa(currentSeason(c.now())))
	params.Set("player_ids[]", strconv.Itoa(ref.ID))

	var resp struct {
		Data []ballDontLieSeasonAverage `json:"data"`
	}
	if err := c.get(ctx, "/v1/season_averages", params, &resp); err != nil {
		return nil, fmt.Errorf("fetching season averages for %s: %w", player.Name, err)
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}

	avg := resp.Data[0]
	minutes, err := models.ParseMinutes(avg.Min)
	if err != nil {
		c.logger.WithError(err).WithField("player_id", player.ID).Debug("Unreadable season minutes")
	}

	stats := &models.SeasonStats{
		PlayerID:    player.ID,
		GamesPlayed: avg.GamesPlayed,
		Points:      avg.Pts,
		Rebounds:    avg.Reb,
		Assists:     avg.Ast,
		Threes:      avg.Fg3m,
		Minutes:     minutes,
		FGPct:       models.NormalizePct(avg.FgPct),
		FG3Pct:      models.NormalizePct(avg.Fg3Pct),
		FTPct:       models.NormalizePct(avg.FtPct),
	}
	stats.DeriveSecondHalf(c.secondHalf.Points, c.secondHalf.Rebounds, c.secondHalf.Assists)
	return stats, nil
}

// IsBackToBack reports whether the team played on the calendar day before
// gameDate. teamID may be a live feed id or a BALLDONTLIE id.
func (c *BallDontLieClient) IsBackToBack(ctx context.Context, teamID int, gameDate time.Time) (bool, error) {
	id, err := c.resolveTeamID(ctx, teamID)
	if err != nil {
		return false, err
	}
	if gameDate.IsZero() {
		gameDate = c.now()
	}

	params := url.Values{}
	params.Set("team_ids[]", strconv.Itoa(id))
	params.Set("dates[]", gameDate.AddDate(0, 0, -1).Format("2006-01-02"))

	var resp struct {
		Data []ballDontLieGame `json:"data"`
	}
	if err := c.get(ctx, "/v1/games", params, &resp); err != nil {
		return false, fmt.Errorf("fetching schedule for team %d: %w", teamID, err)
	}
	return len(resp.Data) > 0, nil
}

func (c *BallDontLieClient) resolveTeamID(ctx context.Context, teamID int) (int, error) {
	abbr, ok := nbaTeamAbbreviations[teamID]
	if !ok {
		return teamID, nil
	}
	teams, err := c.allTeams(ctx)
	if err != nil {
		return 0, err
	}
	for _, t := range teams {
		if strings.EqualFold(t.Abbreviation, abbr) {
			return t.ID, nil
		}
	}
	return 0, fmt.Errorf("no team with abbreviation %s", abbr)
}

// allTeams loads the team list once per client.
func (c *BallDontLieClient) allTeams(ctx context.Context) ([]ballDontLieTeam, error) {
	c.teamsMu.Lock()
	defer c.teamsMu.Unlock()
	if c.teams != nil {
		return c.teams, nil
	}

	var resp struct {
		Data []ballDontLieTeam `json:"data"`
	}
	if err := c.get(ctx, "/v1/teams", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}
	c.teams = resp.Data
	return c.teams, nil
}

func (c *BallDontLieClient) get(ctx context.Context, path string, params url.Values, dest interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// currentSeason is the starting year of the NBA season in progress on now;
// seasons start in October.
func currentSeason(now time.Time) int {
	if now.Month() >= time.October {
		return now.Year()
	}
	return now.Year() - 1
}

func parseGameDate(raw string) time.Time {
	if len(raw) >= 10 {
		if t, err := time.Parse("2006-01-02", raw[:10]); err == nil {
			return t
		}
	}
	return time.Time{}
}

// nbaTeamAbbreviations maps live feed team ids to abbreviations.
var nbaTeamAbbreviations = map[int]string{
	1610612737: "ATL", 1610612738: "BOS", 1610612739: "CLE", 1610612740: "NOP",
	1610612741: "CHI", 1610612742: "DAL", 1610612743: "DEN", 1610612744: "GSW",
	1610612745: "HOU", 1610612746: "LAC", 1610612747: "LAL", 1610612748: "MIA",
	1610612749: "MIL", 1610612750: "MIN", 1610612751: "BKN", 1610612752: "NYK",
	1610612753: "ORL", 1610612754: "IND", 1610612755: "PHI", 1610612756: "PHX",
	1610612757: "POR", 1610612758: "SAC", 1610612759: "SAS", 1610612760: "OKC",
	1610612761: "TOR", 1610612762: "UTA", 1610612763: "MEM", 1610612764: "WAS",
	1610612765: "DET", 1610612766: "CHA",
}
