package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/tuning"
)

const testAPIKey = "test-key"

func newBallDontLieServer(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *BallDontLieClient {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != testAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		handler, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := NewBallDontLieClient(server.URL, testAPIKey, 6000, tuning.Default().SecondHalf, nil)
	client.now = func() time.Time { return time.Date(2025, 1, 15, 20, 0, 0, 0, time.UTC) }
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, body interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(body))
}

func tatumSearch(t *testing.T) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("first_name") != "Jayson" || r.URL.Query().Get("last_name") != "Tatum" {
			writeJSON(t, w, map[string]interface{}{"data": []interface{}{}})
			return
		}
		writeJSON(t, w, map[string]interface{}{"data": []interface{}{
			map[string]interface{}{
				"id": 434, "first_name": "Jayson", "last_name": "Tatum",
				"team": map[string]interface{}{"id": 2, "abbreviation": "BOS", "full_name": "Boston Celtics"},
			},
		}})
	}
}

func TestBallDontLie_SearchPlayer(t *testing.T) {
	client := newBallDontLieServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/v1/players": tatumSearch(t),
	})

	ref, err := client.SearchPlayer(context.Background(), "Jayson Tatum")
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, models.PlayerRef{ID: 434, Name: "Jayson Tatum", TeamID: 2, TeamAbbr: "BOS"}, *ref)

	missing, err := client.SearchPlayer(context.Background(), "Nobody Here")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBallDontLie_RejectedKey(t *testing.T) {
	client := newBallDontLieServer(t, nil)
	client.apiKey = "wrong"

	_, err := client.SearchPlayer(context.Background(), "Jayson Tatum")
	assert.ErrorContains(t, err, "unexpected status code: 401")
}

func TestBallDontLie_RecentStatsNewestFirst(t *testing.T) {
	client := newBallDontLieServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/v1/stats": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "434", r.URL.Query().Get("player_ids[]"))
			assert.Equal(t, "2024", r.URL.Query().Get("seasons[]"))
			writeJSON(t, w, map[string]interface{}{"data": []interface{}{
				map[string]interface{}{"game": map[string]interface{}{"id": 1, "date": "2025-01-08"}, "min": "36", "pts": 31, "reb": 9, "ast": 4, "fg3m": 4},
				map[string]interface{}{"game": map[string]interface{}{"id": 2, "date": "2025-01-12"}, "min": "38", "pts": 27, "reb": 11, "ast": 6, "fg3m": 2},
				map[string]interface{}{"game": map[string]interface{}{"id": 3, "date": "2025-01-10"}, "min": "34", "pts": 22, "reb": 7, "ast": 5, "fg3m": 3, "turnover": 4},
			}})
		},
	})

	games, err := client.RecentStats(context.Background(), 434, 2)
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, "2", games[0].GameID)
	assert.Equal(t, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC), games[0].GameDate)
	assert.Equal(t, "3", games[1].GameID)
	assert.Equal(t, 22.0, games[1].Stats[models.KeyPoints])
	assert.Equal(t, 4.0, games[1].Stats[models.KeyTurnovers])
	assert.Equal(t, "34", games[1].Minutes)

	pra, ok := games[0].Value(models.StatPointsRebAssists.HistoryKeys())
	assert.True(t, ok)
	assert.Equal(t, 44.0, pra)
}

func TestBallDontLie_RecentStatsNullIsMissing(t *testing.T) {
	client := newBallDontLieServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/v1/stats": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, err := w.Write([]byte(`{"data":[
				{"game":{"id":1,"date":"2025-01-08"},"min":"36","pts":31,"reb":9,"ast":4},
				{"game":{"id":2,"date":"2025-01-10"},"min":"00","pts":null,"reb":null,"ast":null},
				{"game":{"id":3,"date":"2025-01-12"},"min":"30","pts":0,"reb":5,"ast":2}
			]}`))
			assert.NoError(t, err)
		},
	})

	games, err := client.RecentStats(context.Background(), 434, 10)
	require.NoError(t, err)
	require.Len(t, games, 3)

	assert.Equal(t, "2", games[1].GameID)
	assert.NotContains(t, games[1].Stats, models.KeyPoints)
	assert.Equal(t, 0.0, games[0].Stats[models.KeyPoints])

	var points []float64
	for _, g := range games {
		if v, ok := g.Value(models.StatPoints.HistoryKeys()); ok {
			points = append(points, v)
		}
	}
	assert.Equal(t, []float64{0, 31}, points)
}

func TestBallDontLie_SeasonStatsByName(t *testing.T) {
	client := newBallDontLieServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/v1/players": tatumSearch(t),
		"/v1/season_averages": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "434", r.URL.Query().Get("player_ids[]"))
			writeJSON(t, w, map[string]interface{}{"data": []interface{}{
				map[string]interface{}{
					"player_id": 434, "games_played": 40, "min": "36:30",
					"pts": 27.5, "reb": 8.5, "ast": 5, "fg3m": 3.2,
					"fg_pct": 0.46, "fg3_pct": 37.5, "ft_pct": 0.83,
				},
			}})
		},
	})

	stats, err := client.SeasonStats(context.Background(), models.PlayerRef{ID: 1628369, Name: "Jayson Tatum"})
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, 1628369, stats.PlayerID)
	assert.Equal(t, 27.5, stats.Points)
	assert.Equal(t, 36.5, stats.Minutes)
	assert.Equal(t, 0.46, stats.FGPct)
	assert.Equal(t, 0.375, stats.FG3Pct)
	assert.InDelta(t, 27.5*0.48, stats.SecondHalfPoints, 1e-9)
	assert.InDelta(t, 8.5*0.52, stats.SecondHalfRebounds, 1e-9)
	assert.InDelta(t, 5*0.48, stats.SecondHalfAssists, 1e-9)

	unknown, err := client.SeasonStats(context.Background(), models.PlayerRef{ID: 1, Name: "Nobody Here"})
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func teamsRoute(t *testing.T) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{"data": []interface{}{
			map[string]interface{}{"id": 2, "name": "Celtics", "full_name": "Boston Celtics", "abbreviation": "BOS"},
			map[string]interface{}{"id": 14, "name": "Lakers", "full_name": "Los Angeles Lakers", "abbreviation": "LAL"},
		}})
	}
}

func TestBallDontLie_SearchTeam(t *testing.T) {
	client := newBallDontLieServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/v1/teams": teamsRoute(t),
	})
	ctx := context.Background()

	tests := []struct {
		query  string
		wantID int
	}{
		{"LAL", 14},
		{"boston celtics", 2},
		{"Lakers", 14},
		{"Los Angeles", 14},
		{"Knicks", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			ref, err := client.SearchTeam(ctx, tt.query)
			require.NoError(t, err)
			if tt.wantID == 0 {
				assert.Nil(t, ref)
				return
			}
			require.NotNil(t, ref)
			assert.Equal(t, tt.wantID, ref.ID)
		})
	}
}

func TestBallDontLie_IsBackToBack(t *testing.T) {
	client := newBallDontLieServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/v1/teams": teamsRoute(t),
		"/v1/games": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2025-01-14", r.URL.Query().Get("dates[]"))
			var games []interface{}
			if r.URL.Query().Get("team_ids[]") == "2" {
				games = append(games, map[string]interface{}{"id": 99, "date": "2025-01-14"})
			}
			writeJSON(t, w, map[string]interface{}{"data": games})
		},
	})
	ctx := context.Background()
	gameDay := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	b2b, err := client.IsBackToBack(ctx, 1610612738, gameDay)
	require.NoError(t, err)
	assert.True(t, b2b)

	b2b, err = client.IsBackToBack(ctx, 1610612747, gameDay)
	require.NoError(t, err)
	assert.False(t, b2b)
}

func TestCurrentSeason(t *testing.T) {
	assert.Equal(t, 2024, currentSeason(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2025, currentSeason(time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)))
}
