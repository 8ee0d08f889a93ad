package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "clock format", input: "34:25", want: 34 + 25.0/60},
		{name: "iso duration", input: "PT12M30.00S", want: 12.5},
		{name: "iso minutes only", input: "PT07M", want: 7},
		{name: "plain integer", input: "12", want: 12},
		{name: "decimal", input: "31.5", want: 31.5},
		{name: "empty", input: "", want: 0},
		{name: "garbage", input: "DNP", wantErr: true},
		{name: "too many separators", input: "1:2:3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMinutes(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestLiveGameElapsedMinutes(t *testing.T) {
	tests := []struct {
		name string
		game LiveGame
		want float64
	}{
		{name: "halftime flag", game: LiveGame{Period: 2, IsHalftime: true}, want: 24},
		{name: "end of second quarter iso clock", game: LiveGame{Period: 2, GameClock: "PT00M00.00S"}, want: 24},
		{name: "mid third quarter", game: LiveGame{Period: 3, GameClock: "PT05M30.00S"}, want: 30.5},
		{name: "mid third quarter plain clock", game: LiveGame{Period: 3, GameClock: "5:30"}, want: 30.5},
		{name: "empty clock is period start", game: LiveGame{Period: 3, GameClock: ""}, want: 24},
		{name: "first overtime", game: LiveGame{Period: 5, GameClock: "PT02M00.00S"}, want: 51},
		{name: "pregame floors at one minute", game: LiveGame{Period: 0}, want: 1},
		{name: "opening tip floors at one minute", game: LiveGame{Period: 1, GameClock: "PT12M00.00S"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.game.ElapsedMinutes(), 1e-9)
		})
	}
}

func TestLiveGameRemainingMinutes(t *testing.T) {
	assert.InDelta(t, 24.0, LiveGame{Period: 2, IsHalftime: true}.RemainingMinutes(), 1e-9)
	assert.InDelta(t, 2.0, LiveGame{Period: 5, GameClock: "2:00"}.RemainingMinutes(), 1e-9)
	assert.InDelta(t, 0.0, LiveGame{Period: 4, GameClock: "0:00"}.RemainingMinutes(), 1e-9)
}

func TestScoreDifferentialIsAbsolute(t *testing.T) {
	g := LiveGame{HomeScore: 50, AwayScore: 70}

	assert.Equal(t, 20, g.ScoreDifferential())
	assert.Equal(t, -20, g.Spread())
	assert.Equal(t, 120, g.TotalScore())
}

func TestParseStatType(t *testing.T) {
	for input, want := range map[string]StatType{
		"Points":      StatPoints,
		"3PM":         StatThrees,
		"pts + reb":   StatPointsRebounds,
		"PRA":         StatPointsRebAssists,
		" turnovers ": StatTurnovers,
	} {
		got, err := ParseStatType(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseStatType("dunks")
	assert.Error(t, err)
}

func TestStatValueCombos(t *testing.T) {
	p := LivePlayerStats{Points: 14, Rebounds: 6, Assists: 3, FG3Made: 2}

	assert.Equal(t, 20.0, p.StatValue(StatPointsRebounds))
	assert.Equal(t, 23.0, p.StatValue(StatPointsRebAssists))
	assert.Equal(t, 2.0, p.StatValue(StatThrees))
	assert.Equal(t, 0.0, p.StatValue(StatType("dunks")))
}

func TestObservationValue(t *testing.T) {
	obs := StatObservation{Stats: map[string]float64{KeyPoints: 20, KeyRebounds: 8}}

	v, ok := obs.Value(StatPointsRebounds.HistoryKeys())
	assert.True(t, ok)
	assert.Equal(t, 28.0, v)

	_, ok = obs.Value(StatPointsAssists.HistoryKeys())
	assert.False(t, ok)
}

func TestDefRankFor(t *testing.T) {
	r := DefaultTeamRatings(1, "BOS")
	r.DefRanks[DefRankRebounds] = 28

	assert.Equal(t, 28, r.DefRankFor(StatRebounds))
	assert.Equal(t, DefaultDefRank, r.DefRankFor(StatPoints))
	assert.Equal(t, DefaultDefRank, r.DefRankFor(StatSteals))
	assert.True(t, r.Defaulted)
}

func TestAggregateTeamPossessions(t *testing.T) {
	agg := AggregateTeam([]LivePlayerStats{
		{Points: 20, FGAttempted: 15, FTAttempted: 5, Turnovers: 2},
		{Points: 10, FGAttempted: 10, FTAttempted: 0, Turnovers: 3},
	})

	assert.Equal(t, 30, agg.Points)
	assert.InDelta(t, 25+0.44*5+0.96*5, agg.EstimatedPossessions, 1e-9)
	assert.InDelta(t, 25+0.44*5+5, agg.UsedPossessions, 1e-9)
}

func TestRecommendationRankOrdering(t *testing.T) {
	ordered := []Recommendation{StrongAvoid, Avoid, Neutral, Lean, Bet, StrongBet}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i-1].Rank(), ordered[i].Rank())
	}
	assert.True(t, Lean.Actionable())
	assert.False(t, Neutral.Actionable())
}

func TestNormalizePct(t *testing.T) {
	assert.InDelta(t, 0.475, NormalizePct(47.5), 1e-9)
	assert.InDelta(t, 0.475, NormalizePct(0.475), 1e-9)
}
