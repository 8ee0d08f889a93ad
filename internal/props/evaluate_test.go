package props

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/tuning"
)

func pointsGames(minutes string, pts ...float64) []models.StatObservation {
	games := make([]models.StatObservation, len(pts))
	for i, p := range pts {
		games[i] = models.StatObservation{
			GameID:  fmt.Sprintf("g%d", i),
			Stats:   map[string]float64{models.KeyPoints: p, models.KeyRebounds: 5},
			Minutes: minutes,
		}
	}
	return games
}

func TestEvaluate_ConsistentScorerClearsLine(t *testing.T) {
	prop := models.PropLine{PropID: "p1", PlayerName: "Jayson Tatum", StatType: models.StatPoints, Line: 15, Direction: models.Over}
	games := pointsGames("34:00", 20, 20, 20, 20, 20, 20, 20, 20, 20, 20)

	result := Evaluate(prop, games, tuning.Default())

	assert.Equal(t, 100.0, result.HitRate)
	assert.Equal(t, 20.0, result.AverageStat)
	assert.Equal(t, 20.0, result.PaceAdjustedProjection)
	assert.Equal(t, 10, result.GamesAnalyzed)
	assert.Equal(t, 100.0, result.ConfidenceScore)
	assert.Equal(t, models.StrongBet, result.Recommendation)
	assert.Equal(t, 1.0, result.Factors[tuning.Consistency])
	assert.InDelta(t, 0.0, result.Factors[tuning.RecentTrend], 1e-9)
	assert.InDelta(t, 34.0/35.0, result.Factors[tuning.PlayingTime], 1e-9)
	assert.Contains(t, result.Notes, "strong track record")
	assert.Contains(t, result.Notes, "5.0 above the line")
}

func TestEvaluate_EmptyHistoryReturnsDefault(t *testing.T) {
	prop := models.PropLine{PropID: "p2", StatType: models.StatRebounds, Line: 7.5, Direction: models.Under}

	result := Evaluate(prop, nil, tuning.Default())

	assert.Equal(t, 50.0, result.ConfidenceScore)
	assert.Equal(t, 50.0, result.HitRate)
	assert.Equal(t, 7.5, result.AverageStat)
	assert.Equal(t, 7.5, result.PaceAdjustedProjection)
	assert.Equal(t, models.Neutral, result.Recommendation)
	assert.Empty(t, result.Factors)
	assert.NotEmpty(t, result.Notes)
	assert.Contains(t, result.Notes, "Unable to analyze")
}

func TestEvaluate_UnderDirection(t *testing.T) {
	prop := models.PropLine{StatType: models.StatPoints, Line: 20.5, Direction: models.Under}
	games := pointsGames("", 18, 22, 19, 25, 17)

	result := Evaluate(prop, games, tuning.Default())

	assert.Equal(t, 60.0, result.HitRate)
	assert.Equal(t, 20.2, result.AverageStat)
	_, hasMinutes := result.Factors[tuning.PlayingTime]
	assert.False(t, hasMinutes)
}

func TestEvaluate_TrendUsesChronologicalOrder(t *testing.T) {
	prop := models.PropLine{StatType: models.StatPoints, Line: 20, Direction: models.Over}
	// newest first: scoring has climbed two points a game
	games := pointsGames("30:00", 24, 22, 20, 18, 16, 10, 10)

	result := Evaluate(prop, games, tuning.Default())

	assert.InDelta(t, 0.4, result.Factors[tuning.RecentTrend], 1e-9)
	assert.Contains(t, result.Notes, "trending up")
}

func TestEvaluate_TrendNeedsFiveGames(t *testing.T) {
	prop := models.PropLine{StatType: models.StatPoints, Line: 20, Direction: models.Over}

	result := Evaluate(prop, pointsGames("30:00", 30, 10, 30, 10), tuning.Default())

	_, ok := result.Factors[tuning.RecentTrend]
	assert.False(t, ok)
}

func TestEvaluate_MissingStatValuesAreSkipped(t *testing.T) {
	prop := models.PropLine{StatType: models.StatAssists, Line: 4.5, Direction: models.Over}
	games := []models.StatObservation{
		{Stats: map[string]float64{models.KeyAssists: 6}},
		{Stats: map[string]float64{models.KeyPoints: 12}},
		{Stats: map[string]float64{models.KeyAssists: 3}},
	}

	result := Evaluate(prop, games, tuning.Default())

	assert.Equal(t, 2, result.GamesAnalyzed)
	assert.Equal(t, 50.0, result.HitRate)
	assert.Equal(t, 4.5, result.AverageStat)
	assert.Contains(t, result.Notes, "matches the line exactly")
}

func TestEvaluate_NoValidValues(t *testing.T) {
	prop := models.PropLine{StatType: models.StatBlocks, Line: 1.5, Direction: models.Over}
	games := []models.StatObservation{{Stats: map[string]float64{models.KeyPoints: 12}}}

	result := Evaluate(prop, games, tuning.Default())

	assert.Equal(t, 0.0, result.HitRate)
	assert.Equal(t, 0.0, result.AverageStat)
	assert.Equal(t, 0, result.GamesAnalyzed)
}

func TestEvaluate_ComboStat(t *testing.T) {
	prop := models.PropLine{StatType: models.StatPointsRebounds, Line: 24.5, Direction: models.Over}

	result := Evaluate(prop, pointsGames("", 20, 21, 19), tuning.Default())

	assert.Equal(t, 25.0, result.AverageStat)
	assert.InDelta(t, 200.0/3.0, result.HitRate, 0.01)
}

func TestEvaluate_UnreadableMinutesAreNeutral(t *testing.T) {
	prop := models.PropLine{StatType: models.StatPoints, Line: 10, Direction: models.Over}
	games := pointsGames("DNP", 12, 14)

	result := Evaluate(prop, games, tuning.Default())

	assert.Equal(t, 0.5, result.Factors[tuning.PlayingTime])
}

func TestConfidence_DistanceBoost(t *testing.T) {
	weights := tuning.WeightTable{}

	tests := []struct {
		name    string
		average float64
		line    float64
		want    float64
	}{
		{name: "average above line caps at ten", average: 30, line: 20, want: 60},
		{name: "average below line caps at minus ten", average: 10, line: 20, want: 40},
		{name: "small gap scales by two", average: 21.5, line: 20, want: 53},
		{name: "equal is a non-positive boost", average: 20, line: 20, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Confidence(50, tt.average, tt.line, nil, weights), 1e-9)
		})
	}
}

func TestConfidence_StaysInBounds(t *testing.T) {
	weights := tuning.Default().PropFactorWeights
	extremes := []map[string]float64{
		{tuning.RecentTrend: 1, tuning.Consistency: 1, tuning.PlayingTime: 1},
		{tuning.RecentTrend: -1, tuning.Consistency: 0, tuning.PlayingTime: 0},
	}

	for _, hit := range []float64{0, 10, 50, 90, 100} {
		for _, avg := range []float64{0, 5, 20, 60} {
			for _, f := range extremes {
				c := Confidence(hit, avg, 20, f, weights)
				assert.GreaterOrEqual(t, c, 0.0)
				assert.LessOrEqual(t, c, 100.0)
			}
		}
	}
}

func TestRecommend_Bands(t *testing.T) {
	tests := []struct {
		confidence float64
		want       models.Recommendation
	}{
		{70, models.StrongBet},
		{69.99, models.Bet},
		{58, models.Bet},
		{57.9, models.Neutral},
		{45, models.Neutral},
		{44.9, models.Avoid},
		{30, models.Avoid},
		{29.9, models.StrongAvoid},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Recommend(tt.confidence), "confidence %v", tt.confidence)
	}
}

func TestRecommend_MonotonicInConfidence(t *testing.T) {
	prev := Recommend(0).Rank()
	for c := 0.0; c <= 100; c += 0.5 {
		rank := Recommend(c).Rank()
		require.GreaterOrEqual(t, rank, prev, "confidence %v", c)
		prev = rank
	}
}

func TestConsistency(t *testing.T) {
	c, ok := Consistency([]float64{10, 20})
	require.True(t, ok)
	// population variance 25
	assert.InDelta(t, 0.5, c, 1e-9)

	c, _ = Consistency([]float64{0, 40})
	assert.Equal(t, 0.0, c)

	_, ok = Consistency(nil)
	assert.False(t, ok)
}

func TestEvaluate_MissingValueLeavesDenominator(t *testing.T) {
	prop := models.PropLine{PropID: "p9", StatType: models.StatPoints, Line: 10, Direction: models.Over}
	games := pointsGames("30:00", 12, 0, 8)
	delete(games[1].Stats, models.KeyPoints)

	result := Evaluate(prop, games, tuning.Default())

	assert.Equal(t, 2, result.GamesAnalyzed)
	assert.Equal(t, 50.0, result.HitRate)
	assert.Equal(t, 10.0, result.AverageStat)
}
