package halftime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/tuning"
)

func TestShooting(t *testing.T) {
	p := models.LivePlayerStats{
		Points: 15, FGMade: 5, FGAttempted: 10, FG3Made: 2, FG3Attempted: 4, FTMade: 3, FTAttempted: 4,
	}

	m := Shooting(p)

	assert.Equal(t, 50.0, m.FGPct)
	assert.Equal(t, 50.0, m.FG3Pct)
	assert.Equal(t, 75.0, m.FTPct)
	assert.Equal(t, 60.0, m.EFGPct)
	assert.Equal(t, 63.8, m.TSPct)
	assert.Equal(t, 1.5, m.PointsPerShot)
	assert.Equal(t, "excellent", m.EfficiencyRating())
}

func TestShooting_NoAttemptsIsZero(t *testing.T) {
	m := Shooting(models.LivePlayerStats{Rebounds: 6})
	assert.Equal(t, models.ShootingMetrics{}, m)
	assert.Equal(t, "poor", m.EfficiencyRating())
}

func TestAssistToTurnover(t *testing.T) {
	assert.Nil(t, AssistToTurnover(models.LivePlayerStats{}))

	noTurnovers := AssistToTurnover(models.LivePlayerStats{Assists: 6})
	require.NotNil(t, noTurnovers)
	assert.Equal(t, 6.0, *noTurnovers)

	ratio := AssistToTurnover(models.LivePlayerStats{Assists: 5, Turnovers: 2})
	require.NotNil(t, ratio)
	assert.Equal(t, 2.5, *ratio)
}

func TestUtilization(t *testing.T) {
	player := models.LivePlayerStats{FGAttempted: 10, FTAttempted: 5, Turnovers: 2}
	teammate := models.LivePlayerStats{FGAttempted: 30, FTAttempted: 0, Turnovers: 3}
	team := models.AggregateTeam([]models.LivePlayerStats{player, teammate})

	rate, known := Utilization(player, team)
	require.True(t, known)
	assert.InDelta(t, 14.2/47.2*100, rate, 1e-9)

	rate, known = Utilization(player, models.TeamAggregate{})
	assert.False(t, known)
	assert.Zero(t, rate)
	assert.Equal(t, 1.0, UtilizationMultiplier(rate, known))
}

func TestUtilizationMultiplier(t *testing.T) {
	assert.InDelta(t, 0.85, UtilizationMultiplier(35, true), 1e-9)
	assert.Equal(t, 1.0, UtilizationMultiplier(22, true))
	assert.Equal(t, 1.05, UtilizationMultiplier(10, true))
}

func TestPaceFactor(t *testing.T) {
	league := tuning.Default().League
	assert.InDelta(t, (112.0/24)/(225.0/48), PaceFactor(112, 24, league), 1e-9)
	assert.InDelta(t, 1.0, PaceFactor(225, 48, league), 1e-9)
	assert.Equal(t, 1.0, PaceFactor(50, 0, league))
}

func TestPlusMinusFactor(t *testing.T) {
	assert.InDelta(t, 1.01, PlusMinusFactor(10, 20), 1e-9)
	assert.Equal(t, 1.15, PlusMinusFactor(100, 10))
	assert.Equal(t, 0.85, PlusMinusFactor(-100, 10))
	assert.Equal(t, 1.0, PlusMinusFactor(5, 0))
}

func TestOpponentDefAdjustment(t *testing.T) {
	cases := map[int]float64{1: 0.90, 5: 0.90, 6: 0.95, 10: 0.95, 15: 1.0, 20: 1.0, 21: 1.05, 25: 1.05, 26: 1.10, 30: 1.10}
	for rank, want := range cases {
		assert.Equal(t, want, OpponentDefAdjustment(rank), "rank %d", rank)
	}
}

func TestShootingEfficiencyFactor(t *testing.T) {
	tests := []struct {
		name string
		m    models.ShootingMetrics
		st   models.StatType
		want float64
	}{
		{"points very hot", models.ShootingMetrics{TSPct: 72}, models.StatPoints, 1.12},
		{"points good", models.ShootingMetrics{TSPct: 56}, models.StatPoints, 1.04},
		{"points cold", models.ShootingMetrics{TSPct: 30}, models.StatPoints, 0.90},
		{"threes hot", models.ShootingMetrics{FG3Pct: 50}, models.StatThrees, 1.10},
		{"threes cold", models.ShootingMetrics{FG3Pct: 25}, models.StatThrees, 0.95},
		{"rebounds efficient", models.ShootingMetrics{TSPct: 60}, models.StatRebounds, 1.02},
		{"assists average", models.ShootingMetrics{TSPct: 50}, models.StatAssists, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShootingEfficiencyFactor(tt.m, tt.st))
		})
	}
}

func TestShotVolumeFactor(t *testing.T) {
	assert.Equal(t, 1.15, ShotVolumeFactor(20, 0, 20, models.StatPoints))
	assert.Equal(t, 1.05, ShotVolumeFactor(10, 0, 18, models.StatPoints))
	assert.Equal(t, 0.90, ShotVolumeFactor(2, 0, 20, models.StatPoints))
	assert.Equal(t, 1.05, ShotVolumeFactor(15, 0, 20, models.StatRebounds))
	assert.Equal(t, 0.95, ShotVolumeFactor(2, 0, 20, models.StatRebounds))
	assert.Equal(t, 1.0, ShotVolumeFactor(10, 0, 0, models.StatPoints))
}

func TestFoulTrouble(t *testing.T) {
	th := tuning.Default().Thresholds

	assert.True(t, FoulTrouble(3, 10, th), "threshold reached exactly")
	assert.True(t, FoulTrouble(2, 10, th), "rate above one foul per eight minutes")
	assert.False(t, FoulTrouble(1, 10, th))
	assert.False(t, FoulTrouble(2, 20, th))
	assert.False(t, FoulTrouble(0, 0, th))
}

func TestBlowout(t *testing.T) {
	th := tuning.Default().Thresholds

	assert.True(t, Blowout(20, th))
	assert.True(t, Blowout(-20, th))
	assert.False(t, Blowout(19, th))
}

func TestFatigueFactor(t *testing.T) {
	tables := tuning.Default()
	assert.Equal(t, 0.92, FatigueFactor(true, 0, tables))
	assert.Equal(t, 1.02, FatigueFactor(false, 3, tables))
	assert.Equal(t, 1.0, FatigueFactor(false, 1, tables))
}

func TestMinutesProjection(t *testing.T) {
	tests := []struct {
		name                     string
		minutes, elapsed, remain float64
		foul, blowout, starter   bool
		want                     float64
	}{
		{"halftime mirrors first half", 18, 24, 24, false, false, true, 18},
		{"foul trouble", 18, 24, 24, true, false, true, 13.5},
		{"blowout starter sits", 18, 24, 24, false, true, true, 12.6},
		{"blowout bench plays more", 20, 24, 24, false, true, false, 23},
		{"capped at half a game", 22, 24, 24, false, true, false, 24},
		{"fourth quarter share", 30, 42, 6, false, false, true, 30.0 * 6 / 42},
		{"game over", 36, 48, 0, false, false, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinutesProjection(tt.minutes, tt.elapsed, tt.remain, tt.foul, tt.blowout, tt.starter)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScoreSituationMultiplier(t *testing.T) {
	assert.Equal(t, 0.75, ScoreSituationMultiplier(25, true))
	assert.Equal(t, 1.08, ScoreSituationMultiplier(-4, false))
	assert.Equal(t, 1.03, ScoreSituationMultiplier(9, false))
	assert.Equal(t, 1.0, ScoreSituationMultiplier(15, false))
}
