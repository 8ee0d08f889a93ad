package halftime

import (
	"math"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/props"
	"github.com/stitts-dev/prop-engine/internal/tuning"
)

// PlayerContext is everything known about one live player at projection time.
type PlayerContext struct {
	Player     models.LivePlayerStats
	Team       models.TeamAggregate
	Game       models.LiveGame
	Own        models.TeamRatings
	Opponent   models.TeamRatings
	Season     *models.SeasonStats
	History    []models.StatObservation
	BackToBack bool
	RestDays   int
}

// componentInputs are the multipliers applied to the extrapolated rate.
type componentInputs struct {
	value           float64
	minutes         float64
	projMinutes     float64
	remaining       float64
	hist2h          float64
	hist2hKnown     bool
	shootingFactor  float64
	volumeFactor    float64
	opponentFactor  float64
	situationFactor float64
	paceFactor      float64
	plusMinusFactor float64
	utilization     float64
	fatigue         float64
}

// Project computes the remaining-game and final projection of one stat for
// one player against a line.
func Project(pc PlayerContext, st models.StatType, line float64, t tuning.Tables) models.PlayerProjection {
	p := pc.Player
	g := pc.Game
	th := t.Thresholds

	value := p.StatValue(st)
	minutes := p.Minutes
	elapsed := g.ElapsedMinutes()
	remaining := g.RemainingMinutes()

	shooting := Shooting(p)
	ato := AssistToTurnover(p)
	utilization, utilizationKnown := Utilization(p, pc.Team)
	pace := PaceFactor(g.TotalScore(), elapsed, t.League)
	foul := FoulTrouble(p.Fouls, minutes, th)
	blowout := Blowout(g.ScoreDifferential(), th)
	fatigue := FatigueFactor(pc.BackToBack, pc.RestDays, t)
	defRank := pc.Opponent.DefRankFor(st)

	seasonAvg, seasonKnown := pc.Season.Average(st)
	hist2h, hist2hKnown := pc.Season.SecondHalfAverage(st)

	projMinutes := MinutesProjection(minutes, elapsed, remaining, foul, blowout, p.Starter)

	volume := ShotVolumeFactor(p.FGAttempted, p.FTAttempted, minutes, st)
	opponent := OpponentDefAdjustment(defRank)
	pmFactor := PlusMinusFactor(p.PlusMinus, minutes)

	projected, components := projectRemaining(componentInputs{
		value:           value,
		minutes:         minutes,
		projMinutes:     projMinutes,
		remaining:       remaining,
		hist2h:          hist2h,
		hist2hKnown:     hist2hKnown,
		shootingFactor:  ShootingEfficiencyFactor(shooting, st),
		volumeFactor:    volume,
		opponentFactor:  opponent,
		situationFactor: ScoreSituationMultiplier(g.ScoreDifferential(), blowout),
		paceFactor:      pace * t.PaceSustainability,
		plusMinusFactor: pmFactor,
		utilization:     UtilizationMultiplier(utilization, utilizationKnown),
		fatigue:         fatigue,
	}, t.ProjectionWeights)

	final := value + projected

	var notes []string
	consistency, consistencyKnown := historicalConsistency(pc.History, st)
	if !consistencyKnown {
		consistency = neutralConsistency
		notes = append(notes, "No recent game history; neutral consistency used")
	}
	if !utilizationKnown {
		notes = append(notes, "Team has no used possessions yet; utilization unknown")
	}

	confidence := Confidence(ConfidenceInputs{
		ProjectedFinal:        final,
		Line:                  line,
		CurrentValue:          value,
		HistoricalConsistency: consistency,
		Shooting:              shooting,
		FoulTrouble:           foul,
		Blowout:               blowout,
		UtilizationRate:       utilization,
		PlusMinus:             p.PlusMinus,
		OpponentDefRank:       defRank,
		AssistToTurnover:      ato,
	}, th)

	atoFactor := 0.0
	if ato != nil {
		atoFactor = *ato
	}
	foulPenalty, blowoutPenalty := 0.0, 0.0
	if foul {
		foulPenalty = -10
	}
	if blowout {
		blowoutPenalty = -12
	}

	proj := models.PlayerProjection{
		PlayerID:           p.PlayerID,
		PlayerName:         p.PlayerName,
		TeamAbbr:           p.TeamAbbr,
		StatType:           st,
		PropLine:           line,
		CurrentValue:       value,
		CurrentMinutes:     minutes,
		ProjectedRemaining: round1(projected),
		ProjectedFinal:     round1(final),
		ConfidenceScore:    round1(confidence),
		Recommendation:     Recommend(confidence, final-line),
		Components:         components,
		Factors: map[string]float64{
			"first_half_progress":     Progress(value, line),
			"shots_attempted":         float64(p.FGAttempted),
			"shot_volume_factor":      volume,
			"shooting_ts_pct":         shooting.TSPct,
			"shooting_efg_pct":        shooting.EFGPct,
			"opponent_def_rank":       float64(defRank),
			"opponent_def_adjustment": opponent,
			"score_differential":      float64(g.ScoreDifferential()),
			"pace_factor":             pace,
			"plus_minus":              float64(p.PlusMinus),
			"plus_minus_factor":       pmFactor,
			"utilization_rate":        utilization,
			"fatigue_factor":          fatigue,
			"assist_to_turnover":      atoFactor,
			"historical_consistency":  consistency,
			"foul_trouble_penalty":    foulPenalty,
			"blowout_penalty":         blowoutPenalty,
		},
		FoulTrouble:       foul,
		BlowoutWarning:    blowout,
		PaceFactor:        round2(pace),
		UtilizationRate:   round1(utilization),
		UtilizationKnown:  utilizationKnown,
		FatigueFactor:     fatigue,
		MinutesProjection: round1(projMinutes),
		Shooting:          shooting,
		EfficiencyRating:  shooting.EfficiencyRating(),
		AssistToTurnover:  ato,
		OpponentDefRank:   defRank,
		OpponentDefRating: pc.Opponent.DefRating,
		TeamOffRating:     pc.Own.OffRating,
		PlusMinus:         p.PlusMinus,
		Notes:             notes,
	}
	if seasonKnown {
		v := round1(seasonAvg)
		proj.SeasonAverage = &v
	}
	if hist2hKnown {
		v := round1(hist2h)
		proj.SecondHalfHistoricalAvg = &v
	}
	if consistencyKnown {
		v := round1(consistency)
		proj.HistoricalConsistency = &v
	}
	return proj
}

// projectRemaining blends ten estimates of the remaining production. Each is
// the current per-minute rate over the projected minutes times one
// multiplier, except the historical component, which scales the season
// second-half average instead when one is known.
func projectRemaining(in componentInputs, weights tuning.WeightTable) (float64, map[string]float64) {
	if in.minutes <= 0 {
		if in.hist2hKnown {
			return in.hist2h * math.Min(in.remaining, models.HalfMinutes) / models.HalfMinutes, map[string]float64{}
		}
		return 0, map[string]float64{}
	}

	trend := in.value / in.minutes * in.projMinutes
	historical := trend
	if in.hist2hKnown {
		historical = in.hist2h * (in.projMinutes / models.HalfMinutes)
	}

	components := map[string]float64{
		tuning.FirstHalfTrend:     trend,
		tuning.ShootingEfficiency: trend * in.shootingFactor,
		tuning.ShotVolume:         trend * in.volumeFactor,
		tuning.OpponentDefense:    trend * in.opponentFactor,
		tuning.ScoreSituation:     trend * in.situationFactor,
		tuning.Historical2HAvg:    historical,
		tuning.PaceAdjustment:     trend * in.paceFactor,
		tuning.PlusMinusFactor:    trend * in.plusMinusFactor,
		tuning.UtilizationRate:    trend * in.utilization,
		tuning.FatigueFactor:      trend * in.fatigue,
	}

	projected := 0.0
	for _, key := range weights.Keys() {
		projected += components[key] * weights[key]
	}

	rounded := make(map[string]float64, len(components))
	for k, v := range components {
		rounded[k] = round2(v)
	}
	return math.Max(0, projected), rounded
}

// historicalConsistency scores the steadiness of the stat over recent games
// on a 0-100 scale.
func historicalConsistency(history []models.StatObservation, st models.StatType) (float64, bool) {
	keys := st.HistoryKeys()
	values := make([]float64, 0, len(history))
	for _, obs := range history {
		if v, ok := obs.Value(keys); ok {
			values = append(values, v)
		}
	}
	c, ok := props.Consistency(values)
	if !ok {
		return 0, false
	}
	return c * 100, true
}

// DefaultLine extrapolates the current value to a full game. Used when the
// caller supplies no line for a stat.
func DefaultLine(current, elapsed float64) float64 {
	if elapsed <= 0 {
		return 0
	}
	return current * models.RegulationMinutes / elapsed
}
