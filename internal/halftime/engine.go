package halftime

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/prop-engine/internal/gather"
	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/totals"
	"github.com/stitts-dev/prop-engine/internal/tuning"
	"github.com/stitts-dev/prop-engine/pkg/logger"
)

// Engine orchestrates a live game analysis: one gather phase followed by a
// pure compute phase.
type Engine struct {
	gatherer *gather.Gatherer
	tables   tuning.Tables
	logger   *logrus.Logger
}

func NewEngine(gatherer *gather.Gatherer, tables tuning.Tables, log *logrus.Logger) *Engine {
	if log == nil {
		log = logger.Discard()
	}
	return &Engine{gatherer: gatherer, tables: tables, logger: log}
}

// Analyze projects every qualifying player of a live game. lines holds
// caller-supplied prop lines keyed by player name; players without one are
// measured against their current full-game pace. Only a missing game or a
// failed snapshot fetch is returned as an error.
func (e *Engine) Analyze(ctx context.Context, gameID string, lines map[string]map[models.StatType]float64, reference *float64) (*models.HalftimeAnalysis, error) {
	in, err := e.gatherer.Gather(ctx, gather.Request{
		GameID:        gameID,
		PropLines:     lines,
		ReferenceLine: reference,
	})
	if err != nil {
		return nil, err
	}

	analysis := Compute(in, e.tables)

	logger.WithGameContext(e.logger, gameID).WithFields(logrus.Fields{
		"projections": len(analysis.Players),
		"suggestions": len(analysis.Suggestions),
		"warnings":    len(analysis.Warnings),
	}).Info("Live game analyzed")

	return analysis, nil
}

// Compute builds the full analysis from gathered inputs without any I/O.
func Compute(in *models.GameInputs, t tuning.Tables) *models.HalftimeAnalysis {
	snap := in.Snapshot
	g := snap.Game
	elapsed := g.ElapsedMinutes()

	teamTotals := ProjectTeamTotals(g, t)
	aggregates := map[bool]models.TeamAggregate{
		true:  models.AggregateTeam(snap.Home),
		false: models.AggregateTeam(snap.Away),
	}

	projections := make([]models.PlayerProjection, 0)
	for _, p := range snap.Players() {
		if p.Minutes < t.Thresholds.MinPlayerMinutes {
			continue
		}

		isHome := snap.IsHome(p)
		pc := PlayerContext{
			Player:   p,
			Team:     aggregates[isHome],
			Game:     g,
			Own:      in.Ratings.Away,
			Opponent: in.Ratings.Home,
			Season:   in.SeasonFor(p.PlayerID),
			History:  in.History[p.PlayerID],
			RestDays: 1,
		}
		teamID := g.AwayTeamID
		if isHome {
			pc.Own, pc.Opponent = in.Ratings.Home, in.Ratings.Away
			teamID = g.HomeTeamID
		}
		pc.BackToBack = in.BackToBack[teamID]

		supplied := in.PropLines[p.PlayerName]
		for _, st := range statTypesFor(supplied) {
			line, ok := supplied[st]
			if !ok {
				line = DefaultLine(p.StatValue(st), elapsed)
			}
			if line <= 0 {
				continue
			}
			projections = append(projections, Project(pc, st, line, t))
		}
	}

	notes := append([]string{}, in.Notes...)
	var enhanced *models.GameTotalProjection
	if projection, err := totals.Project(in, t); err != nil {
		notes = append(notes, fmt.Sprintf("Enhanced game totals unavailable: %v", err))
	} else {
		enhanced = projection
	}

	return &models.HalftimeAnalysis{
		GameID:            g.GameID,
		GameInfo:          g,
		ScoreDifferential: g.ScoreDifferential(),
		TotalScore:        g.TotalScore(),
		Ratings:           in.Ratings,
		NetRatings: map[string]float64{
			"home": in.Ratings.Home.NetRating(),
			"away": in.Ratings.Away.NetRating(),
		},
		GameTotals:  teamTotals,
		Players:     projections,
		Suggestions: Suggest(projections, t.Thresholds),
		Warnings:    Warnings(teamTotals),
		Enhanced:    enhanced,
		Notes:       notes,
		AnalyzedAt:  in.AnalyzedAt.Format(time.RFC3339),
	}
}

// statTypesFor returns the default stats followed by any other stats the
// caller supplied lines for, in a stable order.
func statTypesFor(supplied map[models.StatType]float64) []models.StatType {
	types := append([]models.StatType{}, models.DefaultLiveStatTypes...)
	extra := make([]models.StatType, 0, len(supplied))
	for st := range supplied {
		if !isDefault(st) {
			extra = append(extra, st)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(types, extra...)
}

func isDefault(st models.StatType) bool {
	for _, d := range models.DefaultLiveStatTypes {
		if d == st {
			return true
		}
	}
	return false
}
