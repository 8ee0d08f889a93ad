package totals

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/prop-engine/internal/gather"
	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/tuning"
	"github.com/stitts-dev/prop-engine/pkg/logger"
)

// Engine gathers a game's inputs and runs the total model over them.
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

// Analyze projects the game's total. reference may be nil, in which case the
// line is estimated from the teams' season ratings.
func (e *Engine) Analyze(ctx context.Context, gameID string, reference *float64) (*models.GameTotalProjection, error) {
	in, err := e.gatherer.Gather(ctx, gather.Request{GameID: gameID, ReferenceLine: reference})
	if err != nil {
		return nil, err
	}

	projection, err := Project(in, e.tables)
	if err != nil {
		return nil, err
	}
	projection.Notes = append(projection.Notes, in.Notes...)

	logger.WithGameContext(e.logger, gameID).WithFields(logrus.Fields{
		"projected_total": projection.ProjectedFinalTotal,
		"confidence":      projection.TotalConfidence,
		"call":            projection.OverUnder.Recommendation,
	}).Info("Game total projected")

	return projection, nil
}
