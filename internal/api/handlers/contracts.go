package handlers

import (
	"context"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/store"
)

type PropAnalyzer interface {
	AnalyzeProp(ctx context.Context, prop models.PropLine) models.PropAnalysis
	AnalyzeSlip(ctx context.Context, props []models.PropLine) models.SlipAnalysis
}

type HalftimeAnalyzer interface {
	Analyze(ctx context.Context, gameID string, lines map[string]map[models.StatType]float64, reference *float64) (*models.HalftimeAnalysis, error)
}

type TotalsAnalyzer interface {
	Analyze(ctx context.Context, gameID string, reference *float64) (*models.GameTotalProjection, error)
}

type GameLister interface {
	TodaysGames(ctx context.Context) ([]models.LiveGame, error)
}

// AnalysisRecorder persists completed analyses. Handlers accept a nil
// recorder and skip persistence.
type AnalysisRecorder interface {
	SaveHalftime(ctx context.Context, a *models.HalftimeAnalysis) (*store.AnalysisRecord, error)
	SaveTotals(ctx context.Context, p *models.GameTotalProjection) (*store.AnalysisRecord, error)
	SaveProp(ctx context.Context, a models.PropAnalysis) (*store.AnalysisRecord, error)
	ListByGame(ctx context.Context, gameID string, limit int) ([]store.AnalysisRecord, error)
}

type BreakerReporter interface {
	States() map[string]string
}

type Pinger interface {
	Ping(ctx context.Context) error
}
