package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/prop-engine/internal/api/handlers"
	"github.com/stitts-dev/prop-engine/internal/api/middleware"
	"github.com/stitts-dev/prop-engine/pkg/logger"
)

// Dependencies are the collaborators the HTTP surface is wired to. Recorder,
// Breakers and HealthChecks are optional.
type Dependencies struct {
	Games        handlers.GameLister
	Halftime     handlers.HalftimeAnalyzer
	Totals       handlers.TotalsAnalyzer
	Props        handlers.PropAnalyzer
	Recorder     handlers.AnalysisRecorder
	Breakers     handlers.BreakerReporter
	HealthChecks map[string]handlers.Pinger
}

// NewRouter builds the gin engine with middleware, /health and the /api/v1
// routes.
func NewRouter(deps Dependencies, log *logrus.Logger) *gin.Engine {
	if log == nil {
		log = logger.Discard()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))

	healthHandler := handlers.NewHealthHandler(deps.Breakers, deps.HealthChecks)
	router.GET("/health", healthHandler.GetHealth)

	SetupRoutes(router.Group("/api/v1"), deps, log)

	return router
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, deps Dependencies, log *logrus.Logger) {
	propHandler := handlers.NewPropHandler(deps.Props, deps.Recorder, log)
	gameHandler := handlers.NewGameHandler(deps.Games, deps.Halftime, deps.Totals, deps.Recorder, log)

	// Prop endpoints
	group.POST("/props/analyze", propHandler.AnalyzeProp)
	group.POST("/slips/analyze", propHandler.AnalyzeSlip)

	// Live game endpoints
	group.GET("/games/today", gameHandler.GetTodaysGames)
	group.POST("/games/:id/halftime", gameHandler.AnalyzeHalftime)
	group.POST("/games/:id/totals", gameHandler.AnalyzeTotals)
	group.GET("/games/:id/analyses", gameHandler.GetGameAnalyses)
}
