package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/prop-engine/internal/api/middleware"
	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/totals"
	"github.com/stitts-dev/prop-engine/pkg/logger"
	"github.com/stitts-dev/prop-engine/pkg/utils"
)

const (
	defaultAnalysesLimit = 20
	maxAnalysesLimit     = 100
)

type GameHandler struct {
	games    GameLister
	halftime HalftimeAnalyzer
	totals   TotalsAnalyzer
	recorder AnalysisRecorder
	logger   *logrus.Logger
}

func NewGameHandler(games GameLister, halftime HalftimeAnalyzer, totals TotalsAnalyzer, recorder AnalysisRecorder, log *logrus.Logger) *GameHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &GameHandler{
		games:    games,
		halftime: halftime,
		totals:   totals,
		recorder: recorder,
		logger:   log,
	}
}

// GetTodaysGames lists the current scoreboard
// GET /api/v1/games/today
func (h *GameHandler) GetTodaysGames(c *gin.Context) {
	games, err := h.games.TodaysGames(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch scoreboard")
		utils.SendUpstreamError(c, "Failed to fetch today's games", err.Error())
		return
	}

	utils.SendSuccessWithMeta(c, games, &utils.Meta{
		Total:     int64(len(games)),
		RequestID: middleware.GetRequestID(c),
	})
}

type halftimeRequest struct {
	PropLines     map[string]map[string]float64 `json:"prop_lines"`
	ReferenceLine *float64                      `json:"reference_line" binding:"omitempty,gt=0"`
}

func (r halftimeRequest) lines() (map[string]map[models.StatType]float64, error) {
	if len(r.PropLines) == 0 {
		return nil, nil
	}
	out := make(map[string]map[models.StatType]float64, len(r.PropLines))
	for player, byStat := range r.PropLines {
		parsed := make(map[models.StatType]float64, len(byStat))
		for raw, line := range byStat {
			st, err := models.ParseStatType(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", player, err)
			}
			if line <= 0 {
				return nil, fmt.Errorf("%w: %s %s line must be positive", models.ErrInvalidPropLine, player, raw)
			}
			parsed[st] = line
		}
		out[player] = parsed
	}
	return out, nil
}

// AnalyzeHalftime projects every qualifying player and the game total
// POST /api/v1/games/:id/halftime
func (h *GameHandler) AnalyzeHalftime(c *gin.Context) {
	gameID := c.Param("id")

	var req halftimeRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	lines, err := req.lines()
	if err != nil {
		utils.SendValidationError(c, "Invalid prop lines", err.Error())
		return
	}

	analysis, err := h.halftime.Analyze(c.Request.Context(), gameID, lines, req.ReferenceLine)
	if err != nil {
		h.sendAnalysisError(c, gameID, err)
		return
	}

	if h.recorder != nil {
		if _, err := h.recorder.SaveHalftime(c.Request.Context(), analysis); err != nil {
			logger.WithGameContext(h.logger, gameID).WithError(err).Warn("Failed to store halftime analysis")
		}
	}

	utils.SendSuccessWithMeta(c, analysis, &utils.Meta{RequestID: middleware.GetRequestID(c)})
}

// AnalyzeTotals projects the final game total against an optional line
// POST /api/v1/games/:id/totals
func (h *GameHandler) AnalyzeTotals(c *gin.Context) {
	gameID := c.Param("id")

	var req struct {
		ReferenceLine *float64 `json:"reference_line" binding:"omitempty,gt=0"`
	}
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	projection, err := h.totals.Analyze(c.Request.Context(), gameID, req.ReferenceLine)
	if err != nil {
		h.sendAnalysisError(c, gameID, err)
		return
	}

	if h.recorder != nil {
		if _, err := h.recorder.SaveTotals(c.Request.Context(), projection); err != nil {
			logger.WithGameContext(h.logger, gameID).WithError(err).Warn("Failed to store totals projection")
		}
	}

	utils.SendSuccessWithMeta(c, projection, &utils.Meta{RequestID: middleware.GetRequestID(c)})
}

// GetGameAnalyses lists stored analyses for a game, newest first
// GET /api/v1/games/:id/analyses?limit=20
func (h *GameHandler) GetGameAnalyses(c *gin.Context) {
	if h.recorder == nil {
		utils.SendServiceUnavailable(c, "Analysis history is not enabled")
		return
	}

	limit := defaultAnalysesLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxAnalysesLimit {
			utils.SendValidationError(c, "Invalid limit", fmt.Sprintf("limit must be between 1 and %d", maxAnalysesLimit))
			return
		}
		limit = parsed
	}

	gameID := c.Param("id")
	records, err := h.recorder.ListByGame(c.Request.Context(), gameID, limit)
	if err != nil {
		logger.WithGameContext(h.logger, gameID).WithError(err).Error("Failed to list analyses")
		utils.SendInternalError(c, "Failed to fetch analyses")
		return
	}

	utils.SendSuccessWithMeta(c, records, &utils.Meta{
		Total:     int64(len(records)),
		RequestID: middleware.GetRequestID(c),
	})
}

func (h *GameHandler) sendAnalysisError(c *gin.Context, gameID string, err error) {
	log := logger.WithGameContext(h.logger, gameID).WithError(err)
	switch {
	case errors.Is(err, models.ErrGameNotFound):
		utils.SendNotFound(c, fmt.Sprintf("Game %s not found", gameID))
	case errors.Is(err, totals.ErrEmptyBoxScore):
		log.Warn("Game has no box score yet")
		utils.SendError(c, http.StatusUnprocessableEntity, utils.NewAppError(utils.ErrCodeAnalysis, "Game has no box score yet", err.Error()))
	default:
		log.Error("Live game analysis failed")
		utils.SendUpstreamError(c, "Failed to fetch live game data", err.Error())
	}
}

// bindOptionalJSON binds a JSON body when one was sent.
func bindOptionalJSON(c *gin.Context, dest interface{}) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
