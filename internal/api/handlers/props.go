package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/prop-engine/internal/api/middleware"
	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/pkg/logger"
	"github.com/stitts-dev/prop-engine/pkg/utils"
)

type PropHandler struct {
	analyzer PropAnalyzer
	recorder AnalysisRecorder
	logger   *logrus.Logger
}

func NewPropHandler(analyzer PropAnalyzer, recorder AnalysisRecorder, log *logrus.Logger) *PropHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &PropHandler{
		analyzer: analyzer,
		recorder: recorder,
		logger:   log,
	}
}

type propRequest struct {
	PropID       string  `json:"prop_id"`
	PlayerName   string  `json:"player_name" binding:"required"`
	PlayerID     int     `json:"player_id" binding:"min=0"`
	StatType     string  `json:"stat_type" binding:"required"`
	Line         float64 `json:"line" binding:"required,gt=0"`
	OverUnder    string  `json:"over_under" binding:"required"`
	OpponentName string  `json:"opponent_name"`
}

// toPropLine normalizes stat and direction spellings and assigns an id to
// props submitted without one.
func (r propRequest) toPropLine() (models.PropLine, error) {
	statType, err := models.ParseStatType(r.StatType)
	if err != nil {
		return models.PropLine{}, fmt.Errorf("%w: %v", models.ErrInvalidPropLine, err)
	}
	direction, err := models.ParseDirection(r.OverUnder)
	if err != nil {
		return models.PropLine{}, fmt.Errorf("%w: %v", models.ErrInvalidPropLine, err)
	}
	id := r.PropID
	if id == "" {
		id = uuid.New().String()
	}
	return models.PropLine{
		PropID:       id,
		PlayerName:   r.PlayerName,
		PlayerID:     r.PlayerID,
		StatType:     statType,
		Line:         r.Line,
		Direction:    direction,
		OpponentName: r.OpponentName,
	}, nil
}

// AnalyzeProp scores a single prop against the player's recent games
// POST /api/v1/props/analyze
func (h *PropHandler) AnalyzeProp(c *gin.Context) {
	var req propRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	prop, err := req.toPropLine()
	if err != nil {
		utils.SendValidationError(c, "Invalid prop", err.Error())
		return
	}

	analysis := h.analyzer.AnalyzeProp(c.Request.Context(), prop)
	h.record(c, analysis)

	utils.SendSuccessWithMeta(c, analysis, &utils.Meta{RequestID: middleware.GetRequestID(c)})
}

// AnalyzeSlip scores every prop on a slip and suggests parlays
// POST /api/v1/slips/analyze
func (h *PropHandler) AnalyzeSlip(c *gin.Context) {
	var req struct {
		Props []propRequest `json:"props" binding:"max=25,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	props := make([]models.PropLine, 0, len(req.Props))
	for i, r := range req.Props {
		prop, err := r.toPropLine()
		if err != nil {
			utils.SendValidationError(c, fmt.Sprintf("Invalid prop at index %d", i), err.Error())
			return
		}
		props = append(props, prop)
	}

	slip := h.analyzer.AnalyzeSlip(c.Request.Context(), props)
	for _, analysis := range slip.PropAnalyses {
		h.record(c, analysis)
	}

	utils.SendSuccessWithMeta(c, slip, &utils.Meta{
		Total:     int64(len(slip.PropAnalyses)),
		RequestID: middleware.GetRequestID(c),
	})
}

func (h *PropHandler) record(c *gin.Context, analysis models.PropAnalysis) {
	if h.recorder == nil {
		return
	}
	if _, err := h.recorder.SaveProp(c.Request.Context(), analysis); err != nil {
		logger.WithPropContext(h.logger, analysis.PlayerName, string(analysis.StatType)).
			WithError(err).Warn("Failed to store prop analysis")
	}
}
