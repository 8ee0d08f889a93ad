package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/stitts-dev/prop-engine/internal/api/handlers"
	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/store"
	"github.com/stitts-dev/prop-engine/internal/totals"
)

type MockGames struct{ mock.Mock }

func (m *MockGames) TodaysGames(ctx context.Context) ([]models.LiveGame, error) {
	args := m.Called(ctx)
	if games := args.Get(0); games != nil {
		return games.([]models.LiveGame), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockHalftime struct{ mock.Mock }

func (m *MockHalftime) Analyze(ctx context.Context, gameID string, lines map[string]map[models.StatType]float64, reference *float64) (*models.HalftimeAnalysis, error) {
	args := m.Called(ctx, gameID, lines, reference)
	if a := args.Get(0); a != nil {
		return a.(*models.HalftimeAnalysis), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTotals struct{ mock.Mock }

func (m *MockTotals) Analyze(ctx context.Context, gameID string, reference *float64) (*models.GameTotalProjection, error) {
	args := m.Called(ctx, gameID, reference)
	if p := args.Get(0); p != nil {
		return p.(*models.GameTotalProjection), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockProps struct{ mock.Mock }

func (m *MockProps) AnalyzeProp(ctx context.Context, prop models.PropLine) models.PropAnalysis {
	return m.Called(ctx, prop).Get(0).(models.PropAnalysis)
}

func (m *MockProps) AnalyzeSlip(ctx context.Context, props []models.PropLine) models.SlipAnalysis {
	return m.Called(ctx, props).Get(0).(models.SlipAnalysis)
}

type MockRecorder struct{ mock.Mock }

func (m *MockRecorder) SaveHalftime(ctx context.Context, a *models.HalftimeAnalysis) (*store.AnalysisRecord, error) {
	args := m.Called(ctx, a)
	return nil, args.Error(0)
}

func (m *MockRecorder) SaveTotals(ctx context.Context, p *models.GameTotalProjection) (*store.AnalysisRecord, error) {
	args := m.Called(ctx, p)
	return nil, args.Error(0)
}

func (m *MockRecorder) SaveProp(ctx context.Context, a models.PropAnalysis) (*store.AnalysisRecord, error) {
	args := m.Called(ctx, a)
	return nil, args.Error(0)
}

func (m *MockRecorder) ListByGame(ctx context.Context, gameID string, limit int) ([]store.AnalysisRecord, error) {
	args := m.Called(ctx, gameID, limit)
	if recs := args.Get(0); recs != nil {
		return recs.([]store.AnalysisRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

type staticBreakers map[string]string

func (s staticBreakers) States() map[string]string { return s }

type failingPing struct{}

func (failingPing) Ping(context.Context) error { return errors.New("connection refused") }

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total     int64  `json:"total"`
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type RouterTestSuite struct {
	suite.Suite
	games    *MockGames
	halftime *MockHalftime
	totals   *MockTotals
	props    *MockProps
	recorder *MockRecorder
	router   *gin.Engine
}

func (s *RouterTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *RouterTestSuite) SetupTest() {
	s.games = new(MockGames)
	s.halftime = new(MockHalftime)
	s.totals = new(MockTotals)
	s.props = new(MockProps)
	s.recorder = new(MockRecorder)
	s.router = NewRouter(Dependencies{
		Games:    s.games,
		Halftime: s.halftime,
		Totals:   s.totals,
		Props:    s.props,
		Recorder: s.recorder,
		Breakers: staticBreakers{"live": "closed", "history": "closed"},
	}, nil)
}

func (s *RouterTestSuite) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}
	var req *http.Request
	if reader != nil {
		req = httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func (s *RouterTestSuite) TestAnalyzeProp_NormalizesAndStores() {
	analysis := models.PropAnalysis{PropID: "p1", PlayerName: "Jayson Tatum", StatType: models.StatPoints, ConfidenceScore: 66}
	s.props.On("AnalyzeProp", mock.Anything, mock.MatchedBy(func(p models.PropLine) bool {
		return p.PropID == "p1" && p.StatType == models.StatPoints && p.Direction == models.Over && p.Line == 27.5
	})).Return(analysis)
	s.recorder.On("SaveProp", mock.Anything, analysis).Return(nil)

	w, env := s.do(http.MethodPost, "/api/v1/props/analyze", map[string]interface{}{
		"prop_id": "p1", "player_name": "Jayson Tatum", "stat_type": "PTS", "line": 27.5, "over_under": "O",
	})

	s.Equal(http.StatusOK, w.Code)
	s.True(env.Success)
	s.NotEmpty(w.Header().Get("X-Request-ID"))
	s.Equal(w.Header().Get("X-Request-ID"), env.Meta.RequestID)

	var got models.PropAnalysis
	s.Require().NoError(json.Unmarshal(env.Data, &got))
	s.Equal(66.0, got.ConfidenceScore)
	s.recorder.AssertExpectations(s.T())
}

func (s *RouterTestSuite) TestAnalyzeProp_AssignsMissingID() {
	s.props.On("AnalyzeProp", mock.Anything, mock.MatchedBy(func(p models.PropLine) bool {
		_, err := uuid.Parse(p.PropID)
		return err == nil
	})).Return(models.PropAnalysis{PropID: "generated"})
	s.recorder.On("SaveProp", mock.Anything, mock.Anything).Return(errors.New("database is down"))

	w, env := s.do(http.MethodPost, "/api/v1/props/analyze", map[string]interface{}{
		"player_name": "Jayson Tatum", "stat_type": "rebounds", "line": 8.5, "over_under": "under",
	})

	s.Equal(http.StatusOK, w.Code, "a failed save does not fail the request")
	s.True(env.Success)
	s.props.AssertExpectations(s.T())
}

func (s *RouterTestSuite) TestAnalyzeProp_Validation() {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing player", map[string]interface{}{"stat_type": "points", "line": 20.5, "over_under": "over"}},
		{"zero line", map[string]interface{}{"player_name": "A", "stat_type": "points", "line": 0, "over_under": "over"}},
		{"unknown stat", map[string]interface{}{"player_name": "A", "stat_type": "dunks", "line": 1.5, "over_under": "over"}},
		{"unknown direction", map[string]interface{}{"player_name": "A", "stat_type": "points", "line": 1.5, "over_under": "sideways"}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			w, env := s.do(http.MethodPost, "/api/v1/props/analyze", tt.body)
			s.Equal(http.StatusBadRequest, w.Code)
			s.False(env.Success)
			s.Equal("VALIDATION_ERROR", env.Error.Code)
		})
	}
	s.props.AssertNotCalled(s.T(), "AnalyzeProp", mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestAnalyzeSlip() {
	slip := models.SlipAnalysis{
		OverallConfidence: 61,
		RecommendedBets:   []string{"a"},
		PropAnalyses: []models.PropAnalysis{
			{PropID: "a", ConfidenceScore: 70},
			{PropID: "b", ConfidenceScore: 52},
		},
	}
	s.props.On("AnalyzeSlip", mock.Anything, mock.MatchedBy(func(props []models.PropLine) bool {
		return len(props) == 2 && props[1].StatType == models.StatPointsRebAssists
	})).Return(slip)
	s.recorder.On("SaveProp", mock.Anything, mock.Anything).Return(nil)

	w, env := s.do(http.MethodPost, "/api/v1/slips/analyze", map[string]interface{}{
		"props": []map[string]interface{}{
			{"prop_id": "a", "player_name": "Jayson Tatum", "stat_type": "points", "line": 27.5, "over_under": "over"},
			{"prop_id": "b", "player_name": "Jaylen Brown", "stat_type": "PRA", "line": 35.5, "over_under": "under"},
		},
	})

	s.Equal(http.StatusOK, w.Code)
	s.Equal(int64(2), env.Meta.Total)
	s.recorder.AssertNumberOfCalls(s.T(), "SaveProp", 2)
}

func (s *RouterTestSuite) TestAnalyzeSlip_EmptyIsAllowed() {
	s.props.On("AnalyzeSlip", mock.Anything, []models.PropLine{}).Return(models.SlipAnalysis{OverallConfidence: 50})

	w, env := s.do(http.MethodPost, "/api/v1/slips/analyze", map[string]interface{}{"props": []interface{}{}})

	s.Equal(http.StatusOK, w.Code)
	s.Equal(int64(0), env.Meta.Total)
}

func (s *RouterTestSuite) TestTodaysGames() {
	s.games.On("TodaysGames", mock.Anything).Return([]models.LiveGame{{GameID: "0022400571"}, {GameID: "0022400572"}}, nil).Once()

	w, env := s.do(http.MethodGet, "/api/v1/games/today", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(int64(2), env.Meta.Total)

	s.games.On("TodaysGames", mock.Anything).Return(nil, errors.New("cdn unavailable")).Once()
	w, env = s.do(http.MethodGet, "/api/v1/games/today", nil)
	s.Equal(http.StatusBadGateway, w.Code)
	s.Equal("UPSTREAM_ERROR", env.Error.Code)
}

func (s *RouterTestSuite) TestHalftime_WithLines() {
	ref := 221.5
	analysis := &models.HalftimeAnalysis{GameID: "0022400571"}
	wantLines := map[string]map[models.StatType]float64{
		"Jayson Tatum": {models.StatPoints: 26.5, models.StatThrees: 3.5},
	}
	s.halftime.On("Analyze", mock.Anything, "0022400571", wantLines, &ref).Return(analysis, nil)
	s.recorder.On("SaveHalftime", mock.Anything, analysis).Return(nil)

	w, env := s.do(http.MethodPost, "/api/v1/games/0022400571/halftime", map[string]interface{}{
		"prop_lines":     map[string]map[string]float64{"Jayson Tatum": {"pts": 26.5, "3pm": 3.5}},
		"reference_line": ref,
	})

	s.Equal(http.StatusOK, w.Code)
	s.True(env.Success)
	s.recorder.AssertExpectations(s.T())
}

func (s *RouterTestSuite) TestHalftime_NoBody() {
	s.halftime.On("Analyze", mock.Anything, "0022400571", map[string]map[models.StatType]float64(nil), (*float64)(nil)).
		Return(&models.HalftimeAnalysis{GameID: "0022400571"}, nil)
	s.recorder.On("SaveHalftime", mock.Anything, mock.Anything).Return(nil)

	w, _ := s.do(http.MethodPost, "/api/v1/games/0022400571/halftime", nil)

	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterTestSuite) TestHalftime_InvalidLines() {
	w, env := s.do(http.MethodPost, "/api/v1/games/0022400571/halftime", map[string]interface{}{
		"prop_lines": map[string]map[string]float64{"Jayson Tatum": {"points": -1}},
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("VALIDATION_ERROR", env.Error.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/games/0022400571/halftime", map[string]interface{}{"reference_line": -200})
	s.Equal(http.StatusBadRequest, w.Code)

	s.halftime.AssertNotCalled(s.T(), "Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestAnalysisErrors() {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"unknown game", models.ErrGameNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"empty box score", totals.ErrEmptyBoxScore, http.StatusUnprocessableEntity, "ANALYSIS_ERROR"},
		{"upstream timeout", models.ErrExternalServiceTimeout, http.StatusBadGateway, "UPSTREAM_ERROR"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.totals.On("Analyze", mock.Anything, "0022400571", (*float64)(nil)).Return(nil, tt.err)

			w, env := s.do(http.MethodPost, "/api/v1/games/0022400571/totals", nil)

			s.Equal(tt.wantCode, w.Code)
			s.Equal(tt.wantErr, env.Error.Code)
			s.recorder.AssertNotCalled(s.T(), "SaveTotals", mock.Anything, mock.Anything)
		})
	}
}

func (s *RouterTestSuite) TestTotals_ReferenceLine() {
	ref := 228.5
	projection := &models.GameTotalProjection{GameID: "0022400571", ProjectedFinalTotal: 231.2}
	s.totals.On("Analyze", mock.Anything, "0022400571", &ref).Return(projection, nil)
	s.recorder.On("SaveTotals", mock.Anything, projection).Return(nil)

	w, env := s.do(http.MethodPost, "/api/v1/games/0022400571/totals", map[string]interface{}{"reference_line": ref})

	s.Equal(http.StatusOK, w.Code)
	var got models.GameTotalProjection
	s.Require().NoError(json.Unmarshal(env.Data, &got))
	s.Equal(231.2, got.ProjectedFinalTotal)
}

func (s *RouterTestSuite) TestGameAnalyses() {
	records := []store.AnalysisRecord{{GameID: "0022400571", Kind: store.KindTotals}}
	s.recorder.On("ListByGame", mock.Anything, "0022400571", 20).Return(records, nil)
	s.recorder.On("ListByGame", mock.Anything, "0022400571", 5).Return([]store.AnalysisRecord{}, nil)

	w, env := s.do(http.MethodGet, "/api/v1/games/0022400571/analyses", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(int64(1), env.Meta.Total)

	w, _ = s.do(http.MethodGet, "/api/v1/games/0022400571/analyses?limit=5", nil)
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/games/0022400571/analyses?limit=500", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestGameAnalyses_StoreDisabled() {
	router := NewRouter(Dependencies{Games: s.games, Halftime: s.halftime, Totals: s.totals, Props: s.props}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/games/0022400571/analyses", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *RouterTestSuite) TestHealth() {
	router := NewRouter(Dependencies{
		Breakers:     staticBreakers{"live": "closed", "history": "open"},
		HealthChecks: map[string]handlers.Pinger{"redis": failingPing{}},
	}, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("abc-123", w.Header().Get("X-Request-ID"))

	var body struct {
		Status       string            `json:"status"`
		Upstreams    map[string]string `json:"upstreams"`
		Dependencies map[string]string `json:"dependencies"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("degraded", body.Status)
	s.Equal("open", body.Upstreams["history"])
	s.Equal("connection refused", body.Dependencies["redis"])
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
