// Package store persists completed analyses so they can be reviewed after
// the game.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/pkg/logger"
)

type Kind string

const (
	KindHalftime Kind = "halftime"
	KindTotals   Kind = "totals"
	KindProp     Kind = "prop"
)

// AnalysisRecord is one stored analysis. Payload holds the full result as
// returned to the caller.
type AnalysisRecord struct {
	ID             uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid"`
	Kind           Kind           `json:"kind" gorm:"index:idx_analysis_kind;size:20;not null"`
	GameID         string         `json:"game_id,omitempty" gorm:"index:idx_analysis_game;size:20"`
	PlayerName     string         `json:"player_name,omitempty" gorm:"size:100"`
	StatType       string         `json:"stat_type,omitempty" gorm:"size:20"`
	Confidence     float64        `json:"confidence"`
	Recommendation string         `json:"recommendation,omitempty" gorm:"size:20"`
	Payload        datatypes.JSON `json:"payload"`
	CreatedAt      time.Time      `json:"created_at" gorm:"index:idx_analysis_created"`
}

func (AnalysisRecord) TableName() string {
	return "analysis_records"
}

func (r *AnalysisRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Store struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func New(db *gorm.DB, log *logrus.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	return &Store{db: db, logger: log}
}

func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&AnalysisRecord{}); err != nil {
		return fmt.Errorf("migrating analysis records: %w", err)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, rec *AnalysisRecord) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("saving %s analysis: %w", rec.Kind, err)
	}
	s.logger.WithFields(logrus.Fields{
		"component": "store",
		"kind":      rec.Kind,
		"game_id":   rec.GameID,
		"id":        rec.ID,
	}).Debug("Analysis stored")
	return nil
}

// SaveHalftime stores a halftime analysis under the top suggestion's call.
func (s *Store) SaveHalftime(ctx context.Context, a *models.HalftimeAnalysis) (*AnalysisRecord, error) {
	rec := &AnalysisRecord{
		Kind:       KindHalftime,
		GameID:     a.GameID,
		Confidence: a.GameTotals.TotalConfidence,
	}
	if len(a.Suggestions) > 0 {
		rec.Recommendation = string(a.Suggestions[0].Recommendation)
	}
	return rec, s.saveWithPayload(ctx, rec, a)
}

func (s *Store) SaveTotals(ctx context.Context, p *models.GameTotalProjection) (*AnalysisRecord, error) {
	rec := &AnalysisRecord{
		Kind:           KindTotals,
		GameID:         p.GameID,
		Confidence:     p.TotalConfidence,
		Recommendation: string(p.OverUnder.Recommendation),
	}
	return rec, s.saveWithPayload(ctx, rec, p)
}

func (s *Store) SaveProp(ctx context.Context, a models.PropAnalysis) (*AnalysisRecord, error) {
	rec := &AnalysisRecord{
		Kind:           KindProp,
		PlayerName:     a.PlayerName,
		StatType:       string(a.StatType),
		Confidence:     a.ConfidenceScore,
		Recommendation: string(a.Recommendation),
	}
	return rec, s.saveWithPayload(ctx, rec, a)
}

func (s *Store) saveWithPayload(ctx context.Context, rec *AnalysisRecord, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s analysis: %w", rec.Kind, err)
	}
	rec.Payload = datatypes.JSON(data)
	return s.Save(ctx, rec)
}

// ListByGame returns a game's stored analyses, newest first. limit <= 0
// means no limit.
func (s *Store) ListByGame(ctx context.Context, gameID string, limit int) ([]AnalysisRecord, error) {
	var records []AnalysisRecord
	query := s.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("listing analyses for game %s: %w", gameID, err)
	}
	return records, nil
}
