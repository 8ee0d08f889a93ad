// Package props scores proposed player props against recent game history.
package props

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/providers"
	"github.com/stitts-dev/prop-engine/internal/tuning"
	"github.com/stitts-dev/prop-engine/pkg/logger"
)

// Analyzer resolves the player, fetches recent history and evaluates props.
type Analyzer struct {
	history   providers.HistoricalStatsProvider
	directory providers.PlayerDirectory
	ratings   providers.TeamRatingsProvider
	tables    tuning.Tables
	games     int
	logger    *logrus.Logger
}

// NewAnalyzer builds an Analyzer. ratings may be nil, in which case a resolved
// opponent gets the league-average rank.
func NewAnalyzer(
	history providers.HistoricalStatsProvider,
	directory providers.PlayerDirectory,
	ratings providers.TeamRatingsProvider,
	tables tuning.Tables,
	games int,
	log *logrus.Logger,
) *Analyzer {
	if games <= 0 {
		games = 10
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Analyzer{
		history:   history,
		directory: directory,
		ratings:   ratings,
		tables:    tables,
		games:     games,
		logger:    log,
	}
}

// AnalyzeProp never fails: missing identity or history yields the neutral
// default analysis with an explanatory note.
func (a *Analyzer) AnalyzeProp(ctx context.Context, prop models.PropLine) models.PropAnalysis {
	log := logger.WithPropContext(a.logger, prop.PlayerName, string(prop.StatType))
	log.WithFields(logrus.Fields{
		"line":      prop.Line,
		"direction": prop.Direction,
	}).Debug("Analyzing prop")

	playerID, err := a.resolvePlayer(ctx, prop)
	if err != nil {
		log.WithError(err).Warn("Player lookup failed")
		return DefaultAnalysis(prop, models.ErrMissingPlayerIdentity)
	}
	if playerID == 0 {
		return DefaultAnalysis(prop, models.ErrMissingPlayerIdentity)
	}

	games, err := a.history.RecentStats(ctx, playerID, a.games)
	if err != nil {
		log.WithError(err).Warn("Recent stats unavailable")
		return DefaultAnalysis(prop, models.ErrMissingHistoricalData)
	}
	if len(games) == 0 {
		return DefaultAnalysis(prop, models.ErrMissingHistoricalData)
	}

	analysis := Evaluate(prop, games, a.tables)
	analysis.OpponentDefensiveRank = a.opponentRank(ctx, prop, log)

	log.WithFields(logrus.Fields{
		"confidence":     analysis.ConfidenceScore,
		"hit_rate":       analysis.HitRate,
		"recommendation": analysis.Recommendation,
	}).Info("Prop analyzed")

	return analysis
}

func (a *Analyzer) resolvePlayer(ctx context.Context, prop models.PropLine) (int, error) {
	if prop.PlayerID != 0 {
		return prop.PlayerID, nil
	}
	if a.directory == nil || strings.TrimSpace(prop.PlayerName) == "" {
		return 0, nil
	}
	ref, err := a.directory.SearchPlayer(ctx, prop.PlayerName)
	if err != nil {
		return 0, err
	}
	if ref == nil {
		return 0, nil
	}
	return ref.ID, nil
}

func (a *Analyzer) opponentRank(ctx context.Context, prop models.PropLine, log *logrus.Entry) *int {
	if prop.OpponentName == "" || a.directory == nil {
		return nil
	}
	team, err := a.directory.SearchTeam(ctx, prop.OpponentName)
	if err != nil {
		log.WithError(err).Warn("Opponent lookup failed")
		return nil
	}
	if team == nil {
		return nil
	}

	rank := a.tables.League.DefRank
	if a.ratings != nil {
		ratings, err := a.ratings.TeamRatings(ctx, team.ID, team.Abbr)
		switch {
		case err == nil && ratings != nil:
			rank = ratings.DefRankFor(prop.StatType)
		case errors.Is(err, models.ErrMissingTeamRatings):
		case err != nil:
			log.WithError(err).Warn("Opponent ratings unavailable")
		}
	}
	return &rank
}

// DefaultAnalysis is the neutral result used when a prop cannot be evaluated.
func DefaultAnalysis(prop models.PropLine, reason error) models.PropAnalysis {
	return models.PropAnalysis{
		PropID:                 prop.PropID,
		PlayerName:             prop.PlayerName,
		StatType:               prop.StatType,
		Line:                   prop.Line,
		Direction:              prop.Direction,
		ConfidenceScore:        50.0,
		HitRate:                50.0,
		AverageStat:            prop.Line,
		PaceAdjustedProjection: prop.Line,
		Factors:                map[string]float64{},
		Recommendation:         models.Neutral,
		Notes:                  fmt.Sprintf("Unable to analyze: %s", capitalize(reason.Error())),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
