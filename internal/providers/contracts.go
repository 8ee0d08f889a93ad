// Package providers holds the data collaborators the engines depend on and
// the clients that implement them.
package providers

import (
	"context"
	"time"

	"github.com/stitts-dev/prop-engine/internal/models"
)

// HistoricalStatsProvider returns a player's most recent completed games,
// newest first.
type HistoricalStatsProvider interface {
	RecentStats(ctx context.Context, playerID int, n int) ([]models.StatObservation, error)
}

// PlayerDirectory resolves names to provider identities. A nil result with a
// nil error means no match.
type PlayerDirectory interface {
	SearchPlayer(ctx context.Context, name string) (*models.PlayerRef, error)
	SearchTeam(ctx context.Context, name string) (*models.TeamRef, error)
}

// LiveSnapshotProvider reads live games. Snapshot returns
// models.ErrGameNotFound when the id matches no game.
type LiveSnapshotProvider interface {
	Snapshot(ctx context.Context, gameID string) (*models.LiveSnapshot, error)
	TodaysGames(ctx context.Context) ([]models.LiveGame, error)
}

// SeasonStatsProvider returns nil, nil when the player has no season record.
// Implementations may match on the player's name when their ids differ from
// the live feed's.
type SeasonStatsProvider interface {
	SeasonStats(ctx context.Context, player models.PlayerRef) (*models.SeasonStats, error)
}

// TeamRatingsProvider returns models.ErrMissingTeamRatings for unknown teams.
type TeamRatingsProvider interface {
	TeamRatings(ctx context.Context, teamID int, abbr string) (*models.TeamRatings, error)
}

type ScheduleProvider interface {
	IsBackToBack(ctx context.Context, teamID int, gameDate time.Time) (bool, error)
}
