package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/pkg/logger"
)

// Upstreams are the raw collaborators a Boundary guards. Any of them may be
// nil, in which case the Boundary reports the data as unavailable.
type Upstreams struct {
	Live      LiveSnapshotProvider
	Season    SeasonStatsProvider
	Ratings   TeamRatingsProvider
	History   HistoricalStatsProvider
	Directory PlayerDirectory
	Schedule  ScheduleProvider
}

// Boundary puts every upstream call behind a timeout and a circuit breaker.
// Live snapshot failures propagate; every other failure is logged and
// turned into "unavailable" so an analysis can carry on with defaults.
type Boundary struct {
	upstreams Upstreams
	breakers  *CircuitBreakers
	timeout   time.Duration
	logger    *logrus.Logger
}

func NewBoundary(upstreams Upstreams, breakers *CircuitBreakers, timeout time.Duration, log *logrus.Logger) *Boundary {
	if log == nil {
		log = logger.Discard()
	}
	if breakers == nil {
		breakers = NewCircuitBreakers(5, 30*time.Second, log)
	}
	return &Boundary{
		upstreams: upstreams,
		breakers:  breakers,
		timeout:   timeout,
		logger:    log,
	}
}

func (b *Boundary) Breakers() *CircuitBreakers {
	return b.breakers
}

func guarded[T any](ctx context.Context, b *Boundary, upstream string, fn func(context.Context) (T, error)) (T, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	out, err := protect(b.breakers, upstream, func() (T, error) {
		return fn(ctx)
	})
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %s: %v", models.ErrExternalServiceTimeout, upstream, err)
	}
	return out, err
}

func (b *Boundary) absorb(err error, upstream string, fields logrus.Fields) {
	b.logger.WithError(err).WithFields(fields).WithFields(logrus.Fields{
		"component": "boundary",
		"upstream":  upstream,
	}).Warn("Upstream unavailable, continuing without it")
}

func (b *Boundary) Snapshot(ctx context.Context, gameID string) (*models.LiveSnapshot, error) {
	if b.upstreams.Live == nil {
		return nil, fmt.Errorf("no live snapshot provider configured")
	}
	return guarded(ctx, b, UpstreamLive, func(ctx context.Context) (*models.LiveSnapshot, error) {
		return b.upstreams.Live.Snapshot(ctx, gameID)
	})
}

func (b *Boundary) TodaysGames(ctx context.Context) ([]models.LiveGame, error) {
	if b.upstreams.Live == nil {
		return nil, fmt.Errorf("no live snapshot provider configured")
	}
	return guarded(ctx, b, UpstreamLive, func(ctx context.Context) ([]models.LiveGame, error) {
		return b.upstreams.Live.TodaysGames(ctx)
	})
}

func (b *Boundary) SeasonStats(ctx context.Context, player models.PlayerRef) (*models.SeasonStats, error) {
	if b.upstreams.Season == nil {
		return nil, nil
	}
	stats, err := guarded(ctx, b, UpstreamSeason, func(ctx context.Context) (*models.SeasonStats, error) {
		return b.upstreams.Season.SeasonStats(ctx, player)
	})
	if err != nil {
		b.absorb(err, UpstreamSeason, logrus.Fields{"player_id": player.ID})
		return nil, nil
	}
	return stats, nil
}

// TeamRatings passes models.ErrMissingTeamRatings through and replaces any
// other failure with league-average ratings marked Defaulted.
func (b *Boundary) TeamRatings(ctx context.Context, teamID int, abbr string) (*models.TeamRatings, error) {
	if b.upstreams.Ratings == nil {
		return nil, models.ErrMissingTeamRatings
	}
	ratings, err := guarded(ctx, b, UpstreamRatings, func(ctx context.Context) (*models.TeamRatings, error) {
		return b.upstreams.Ratings.TeamRatings(ctx, teamID, abbr)
	})
	switch {
	case errors.Is(err, models.ErrMissingTeamRatings):
		return nil, err
	case err != nil:
		b.absorb(err, UpstreamRatings, logrus.Fields{"team_id": teamID})
		defaults := models.DefaultTeamRatings(teamID, abbr)
		return &defaults, nil
	}
	return ratings, nil
}

func (b *Boundary) RecentStats(ctx context.Context, playerID int, n int) ([]models.StatObservation, error) {
	if b.upstreams.History == nil {
		return nil, nil
	}
	games, err := guarded(ctx, b, UpstreamHistory, func(ctx context.Context) ([]models.StatObservation, error) {
		return b.upstreams.History.RecentStats(ctx, playerID, n)
	})
	if err != nil {
		b.absorb(err, UpstreamHistory, logrus.Fields{"player_id": playerID})
		return nil, nil
	}
	return games, nil
}

func (b *Boundary) SearchPlayer(ctx context.Context, name string) (*models.PlayerRef, error) {
	if b.upstreams.Directory == nil {
		return nil, nil
	}
	ref, err := guarded(ctx, b, UpstreamDirectory, func(ctx context.Context) (*models.PlayerRef, error) {
		return b.upstreams.Directory.SearchPlayer(ctx, name)
	})
	if err != nil {
		b.absorb(err, UpstreamDirectory, logrus.Fields{"player": name})
		return nil, nil
	}
	return ref, nil
}

func (b *Boundary) SearchTeam(ctx context.Context, name string) (*models.TeamRef, error) {
	if b.upstreams.Directory == nil {
		return nil, nil
	}
	ref, err := guarded(ctx, b, UpstreamDirectory, func(ctx context.Context) (*models.TeamRef, error) {
		return b.upstreams.Directory.SearchTeam(ctx, name)
	})
	if err != nil {
		b.absorb(err, UpstreamDirectory, logrus.Fields{"team": name})
		return nil, nil
	}
	return ref, nil
}

func (b *Boundary) IsBackToBack(ctx context.Context, teamID int, gameDate time.Time) (bool, error) {
	if b.upstreams.Schedule == nil {
		return false, nil
	}
	b2b, err := guarded(ctx, b, UpstreamSchedule, func(ctx context.Context) (bool, error) {
		return b.upstreams.Schedule.IsBackToBack(ctx, teamID, gameDate)
	})
	if err != nil {
		b.absorb(err, UpstreamSchedule, logrus.Fields{"team_id": teamID})
		return false, nil
	}
	return b2b, nil
}
