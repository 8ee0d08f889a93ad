package cache

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/providers"
)

// RatingsCache is a cross-request team ratings cache. Entries expire after
// ttl; Invalidate drops them early when ratings are republished. Store
// failures fall through to the upstream provider.
type RatingsCache struct {
	upstream providers.TeamRatingsProvider
	store    Store
	ttl      time.Duration
	logger   *logrus.Logger
}

func NewRatingsCache(upstream providers.TeamRatingsProvider, store Store, ttl time.Duration, logger *logrus.Logger) *RatingsCache {
	return &RatingsCache{
		upstream: upstream,
		store:    store,
		ttl:      ttl,
		logger:   logger,
	}
}

func (c *RatingsCache) TeamRatings(ctx context.Context, teamID int, abbr string) (*models.TeamRatings, error) {
	key := TeamRatingsCacheKey(teamID)

	var cached models.TeamRatings
	err := c.store.Get(ctx, key, &cached)
	switch {
	case err == nil:
		return &cached, nil
	case !errors.Is(err, ErrCacheMiss):
		c.logger.WithError(err).WithField("team_id", teamID).Warn("Ratings cache read failed")
	}

	ratings, err := c.upstream.TeamRatings(ctx, teamID, abbr)
	if err != nil {
		return nil, err
	}
	// defaults are never cached so a recovered upstream is picked up at once
	if ratings != nil && !ratings.Defaulted {
		if err := c.store.Set(ctx, key, ratings, c.ttl); err != nil {
			c.logger.WithError(err).WithField("team_id", teamID).Warn("Ratings cache write failed")
		}
	}
	return ratings, nil
}

// Invalidate removes cached ratings for the given teams.
func (c *RatingsCache) Invalidate(ctx context.Context, teamIDs ...int) error {
	keys := make([]string, len(teamIDs))
	for i, id := range teamIDs {
		keys[i] = TeamRatingsCacheKey(id)
	}
	return c.store.Delete(ctx, keys...)
}
