package providers

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/stitts-dev/prop-engine/internal/models"
)

// Upstream names, one breaker each.
const (
	UpstreamLive      = "live"
	UpstreamSeason    = "season"
	UpstreamRatings   = "ratings"
	UpstreamHistory   = "history"
	UpstreamDirectory = "directory"
	UpstreamSchedule  = "schedule"
)

type CircuitBreakers struct {
	breakers map[string]*gobreaker.CircuitBreaker
	logger   *logrus.Logger
}

// NewCircuitBreakers trips an upstream's breaker once it has seen threshold
// requests with at least 60% failing, and probes again after timeout.
// Lookups that find nothing count as successes.
func NewCircuitBreakers(threshold int, timeout time.Duration, logger *logrus.Logger) *CircuitBreakers {
	if threshold < 1 {
		threshold = 1
	}
	breakers := make(map[string]*gobreaker.CircuitBreaker)
	for _, name := range []string{UpstreamLive, UpstreamSeason, UpstreamRatings, UpstreamHistory, UpstreamDirectory, UpstreamSchedule} {
		breakers[name] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= uint32(threshold) && failureRatio >= 0.6
			},
			IsSuccessful: func(err error) bool {
				return err == nil ||
					errors.Is(err, models.ErrGameNotFound) ||
					errors.Is(err, models.ErrMissingTeamRatings)
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.WithFields(logrus.Fields{
					"component": "circuit_breaker",
					"upstream":  name,
					"from":      from.String(),
					"to":        to.String(),
				}).Info("Circuit breaker state changed")
			},
		})
	}

	return &CircuitBreakers{
		breakers: breakers,
		logger:   logger,
	}
}

// Execute runs fn behind the named breaker. Unknown names run unprotected.
func (cb *CircuitBreakers) Execute(upstream string, fn func() (interface{}, error)) (interface{}, error) {
	breaker, exists := cb.breakers[upstream]
	if !exists {
		cb.logger.WithFields(logrus.Fields{
			"component": "circuit_breaker",
			"upstream":  upstream,
		}).Warn("No circuit breaker found for upstream, executing without protection")
		return fn()
	}
	return breaker.Execute(fn)
}

func (cb *CircuitBreakers) State(upstream string) gobreaker.State {
	if breaker, exists := cb.breakers[upstream]; exists {
		return breaker.State()
	}
	return gobreaker.StateClosed
}

// States reports every breaker's state by upstream name, for health checks.
func (cb *CircuitBreakers) States() map[string]string {
	out := make(map[string]string, len(cb.breakers))
	for name, breaker := range cb.breakers {
		out[name] = breaker.State().String()
	}
	return out
}

func protect[T any](cb *CircuitBreakers, upstream string, fn func() (T, error)) (T, error) {
	out, err := cb.Execute(upstream, func() (interface{}, error) {
		v, err := fn()
		return v, err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}
