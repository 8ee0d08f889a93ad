package models

import "errors"

var (
	// ErrGameNotFound is the only lookup failure that aborts a live analysis.
	ErrGameNotFound = errors.New("game not found")

	ErrMissingPlayerIdentity  = errors.New("player not found in database")
	ErrMissingHistoricalData  = errors.New("no recent game data available")
	ErrMissingTeamRatings     = errors.New("team ratings unavailable")
	ErrExternalServiceTimeout = errors.New("external service timeout")
	ErrInvalidPropLine        = errors.New("invalid prop line")
)
