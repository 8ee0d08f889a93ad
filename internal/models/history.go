package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StatObservation is one completed game's stat line for a player. A key that
// is absent from Stats means the provider reported no value for it.
type StatObservation struct {
	GameID   string             `json:"game_id"`
	GameDate time.Time          `json:"game_date"`
	Stats    map[string]float64 `json:"stats"`
	Minutes  string             `json:"min,omitempty"`
}

// Value sums the observation's values for the given keys. ok is false when
// any key is missing.
func (o StatObservation) Value(keys []string) (float64, bool) {
	if len(keys) == 0 {
		return 0, false
	}
	total := 0.0
	for _, k := range keys {
		v, ok := o.Stats[k]
		if !ok {
			return 0, false
		}
		total += v
	}
	return total, true
}

// ParseMinutes converts the minute formats seen across providers into
// decimal minutes: "34:25", "PT34M25.00S", "34" and "34.5".
func ParseMinutes(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}

	if strings.HasPrefix(strings.ToUpper(s), "PT") {
		return parseISODuration(s)
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 2 {
			return 0, fmt.Errorf("invalid minutes %q", raw)
		}
		mins, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid minutes %q: %w", raw, err)
		}
		secs, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid seconds %q: %w", raw, err)
		}
		return float64(mins) + secs/60.0, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid minutes %q: %w", raw, err)
	}
	return v, nil
}

func parseISODuration(raw string) (float64, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))[2:]
	minutes := 0.0
	if i := strings.Index(s, "M"); i >= 0 {
		m, err := strconv.ParseFloat(s[:i], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", raw, err)
		}
		minutes = m
		s = s[i+1:]
	}
	if s = strings.TrimSuffix(s, "S"); s != "" {
		secs, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", raw, err)
		}
		minutes += secs / 60.0
	}
	return minutes, nil
}
