package totals

import (
	"fmt"
	"math"
	"strings"

	"github.com/stitts-dev/prop-engine/internal/models"
)

func analysisNotes(pace paceState, home, away models.TeamShootingProfile, stars []models.StarPlayerImpact, blowout bool, g models.LiveGame) []string {
	notes := []string{}

	switch {
	case pace.deviation > 10:
		notes = append(notes, fmt.Sprintf(
			"Game is running %.0f%% faster than expected (%.0f poss/48 vs %.0f expected). Expect some regression in 2H.",
			pace.deviation, pace.per48, pace.matchupExpected))
	case pace.deviation < -10:
		notes = append(notes, fmt.Sprintf(
			"Game is running %.0f%% slower than expected. Could pick up if trailing team pushes pace.",
			math.Abs(pace.deviation)))
	}

	switch pace.trend {
	case PaceAccelerating:
		notes = append(notes, "Pace is accelerating - Q2 was faster than Q1.")
	case PaceDecelerating:
		notes = append(notes, "Pace is decelerating - game has slowed since Q1.")
	}

	for _, s := range []models.TeamShootingProfile{home, away} {
		switch s.VarianceLevel {
		case models.ExtremeHot:
			notes = append(notes, fmt.Sprintf(
				"%s shooting %.1f%% eFG (season: %.1f%%). Extreme hot shooting - heavy regression expected.",
				s.TeamAbbr, s.LiveEFGPct, s.SeasonEFGPct))
		case models.ExtremeCold:
			notes = append(notes, fmt.Sprintf(
				"%s shooting only %.1f%% eFG (season: %.1f%%). Cold shooting likely to recover.",
				s.TeamAbbr, s.LiveEFGPct, s.SeasonEFGPct))
		}
	}

	var hot, fouled []string
	for _, s := range stars {
		if s.HotColdIndicator == hotIndicator && len(hot) < 2 {
			hot = append(hot, s.PlayerName)
		}
		if s.FoulTrouble {
			fouled = append(fouled, fmt.Sprintf("%s (%dF)", s.PlayerName, s.FoulCount))
		}
	}
	if len(hot) > 0 {
		notes = append(notes, fmt.Sprintf("Star(s) running hot: %s. Factor in regression.", strings.Join(hot, ", ")))
	}
	if len(fouled) > 0 {
		notes = append(notes, fmt.Sprintf("Foul trouble: %s. Minutes may be limited in 2H.", strings.Join(fouled, ", ")))
	}

	if blowout {
		notes = append(notes, fmt.Sprintf(
			"Blowout alert: %d pt differential. Starters may rest, reducing total.", g.ScoreDifferential()))
	}
	return notes
}
