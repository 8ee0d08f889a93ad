package halftime

import (
	"fmt"
	"sort"

	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/tuning"
)

// Suggest ranks the actionable projections by confidence, highest first.
func Suggest(projections []models.PlayerProjection, th tuning.Thresholds) []models.Suggestion {
	suggestions := make([]models.Suggestion, 0)
	for _, p := range projections {
		if p.ConfidenceScore < th.SuggestionConfidence || !p.Recommendation.Actionable() {
			continue
		}
		suggestions = append(suggestions, models.Suggestion{
			PlayerName:      p.PlayerName,
			TeamAbbr:        p.TeamAbbr,
			StatType:        p.StatType,
			PropLine:        p.PropLine,
			CurrentValue:    p.CurrentValue,
			ProjectedFinal:  p.ProjectedFinal,
			ConfidenceScore: p.ConfidenceScore,
			Recommendation:  p.Recommendation,
			Edge:            round1(p.ProjectedFinal - p.PropLine),
			RiskLevel:       riskLevel(p.ConfidenceScore),
			KeyFactors:      keyFactors(p),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].ConfidenceScore > suggestions[j].ConfidenceScore
	})
	return suggestions
}

func riskLevel(confidence float64) models.RiskLevel {
	switch {
	case confidence >= 75:
		return models.RiskLow
	case confidence >= 65:
		return models.RiskMedium
	}
	return models.RiskHigh
}

func keyFactors(p models.PlayerProjection) []string {
	factors := []string{}
	if p.Factors["first_half_progress"] >= 50 {
		factors = append(factors, "Strong 1H progress")
	}
	if p.Shooting.TSPct >= 60 {
		factors = append(factors, fmt.Sprintf("Hot shooting (%.0f%% TS)", p.Shooting.TSPct))
	}
	if p.PlusMinus >= 8 {
		factors = append(factors, fmt.Sprintf("+%d plus/minus", p.PlusMinus))
	}
	if p.OpponentDefRank >= 25 {
		factors = append(factors, "Weak opponent defense")
	}
	if p.PaceFactor >= 1.1 {
		factors = append(factors, "Fast pace game")
	}
	if p.FoulTrouble {
		factors = append(factors, "Warning: Foul trouble")
	}
	if p.BlowoutWarning {
		factors = append(factors, "Warning: Blowout risk")
	}
	return factors
}

// Warnings flags game conditions that widen projection variance.
func Warnings(totals models.TeamTotalsProjection) []string {
	warnings := []string{}
	if totals.BlowoutRisk {
		warnings = append(warnings, fmt.Sprintf("Blowout warning: %d point differential", totals.ScoreDifferential))
	}
	if totals.PaceRating == PaceVeryFast {
		warnings = append(warnings, "Very fast pace - projections may have higher variance")
	}
	return warnings
}
