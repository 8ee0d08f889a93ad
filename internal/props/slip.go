package props

import (
	"context"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/stitts-dev/prop-engine/internal/models"
)

// AnalyzeSlip analyzes every prop on a slip and summarizes them.
func (a *Analyzer) AnalyzeSlip(ctx context.Context, props []models.PropLine) models.SlipAnalysis {
	analyses := make([]models.PropAnalysis, 0, len(props))
	for _, p := range props {
		if ctx.Err() != nil {
			analyses = append(analyses, DefaultAnalysis(p, ctx.Err()))
			continue
		}
		analyses = append(analyses, a.AnalyzeProp(ctx, p))
	}
	return Summarize(analyses, a.tables.Thresholds.RecommendedProp)
}

// Summarize aggregates analyzed props into slip-level confidence, risk and
// parlay suggestions.
func Summarize(analyses []models.PropAnalysis, recommendedAt float64) models.SlipAnalysis {
	overall := 50.0
	if len(analyses) > 0 {
		overall = meanConfidence(analyses)
	}

	recommended := []string{}
	for _, a := range analyses {
		if a.ConfidenceScore >= recommendedAt {
			recommended = append(recommended, a.PropID)
		}
	}

	ranked := make([]models.PropAnalysis, len(analyses))
	copy(ranked, analyses)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ConfidenceScore > ranked[j].ConfidenceScore
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	parlays := []models.Parlay{}
	if len(ranked) >= 2 {
		parlays = append(parlays,
			parlay(ranked[:2], "Top 2 props parlay"),
			parlay(ranked, "Top 3 props parlay"),
		)
	}

	return models.SlipAnalysis{
		OverallConfidence: round2(overall),
		RiskAssessment:    slipRisk(overall),
		RecommendedBets:   recommended,
		ParlaySuggestions: parlays,
		PropAnalyses:      analyses,
	}
}

func slipRisk(confidence float64) models.RiskLevel {
	switch {
	case confidence >= 65:
		return models.RiskLow
	case confidence >= 50:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

func parlay(legs []models.PropAnalysis, description string) models.Parlay {
	ids := make([]string, len(legs))
	for i, l := range legs {
		ids[i] = l.PropID
	}
	return models.Parlay{
		PropIDs:     ids,
		Confidence:  round2(meanConfidence(legs)),
		Description: description,
	}
}

func meanConfidence(analyses []models.PropAnalysis) float64 {
	scores := make([]float64, len(analyses))
	for i, a := range analyses {
		scores[i] = a.ConfidenceScore
	}
	return stat.Mean(scores, nil)
}
