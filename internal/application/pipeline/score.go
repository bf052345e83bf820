package pipeline

import (
	"context"
	"fmt"
	"math"

	"github.com/bryanwahyu/automaton-compliance/internal/domain/analysis"
)

// Compliance grades, best to worst. Thresholds are closed intervals:
// a score of exactly 90 is Excellent.
const (
	GradeExcellent  = "Excellent"
	GradeGood       = "Good"
	GradeFair       = "Fair"
	GradePoor       = "Poor"
	GradeInadequate = "Inadequate"
)

// ComplianceFromRisk maps a 1-10 risk score onto the 10-100 compliance
// scale: compliance = max(10, 110 - 10*risk). Risk 1 → 100, risk 10 → 10.
func ComplianceFromRisk(risk int) float64 {
	c := 110 - 10*risk
	if c < 10 {
		c = 10
	}
	return float64(c)
}

// GradeFor assigns the letter grade for a 10-100 compliance score.
func GradeFor(score float64) string {
	switch {
	case score >= 90:
		return GradeExcellent
	case score >= 80:
		return GradeGood
	case score >= 70:
		return GradeFair
	case score >= 60:
		return GradePoor
	default:
		return GradeInadequate
	}
}

// score derives compliance_score from risk_assessment. Pure; the only stage
// with no external collaborator. Categories without a positive score and the
// OverallRisk aggregate are skipped; when nothing is usable the OverallScore
// entry is absent and callers must handle that.
func (s *Service) score(_ context.Context, st *analysis.State) analysis.Outcome {
	scores := analysis.ComplianceScores{}
	total := 0.0
	count := 0

	for cat, rating := range st.RiskAssessment {
		if cat == analysis.CategoryOverallRisk || rating.Score <= 0 {
			continue
		}
		c := ComplianceFromRisk(rating.Score)
		scores[cat] = analysis.ComplianceScore{
			Score:     c,
			Grade:     GradeFor(c),
			Rationale: rating.Rationale,
		}
		total += c
		count++
	}

	if count > 0 {
		mean := total / float64(count)
		overall := math.Round(mean*10) / 10
		scores[analysis.OverallScoreKey] = analysis.ComplianceScore{
			Score:      overall,
			Grade:      GradeFor(overall),
			Percentage: fmt.Sprintf("%d%%", int(math.Round(mean))),
		}
	}

	st.ComplianceScores = scores
	st.CurrentStep = "compliance scoring complete"
	return analysis.Ok(analysis.StageScore)
}
