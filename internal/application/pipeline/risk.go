package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bryanwahyu/automaton-compliance/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-compliance/internal/infra/ai/prompt"
)

// assessRisk writes risk_assessment from a strict JSON reply. Scores run
// 1-10, higher is worse. Model or parse failure degrades every category to
// score 5 so scoring still has well-typed input.
func (s *Service) assessRisk(ctx context.Context, st *analysis.State) analysis.Outcome {
	serialized, _ := json.Marshal(st.PrimaryAnalysis)
	p := prompt.AssessRisk(string(st.DocumentType), string(serialized))

	reply, err := s.LLM.Complete(ctx, p)
	if err != nil {
		st.RiskAssessment = fallbackRiskAssessment()
		st.ErrorMessage = fmt.Sprintf("risk assessment error: %v", err)
		return analysis.Degraded(analysis.StageAssessRisk, analysis.ErrKindLLM, err)
	}

	var parsed map[string]analysis.RiskRating
	if jsonErr := json.Unmarshal([]byte(reply), &parsed); jsonErr != nil || len(parsed) == 0 {
		st.RiskAssessment = fallbackRiskAssessment()
		st.CurrentStep = "risk assessment complete"
		return analysis.Degraded(analysis.StageAssessRisk, analysis.ErrKindParse, jsonErr)
	}

	st.RiskAssessment = parsed
	st.CurrentStep = "risk assessment complete"
	return analysis.Ok(analysis.StageAssessRisk)
}

// fallbackRiskAssessment rates every category 5 with a rationale flagging
// the failure.
func fallbackRiskAssessment() map[string]analysis.RiskRating {
	out := make(map[string]analysis.RiskRating, len(analysis.RiskCategories))
	for _, cat := range analysis.RiskCategories {
		out[cat] = analysis.RiskRating{Score: 5, Rationale: "risk assessment failed; default rating applied"}
	}
	return out
}
