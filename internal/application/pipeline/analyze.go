package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bryanwahyu/automaton-compliance/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-compliance/internal/infra/ai/prompt"
)

// fallbackPrefixLimit bounds the raw-reply prefix kept in a degraded
// primary analysis.
const fallbackPrefixLimit = 500

// analyze writes primary_analysis from a strict JSON reply. A reply that
// does not parse degrades to a placeholder structure; the model call is not
// retried.
func (s *Service) analyze(ctx context.Context, st *analysis.State) analysis.Outcome {
	p := prompt.Analyze(string(st.DocumentType), truncate(st.InputContent, s.contentLimit()))
	reply, err := s.LLM.Complete(ctx, p)
	if err != nil {
		st.PrimaryAnalysis = degradedPrimaryAnalysis("")
		st.ErrorMessage = fmt.Sprintf("primary analysis error: %v", err)
		return analysis.Degraded(analysis.StageAnalyze, analysis.ErrKindLLM, err)
	}

	var parsed map[string]any
	if jsonErr := json.Unmarshal([]byte(reply), &parsed); jsonErr != nil || len(parsed) == 0 {
		st.PrimaryAnalysis = degradedPrimaryAnalysis(reply)
		st.CurrentStep = "primary analysis complete"
		return analysis.Degraded(analysis.StageAnalyze, analysis.ErrKindParse, jsonErr)
	}

	st.PrimaryAnalysis = parsed
	st.CurrentStep = "primary analysis complete"
	return analysis.Ok(analysis.StageAnalyze)
}

// degradedPrimaryAnalysis keeps the five fixed keys well-typed for the later
// stages: the raw reply prefix under main_content, placeholder lists
// elsewhere.
func degradedPrimaryAnalysis(rawReply string) analysis.PrimaryAnalysis {
	placeholder := []string{"analysis failed"}
	return analysis.PrimaryAnalysis{
		analysis.KeyMainContent:          truncate(rawReply, fallbackPrefixLimit),
		analysis.KeyRegulatoryMatters:    placeholder,
		analysis.KeySecurityElements:     placeholder,
		analysis.KeyPersonalDataHandling: placeholder,
		analysis.KeyRiskFactors:          placeholder,
	}
}
