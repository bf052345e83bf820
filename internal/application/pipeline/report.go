package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bryanwahyu/automaton-compliance/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-compliance/internal/infra/ai/prompt"
)

// Literal one-shot placeholder tokens the report prompt instructs the model
// to keep verbatim. Substitution removes them, so running it twice on an
// already-substituted report is a no-op.
const (
	tokenCurrentTime = "[CURRENT TIME]"
	tokenScore       = "[SCORE]"
	tokenGrade       = "[GRADE]"
)

// report writes final_report from the narrative prompt over all prior state,
// then substitutes the placeholder tokens. Generation failure produces a
// short literal error report instead of propagating.
func (s *Service) report(ctx context.Context, st *analysis.State) analysis.Outcome {
	pa, _ := json.Marshal(st.PrimaryAnalysis)
	ra, _ := json.Marshal(st.RiskAssessment)
	ws, _ := json.Marshal(st.WebSearchResults)
	cs, _ := json.Marshal(st.ComplianceScores)

	p := prompt.Report(string(st.DocumentType), string(pa), string(ra), string(ws), string(cs))
	reply, err := s.LLM.Complete(ctx, p)
	if err != nil {
		st.FinalReport = fmt.Sprintf(
			"## Report Generation Error\n\nAn error occurred while generating the report: %v\n\nPlease review the underlying analysis results.", err)
		st.ErrorMessage = fmt.Sprintf("report generation error: %v", err)
		return analysis.Degraded(analysis.StageReport, analysis.ErrKindLLM, err)
	}

	st.FinalReport = substitutePlaceholders(reply, s.now(), st.ComplianceScores)
	st.CurrentStep = "final report complete"
	return analysis.Ok(analysis.StageReport)
}

// substitutePlaceholders applies plain text replacement, not template
// re-rendering: every occurrence of the same token receives the same value.
func substitutePlaceholders(report string, now time.Time, scores analysis.ComplianceScores) string {
	out := strings.ReplaceAll(report, tokenCurrentTime, now.Format("2006-01-02 15:04:05"))

	overall, ok := scores[analysis.OverallScoreKey]
	if !ok {
		return out
	}
	score := strconv.FormatFloat(overall.Score, 'f', -1, 64)
	out = strings.ReplaceAll(out, tokenScore+"/100 ("+tokenGrade+")", score+"/100 ("+overall.Grade+")")
	out = strings.ReplaceAll(out, tokenScore, score)
	out = strings.ReplaceAll(out, tokenGrade, overall.Grade)
	return out
}
