package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/bryanwahyu/automaton-compliance/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-compliance/internal/infra/ai/prompt"
)

// classify writes document_type from a line-oriented model reply. Any model
// or parse failure degrades to Other with mid confidence instead of failing.
func (s *Service) classify(ctx context.Context, st *analysis.State) analysis.Outcome {
	reply, err := s.LLM.Complete(ctx, prompt.Classify(truncate(st.InputContent, s.contentLimit())))
	if err != nil {
		st.DocumentType = analysis.DocOther
		st.ErrorMessage = fmt.Sprintf("document classification error: %v", err)
		return analysis.Degraded(analysis.StageClassify, analysis.ErrKindLLM, err)
	}

	docType, confidence, found := parseClassification(reply)
	st.DocumentType = docType
	st.CurrentStep = fmt.Sprintf("document classified (confidence: %d/10)", confidence)
	if !found {
		return analysis.Degraded(analysis.StageClassify, analysis.ErrKindParse,
			fmt.Errorf("no category marker in classification reply"))
	}
	return analysis.Ok(analysis.StageClassify)
}

// parseClassification scans the reply line by line for the Category and
// Confidence markers. Missing or unreadable fields keep the Other/5 defaults.
func parseClassification(reply string) (analysis.DocumentType, int, bool) {
	docType := analysis.DocOther
	confidence := 5
	found := false

	for _, line := range strings.Split(reply, "\n") {
		switch {
		case strings.Contains(line, "Category:"):
			v := valueAfterColon(line)
			if t, ok := analysis.DocumentTypeByNumber[firstDigit(v)]; ok {
				docType = t
				found = true
			}
		case strings.Contains(line, "Confidence:"):
			if n, ok := leadingInt(valueAfterColon(line)); ok {
				confidence = n
			}
		}
	}
	return docType, confidence, found
}

func valueAfterColon(line string) string {
	_, after, ok := strings.Cut(line, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(after)
}

// firstDigit returns the first ASCII digit of s, or "".
func firstDigit(s string) string {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return string(r)
		}
	}
	return ""
}

// leadingInt reads the integer prefix of s ("8/10" → 8).
func leadingInt(s string) (int, bool) {
	n, read := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		read++
	}
	return n, read > 0
}
