package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/automaton-compliance/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-compliance/internal/domain/websearch"
)

// scriptedLLM replies from a fixed queue, one entry per Complete call.
type scriptedLLM struct {
	replies []string
	calls   int
}

func (s *scriptedLLM) Complete(ctx context.Context, prompt string) (string, error) {
	if s.calls >= len(s.replies) {
		return "", errors.New("unexpected model call")
	}
	reply := s.replies[s.calls]
	s.calls++
	return reply, nil
}

// failingLLM fails every call.
type failingLLM struct{}

func (failingLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("model unavailable")
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestRunHappyPath(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		// classify
		"Category: 3\nLabel: PrivacyPolicy\nConfidence: 8/10\nRationale: consent language",
		// analyze
		`{"main_content": {"summary": "privacy policy"}, "regulatory_matters": {}, "security_elements": {}, "personal_data_handling": {}, "risk_factors": {}}`,
		// assess risk
		`{"PrivacyProtection": {"score": 2}, "DataSecurity": {"score": 4}, "AccessControl": {"score": 6}, "RegulatoryCompliance": {"score": 8}, "OverallRisk": {"score": 5}}`,
		// report
		"# Compliance Report\n\nGenerated at [CURRENT TIME]\n\nOverall: [SCORE]/100 ([GRADE])",
	}}
	svc := &Service{
		LLM:   llm,
		Clock: fixedClock{t: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)},
	}

	st, outcomes := svc.Run(context.Background(), "We collect personal data ...")
	require.NotNil(t, st)
	require.Len(t, outcomes, 6)

	assert.Equal(t, analysis.DocPrivacyPolicy, st.DocumentType)
	assert.False(t, analysis.AnyDegraded(outcomes))

	// search-web is skipped, not degraded, without a searcher
	assert.Equal(t, analysis.ErrKindSkipped, outcomes[3].Kind)
	assert.Equal(t, "web search disabled: no search credential configured", st.WebSearchResults.Note)

	// risk 2,4,6,8 → compliance 90,70,50,30, mean 60
	overall, ok := st.OverallScore()
	require.True(t, ok)
	assert.Equal(t, 60.0, overall.Score)
	assert.Equal(t, GradePoor, overall.Grade)
	assert.Equal(t, "60%", overall.Percentage)

	// OverallRisk never contributes a compliance entry
	_, hasOverallRisk := st.ComplianceScores[analysis.CategoryOverallRisk]
	assert.False(t, hasOverallRisk)

	assert.Contains(t, st.FinalReport, "Generated at 2026-03-01 09:30:00")
	assert.Contains(t, st.FinalReport, "60/100 (Poor)")
	assert.NotContains(t, st.FinalReport, "[SCORE]")
	assert.Equal(t, "final report complete", st.CurrentStep)
}

func TestRunEveryModelCallFails(t *testing.T) {
	svc := &Service{LLM: failingLLM{}}

	st, outcomes := svc.Run(context.Background(), "some document")
	require.NotNil(t, st)
	require.Len(t, outcomes, 6)

	// the run never aborts and every stage leaves well-typed output
	assert.Equal(t, analysis.DocOther, st.DocumentType)

	for _, cat := range analysis.RiskCategories {
		rating, ok := st.RiskAssessment[cat]
		require.True(t, ok, cat)
		assert.Equal(t, 5, rating.Score)
	}

	// risk 5 everywhere → compliance 60 (Poor) per scored category
	overall, ok := st.OverallScore()
	require.True(t, ok)
	assert.Equal(t, 60.0, overall.Score)
	assert.Equal(t, GradePoor, overall.Grade)

	assert.Contains(t, st.FinalReport, "Report Generation Error")
	assert.NotEmpty(t, st.ErrorMessage)

	assert.True(t, analysis.AnyDegraded(outcomes))
	for i, o := range outcomes {
		if o.Stage == analysis.StageSearchWeb {
			assert.False(t, o.Degraded, "skipped search must not count as degraded")
			continue
		}
		if o.Stage == analysis.StageScore {
			assert.False(t, o.Degraded, "scoring is pure and cannot degrade")
			continue
		}
		assert.True(t, o.Degraded, "outcome %d (%s)", i, o.Stage)
		assert.Equal(t, analysis.ErrKindLLM, o.Kind)
	}
}

func TestRunUnparsableReplies(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		"I think this might be a contract of some sort.", // no Category marker
		"Sure! Here is the analysis you asked for.",      // not JSON
		"```json\n{\"oops\": true}\n```",                 // fenced, strict parse fails
		"Report body without placeholders.",
	}}
	svc := &Service{LLM: llm}

	st, outcomes := svc.Run(context.Background(), "whatever")
	require.Len(t, outcomes, 6)

	assert.Equal(t, analysis.DocOther, st.DocumentType)

	// degraded primary analysis keeps the five fixed keys
	assert.Equal(t, "Sure! Here is the analysis you asked for.", st.PrimaryAnalysis[analysis.KeyMainContent])
	assert.Equal(t, []string{"analysis failed"}, st.PrimaryAnalysis[analysis.KeyRiskFactors])

	assert.Equal(t, analysis.ErrKindParse, outcomes[0].Kind)
	assert.Equal(t, analysis.ErrKindParse, outcomes[1].Kind)
	assert.Equal(t, analysis.ErrKindParse, outcomes[2].Kind)
}

type stubSearcher struct {
	results []websearch.Result
	err     error

	gotQuery   string
	gotMax     int
	gotDomains []string
}

func (s *stubSearcher) Search(ctx context.Context, query string, maxResults int, includeDomains []string) ([]websearch.Result, error) {
	s.gotQuery = query
	s.gotMax = maxResults
	s.gotDomains = includeDomains
	return s.results, s.err
}

func TestSearchWebQueryAndAllowList(t *testing.T) {
	searcher := &stubSearcher{results: []websearch.Result{
		{Title: "Guideline", URL: "https://fss.or.kr/g", Content: "rules"},
	}}
	svc := &Service{
		LLM:              failingLLM{},
		Search:           searcher,
		MaxSearchResults: 2,
		SearchDomains:    []string{"fss.or.kr"},
	}

	st := analysis.NewState("doc")
	st.DocumentType = analysis.DocSecurityPolicy
	out := svc.searchWeb(context.Background(), st)

	assert.False(t, out.Degraded)
	assert.Equal(t, "financial regulation SecurityPolicy guidelines financial supervisory authority", searcher.gotQuery)
	assert.Equal(t, 2, searcher.gotMax)
	assert.Equal(t, []string{"fss.or.kr"}, searcher.gotDomains)
	assert.Equal(t, 1, st.WebSearchResults.ResultCount)
	assert.Equal(t, "https://fss.or.kr/g", st.WebSearchResults.Results[0].URL)
}

func TestSearchWebFailureDegrades(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("upstream 500")}
	svc := &Service{LLM: failingLLM{}, Search: searcher}

	st := analysis.NewState("doc")
	out := svc.searchWeb(context.Background(), st)

	assert.True(t, out.Degraded)
	assert.Equal(t, analysis.ErrKindSearch, out.Kind)
	assert.Equal(t, "web search failed", st.WebSearchResults.Note)
}

func TestSearchWebNotConfiguredIsSkip(t *testing.T) {
	searcher := &stubSearcher{err: websearch.ErrNotConfigured}
	svc := &Service{LLM: failingLLM{}, Search: searcher}

	st := analysis.NewState("doc")
	out := svc.searchWeb(context.Background(), st)

	assert.False(t, out.Degraded)
	assert.Equal(t, analysis.ErrKindSkipped, out.Kind)
	assert.Equal(t, StubWebSearch(), st.WebSearchResults)
}

func TestStubWebSearchIndependentOfDocumentType(t *testing.T) {
	a := StubWebSearch()
	b := StubWebSearch()
	assert.Equal(t, a, b)
	assert.Zero(t, a.ResultCount)
	assert.Empty(t, a.Results)
}
