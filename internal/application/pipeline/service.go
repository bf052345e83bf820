package pipeline

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/bryanwahyu/automaton-compliance/internal/domain/ai"
	"github.com/bryanwahyu/automaton-compliance/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-compliance/internal/domain/websearch"
)

// Service runs the fixed six-stage compliance analysis.
// One State per request; stages execute in order and never abort the run.
type Service struct {
	LLM    ai.Completer
	Search websearch.Searcher // nil disables the web-search stage
	Clock  Clock

	ContentLimit     int // prompt prefix bound, chars
	MaxSearchResults int
	SearchDomains    []string
}

// Clock abstraction supaya gampang ditest
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Run executes classify → analyze → assess-risk → search-web → score →
// report over a fresh state and returns it unconditionally, together with
// the per-stage outcomes. Partial results beat fail-fast here: a document
// type guess is still useful when a later stage degrades.
func (s *Service) Run(ctx context.Context, content string) (*analysis.State, []analysis.Outcome) {
	st := analysis.NewState(content)

	stages := []func(context.Context, *analysis.State) analysis.Outcome{
		s.classify,
		s.analyze,
		s.assessRisk,
		s.searchWeb,
		s.score,
		s.report,
	}

	outcomes := make([]analysis.Outcome, 0, len(stages))
	for _, stage := range stages {
		outcomes = append(outcomes, stage(ctx, st))
	}
	return st, outcomes
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return time.Now()
}

func (s *Service) contentLimit() int {
	if s.ContentLimit > 0 {
		return s.ContentLimit
	}
	return 2000
}

// truncate bounds s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
