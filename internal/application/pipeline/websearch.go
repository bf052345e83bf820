package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/bryanwahyu/automaton-compliance/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-compliance/internal/domain/websearch"
)

// excerptLimit bounds each stored search-result excerpt.
const excerptLimit = 200

// StubWebSearch is the fixed record written when no web-search collaborator
// is configured. Missing credentials are a handled state, not an error.
func StubWebSearch() analysis.WebSearchResults {
	return analysis.WebSearchResults{
		Note: "web search disabled: no search credential configured",
	}
}

// searchWeb issues one allow-listed query built from the document type.
// Collaborator failures are converted to a stub error record; the stage
// never propagates.
func (s *Service) searchWeb(ctx context.Context, st *analysis.State) analysis.Outcome {
	if s.Search == nil {
		st.WebSearchResults = StubWebSearch()
		st.CurrentStep = "web search skipped"
		return analysis.Skipped(analysis.StageSearchWeb, "no search credential configured")
	}

	query := fmt.Sprintf("financial regulation %s guidelines financial supervisory authority", st.DocumentType)
	maxResults := s.MaxSearchResults
	if maxResults <= 0 {
		maxResults = 3
	}

	results, err := s.Search.Search(ctx, query, maxResults, s.SearchDomains)
	if err != nil {
		if errors.Is(err, websearch.ErrNotConfigured) {
			st.WebSearchResults = StubWebSearch()
			st.CurrentStep = "web search skipped"
			return analysis.Skipped(analysis.StageSearchWeb, "no search credential configured")
		}
		st.WebSearchResults = analysis.WebSearchResults{Note: "web search failed"}
		st.ErrorMessage = fmt.Sprintf("web search error: %v", err)
		return analysis.Degraded(analysis.StageSearchWeb, analysis.ErrKindSearch, err)
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	refs := make([]analysis.WebReference, 0, len(results))
	for _, r := range results {
		refs = append(refs, analysis.WebReference{
			Title:   r.Title,
			URL:     r.URL,
			Excerpt: truncate(r.Content, excerptLimit),
		})
	}

	st.WebSearchResults = analysis.WebSearchResults{
		Query:       query,
		ResultCount: len(refs),
		Results:     refs,
	}
	st.CurrentStep = "web search complete"
	return analysis.Ok(analysis.StageSearchWeb)
}
