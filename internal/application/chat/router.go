package chat

import (
	"context"
	"regexp"
	"strings"

	"github.com/bryanwahyu/automaton-compliance/internal/domain/ai"
	"github.com/bryanwahyu/automaton-compliance/internal/infra/ai/prompt"
)

// Route is one of the three question handlers.
type Route string

const (
	RouteQA               Route = "qa_chatbot"
	RouteDocumentAnalysis Route = "document_analysis"
	RouteMultiAgent       Route = "multi_agent"
)

// Router maps a free-text question to a handler with one model call and a
// keyword fallback.
type Router struct {
	LLM ai.Completer
}

func NewRouter(llm ai.Completer) *Router {
	return &Router{LLM: llm}
}

// isolatedDigit matches a standalone 1, 2 or 3 in the model reply.
var isolatedDigit = regexp.MustCompile(`\b[123]\b`)

// Keyword allow-lists for the fallback classification. Multi-agent keywords
// are checked first, then document keywords; everything else defaults to QA.
var (
	multiAgentKeywords = []string{
		"comprehensive", "professional", "risk", "security", "compliance",
		"assessment", "evaluate", "score", "grade", "audit",
	}
	documentKeywords = []string{
		"analyze", "analyse", "summarize", "summarise", "review", "content", "read",
	}
)

// Route classifies the question. The model reasons before concluding, so the
// last isolated digit in the reply is the decision; when none is found the
// keyword fallback runs, and any model error defaults to the QA path as the
// least resource-intensive handler.
func (r *Router) Route(ctx context.Context, question string) Route {
	reply, err := r.LLM.Complete(ctx, prompt.Route(question))
	if err != nil {
		return RouteQA
	}

	if digits := isolatedDigit.FindAllString(reply, -1); len(digits) > 0 {
		switch digits[len(digits)-1] {
		case "1":
			return RouteQA
		case "2":
			return RouteDocumentAnalysis
		case "3":
			return RouteMultiAgent
		}
	}
	return keywordRoute(question)
}

func keywordRoute(question string) Route {
	q := strings.ToLower(question)
	for _, w := range multiAgentKeywords {
		if strings.Contains(q, w) {
			return RouteMultiAgent
		}
	}
	for _, w := range documentKeywords {
		if strings.Contains(q, w) {
			return RouteDocumentAnalysis
		}
	}
	return RouteQA
}
