package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixedLLM struct {
	reply string
	err   error
}

func (f fixedLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return f.reply, f.err
}

func TestRouteLastIsolatedDigitWins(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  Route
	}{
		{"plain digit", "2", RouteDocumentAnalysis},
		{"reasoning then decision", "Category 1 fits, but given the scoring request the answer is 3", RouteMultiAgent},
		{"digit inside word ignored", "see section42 of the manual, final answer: 1", RouteQA},
		{"decision on its own line", "Reasoning:\nthe user wants a summary.\n\n2", RouteDocumentAnalysis},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(fixedLLM{reply: tt.reply})
			assert.Equal(t, tt.want, r.Route(context.Background(), "whatever"))
		})
	}
}

func TestRouteKeywordFallback(t *testing.T) {
	// no isolated digit in the reply forces the keyword path
	r := NewRouter(fixedLLM{reply: "hard to say"})

	// multi-agent keywords take precedence over document keywords
	assert.Equal(t, RouteMultiAgent,
		r.Route(context.Background(), "please analyze the compliance posture of this policy"))

	assert.Equal(t, RouteDocumentAnalysis,
		r.Route(context.Background(), "can you summarize this document for me"))

	assert.Equal(t, RouteQA,
		r.Route(context.Background(), "what does the e-finance supervision act say about encryption"))
}

func TestRouteModelErrorDefaultsToQA(t *testing.T) {
	r := NewRouter(fixedLLM{err: errors.New("timeout")})
	assert.Equal(t, RouteQA,
		r.Route(context.Background(), "run a comprehensive risk assessment"))
}
