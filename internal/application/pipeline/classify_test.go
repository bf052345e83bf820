package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/automaton-compliance/internal/domain/analysis"
)

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		wantType   analysis.DocumentType
		wantConf   int
		wantFound  bool
	}{
		{
			name:      "well formed",
			reply:     "Category: 1\nLabel: FinancialProductDisclosure\nConfidence: 9\nRationale: fee table",
			wantType:  analysis.DocFinancialProductDisclosure,
			wantConf:  9,
			wantFound: true,
		},
		{
			name:      "confidence as fraction",
			reply:     "Category: 4\nConfidence: 7/10",
			wantType:  analysis.DocSecurityPolicy,
			wantConf:  7,
			wantFound: true,
		},
		{
			name:      "category number embedded in words",
			reply:     "Category: option 2 looks right\nConfidence: high",
			wantType:  analysis.DocServiceTerms,
			wantConf:  5,
			wantFound: true,
		},
		{
			name:      "markers with leading prose",
			reply:     "Let me think.\nThe Category: 5 fits best.\nConfidence: 6",
			wantType:  analysis.DocSystemArchitectureDiagram,
			wantConf:  6,
			wantFound: true,
		},
		{
			name:      "no markers at all",
			reply:     "This looks like a lease agreement.",
			wantType:  analysis.DocOther,
			wantConf:  5,
			wantFound: false,
		},
		{
			name:      "category out of range",
			reply:     "Category: 7\nConfidence: 3",
			wantType:  analysis.DocOther,
			wantConf:  3,
			wantFound: false,
		},
		{
			name:      "explicit other",
			reply:     "Category: 6\nConfidence: 10",
			wantType:  analysis.DocOther,
			wantConf:  10,
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docType, conf, found := parseClassification(tt.reply)
			assert.Equal(t, tt.wantType, docType)
			assert.Equal(t, tt.wantConf, conf)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func TestLeadingInt(t *testing.T) {
	n, ok := leadingInt("8/10")
	assert.True(t, ok)
	assert.Equal(t, 8, n)

	n, ok = leadingInt("10")
	assert.True(t, ok)
	assert.Equal(t, 10, n)

	_, ok = leadingInt("high")
	assert.False(t, ok)

	_, ok = leadingInt("")
	assert.False(t, ok)
}

func TestTruncateRespectsRuneBoundaries(t *testing.T) {
	s := "규제준수보고서" // 3 bytes per rune
	got := truncate(s, 7)
	assert.Equal(t, "규제", got)

	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "abc", truncate("abc", 0))
}
