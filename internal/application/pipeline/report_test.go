package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/automaton-compliance/internal/domain/analysis"
)

var reportScores = analysis.ComplianceScores{
	analysis.OverallScoreKey: {Score: 82.5, Grade: GradeGood, Percentage: "83%"},
}

func TestSubstitutePlaceholders(t *testing.T) {
	now := time.Date(2026, 1, 15, 14, 5, 9, 0, time.UTC)
	in := "Generated: [CURRENT TIME]\nResult: [SCORE]/100 ([GRADE])\nScore again: [SCORE], grade again: [GRADE]"

	got := substitutePlaceholders(in, now, reportScores)

	assert.Equal(t,
		"Generated: 2026-01-15 14:05:09\nResult: 82.5/100 (Good)\nScore again: 82.5, grade again: Good",
		got)
}

func TestSubstitutePlaceholdersIsIdempotent(t *testing.T) {
	now := time.Date(2026, 1, 15, 14, 5, 9, 0, time.UTC)
	in := "At [CURRENT TIME] the score was [SCORE]/100 ([GRADE])."

	once := substitutePlaceholders(in, now, reportScores)
	twice := substitutePlaceholders(once, now, reportScores)
	assert.Equal(t, once, twice)
}

func TestSubstitutePlaceholdersWithoutOverallScore(t *testing.T) {
	now := time.Date(2026, 1, 15, 14, 5, 9, 0, time.UTC)
	in := "At [CURRENT TIME]: [SCORE]/100 ([GRADE])"

	got := substitutePlaceholders(in, now, analysis.ComplianceScores{})

	// time still substitutes; score tokens stay when scoring produced nothing
	assert.Equal(t, "At 2026-01-15 14:05:09: [SCORE]/100 ([GRADE])", got)
}

func TestSubstitutePlaceholdersWholeScoreFormatting(t *testing.T) {
	scores := analysis.ComplianceScores{
		analysis.OverallScoreKey: {Score: 60, Grade: GradePoor, Percentage: "60%"},
	}
	got := substitutePlaceholders("[SCORE]", time.Now(), scores)
	// whole values print without a trailing .0
	assert.Equal(t, "60", got)
}
