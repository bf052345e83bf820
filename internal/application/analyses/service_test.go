package analyses

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/automaton-compliance/internal/application/pipeline"
	domain "github.com/bryanwahyu/automaton-compliance/internal/domain/analysis"
)

type failingLLM struct{}

func (failingLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("model unavailable")
}

type memRepo struct {
	saved map[domain.AnalysisID]*domain.Record
}

func newMemRepo() *memRepo {
	return &memRepo{saved: map[domain.AnalysisID]*domain.Record{}}
}

func (r *memRepo) Save(ctx context.Context, a *domain.Record) error {
	cp := *a
	r.saved[a.ID] = &cp
	return nil
}

func (r *memRepo) Get(ctx context.Context, tenant string, id domain.AnalysisID) (*domain.Record, error) {
	rec, ok := r.saved[id]
	if !ok || rec.TenantID != tenant {
		return nil, errors.New("not found")
	}
	return rec, nil
}

func (r *memRepo) Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*domain.Record, error) {
	var out []*domain.Record
	for _, rec := range r.saved {
		if rec.TenantID == tenant {
			out = append(out, rec)
		}
	}
	return out, nil
}

type stubReports struct {
	err  error
	keys []string
}

func (s *stubReports) PutReport(ctx context.Context, key, report string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.keys = append(s.keys, key)
	return "http://minio.local/reports/" + key, nil
}

func newService(reports domain.ReportStore) (*Service, *memRepo) {
	repo := newMemRepo()
	svc := NewService(&pipeline.Service{LLM: failingLLM{}}, repo, reports)
	return svc, repo
}

func TestAnalyzePersistsDegradedRun(t *testing.T) {
	reports := &stubReports{}
	svc, repo := newService(reports)

	rec, outcomes, err := svc.Analyze(context.Background(), "acme", "", "policy text")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Len(t, outcomes, 6)
	assert.True(t, domain.AnyDegraded(outcomes))

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "acme", rec.TenantID)
	assert.Equal(t, string(domain.DocOther), rec.DocumentType)

	// all-failing model still yields the default scores
	assert.Equal(t, 60.0, rec.OverallScore)
	assert.Equal(t, pipeline.GradePoor, rec.OverallGrade)

	// report was archived under tenant/id.md
	require.Len(t, reports.keys, 1)
	assert.Equal(t, "acme/"+string(rec.ID)+".md", reports.keys[0])
	assert.Contains(t, rec.ReportURL, string(rec.ID))

	// the stored result round-trips into state plus outcomes
	stored, ok := repo.saved[rec.ID]
	require.True(t, ok)
	res, err := DecodeResult(stored.Result)
	require.NoError(t, err)
	assert.Equal(t, domain.DocOther, res.State.DocumentType)
	assert.Len(t, res.Outcomes, 6)
}

func TestAnalyzeKeepsRecordWhenUploadFails(t *testing.T) {
	svc, repo := newService(&stubReports{err: errors.New("bucket down")})

	rec, _, err := svc.Analyze(context.Background(), "acme", "fixed-id", "policy text")
	require.NoError(t, err)

	assert.Equal(t, domain.AnalysisID("fixed-id"), rec.ID)
	assert.Empty(t, rec.ReportURL)
	_, ok := repo.saved["fixed-id"]
	assert.True(t, ok)
}

func TestAnalyzeWithoutReportStore(t *testing.T) {
	svc, _ := newService(nil)

	rec, _, err := svc.Analyze(context.Background(), "acme", "", "policy text")
	require.NoError(t, err)
	assert.Empty(t, rec.ReportURL)
}
