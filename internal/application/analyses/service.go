package analyses

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/automaton-compliance/internal/application/pipeline"
	domain "github.com/bryanwahyu/automaton-compliance/internal/domain/analysis"
)

// Service orchestrates a pipeline run: execute the six stages, archive the
// report, persist the record.
type Service struct {
	Pipeline *pipeline.Service
	Repo     domain.Repository
	Reports  domain.ReportStore // optional
}

func NewService(p *pipeline.Service, repo domain.Repository, reports domain.ReportStore) *Service {
	return &Service{Pipeline: p, Repo: repo, Reports: reports}
}

// Result is what gets serialized into the record's result_json column:
// the final state plus the per-stage outcomes.
type Result struct {
	State    *domain.State    `json:"state"`
	Outcomes []domain.Outcome `json:"outcomes"`
}

// DecodeResult parses a stored result_json payload back into its parts.
func DecodeResult(raw string) (*Result, error) {
	var res Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return nil, fmt.Errorf("decode analysis result: %w", err)
	}
	return &res, nil
}

// Analyze runs the full pipeline synchronously and persists the outcome.
// The pipeline itself never fails; only persistence errors are returned.
func (s *Service) Analyze(ctx context.Context, tenant string, id domain.AnalysisID, content string) (*domain.Record, []domain.Outcome, error) {
	if id == "" {
		id = domain.AnalysisID(uuid.NewString())
	}

	st, outcomes := s.Pipeline.Run(ctx, content)

	rec := &domain.Record{
		ID:        id,
		TenantID:  tenant,
		CreatedAt: time.Now(),
	}
	rec.DocumentType = string(st.DocumentType)

	if overall, ok := st.OverallScore(); ok {
		rec.OverallScore = overall.Score
		rec.OverallGrade = overall.Grade
	}

	// Archival is best-effort: a storage outage must not lose the analysis.
	if s.Reports != nil && st.FinalReport != "" {
		key := fmt.Sprintf("%s/%s.md", tenant, id)
		url, err := s.Reports.PutReport(ctx, key, st.FinalReport)
		if err != nil {
			log.Printf("report upload failed for %s: %v", id, err)
		} else {
			rec.ReportURL = url
		}
	}

	raw, err := json.Marshal(Result{State: st, Outcomes: outcomes})
	if err != nil {
		return nil, outcomes, fmt.Errorf("marshal analysis result: %w", err)
	}
	rec.Result = string(raw)

	if err := s.Repo.Save(ctx, rec); err != nil {
		return nil, outcomes, fmt.Errorf("save analysis: %w", err)
	}
	return rec, outcomes, nil
}

// AnalyzeUntilDone is meant for background goroutines: it detaches from the
// request context so a closed connection doesn't cancel the model calls.
func (s *Service) AnalyzeUntilDone(tenant string, id domain.AnalysisID, content string) []domain.Outcome {
	_, outcomes, err := s.Analyze(context.Background(), tenant, id, content)
	if err != nil {
		log.Printf("background analysis %s failed: %v", id, err)
	}
	return outcomes
}

func (s *Service) Get(ctx context.Context, tenant string, id domain.AnalysisID) (*domain.Record, error) {
	return s.Repo.Get(ctx, tenant, id)
}

func (s *Service) Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*domain.Record, error) {
	return s.Repo.Paginate(ctx, tenant, page, pageSize)
}
