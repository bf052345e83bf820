package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/bryanwahyu/automaton-compliance/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts a completed analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Record) error {
	const q = `
INSERT INTO compliance_analyses
  (id, tenant_id, document_type, overall_score, overall_grade, report_url, result_json, created_at)
VALUES (?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  tenant_id=VALUES(tenant_id), document_type=VALUES(document_type),
  overall_score=VALUES(overall_score), overall_grade=VALUES(overall_grade),
  report_url=VALUES(report_url), result_json=VALUES(result_json);
`
	// Ensure non-nullable fields have safe defaults
	tenant := stringOrDash(a.TenantID)
	docType := stringOrDash(a.DocumentType)
	result := a.Result
	if strings.TrimSpace(result) == "" {
		// result_json column requires valid JSON; use empty object
		result = "{}"
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, q, a.ID, tenant, docType, a.OverallScore, a.OverallGrade, a.ReportURL, result, createdAt)
	return err
}

// Get returns one analysis by id
func (r *AnalysisRepository) Get(ctx context.Context, tenant string, id domain.AnalysisID) (*domain.Record, error) {
	const q = `
SELECT id, tenant_id, document_type, overall_score, overall_grade, report_url, result_json, created_at
FROM compliance_analyses
WHERE tenant_id=? AND id=?;
`
	row := r.db.QueryRowContext(ctx, q, tenant, id)
	var a domain.Record
	var created time.Time
	if err := row.Scan(&a.ID, &a.TenantID, &a.DocumentType, &a.OverallScore, &a.OverallGrade, &a.ReportURL, &a.Result, &created); err != nil {
		return nil, err
	}
	a.CreatedAt = created
	return &a, nil
}

// Paginate returns a page of analyses ordered by created_at desc
func (r *AnalysisRepository) Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*domain.Record, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, tenant_id, document_type, overall_score, overall_grade, report_url, result_json, created_at
FROM compliance_analyses
WHERE tenant_id=?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Record
	for rows.Next() {
		var a domain.Record
		var created time.Time
		if err := rows.Scan(&a.ID, &a.TenantID, &a.DocumentType, &a.OverallScore, &a.OverallGrade, &a.ReportURL, &a.Result, &created); err != nil {
			return nil, err
		}
		a.CreatedAt = created
		out = append(out, &a)
	}
	return out, rows.Err()
}
