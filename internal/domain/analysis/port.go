package analysis

import "context"

// Repository port for persisting and querying completed analyses
type Repository interface {
	Save(ctx context.Context, r *Record) error
	Get(ctx context.Context, tenant string, id AnalysisID) (*Record, error)
	Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*Record, error)
}

// ReportStore port for archiving generated reports
type ReportStore interface {
	PutReport(ctx context.Context, key string, report string) (string, error)
}
