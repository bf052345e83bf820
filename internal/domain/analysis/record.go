package analysis

import "time"

// Record represents a completed analysis stored for auditing and retrieval
type Record struct {
	ID           AnalysisID `json:"id"`
	TenantID     string     `json:"tenant_id"`
	DocumentType string     `json:"document_type"`
	OverallScore float64    `json:"overall_score"`
	OverallGrade string     `json:"overall_grade,omitempty"`
	ReportURL    string     `json:"report_url,omitempty"`
	Result       string     `json:"result"` // JSON-serialized State
	CreatedAt    time.Time  `json:"created_at"`
}
