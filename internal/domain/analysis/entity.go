package analysis

// AnalysisID identifier type
type AnalysisID string

// DocumentType enum
type DocumentType string

const (
	DocFinancialProductDisclosure DocumentType = "FinancialProductDisclosure"
	DocServiceTerms               DocumentType = "ServiceTerms"
	DocPrivacyPolicy              DocumentType = "PrivacyPolicy"
	DocSecurityPolicy             DocumentType = "SecurityPolicy"
	DocSystemArchitectureDiagram  DocumentType = "SystemArchitectureDiagram"
	DocOther                      DocumentType = "Other"
)

// DocumentTypeByNumber maps the classifier's category number (1-6) to a type.
var DocumentTypeByNumber = map[string]DocumentType{
	"1": DocFinancialProductDisclosure,
	"2": DocServiceTerms,
	"3": DocPrivacyPolicy,
	"4": DocSecurityPolicy,
	"5": DocSystemArchitectureDiagram,
	"6": DocOther,
}

// Risk assessment categories. OverallRisk is excluded from compliance scoring.
const (
	CategoryPrivacyProtection    = "PrivacyProtection"
	CategoryDataSecurity         = "DataSecurity"
	CategoryAccessControl        = "AccessControl"
	CategoryRegulatoryCompliance = "RegulatoryCompliance"
	CategoryOverallRisk          = "OverallRisk"
)

// RiskCategories lists the categories the risk assessor must rate.
var RiskCategories = []string{
	CategoryPrivacyProtection,
	CategoryDataSecurity,
	CategoryAccessControl,
	CategoryRegulatoryCompliance,
	CategoryOverallRisk,
}

// RiskRating is one category entry of a risk assessment.
// Score runs 1-10; higher means worse risk.
type RiskRating struct {
	Score        int      `json:"score"`
	Grade        string   `json:"grade,omitempty"`
	Rationale    string   `json:"rationale,omitempty"`
	Issues       []string `json:"issues,omitempty"`
	Remediations []string `json:"remediations,omitempty"`
}

// Fixed top-level keys of a primary analysis.
const (
	KeyMainContent          = "main_content"
	KeyRegulatoryMatters    = "regulatory_matters"
	KeySecurityElements     = "security_elements"
	KeyPersonalDataHandling = "personal_data_handling"
	KeyRiskFactors          = "risk_factors"
)

// PrimaryAnalysis holds the five fixed keys of the deep-analysis stage.
// Values are nested objects on success; on a degraded parse, main_content
// carries a truncated prefix of the raw reply and the remaining keys carry a
// single-element placeholder list.
type PrimaryAnalysis map[string]any

// WebReference is one allow-listed search hit.
type WebReference struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Excerpt string `json:"excerpt"`
}

// WebSearchResults is the outcome of the web-search stage. Note carries the
// skipped/error marker when no real search happened.
type WebSearchResults struct {
	Query       string         `json:"query,omitempty"`
	ResultCount int            `json:"result_count"`
	Results     []WebReference `json:"results,omitempty"`
	Note        string         `json:"note,omitempty"`
}

// OverallScoreKey indexes the synthetic aggregate entry of ComplianceScores.
const OverallScoreKey = "OverallScore"

// ComplianceScore is a per-category compliance entry on the 10-100 scale;
// higher is better. Percentage is set on the OverallScore entry only.
type ComplianceScore struct {
	Score      float64 `json:"score"`
	Grade      string  `json:"grade"`
	Rationale  string  `json:"rationale,omitempty"`
	Percentage string  `json:"percentage,omitempty"`
}

// ComplianceScores maps category name to its compliance entry, plus the
// synthetic OverallScore entry when at least one category was usable.
type ComplianceScores map[string]ComplianceScore

// State is the shared record threaded through the six pipeline stages.
// Each field is written by exactly one stage; no stage reads a field written
// by a later stage. CurrentStep and ErrorMessage are last-writer-wins and
// serve observability only.
type State struct {
	InputContent     string                `json:"input_content"`
	DocumentType     DocumentType          `json:"document_type"`
	PrimaryAnalysis  PrimaryAnalysis       `json:"primary_analysis"`
	RiskAssessment   map[string]RiskRating `json:"risk_assessment"`
	WebSearchResults WebSearchResults      `json:"web_search_results"`
	ComplianceScores ComplianceScores      `json:"compliance_score"`
	FinalReport      string                `json:"final_report"`
	CurrentStep      string                `json:"current_step"`
	ErrorMessage     string                `json:"error_message,omitempty"`
}

// NewState builds the initial pipeline state for one analysis request.
func NewState(content string) *State {
	return &State{
		InputContent:    content,
		PrimaryAnalysis: PrimaryAnalysis{},
		RiskAssessment:  map[string]RiskRating{},
		ComplianceScores: ComplianceScores{},
		CurrentStep:     "started",
	}
}

// OverallScore returns the synthetic aggregate entry, if scoring produced one.
func (s *State) OverallScore() (ComplianceScore, bool) {
	sc, ok := s.ComplianceScores[OverallScoreKey]
	return sc, ok
}
