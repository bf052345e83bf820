package prompt

import (
	"fmt"
)

// Classify builds the document-classification prompt. The reply must follow
// the line-oriented format below; the stage parser scans for the Category and
// Confidence markers and falls back to Other/5 when either is missing.
func Classify(content string) string {
	return fmt.Sprintf(`You are a financial-regulation expert with 20 years of supervisory-authority experience.
Classify the document below and state your grounds.

=== DOCUMENT ===
%s

=== CATEGORIES ===
1. FinancialProductDisclosure
   - investment risk, return structure, product characteristics
   - capital-markets and financial-investment terminology
   - investor protection, suitability principles
2. ServiceTerms
   - terms of use, rights and obligations, liability limits
   - amendment, termination, dispute-resolution procedures
3. PrivacyPolicy
   - collection/use/provision/destruction of personal data
   - data-protection and credit-information statutes
   - data-subject rights, consent withdrawal, damages
4. SecurityPolicy
   - information security management, access control, encryption
   - incident response, vulnerability management, security training
   - ISMS / ISO 27001 references
5. SystemArchitectureDiagram
   - system architecture, network topology
   - server/DB layout, security appliances
6. Other
   - anything not covered above

=== OUTPUT FORMAT ===
Category: [1-6]
Label: [category name]
Confidence: [1-10]
Rationale: [three main grounds for the classification]

Answer strictly in this format.`, content)
}

// Analyze builds the deep-analysis prompt. The reply must be a single JSON
// object with the five fixed top-level keys the pipeline state expects.
func Analyze(docType, content string) string {
	return fmt.Sprintf(`You are a senior financial supervisory examiner with 15 years of inspection experience.
Perform an in-depth regulatory analysis of the %s document below.

=== DOCUMENT ===
%s

=== GUIDELINES ===
1. Main content: core purpose, scope, stakeholder impact, regulatory exposure.
2. Regulatory matters: applicable statutes, supervisory requirements,
   compliance issues, remediation needs.
3. Security elements: technical, administrative and physical controls;
   overall security level.
4. Personal data handling: lawfulness of each processing step, consent
   procedures, data-subject rights, risk level.
5. Risk factors: regulatory, operational and reputational risks with
   priorities (immediate / short-term / long-term).

=== OUTPUT FORMAT (JSON) ===
{
  "main_content": {
    "purpose": "<string>",
    "scope": "<string>",
    "key_clauses": ["3-5 important clauses"]
  },
  "regulatory_matters": {
    "applicable_statutes": ["<string>"],
    "requirements": ["<string>"],
    "compliance_issues": ["<string>"],
    "improvements": ["<string>"]
  },
  "security_elements": {
    "technical_controls": ["<string>"],
    "administrative_controls": ["<string>"],
    "physical_controls": ["<string>"],
    "security_level": "high|medium|low"
  },
  "personal_data_handling": {
    "processing": ["<string>"],
    "legal_basis": ["<string>"],
    "subject_rights": ["<string>"],
    "risk_level": "high|medium|low"
  },
  "risk_factors": {
    "regulatory_risks": ["<string>"],
    "operational_risks": ["<string>"],
    "reputational_risks": ["<string>"],
    "priorities": ["immediate|short-term|long-term items"]
  }
}

Respond with the JSON object only. No markdown, no commentary, no code fences.`, docType, content)
}

// AssessRisk builds the quantitative risk-assessment prompt. Scores run 1-10
// where 1-2 is best-in-class and 9-10 requires immediate action.
func AssessRisk(docType, primaryAnalysis string) string {
	return fmt.Sprintf(`You are a risk advisory partner with 10 years dedicated to financial-institution risk management.
Produce a quantitative risk assessment from the analysis below.

=== SUBJECT ===
Document type: %s
Primary analysis: %s

=== SCORING SCALE ===
- 1-2: best practice (top 10%% of the industry)
- 3-4: strong (regulatory requirements fully met)
- 5-6: adequate (baseline requirements met)
- 7-8: weak (improvement needed)
- 9-10: at risk (immediate action required)

=== AREAS ===
1. PrivacyProtection: lawful basis, consent procedure, outsourced
   processing, subject rights, breach response.
2. DataSecurity: encryption in transit/at rest, data classification,
   backup and recovery, lifecycle, external storage.
3. AccessControl: authentication (incl. MFA), privilege management, admin
   account hardening, access logging, periodic review.
4. RegulatoryCompliance: statute coverage, requirement fulfilment,
   internal controls, compliance monitoring, regulatory-change response.

=== OUTPUT FORMAT (JSON) ===
{
  "PrivacyProtection": {
    "score": <1-10>,
    "grade": "best|strong|adequate|weak|critical",
    "rationale": "<specific grounds citing statutes>",
    "issues": ["2-3 main issues"],
    "remediations": ["2-3 immediate remediations"]
  },
  "DataSecurity": { ...same record... },
  "AccessControl": { ...same record... },
  "RegulatoryCompliance": { ...same record... },
  "OverallRisk": {
    "score": <1-10>,
    "grade": "best|strong|adequate|weak|critical",
    "rationale": "<overall opinion>",
    "issues": ["3 most urgent remediation items"],
    "remediations": ["expected sanctions per risk level"]
  }
}

Respond with the JSON object only, every rating with concrete grounds.`, docType, primaryAnalysis)
}

// Report builds the final narrative-report prompt. The literal tokens
// [CURRENT TIME], [SCORE] and [GRADE] must survive generation verbatim; the
// report stage substitutes them afterwards.
func Report(docType, primaryAnalysis, riskAssessment, webSearch, complianceScore string) string {
	return fmt.Sprintf(`You are a principal examiner with 10 years in a financial supervisory authority.
Write a board-level compliance report from the analysis data below.

=== ANALYSIS DATA ===
Document type: %s
Primary analysis: %s
Risk assessment: %s
Web search results: %s
Compliance scores: %s

=== REPORT STRUCTURE ===

## Compliance Analysis Report

### Executive Summary
**Document**: %s compliance analysis
**Analyzed at**: [CURRENT TIME]
**Overall compliance score**: [SCORE]/100 ([GRADE])
**Summary**: one-line overall opinion

### Key Findings
1. Core compliance issues (top 2-3)
2. Risk ratings per area with score, grade and main issue
3. Regulatory environment changes affecting the organization

### Risk Assessment
1. Immediate action (scores 9-10) with expected sanctions
2. Short-term improvement (scores 7-8) with business impact
3. Medium-term management (scores 5-6) with direction

### Action Plan
1. Immediate (1-30 days), 2. Short term (1-6 months),
3. Medium/long term (6-24 months), each item with owning team and rough cost

### Continuous Monitoring
Review cadence (monthly/quarterly/annual) and 3-5 measurable KPIs

### References
Applicable statutes, industry benchmarks, recent regulatory trends

=== WRITING RULES ===
- Quote risk scores as concrete numbers
- Keep sanctions and cost estimates in realistic ranges
- Keep action items executable and statute citations precise
- Keep the [CURRENT TIME], [SCORE] and [GRADE] tokens exactly as written`,
		docType, primaryAnalysis, riskAssessment, webSearch, complianceScore, docType)
}
