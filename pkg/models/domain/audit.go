package domain

type Priority string

const (
	PriorityHigh    Priority = "High"
	PriorityMedium  Priority = "Medium"
	PriorityLow     Priority = "Low"
	PriorityUnknown Priority = "Unknown"
)

type Classification int

const (
	ClassificationAddressable Classification = iota
	ClassificationManual
)

// Audit is a single Lighthouse diagnostic entry. MetricSavings holds the
// estimated recoverable time in milliseconds per performance metric.
type Audit struct {
	ID            string
	Title         string
	MetricSavings map[string]float64
}

// AuditReport is the decoded PageSpeed response. Audits keeps the order in
// which entries appeared in the response body.
type AuditReport struct {
	Audits []Audit
}

// Finding is one classified audit with its resolved priority and either a
// static remediation procedure or a generated investigation question.
type Finding struct {
	AuditID        string
	Title          string
	Priority       Priority
	SavingsMs      float64
	Classification Classification
	Remediation    []string
	Question       string
}

// TriageReport accumulates classified findings and savings totals.
// AdminSavedMs counts audits with a known remediation, ManualSavedMs the
// ones that need manual investigation.
type TriageReport struct {
	Findings      []Finding
	AdminSavedMs  float64
	ManualSavedMs float64
}

func (r TriageReport) CombinedSavedMs() float64 {
	return r.AdminSavedMs + r.ManualSavedMs
}
