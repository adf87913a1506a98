package api

type AuditRequest struct {
	URL string `json:"url"`
}

type Finding struct {
	AuditID     string   `json:"audit_id"`
	Title       string   `json:"title"`
	Priority    string   `json:"priority"`
	SavingsMs   float64  `json:"savings_ms"`
	Addressable bool     `json:"addressable"`
	Remediation []string `json:"remediation,omitempty"`
	Question    string   `json:"question,omitempty"`
}

type AuditResponse struct {
	URL                  string    `json:"url"`
	Findings             []Finding `json:"findings"`
	AdminSavedSeconds    float64   `json:"admin_saved_seconds"`
	ManualSavedSeconds   float64   `json:"manual_saved_seconds"`
	CombinedSavedSeconds float64   `json:"combined_saved_seconds"`
	Report               string    `json:"report"`
}
