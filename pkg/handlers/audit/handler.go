package audit

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/perf-tools/lightaudit/pkg/models/api"
	"github.com/perf-tools/lightaudit/pkg/models/domain"
	"github.com/perf-tools/lightaudit/pkg/services/triage"
	"github.com/rs/zerolog"
)

// Auditor runs the fetch-and-classify pass for one site.
type Auditor interface {
	AuditSite(ctx context.Context, siteURL string) (domain.TriageReport, error)
}

type Handler struct {
	auditor Auditor
	page    *template.Template
}

func NewHandler(auditor Auditor) *Handler {
	return &Handler{
		auditor: auditor,
		page:    template.Must(template.New("index").Parse(pageTemplate)),
	}
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head><title>Lighthouse Audit Tool</title></head>
<body>
<h1>Lighthouse Audit Tool</h1>
<form method="post" action="/audits">
<input type="text" name="url" size="60" value="{{.URL}}" placeholder="Enter the URL of the website to audit">
<button type="submit">Run Audit</button>
</form>
{{if .Results}}<h2>Audit Results</h2>
<textarea rows="24" cols="100" readonly>{{.Results}}</textarea>{{end}}
</body>
</html>
`

type pageData struct {
	URL     string
	Results string
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, pageData{})
}

// Run handles the form submission and renders the report back into the page.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	siteURL := r.PostFormValue("url")
	if siteURL == "" {
		http.Error(w, "missing 'url' field", http.StatusBadRequest)
		return
	}

	h.renderPage(w, r, pageData{URL: siteURL, Results: h.runAudit(r.Context(), siteURL)})
}

// RunAPI handles POST /api/v1/audits with a JSON body.
func (h *Handler) RunAPI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var request api.AuditRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if request.URL == "" {
		http.Error(w, "missing 'url' field", http.StatusBadRequest)
		return
	}

	report, err := h.auditor.AuditSite(ctx, request.URL)
	response := api.AuditResponse{URL: request.URL, Findings: []api.Finding{}}
	if err != nil {
		logger.Error().Err(err).Str("url", request.URL).Msg("audit failed")
		response.Report = triage.NoDataMessage
	} else {
		response = buildResponse(request.URL, report)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Str("url", request.URL).Msg("failed to encode audit response")
	}
}

func (h *Handler) runAudit(ctx context.Context, siteURL string) string {
	report, err := h.auditor.AuditSite(ctx, siteURL)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("url", siteURL).Msg("audit failed")
		return triage.NoDataMessage
	}
	return triage.Render(report)
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.page.Execute(w, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to render page")
	}
}

func buildResponse(siteURL string, report domain.TriageReport) api.AuditResponse {
	findings := make([]api.Finding, 0, len(report.Findings))
	for _, f := range report.Findings {
		findings = append(findings, api.Finding{
			AuditID:     f.AuditID,
			Title:       f.Title,
			Priority:    string(f.Priority),
			SavingsMs:   f.SavingsMs,
			Addressable: f.Classification == domain.ClassificationAddressable,
			Remediation: f.Remediation,
			Question:    f.Question,
		})
	}

	return api.AuditResponse{
		URL:                  siteURL,
		Findings:             findings,
		AdminSavedSeconds:    report.AdminSavedMs / 1000,
		ManualSavedSeconds:   report.ManualSavedMs / 1000,
		CombinedSavedSeconds: report.CombinedSavedMs() / 1000,
		Report:               triage.Render(report),
	}
}
