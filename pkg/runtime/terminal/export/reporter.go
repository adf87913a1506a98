package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/perf-tools/lightaudit/pkg/models/domain"
	"github.com/perf-tools/lightaudit/pkg/services/triage"
)

type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

const reportTemplate = `Lighthouse triage for {{.URL}} ({{.Count}} findings)

{{.Body}}
`

// Handle writes the triage report for one site to the configured writer.
func (r *Reporter) Handle(siteURL string, report domain.TriageReport) error {
	t, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(r.writer, struct {
		URL   string
		Count int
		Body  string
	}{
		URL:   siteURL,
		Count: len(report.Findings),
		Body:  triage.Render(report),
	})
}

// HandleMessage writes a bare status line, e.g. the no-data sentinel.
func (r *Reporter) HandleMessage(message string) error {
	_, err := fmt.Fprintln(r.writer, message)
	return err
}
