package triage

import (
	"fmt"
	"strings"

	"github.com/perf-tools/lightaudit/pkg/models/domain"
)

// NoDataMessage is the fixed text shown when fetching produced no usable
// audit data.
const NoDataMessage = "No data fetched from API."

// Render formats a triage report as plain text: one block per finding in
// audit order, then a savings summary. An empty report renders the summary
// alone.
func Render(report domain.TriageReport) string {
	blocks := make([]string, 0, len(report.Findings)+1)

	for _, finding := range report.Findings {
		var b strings.Builder
		fmt.Fprintf(&b, "%s (%s priority)\n", finding.Title, finding.Priority)
		fmt.Fprintf(&b, "Potential Savings: %.2f ms\n", finding.SavingsMs)

		if finding.Classification == domain.ClassificationAddressable {
			b.WriteString("Solution:\n")
			for i, line := range finding.Remediation {
				if i > 0 {
					b.WriteString("\n")
				}
				b.WriteString("- " + line)
			}
		} else {
			b.WriteString("Generated Question:\n")
			b.WriteString("- " + finding.Question)
		}
		b.WriteString("\n")
		blocks = append(blocks, b.String())
	}

	summary := fmt.Sprintf(
		"Total Admin Panel Savings: %.2f seconds\n"+
			"Total Manual Intervention Savings: %.2f seconds\n"+
			"Total Combined Savings: %.2f seconds",
		report.AdminSavedMs/1000,
		report.ManualSavedMs/1000,
		report.CombinedSavedMs()/1000,
	)
	blocks = append(blocks, summary)

	return strings.Join(blocks, "\n\n")
}
