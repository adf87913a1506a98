package triage

import (
	"sort"

	"github.com/perf-tools/lightaudit/pkg/models/domain"
)

// metricOrder is the fixed ranking used to break ties when two metrics
// report the same savings for one audit.
var metricOrder = []string{"FCP", "LCP", "CLS", "TBT"}

var priorityByMetric = map[string]domain.Priority{
	"FCP": domain.PriorityHigh,
	"LCP": domain.PriorityMedium,
	"CLS": domain.PriorityMedium,
	"TBT": domain.PriorityLow,
}

// addressableIssues maps audit ids with a known remediation procedure to
// their instruction lines. An audit id absent from this table is treated as
// a manual issue and gets a generated question instead.
var addressableIssues = map[string][]string{
	"modern-image-formats": {
		"Convert the images: Use an image conversion tool to parse the image URLs and convert the images to the WebP format.",
		"Update the Codebase: Replace the original image URLs with the WebP image URLs for improved performance.",
	},
	"unminified-javascript": {
		"1. Go to Stores > Configuration > Advanced > Developer > JavaScript Settings.",
		"2. Set Minify JavaScript Files to 'Yes'.",
	},
	"render-blocking-resources": {
		"Optimize loading order:",
		"1. Go to Stores > Configuration > Advanced > Developer > JavaScript Settings.",
		"2. Enable 'Deferred JavaScript Loading' if available.",
	},
}

// AddressableAuditIDs returns the audit ids with a static remediation,
// ordered for stable CLI output.
func AddressableAuditIDs() []string {
	ids := make([]string, 0, len(addressableIssues))
	for id := range addressableIssues {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RemediationFor returns the remediation lines for an addressable audit id.
func RemediationFor(auditID string) ([]string, bool) {
	lines, ok := addressableIssues[auditID]
	return lines, ok
}
