package triage

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/perf-tools/lightaudit/pkg/models/domain"
	"github.com/rs/zerolog"
)

// ErrNoData is returned when the PageSpeed response carried no decodable
// audit entries. Callers render it as the fixed no-data message.
var ErrNoData = errors.New("no audit data in response")

// QuestionGenerator produces one investigation question for an audit title.
type QuestionGenerator interface {
	Question(ctx context.Context, topic string) (string, error)
}

// ReportFetcher retrieves the Lighthouse audit report for a site.
type ReportFetcher interface {
	Run(ctx context.Context, siteURL string) (*domain.AuditReport, error)
}

type Analyzer struct {
	generator QuestionGenerator
}

func NewAnalyzer(generator QuestionGenerator) *Analyzer {
	return &Analyzer{generator: generator}
}

// Analyze classifies every audit in response order. Entries whose metric
// savings are absent or all zero are dropped and contribute to neither
// total. Manual audits trigger exactly one generator call each; a generator
// failure is folded into the question text so the pass keeps going.
func (a *Analyzer) Analyze(ctx context.Context, report *domain.AuditReport) domain.TriageReport {
	logger := zerolog.Ctx(ctx)
	result := domain.TriageReport{}

	for _, audit := range report.Audits {
		savings := sumSavings(audit.MetricSavings)
		if savings == 0 {
			continue
		}

		finding := domain.Finding{
			AuditID:   audit.ID,
			Title:     audit.Title,
			Priority:  priorityFor(audit.MetricSavings),
			SavingsMs: savings,
		}

		if lines, ok := addressableIssues[audit.ID]; ok {
			finding.Classification = domain.ClassificationAddressable
			finding.Remediation = lines
			result.AdminSavedMs += savings
		} else {
			finding.Classification = domain.ClassificationManual
			finding.Question = a.question(ctx, audit.Title)
			result.ManualSavedMs += savings
		}

		result.Findings = append(result.Findings, finding)
	}

	logger.Debug().
		Int("findings", len(result.Findings)).
		Float64("admin_saved_ms", result.AdminSavedMs).
		Float64("manual_saved_ms", result.ManualSavedMs).
		Msg("audit triage complete")

	return result
}

func (a *Analyzer) question(ctx context.Context, topic string) string {
	question, err := a.generator.Question(ctx, topic)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("topic", topic).Msg("question generation failed")
		return fmt.Sprintf("Error generating question: %v", err)
	}
	return question
}

func sumSavings(savings map[string]float64) float64 {
	var total float64
	for _, v := range savings {
		total += v
	}
	return total
}

// priorityFor resolves an audit's priority from its largest-savings metric.
// Known metrics rank ahead of unknown ones on ties, in metricOrder.
func priorityFor(savings map[string]float64) domain.Priority {
	bestMetric := ""
	bestValue := -1.0
	for _, metric := range rankedMetrics(savings) {
		if v := savings[metric]; v > bestValue {
			bestMetric, bestValue = metric, v
		}
	}
	if priority, ok := priorityByMetric[bestMetric]; ok {
		return priority
	}
	return domain.PriorityUnknown
}

// rankedMetrics lists the map's keys with the known metrics first, then any
// remaining keys sorted, so tie-breaking is deterministic.
func rankedMetrics(savings map[string]float64) []string {
	ranked := make([]string, 0, len(savings))
	for _, metric := range metricOrder {
		if _, ok := savings[metric]; ok {
			ranked = append(ranked, metric)
		}
	}
	var rest []string
	for metric := range savings {
		if _, ok := priorityByMetric[metric]; !ok {
			rest = append(rest, metric)
		}
	}
	sort.Strings(rest)
	return append(ranked, rest...)
}
