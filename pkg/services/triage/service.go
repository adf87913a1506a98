package triage

import (
	"context"
	"fmt"

	"github.com/perf-tools/lightaudit/pkg/models/domain"
)

// Service runs the full fetch-then-classify pass for one site.
type Service struct {
	fetcher  ReportFetcher
	analyzer *Analyzer
}

func NewService(fetcher ReportFetcher, generator QuestionGenerator) *Service {
	return &Service{
		fetcher:  fetcher,
		analyzer: NewAnalyzer(generator),
	}
}

// AuditSite fetches the Lighthouse report for siteURL and classifies its
// audits. A fetch failure or a response without decodable audits returns an
// error; no audit processing happens in that case.
func (s *Service) AuditSite(ctx context.Context, siteURL string) (domain.TriageReport, error) {
	report, err := s.fetcher.Run(ctx, siteURL)
	if err != nil {
		return domain.TriageReport{}, fmt.Errorf("failed to fetch audit report: %w", err)
	}
	if len(report.Audits) == 0 {
		return domain.TriageReport{}, ErrNoData
	}
	return s.analyzer.Analyze(ctx, report), nil
}
