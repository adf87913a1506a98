package commands

import (
	"context"

	"github.com/perf-tools/lightaudit/pkg/models/domain"
	"github.com/perf-tools/lightaudit/pkg/runtime/terminal/export"
	"github.com/perf-tools/lightaudit/pkg/services/triage"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Auditor runs the fetch-and-classify pass for one site.
type Auditor interface {
	AuditSite(ctx context.Context, siteURL string) (domain.TriageReport, error)
}

func NewAnalyzeCmd(auditor Auditor, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <url>",
		Short: "Run a Lighthouse audit for a URL and print the triage report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			siteURL := args[0]

			report, err := auditor.AuditSite(ctx, siteURL)
			if err != nil {
				zerolog.Ctx(ctx).Error().Err(err).Str("url", siteURL).Msg("audit failed")
				return reporter.HandleMessage(triage.NoDataMessage)
			}

			return reporter.Handle(siteURL, report)
		},
	}
}
