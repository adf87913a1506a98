package commands

import (
	"fmt"

	"github.com/perf-tools/lightaudit/pkg/runtime/terminal/export"
	"github.com/perf-tools/lightaudit/pkg/services/triage"
	"github.com/spf13/cobra"
)

func NewRemediationsCmd(reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "remediations",
		Short: "List audit ids with a predefined remediation procedure",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, id := range triage.AddressableAuditIDs() {
				lines, _ := triage.RemediationFor(id)
				if err := reporter.HandleMessage(fmt.Sprintf("%s:", id)); err != nil {
					return err
				}
				for _, line := range lines {
					if err := reporter.HandleMessage("- " + line); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}
