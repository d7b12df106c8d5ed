package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/railfare/internal/core/domain"
)

func (c *CLI) newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule RUN",
		Short: "Show the stop list of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runNumber, _ := cmd.Flags().GetString("run-number")
			if len(args) == 0 && runNumber == "" {
				return cmd.Help()
			}
			q := domain.ScheduleQuery{Date: c.date(cmd), RunNumber: runNumber}
			if len(args) == 1 {
				q.RunCode = args[0]
			}
			return c.app.ShowSchedule(cmd.Context(), q, outputOptions(cmd))
		},
	}
	c.addDateFlag(cmd)
	cmd.Flags().String("run-number", "", "Upstream run number, skips run code lookup")
	return cmd
}
