package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/railfare/internal/core/domain"
)

func (c *CLI) newFareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fare RUN FROM TO",
		Short: "Price a run between two of its stops, optionally split into legs",
		Long: `Price a run between two of its stops.

With --via the journey is split at the given stations; with --partitions the
stops in between are divided into that many groups and split at each group
boundary. Each leg is queried on its own and the cheapest seat of every leg is
summed and compared with the full fare.`,
		Example: `  railfare fare K1234 广州南 阳江 -d 2026-10-20
  railfare fare K1234 广州南 阳江 --via 江门
  railfare fare K1234 广州南 阳江 -k 3`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			via, _ := cmd.Flags().GetStringSlice("via")
			partitions, _ := cmd.Flags().GetInt("partitions")
			runNumber, _ := cmd.Flags().GetString("run-number")

			return c.app.ShowFare(cmd.Context(), domain.FareQuery{
				Date:       c.date(cmd),
				RunCode:    args[0],
				RunNumber:  runNumber,
				From:       args[1],
				To:         args[2],
				Waypoints:  via,
				Partitions: partitions,
			}, outputOptions(cmd))
		},
	}
	c.addDateFlag(cmd)
	cmd.Flags().StringSlice("via", nil, "Split the journey at these stations, in route order")
	cmd.Flags().IntP("partitions", "k", 0, "Split the journey into this many legs")
	cmd.Flags().String("run-number", "", "Upstream run number, skips run code lookup")
	cmd.MarkFlagsMutuallyExclusive("via", "partitions")
	return cmd
}
