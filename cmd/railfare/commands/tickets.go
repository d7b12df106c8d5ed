package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/railfare/internal/core/domain"
)

func (c *CLI) newTicketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets FROM TO",
		Short: "List the trains and seat prices between two stations",
		Example: `  railfare tickets 广州南 阳江 -d 2026-10-20
  railfare tickets IZQ YJQ --train 'D*' --after 08:00`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			trains, _ := cmd.Flags().GetStringSlice("train")
			stations, _ := cmd.Flags().GetStringSlice("station")
			exact, _ := cmd.Flags().GetBool("exact")
			after, _ := cmd.Flags().GetString("after")
			before, _ := cmd.Flags().GetString("before")
			force, _ := cmd.Flags().GetBool("force")

			return c.app.ShowTickets(cmd.Context(), domain.TicketQuery{
				Date:         c.date(cmd),
				From:         args[0],
				To:           args[1],
				Trains:       trains,
				Stations:     stations,
				Exact:        exact,
				DepartAfter:  after,
				DepartBefore: before,
				Force:        force,
			}, outputOptions(cmd))
		},
	}
	c.addDateFlag(cmd)
	cmd.Flags().StringSliceP("train", "t", nil, "Only show these run codes; 'G*' matches a prefix, '_1' any letter")
	cmd.Flags().StringSliceP("station", "s", nil, "Only show trains touching these stations")
	cmd.Flags().Bool("exact", false, "Match --station names exactly instead of by substring")
	cmd.Flags().String("after", "", "Earliest departure, HH:MM")
	cmd.Flags().String("before", "", "Latest departure, HH:MM")
	cmd.Flags().BoolP("force", "f", false, "Bypass the result cache")
	return cmd
}
