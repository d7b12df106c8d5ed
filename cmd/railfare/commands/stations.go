package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newStationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stations",
		Short: "Search and maintain the station roster",
	}

	cmd.AddCommand(c.newStationsSearchCmd())
	cmd.AddCommand(c.newStationsRefreshCmd())

	return cmd
}

func (c *CLI) newStationsSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search KEYWORD",
		Short: "Find stations by name, pinyin, abbreviation or city",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exact, _ := cmd.Flags().GetBool("exact")
			limit, _ := cmd.Flags().GetInt("limit")
			return c.app.ShowStations(cmd.Context(), args[0], exact, limit, outputOptions(cmd))
		},
	}
	cmd.Flags().Bool("exact", false, "Only return exact matches")
	cmd.Flags().IntP("limit", "l", 20, "Maximum number of results, 0 for all")
	return cmd
}

func (c *CLI) newStationsRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Download the station roster and store it when it changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.RefreshStations(cmd.Context())
		},
	}
}
