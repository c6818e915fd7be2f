package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show data directory statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	stats, err := layout().Stats()
	if err != nil {
		exitErr("stats", err)
	}
	printJSON(cmd, stats)
}
