package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/hms/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "List the records of one entity kind",
		Long:  "List the records of one entity kind. Kinds: " + joinKinds(),
		Args:  cobra.ExactArgs(1),
		Run:   runList,
	}

	cmd.Flags().IntP("limit", "l", 0, "Max results (0 for all)")
	cmd.Flags().Bool("ids-only", false, "Only output record IDs")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	h, err := layout().Open(args[0])
	if err != nil {
		exitErr("open store", err)
	}

	ms := h.Mappings()
	recs := h.Records()
	if limit > 0 && len(recs) > limit {
		ms, recs = ms[:limit], recs[:limit]
	}

	if idsOnly {
		for _, m := range ms {
			id, _ := m.Get("id")
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return
	}

	if formatFlag == "text" {
		printMappings(cmd, h, ms)
		return
	}
	if recs == nil {
		recs = []any{}
	}
	printJSON(cmd, recs)
}

func joinKinds() string {
	return strings.Join(store.Kinds(), ", ")
}
