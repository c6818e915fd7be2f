package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <kind> <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	kind, id := args[0], args[1]

	h, err := layout().Open(kind)
	if err != nil {
		exitErr("open store", err)
	}
	if err := h.Remove(id); err != nil {
		exitErr("rm", err)
	}
	logger.Info("record removed", "kind", kind, "id", id)

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"kind":%q,"id":%q}`+"\n", kind, id)
}
