package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/hms/internal/database"
	"github.com/rcliao/hms/internal/snapshot"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export [kind...]",
		Short: "Export records to a SQLite snapshot",
		Long:  "Copy the record files into a SQLite database for reporting. Exports every kind unless some are named.",
		Run:   runExport,
	}

	cmd.Flags().String("sqlite", "", "Snapshot database path (required)")
	cmd.MarkFlagRequired("sqlite")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	path, _ := cmd.Flags().GetString("sqlite")
	l := layout()

	var (
		handles []database.Handle
		err     error
	)
	if len(args) == 0 {
		handles, err = l.OpenAll()
	} else {
		for _, kind := range args {
			h, oerr := l.Open(kind)
			if oerr != nil {
				err = oerr
				break
			}
			handles = append(handles, h)
		}
	}
	if err != nil {
		exitErr("open store", err)
	}

	tables, err := snapshot.Export(cmd.Context(), path, handles...)
	if err != nil {
		exitErr("export", err)
	}
	logger.Debug("snapshot written", "path", path, "tables", len(tables))

	printJSON(cmd, map[string]any{"path": path, "tables": tables})
}
