// Package cli implements the hms admin console commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rcliao/hms/internal/config"
	"github.com/rcliao/hms/internal/database"
	"github.com/rcliao/hms/internal/record"
	"github.com/rcliao/hms/internal/seed"
	"github.com/rcliao/hms/internal/store"
)

var (
	dataDir    string
	configPath string
	formatFlag string
	verbose    bool

	cfg    = &config.Config{}
	logger = slog.Default()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "hms",
	Short: "Hospital records console",
	Long:  "Inspect and maintain the hospital record files. One flat file per entity, no server.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		c, err := config.Load(configPath)
		if err != nil {
			exitErr("load config", err)
		}
		cfg = c

		level := cfg.Level()
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "Data directory (default: $HMS_DATA_DIR, config data_dir or ~/.hms)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $HMS_CONFIG)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

func layout() store.Layout {
	return store.Layout{Dir: cfg.ResolveDataDir(dataDir), Logger: logger}
}

func printJSON(cmd *cobra.Command, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

// printMappings writes records as a table in schema column order.
func printMappings(cmd *cobra.Command, h database.Handle, ms []record.Mapping) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	cols := h.Columns()
	fmt.Fprintln(w, strings.Join(cols, "\t"))
	for _, m := range ms {
		vals := make([]string, len(cols))
		for i, c := range cols {
			v, _ := m.Get(c)
			if v == record.Empty {
				v = "-"
			}
			vals[i] = v
		}
		fmt.Fprintln(w, strings.Join(vals, "\t"))
	}
	w.Flush()
}

func exitErr(msg string, err error) {
	fmt.Fprintln(os.Stderr, errMessage(msg, err))
	os.Exit(1)
}

// errMessage words err for the console. Only problems found in a backing
// file are reported as unreadable data; a bad value typed or imported by
// the user is reported as invalid input.
func errMessage(msg string, err error) string {
	switch {
	case record.IsFatal(err) && record.InFile(err):
		return fmt.Sprintf("error: %s: data files are unreadable, fix or restore them before continuing: %v", msg, err)
	case record.IsFatal(err), errors.Is(err, record.ErrReservedToken), errors.Is(err, seed.ErrBadInput):
		return fmt.Sprintf("error: %s: invalid input: %v", msg, err)
	}
	return fmt.Sprintf("error: %s: %v", msg, err)
}
