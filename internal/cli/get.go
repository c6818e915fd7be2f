package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/hms/internal/record"
	"github.com/rcliao/hms/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get <kind> [id]",
		Short: "Retrieve one record",
		Long:  "Retrieve one record by ID, or by email for staff and patients with --email.",
		Args:  cobra.RangeArgs(1, 2),
		Run:   runGet,
	}

	cmd.Flags().StringP("email", "e", "", "Look up by email instead of ID")

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	email, _ := cmd.Flags().GetString("email")
	kind := args[0]

	var (
		rec any
		err error
	)
	switch {
	case email != "":
		rec, err = findByEmail(layout(), kind, email)
	case len(args) == 2:
		h, oerr := layout().Open(kind)
		if oerr != nil {
			exitErr("open store", oerr)
		}
		rec, err = h.Lookup(args[1])
	default:
		exitErr("get", fmt.Errorf("an id or --email is required"))
	}
	if err != nil {
		exitErr("get", err)
	}
	printJSON(cmd, rec)
}

// findByEmail resolves the secondary key of the kinds that carry one.
func findByEmail(l store.Layout, kind, email string) (any, error) {
	switch kind {
	case store.KindDoctor:
		s, err := l.Doctors()
		if err != nil {
			return nil, err
		}
		return s.FindByEmail(email)
	case store.KindPharmacist:
		s, err := l.Pharmacists()
		if err != nil {
			return nil, err
		}
		return s.FindByEmail(email)
	case store.KindAdministrator:
		s, err := l.Administrators()
		if err != nil {
			return nil, err
		}
		return s.FindByEmail(email)
	case store.KindPatient:
		s, err := l.Patients()
		if err != nil {
			return nil, err
		}
		return s.FindByEmail(email)
	}
	return nil, fmt.Errorf("%s records have no email: %w", kind, record.ErrInvalidRecord)
}
