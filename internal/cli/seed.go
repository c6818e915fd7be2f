package cli

import (
	"cmp"
	"io"

	"github.com/spf13/cobra"

	"github.com/rcliao/hms/internal/seed"
)

func init() {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import staff, patient and medication lists",
		Long: `Import the initial CSV lists into empty stores. A store that already
holds records is left untouched. Each file is imported whole or not at all: a
bad row leaves its stores empty so the import can be rerun once it is fixed.
Paths default to the seed section of the config file.`,
		Run: runSeed,
	}

	cmd.Flags().String("staff", "", "Staff list CSV")
	cmd.Flags().String("patients", "", "Patient list CSV")
	cmd.Flags().String("medications", "", "Medicine list CSV")

	RootCmd.AddCommand(cmd)
}

func runSeed(cmd *cobra.Command, args []string) {
	staff, _ := cmd.Flags().GetString("staff")
	patients, _ := cmd.Flags().GetString("patients")
	medications, _ := cmd.Flags().GetString("medications")

	im := &seed.Importer{Layout: layout(), Logger: logger}
	jobs := []struct {
		path string
		load func(io.Reader) (seed.Result, error)
	}{
		{cmp.Or(staff, cfg.Seed.Staff), im.Staff},
		{cmp.Or(patients, cfg.Seed.Patients), im.Patients},
		{cmp.Or(medications, cfg.Seed.Medications), im.Medications},
	}

	results := []seed.Result{}
	for _, j := range jobs {
		if j.path == "" {
			continue
		}
		res, err := seed.File(j.path, j.load)
		if err != nil {
			exitErr("seed "+j.path, err)
		}
		results = append(results, res)
	}
	if len(results) == 0 {
		logger.Warn("nothing to seed: pass --staff, --patients or --medications, or set them in the config file")
	}
	printJSON(cmd, results)
}
