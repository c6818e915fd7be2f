package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/hms/internal/model"
	"github.com/rcliao/hms/internal/seed"
	"github.com/rcliao/hms/internal/store"
)

func init() {
	patientCmd := &cobra.Command{
		Use:   "patient",
		Short: "Patient operations",
	}

	register := &cobra.Command{
		Use:   "register",
		Short: "Register a new patient",
		Run:   runPatientRegister,
	}
	register.Flags().String("id", "", "Patient ID (generated when empty)")
	register.Flags().StringP("name", "n", "", "Full name (required)")
	register.Flags().StringP("email", "e", "", "Email address, unique across patients")
	register.Flags().String("dob", "", "Date of birth (YYYY-MM-DD)")
	register.Flags().String("gender", "", "Gender: Male, Female or Other")
	register.Flags().String("blood-type", "", "Blood type, e.g. A+")
	register.Flags().String("phone", "", "Phone number")
	register.Flags().StringP("allergies", "a", "", "Comma-separated allergies")
	register.MarkFlagRequired("name")

	patientCmd.AddCommand(register)
	RootCmd.AddCommand(patientCmd)
}

func runPatientRegister(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	dob, _ := cmd.Flags().GetString("dob")
	gender, _ := cmd.Flags().GetString("gender")
	bloodType, _ := cmd.Flags().GetString("blood-type")
	phone, _ := cmd.Flags().GetString("phone")
	allergiesStr, _ := cmd.Flags().GetString("allergies")

	p := store.PatientParams{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Gender:    model.Gender(strings.ToUpper(gender)),
		BloodType: model.BloodType(strings.ToUpper(bloodType)),
		Phone:     phone,
	}
	if gender != "" && !slices.Contains(model.ValidGenders, string(p.Gender)) {
		exitErr("register", fmt.Errorf("gender %q: want one of %v", gender, model.ValidGenders))
	}
	if bloodType != "" && !slices.Contains(model.ValidBloodTypes, string(p.BloodType)) {
		exitErr("register", fmt.Errorf("blood type %q: want one of %v", bloodType, model.ValidBloodTypes))
	}
	if dob != "" {
		t, err := time.Parse(seed.DateFormat, dob)
		if err != nil {
			exitErr("register", fmt.Errorf("date of birth %q: want YYYY-MM-DD", dob))
		}
		p.DateOfBirth = &t
	}
	if allergiesStr != "" {
		for _, a := range strings.Split(allergiesStr, ",") {
			a = strings.TrimSpace(a)
			if a != "" {
				p.Allergies = append(p.Allergies, a)
			}
		}
	}

	patients, err := layout().Patients()
	if err != nil {
		exitErr("open store", err)
	}
	pt, err := patients.Create(p)
	if errors.Is(err, store.ErrAlreadyExists) {
		fmt.Fprintf(os.Stderr, "a patient with this ID or email is already registered: %v\n", err)
		os.Exit(1)
	}
	if err != nil {
		exitErr("register", err)
	}
	logger.Info("patient registered", "id", pt.ID)

	printJSON(cmd, pt)
}
