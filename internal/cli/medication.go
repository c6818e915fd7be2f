package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/hms/internal/model"
	"github.com/rcliao/hms/internal/store"
)

func init() {
	medCmd := &cobra.Command{
		Use:   "medication",
		Short: "Medication inventory operations",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a medication to the inventory",
		Run:   runMedicationAdd,
	}
	add.Flags().String("id", "", "Medication ID (generated when empty)")
	add.Flags().StringP("name", "n", "", "Medication name (required)")
	add.Flags().Int("stock", 0, "Initial stock")
	add.Flags().Int("alert", 0, "Low stock alert level")
	add.MarkFlagRequired("name")

	restock := &cobra.Command{
		Use:   "restock <id>",
		Short: "Change a medication's stock",
		Args:  cobra.ExactArgs(1),
		Run:   runMedicationRestock,
	}
	restock.Flags().IntP("quantity", "q", 0, "Units to add; negative to dispense (required)")
	restock.MarkFlagRequired("quantity")

	low := &cobra.Command{
		Use:   "low",
		Short: "List medications at or below their alert level",
		Run:   runMedicationLow,
	}

	medCmd.AddCommand(add, restock, low)
	RootCmd.AddCommand(medCmd)
}

func runMedicationAdd(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")
	name, _ := cmd.Flags().GetString("name")
	stock, _ := cmd.Flags().GetInt("stock")
	alert, _ := cmd.Flags().GetInt("alert")

	meds, err := layout().Medications()
	if err != nil {
		exitErr("open store", err)
	}
	m, err := meds.Create(store.MedicationParams{ID: id, Name: name, Stock: stock, LowStockAlert: alert})
	if err != nil {
		exitErr("add medication", err)
	}
	printJSON(cmd, m)
}

func runMedicationRestock(cmd *cobra.Command, args []string) {
	qty, _ := cmd.Flags().GetInt("quantity")

	meds, err := layout().Medications()
	if err != nil {
		exitErr("open store", err)
	}
	m, err := meds.AdjustStock(args[0], qty)
	if err != nil {
		exitErr("restock", err)
	}
	if m.IsLow() {
		logger.Warn("stock at or below alert level", "id", m.ID, "stock", m.Stock, "alert", m.LowStockAlert)
	}
	printJSON(cmd, m)
}

func runMedicationLow(cmd *cobra.Command, args []string) {
	meds, err := layout().Medications()
	if err != nil {
		exitErr("open store", err)
	}
	low := meds.LowStock()
	if low == nil {
		low = []model.Medication{}
	}
	printJSON(cmd, low)
}
