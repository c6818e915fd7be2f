package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/hms/internal/model"
	"github.com/rcliao/hms/internal/store"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out, errOut bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&errOut)
	RootCmd.SetArgs(args)
	require.NoError(t, RootCmd.Execute(), errOut.String())
	return out.String()
}

func TestCommands(t *testing.T) {
	t.Setenv("HMS_CONFIG", "")
	dir := t.TempDir()
	csv := filepath.Join(dir, "medicine_list.csv")
	require.NoError(t, os.WriteFile(csv, []byte("Medicine Name,Initial Stock,Low Stock Level Alert\nParacetamol,100,20\n"), 0o644))
	data := filepath.Join(dir, "data")

	var seeded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(run(t, "seed", "--data", data, "--medications", csv)), &seeded))
	require.Len(t, seeded, 1)
	assert.EqualValues(t, 1, seeded[0]["imported"])

	run(t, "medication", "add", "--data", data, "--id", "m2", "--name", "Ibuprofen", "--stock", "12", "--alert", "10")

	var m model.Medication
	require.NoError(t, json.Unmarshal([]byte(run(t, "medication", "restock", "--data", data, "M2", "--quantity=-3")), &m))
	assert.Equal(t, 9, m.Stock)

	var low []model.Medication
	require.NoError(t, json.Unmarshal([]byte(run(t, "medication", "low", "--data", data)), &low))
	require.Len(t, low, 1)
	assert.Equal(t, "m2", low[0].ID)

	require.NoError(t, json.Unmarshal([]byte(run(t, "get", "--data", data, "medication", "m2")), &m))
	assert.Equal(t, "Ibuprofen", m.Name)

	var listed []model.Medication
	require.NoError(t, json.Unmarshal([]byte(run(t, "list", "--data", data, "--format", "json", "medication")), &listed))
	assert.Len(t, listed, 2)

	text := run(t, "list", "--data", data, "--format", "text", "medication")
	assert.Contains(t, text, "lowStockAlert")
	assert.Contains(t, text, "Ibuprofen")

	var st store.Stats
	require.NoError(t, json.Unmarshal([]byte(run(t, "stats", "--data", data, "--format", "json")), &st))
	assert.Equal(t, 2, st.TotalRecords)

	snap := filepath.Join(dir, "snapshot.db")
	out := run(t, "export", "--data", data, "--sqlite", snap, "medication")
	assert.Contains(t, out, `"medication"`)
	assert.FileExists(t, snap)

	out = run(t, "rm", "--data", data, "medication", "m2")
	assert.JSONEq(t, `{"ok":true,"kind":"medication","id":"m2"}`, strings.TrimSpace(out))
}

func TestPatientRegister(t *testing.T) {
	t.Setenv("HMS_CONFIG", "")
	data := t.TempDir()

	var p model.Patient
	out := run(t, "patient", "register", "--data", data, "--id", "P1", "--name", "Alice Brown",
		"--email", "alice@example.com", "--dob", "1980-05-14", "--gender", "female", "--blood-type", "a+",
		"--allergies", "latex, penicillin")
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, model.Female, p.Gender)
	assert.Equal(t, model.BloodType("A+"), p.BloodType)
	assert.Equal(t, []string{"latex", "penicillin"}, p.Allergies)

	require.NoError(t, json.Unmarshal([]byte(run(t, "get", "--data", data, "patient", "--email", "ALICE@example.com")), &p))
	assert.Equal(t, "P1", p.ID)
}
