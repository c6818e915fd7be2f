package store

import (
	"os"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/hms/internal/model"
	"github.com/rcliao/hms/internal/record"
)

func newTestLayout(t *testing.T) Layout {
	t.Helper()
	return Layout{Dir: t.TempDir()}
}

func TestMedicationLifecycle(t *testing.T) {
	l := newTestLayout(t)
	meds, err := l.Medications()
	require.NoError(t, err)

	want := model.Medication{ID: "m1", Name: "Paracetamol", Stock: 100, LowStockAlert: 20}
	_, err = meds.Create(MedicationParams{ID: "m1", Name: "Paracetamol", Stock: 100, LowStockAlert: 20})
	require.NoError(t, err)

	got, err := meds.FindByID("m1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, meds.Delete("m1"))
	_, err = meds.FindByID("m1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPatientEmailMustBeUnique(t *testing.T) {
	l := newTestLayout(t)
	patients, err := l.Patients()
	require.NoError(t, err)

	_, err = patients.Create(PatientParams{ID: "p1", Name: "Alice", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = patients.Create(PatientParams{ID: "p2", Name: "Another Alice", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, 1, patients.Len())

	got, err := patients.FindByEmail("A@X.COM")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)
}

func TestCreate_GeneratesIDs(t *testing.T) {
	l := newTestLayout(t)
	docs, err := l.Doctors()
	require.NoError(t, err)

	d, err := docs.Create(StaffParams{Name: "Dr. Who", Email: "who@x.com", Gender: model.Male, Age: 40}, "Cardiology")
	require.NoError(t, err)
	_, err = ulid.ParseStrict(d.ID)
	require.NoError(t, err, "generated IDs are ULIDs")

	d2, err := docs.Create(StaffParams{Name: "Dr. Two"}, "")
	require.NoError(t, err)
	assert.NotEqual(t, d.ID, d2.ID)
}

// Every entity type survives a write and a fresh read unchanged.
func TestAllEntitiesRoundTrip(t *testing.T) {
	l := newTestLayout(t)
	at := time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC)
	dob := time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)

	docs, err := l.Doctors()
	require.NoError(t, err)
	doctor := model.Doctor{ID: "D001", Name: "John Smith", Email: "john@hms.org", Gender: model.Male, Age: 45, Specialty: "General"}
	require.NoError(t, docs.Insert(doctor))

	phs, err := l.Pharmacists()
	require.NoError(t, err)
	pharmacist := model.Pharmacist{ID: "P001", Name: "Mark Lee", Email: "mark@hms.org", Gender: model.Male, Age: 29}
	require.NoError(t, phs.Insert(pharmacist))

	admins, err := l.Administrators()
	require.NoError(t, err)
	admin := model.Administrator{ID: "A001", Name: "Sarah Lee", Gender: model.Female, Age: 40}
	require.NoError(t, admins.Insert(admin))

	patients, err := l.Patients()
	require.NoError(t, err)
	patient := model.Patient{
		ID: "P1001", Name: "Alice Brown", Email: "alice@x.com", DateOfBirth: &dob,
		Gender: model.Female, BloodType: "A+", Phone: "+65 9123 4567", Allergies: []string{"penicillin", "latex"},
	}
	require.NoError(t, patients.Insert(patient))

	meds, err := l.Medications()
	require.NoError(t, err)
	med := model.Medication{ID: "m1", Name: "Ibuprofen", Stock: 50, LowStockAlert: 10}
	require.NoError(t, meds.Insert(med))

	dx, err := l.Diagnoses()
	require.NoError(t, err)
	diagnosis := model.Diagnosis{ID: "dx1", PatientID: "P1001", DoctorID: "D001", Condition: "Flu", Notes: "rest,\nfluids", DiagnosedAt: &at}
	require.NoError(t, dx.Insert(diagnosis))

	rxs, err := l.Prescriptions()
	require.NoError(t, err)
	rx := model.Prescription{ID: "rx1", DiagnosisID: "dx1", MedicationID: "m1", Quantity: 2, Instructions: "twice daily", Status: model.PrescriptionPending}
	require.NoError(t, rxs.Insert(rx))

	appts, err := l.Appointments()
	require.NoError(t, err)
	appt := model.Appointment{ID: "ap1", PatientID: "P1001", DoctorID: "D001", Slot: &at, Status: model.AppointmentCompleted}
	require.NoError(t, appts.Insert(appt))

	outs, err := l.AppointmentOutcomes()
	require.NoError(t, err)
	outcome := model.AppointmentOutcome{ID: "ap1", ServiceType: "Consultation", Prescriptions: []string{"rx1"}, RecordedAt: &at}
	require.NoError(t, outs.Insert(outcome))

	reqs, err := l.ReplenishmentRequests()
	require.NoError(t, err)
	req := model.ReplenishmentRequest{ID: "r1", MedicationID: "m1", Quantity: 30, RequestedBy: "P001", Status: model.RequestApproved, RequestedAt: &at}
	require.NoError(t, reqs.Insert(req))

	docs, err = l.Doctors()
	require.NoError(t, err)
	assert.Equal(t, []model.Doctor{doctor}, docs.List())

	phs, err = l.Pharmacists()
	require.NoError(t, err)
	assert.Equal(t, []model.Pharmacist{pharmacist}, phs.List())

	admins, err = l.Administrators()
	require.NoError(t, err)
	assert.Equal(t, []model.Administrator{admin}, admins.List())

	patients, err = l.Patients()
	require.NoError(t, err)
	assert.Equal(t, []model.Patient{patient}, patients.List())

	meds, err = l.Medications()
	require.NoError(t, err)
	assert.Equal(t, []model.Medication{med}, meds.List())

	dx, err = l.Diagnoses()
	require.NoError(t, err)
	assert.Equal(t, []model.Diagnosis{diagnosis}, dx.List())

	rxs, err = l.Prescriptions()
	require.NoError(t, err)
	assert.Equal(t, []model.Prescription{rx}, rxs.List())

	appts, err = l.Appointments()
	require.NoError(t, err)
	assert.Equal(t, []model.Appointment{appt}, appts.List())

	outs, err = l.AppointmentOutcomes()
	require.NoError(t, err)
	assert.Equal(t, []model.AppointmentOutcome{outcome}, outs.List())

	reqs, err = l.ReplenishmentRequests()
	require.NoError(t, err)
	assert.Equal(t, []model.ReplenishmentRequest{req}, reqs.List())
}

func TestMedications_Stock(t *testing.T) {
	l := newTestLayout(t)
	meds, err := l.Medications()
	require.NoError(t, err)

	_, err = meds.Create(MedicationParams{ID: "m1", Name: "Paracetamol", Stock: 100, LowStockAlert: 20})
	require.NoError(t, err)
	_, err = meds.Create(MedicationParams{ID: "m2", Name: "Amoxicillin", Stock: 5, LowStockAlert: 10})
	require.NoError(t, err)

	m, err := meds.AdjustStock("m1", -85)
	require.NoError(t, err)
	assert.Equal(t, 15, m.Stock)

	_, err = meds.AdjustStock("m1", -16)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = meds.AdjustStock("nope", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	low := meds.LowStock()
	require.Len(t, low, 2)
	assert.Equal(t, "m1", low[0].ID)

	_, err = meds.Create(MedicationParams{Name: "Bad", Stock: -1})
	assert.Error(t, err)

	fresh, err := l.Medications()
	require.NoError(t, err)
	got, err := fresh.FindByID("m1")
	require.NoError(t, err)
	assert.Equal(t, 15, got.Stock, "stock changes are written through")
}

func TestReplenishmentRequests(t *testing.T) {
	l := newTestLayout(t)
	reqs, err := l.ReplenishmentRequests()
	require.NoError(t, err)

	r1, err := reqs.Create(ReplenishmentParams{MedicationID: "m1", Quantity: 50, RequestedBy: "P001"})
	require.NoError(t, err)
	assert.Equal(t, model.RequestPending, r1.Status)
	require.NotNil(t, r1.RequestedAt)

	r2, err := reqs.Create(ReplenishmentParams{MedicationID: "m2", Quantity: 10, RequestedBy: "P001"})
	require.NoError(t, err)

	_, err = reqs.SetStatus(r1.ID, model.RequestApproved)
	require.NoError(t, err)

	pending := reqs.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, r2.ID, pending[0].ID)

	_, err = reqs.Create(ReplenishmentParams{MedicationID: "m1"})
	assert.Error(t, err)

	_, err = reqs.SetStatus(r1.ID, "LOST")
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestClinicalQueries(t *testing.T) {
	l := newTestLayout(t)
	slot := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	appts, err := l.Appointments()
	require.NoError(t, err)
	_, err = appts.Create(AppointmentParams{PatientID: "P1", DoctorID: "D1", Slot: slot})
	require.NoError(t, err)
	_, err = appts.Create(AppointmentParams{PatientID: "P2", DoctorID: "D1", Slot: slot.Add(time.Hour)})
	require.NoError(t, err)
	_, err = appts.Create(AppointmentParams{PatientID: "p1", DoctorID: "D2"})
	require.NoError(t, err)

	assert.Len(t, appts.ForPatient("P1"), 2)
	assert.Len(t, appts.ForDoctor("D1"), 2)
	assert.Nil(t, appts.ForDoctor("D2")[0].Slot)

	dx, err := l.Diagnoses()
	require.NoError(t, err)
	d, err := dx.Create(DiagnosisParams{PatientID: "P1", DoctorID: "D1", Condition: "Flu"})
	require.NoError(t, err)
	assert.Len(t, dx.ForPatient("P1"), 1)

	rxs, err := l.Prescriptions()
	require.NoError(t, err)
	rx, err := rxs.Create(PrescriptionParams{DiagnosisID: d.ID, MedicationID: "m1", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, model.PrescriptionPending, rx.Status)
	assert.Len(t, rxs.ForDiagnosis(d.ID), 1)

	outs, err := l.AppointmentOutcomes()
	require.NoError(t, err)
	_, err = outs.Create(OutcomeParams{AppointmentID: "ap1", ServiceType: "X-ray", Prescriptions: []string{rx.ID}})
	require.NoError(t, err)
	_, err = outs.Create(OutcomeParams{AppointmentID: "AP1", ServiceType: "X-ray"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
	_, err = outs.Create(OutcomeParams{ServiceType: "X-ray"})
	assert.ErrorIs(t, err, record.ErrInvalidRecord)
}

func TestTable_UpdateAndIsEmpty(t *testing.T) {
	l := newTestLayout(t)
	docs, err := l.Doctors()
	require.NoError(t, err)
	assert.True(t, docs.IsEmpty())

	d, err := docs.Create(StaffParams{ID: "D001", Name: "John", Email: "john@hms.org"}, "")
	require.NoError(t, err)
	assert.False(t, docs.IsEmpty())
	assert.True(t, docs.Exists("d001"))

	d.Specialty = "Oncology"
	require.NoError(t, docs.Update(*d))

	got, err := docs.FindByID("D001")
	require.NoError(t, err)
	assert.Equal(t, "Oncology", got.Specialty)

	assert.ErrorIs(t, docs.Update(model.Doctor{ID: "D404"}), ErrNotFound)
}

func TestLayout_OpenAndStats(t *testing.T) {
	l := newTestLayout(t)
	assert.Len(t, Kinds(), 10)

	_, err := l.Open("nurse")
	assert.Error(t, err)

	meds, err := l.Medications()
	require.NoError(t, err)
	_, err = meds.Create(MedicationParams{ID: "m1", Name: "Paracetamol", Stock: 1})
	require.NoError(t, err)

	h, err := l.Open(KindMedication)
	require.NoError(t, err)
	assert.Equal(t, "medication", h.Name())
	assert.Equal(t, 1, h.Len())

	handles, err := l.OpenAll()
	require.NoError(t, err)
	assert.Len(t, handles, len(Kinds()))

	st, err := l.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalRecords)
	info, err := os.Stat(l.Path(KindMedication))
	require.NoError(t, err)
	assert.Equal(t, info.Size(), st.TotalBytes)
}

func TestLayout_CorruptFileIsFatal(t *testing.T) {
	l := newTestLayout(t)
	fs := record.FieldSeparator
	bad := "id" + fs + "m1" + fs + "name" + record.RecordSeparator + "\n"
	require.NoError(t, os.WriteFile(l.Path(KindMedication), []byte(bad), 0o644))

	_, err := l.Medications()
	require.ErrorIs(t, err, ErrCorruptData)
	assert.True(t, record.IsFatal(err))
}

func TestAppointments_SlotMatchesFile(t *testing.T) {
	l := newTestLayout(t)
	tz := time.FixedZone("SGT", 8*60*60)
	slot := time.Date(2024, 6, 1, 18, 0, 0, 500_000_000, tz)

	appts, err := l.Appointments()
	require.NoError(t, err)
	created, err := appts.Create(AppointmentParams{ID: "a1", PatientID: "P1", DoctorID: "D1", Slot: slot})
	require.NoError(t, err)

	want := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NotNil(t, created.Slot)
	assert.Equal(t, want, *created.Slot)

	inMemory, err := appts.FindByID("a1")
	require.NoError(t, err)
	fresh, err := l.Appointments()
	require.NoError(t, err)
	reloaded, err := fresh.FindByID("a1")
	require.NoError(t, err)
	assert.Equal(t, reloaded, inMemory)
	assert.Equal(t, want, *inMemory.Slot)
}

func TestReadsDoNotShareMemory(t *testing.T) {
	l := newTestLayout(t)
	patients, err := l.Patients()
	require.NoError(t, err)
	dob := time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)
	_, err = patients.Create(PatientParams{ID: "p1", Name: "Alice", DateOfBirth: &dob, Allergies: []string{"latex"}})
	require.NoError(t, err)

	got, err := patients.FindByID("p1")
	require.NoError(t, err)
	got.Allergies[0] = "peanut"
	*got.DateOfBirth = got.DateOfBirth.AddDate(1, 0, 0)

	for _, p := range patients.List() {
		p.Allergies[0] = "dust"
	}

	again, err := patients.FindByID("p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"latex"}, again.Allergies)
	assert.Equal(t, dob, *again.DateOfBirth)

	fresh, err := l.Patients()
	require.NoError(t, err)
	onDisk, err := fresh.FindByID("p1")
	require.NoError(t, err)
	assert.Equal(t, onDisk, again)
}
