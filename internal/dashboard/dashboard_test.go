package dashboard

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signa-dashboard/internal/models"
	"signa-dashboard/internal/signa"
)

func TestLoadStats(t *testing.T) {
	api := newFakeAPI()
	api.doctors = []models.Doctor{{ID: 1}, {ID: 2}}
	api.patients = []models.Patient{{ID: 1}}
	api.histories = []models.ClinicalHistory{{ID: 1}, {ID: 2}, {ID: 3}}
	api.visits = []models.Visit{
		{ID: 1, Triage: models.TriageRed},
		{ID: 2, Triage: "rojo"},
		{ID: 3, Triage: models.TriageGreen},
		{ID: 4, Triage: "Morado"},
	}

	stats, err := LoadStats(context.Background(), api)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Doctors)
	assert.Equal(t, 1, stats.Patients)
	assert.Equal(t, 3, stats.Histories)
	assert.Equal(t, 4, stats.Visits)
	assert.Equal(t, 0, stats.Diagnoses)
	assert.Equal(t, 2, stats.VisitsByTriage[models.TriageRed])
	assert.Equal(t, 1, stats.VisitsByTriage[models.TriageGreen])
	assert.Equal(t, 0, stats.VisitsByTriage[models.TriageBlue])
	assert.Len(t, stats.VisitsByTriage, len(models.TriageLevels))
	assert.Equal(t, 1, stats.UnclassifiedVisits)
}

func TestLoadStats_FailureWaitsForAll(t *testing.T) {
	api := newFakeAPI()
	boom := &signa.HTTPError{Status: http.StatusServiceUnavailable}
	api.listErr["visits"] = boom

	stats, err := LoadStats(context.Background(), api)
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, boom)
	for _, name := range []string{"doctors", "patients", "histories", "visits", "diagnoses"} {
		assert.Equal(t, 1, api.listCalls[name], name)
	}
}

func TestRegisterEmergency_Defaults(t *testing.T) {
	now := time.Date(2024, 3, 9, 22, 15, 0, 0, time.UTC)
	api := newFakeAPI()

	res, err := RegisterEmergency(context.Background(), api, EmergencyInput{
		Name: " María López ", NationalID: "1234567", Age: 40,
	}, now)
	require.NoError(t, err)

	assert.Equal(t, "María López", res.Patient.Name)
	assert.Equal(t, res.Patient.ID, res.History.PatientID)
	assert.Equal(t, "2024-03-09", res.History.Date)

	assert.Equal(t, res.History.ID, res.Visit.HistoryID)
	assert.Equal(t, 1, res.Visit.VisitNumber)
	assert.Equal(t, models.TriageRed, res.Visit.Triage)
	assert.Equal(t, DefaultEmergencySpecialty, res.Visit.Specialty)
	assert.Equal(t, DefaultEmergencyPreDiagnosis, res.Visit.PreDiagnosis)
	assert.Equal(t, "2024-03-09T22:15:00Z", res.Visit.EntryTime)
}

func TestRegisterEmergency_KeepsGivenValues(t *testing.T) {
	api := newFakeAPI()
	res, err := RegisterEmergency(context.Background(), api, EmergencyInput{
		Name: "Pedro", NationalID: "7654321", Age: 8,
		Triage: models.TriageYellow, Specialty: "Pediatría", PreDiagnosis: "Fiebre alta",
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.TriageYellow, res.Visit.Triage)
	assert.Equal(t, "Pediatría", res.Visit.Specialty)
	assert.Equal(t, "Fiebre alta", res.Visit.PreDiagnosis)
}

func TestRegisterEmergency_ReportsFailedStep(t *testing.T) {
	cases := []struct {
		step        string
		wantPatient bool
		wantHistory bool
	}{
		{StepPatient, false, false},
		{StepHistory, true, false},
		{StepVisit, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.step, func(t *testing.T) {
			api := newFakeAPI()
			cause := errors.New("remote down")
			api.createErr[tc.step] = cause

			res, err := RegisterEmergency(context.Background(), api, EmergencyInput{Name: "Ana", NationalID: "1234567"}, time.Now())
			assert.Nil(t, res)

			var ee *EmergencyError
			require.ErrorAs(t, err, &ee)
			assert.Equal(t, tc.step, ee.Step)
			assert.ErrorIs(t, err, cause)
			assert.Equal(t, tc.wantPatient, ee.PatientID != 0)
			assert.Equal(t, tc.wantHistory, ee.HistoryID != 0)
		})
	}
}

func TestHistoriesAndVisitsOf(t *testing.T) {
	histories := []models.ClinicalHistory{{ID: 1, PatientID: 7}, {ID: 2, PatientID: 8}, {ID: 3, PatientID: 7}}
	got := HistoriesOf(histories, 7)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(3), got[1].ID)
	assert.Empty(t, HistoriesOf(histories, 9))
	assert.NotNil(t, HistoriesOf(nil, 9))

	visits := []models.Visit{{ID: 1, HistoryID: 2}, {ID: 2, HistoryID: 3}}
	assert.Len(t, VisitsOf(visits, 2), 1)
}
