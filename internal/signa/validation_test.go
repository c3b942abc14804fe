package signa

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signa-dashboard/internal/models"
)

func validDoctor() models.Doctor {
	return models.Doctor{Name: "Dra. María García", Email: "maria.garcia@hospital.com", Specialty: "Pediatría"}
}

func validPatient() models.Patient {
	return models.Patient{Name: "Carmen Vega", NationalID: "23456789", Age: 32}
}

func validVisit() models.Visit {
	return models.Visit{
		HistoryID:    3,
		EntryTime:    "2025-01-10T08:30:00Z",
		Triage:       models.TriageYellow,
		PreDiagnosis: "Dolor abdominal",
		Specialty:    "Medicina General",
		VisitNumber:  1,
	}
}

func requireValidation(t *testing.T, err error, field string, rule Rule) {
	t.Helper()
	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, field, v.Field)
	assert.Equal(t, rule, v.Rule)
}

func TestValidatePatient(t *testing.T) {
	require.NoError(t, ValidatePatient(validPatient()))
	require.NoError(t, ValidatePatient(models.Patient{Name: "Al", NationalID: "12345", Age: 0}))
	require.NoError(t, ValidatePatient(models.Patient{Name: "Al", NationalID: "12345", Age: 150}))

	cases := []struct {
		name  string
		edit  func(p *models.Patient)
		field string
		rule  Rule
	}{
		{"short name", func(p *models.Patient) { p.Name = "A" }, "nombre", RuleMinLength},
		{"blank name", func(p *models.Patient) { p.Name = "   " }, "nombre", RuleMinLength},
		{"short cedula", func(p *models.Patient) { p.NationalID = "1234" }, "cedula", RuleMinLength},
		{"negative age", func(p *models.Patient) { p.Age = -1 }, "edad", RuleRange},
		{"age over 150", func(p *models.Patient) { p.Age = 151 }, "edad", RuleRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPatient()
			tc.edit(&p)
			requireValidation(t, ValidatePatient(p), tc.field, tc.rule)
		})
	}
}

func TestValidateDoctor(t *testing.T) {
	require.NoError(t, ValidateDoctor(validDoctor()))

	d := validDoctor()
	d.Name = "J"
	requireValidation(t, ValidateDoctor(d), "nombre", RuleMinLength)

	d = validDoctor()
	d.Email = "maria.hospital.com"
	requireValidation(t, ValidateDoctor(d), "email", RuleEmail)

	d = validDoctor()
	d.Specialty = ""
	requireValidation(t, ValidateDoctor(d), "especialidad", RuleMinLength)
}

func TestValidateHistory(t *testing.T) {
	require.NoError(t, ValidateHistory(models.ClinicalHistory{PatientID: 1, Date: "2025-01-10"}))
	requireValidation(t, ValidateHistory(models.ClinicalHistory{Date: "2025-01-10"}), "paciente_id", RulePositive)
	requireValidation(t, ValidateHistory(models.ClinicalHistory{PatientID: 1, Date: "10/01/2025"}), "fecha", RuleDate)
}

func TestValidateVisit(t *testing.T) {
	require.NoError(t, ValidateVisit(validVisit()))

	v := validVisit()
	v.HistoryID = 0
	requireValidation(t, ValidateVisit(v), "historia_id", RulePositive)

	v = validVisit()
	v.EntryTime = ""
	requireValidation(t, ValidateVisit(v), "hora_entrada", RuleRequired)

	v = validVisit()
	v.Triage = "Morado"
	requireValidation(t, ValidateVisit(v), "evaluacion_triaje", RuleTriage)

	v = validVisit()
	v.VisitNumber = 0
	requireValidation(t, ValidateVisit(v), "numero_visita", RulePositive)
}

func TestValidateDiagnosis(t *testing.T) {
	require.NoError(t, ValidateDiagnosis(models.Diagnosis{VisitID: 4, Diagnosis: "Gastritis"}))
	requireValidation(t, ValidateDiagnosis(models.Diagnosis{Diagnosis: "Gastritis"}), "visita_id", RulePositive)
	requireValidation(t, ValidateDiagnosis(models.Diagnosis{VisitID: 4}), "diagnostico", RuleMinLength)
}

func TestValidateRegistration(t *testing.T) {
	in := models.RegisterDoctorInput{Name: "Dr. Luis Martínez", Email: "luis@hospital.com", NationalID: "56789012", Password: "secret1"}
	require.NoError(t, ValidateRegistration(in, "s3cr3t"))
	requireValidation(t, ValidateRegistration(in, ""), "secret", RuleRequired)

	short := in
	short.Password = "abc"
	requireValidation(t, ValidateRegistration(short, "s3cr3t"), "password", RuleMinLength)
}

func TestCreate_ValidationShortCircuitsNetwork(t *testing.T) {
	var hits int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeJSON(w, http.StatusCreated, `{"paciente":{"id":1},"doctor":{"id":1},"historia":{"id":1},"visita":{"id":1},"diagnostico":{"id":1}}`)
	}, Config{})
	ctx := context.Background()

	_, err := c.CreatePatient(ctx, models.Patient{Name: "Carmen Vega", NationalID: "123", Age: 30})
	requireValidation(t, err, "cedula", RuleMinLength)
	_, err = c.CreateDoctor(ctx, models.Doctor{Name: "Dr. X", Email: "nope", Specialty: "Cardiología"})
	requireValidation(t, err, "email", RuleEmail)
	_, err = c.CreateHistory(ctx, models.ClinicalHistory{PatientID: 1})
	requireValidation(t, err, "fecha", RuleDate)
	_, err = c.CreateVisit(ctx, models.Visit{})
	requireValidation(t, err, "historia_id", RulePositive)
	_, err = c.CreateDiagnosis(ctx, models.Diagnosis{VisitID: 1})
	requireValidation(t, err, "diagnostico", RuleMinLength)
	_, err = c.Login(ctx, "", "secret")
	requireValidation(t, err, "cedula", RuleRequired)
	assert.Zero(t, atomic.LoadInt32(&hits))

	_, err = c.CreatePatient(ctx, validPatient())
	require.NoError(t, err)
	_, err = c.CreateDoctor(ctx, validDoctor())
	require.NoError(t, err)
	_, err = c.CreateHistory(ctx, models.ClinicalHistory{PatientID: 1, Date: "2025-01-10"})
	require.NoError(t, err)
	_, err = c.CreateVisit(ctx, validVisit())
	require.NoError(t, err)
	_, err = c.CreateDiagnosis(ctx, models.Diagnosis{VisitID: 1, Diagnosis: "Gastritis"})
	require.NoError(t, err)
	assert.Equal(t, int32(5), atomic.LoadInt32(&hits))
}
