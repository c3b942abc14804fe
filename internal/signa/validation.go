package signa

import (
	"strings"
	"time"

	"signa-dashboard/internal/models"
)

const (
	minNameLength       = 2
	minNationalIDLength = 5
	minPasswordLength   = 6
	maxPatientAge       = 150
)

func minLength(entity, field, value string, n int) error {
	if len([]rune(strings.TrimSpace(value))) < n {
		return &ValidationError{Entity: entity, Field: field, Rule: RuleMinLength, Min: n}
	}
	return nil
}

func email(entity, value string) error {
	if !strings.Contains(value, "@") {
		return &ValidationError{Entity: entity, Field: "email", Rule: RuleEmail}
	}
	return nil
}

func required(entity, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Entity: entity, Field: field, Rule: RuleRequired}
	}
	return nil
}

func positive(entity, field string, id uint64) error {
	if id == 0 {
		return &ValidationError{Entity: entity, Field: field, Rule: RulePositive}
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ValidateDoctor checks a doctor payload before it is sent.
func ValidateDoctor(d models.Doctor) error {
	return firstError(
		minLength("doctor", "nombre", d.Name, minNameLength),
		email("doctor", d.Email),
		minLength("doctor", "especialidad", d.Specialty, minNameLength),
	)
}

// ValidatePatient checks a patient payload before it is sent.
func ValidatePatient(p models.Patient) error {
	if err := firstError(
		minLength("patient", "nombre", p.Name, minNameLength),
		minLength("patient", "cedula", p.NationalID, minNationalIDLength),
	); err != nil {
		return err
	}
	if p.Age < 0 || p.Age > maxPatientAge {
		return &ValidationError{Entity: "patient", Field: "edad", Rule: RuleRange, Min: 0, Max: maxPatientAge}
	}
	return nil
}

// ValidateHistory checks a clinical history payload before it is sent.
func ValidateHistory(h models.ClinicalHistory) error {
	if err := positive("history", "paciente_id", h.PatientID); err != nil {
		return err
	}
	if _, err := time.Parse(time.DateOnly, h.Date); err != nil {
		return &ValidationError{Entity: "history", Field: "fecha", Rule: RuleDate}
	}
	return nil
}

// ValidateVisit checks a visit payload before it is sent.
func ValidateVisit(v models.Visit) error {
	if err := firstError(
		positive("visit", "historia_id", v.HistoryID),
		required("visit", "hora_entrada", v.EntryTime),
	); err != nil {
		return err
	}
	if !v.Triage.Valid() {
		return &ValidationError{Entity: "visit", Field: "evaluacion_triaje", Rule: RuleTriage}
	}
	if err := minLength("visit", "especialidad", v.Specialty, minNameLength); err != nil {
		return err
	}
	if v.VisitNumber < 1 {
		return &ValidationError{Entity: "visit", Field: "numero_visita", Rule: RulePositive}
	}
	return nil
}

// ValidateDiagnosis checks a diagnosis payload before it is sent.
func ValidateDiagnosis(d models.Diagnosis) error {
	return firstError(
		positive("diagnosis", "visita_id", d.VisitID),
		minLength("diagnosis", "diagnostico", d.Diagnosis, minNameLength),
	)
}

// ValidateRegistration checks a doctor sign-up and its shared secret.
func ValidateRegistration(in models.RegisterDoctorInput, secret string) error {
	return firstError(
		minLength("registration", "nombre", in.Name, minNameLength),
		email("registration", in.Email),
		minLength("registration", "cedula", in.NationalID, minNationalIDLength),
		minLength("registration", "password", in.Password, minPasswordLength),
		required("registration", "secret", secret),
	)
}

// ValidateLogin checks that both credentials are present.
func ValidateLogin(nationalID, password string) error {
	return firstError(
		required("login", "cedula", nationalID),
		required("login", "password", password),
	)
}
