package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"signa-dashboard/internal/models"
)

const (
	DefaultEmergencySpecialty    = "Medicina General"
	DefaultEmergencyPreDiagnosis = "Emergencia - Pendiente de evaluación"
	DefaultEmergencyTriage       = models.TriageRed
)

// Steps of the emergency intake, in order.
const (
	StepPatient = "patient"
	StepHistory = "history"
	StepVisit   = "visit"
)

// EmergencyInput is the minimum a walk-in emergency patient needs.
type EmergencyInput struct {
	Name         string             `json:"nombre"`
	NationalID   string             `json:"cedula"`
	Age          int                `json:"edad"`
	Triage       models.TriageLevel `json:"evaluacion_triaje"`
	Specialty    string             `json:"especialidad"`
	PreDiagnosis string             `json:"prediagnostico"`
}

// EmergencyResult holds the records created by a completed intake.
type EmergencyResult struct {
	Patient *models.Patient         `json:"paciente"`
	History *models.ClinicalHistory `json:"historia"`
	Visit   *models.Visit           `json:"visita"`
}

// EmergencyError reports which step of the intake failed and what was
// already created before it.
type EmergencyError struct {
	Step      string
	PatientID uint64
	HistoryID uint64
	Err       error
}

func (e *EmergencyError) Error() string {
	return fmt.Sprintf("emergency intake failed at %s step (patient=%d history=%d): %v",
		e.Step, e.PatientID, e.HistoryID, e.Err)
}

func (e *EmergencyError) Unwrap() error { return e.Err }

// RegisterEmergency creates the patient, a clinical history dated today and
// the first visit, in that order, stopping at the first failure.
func RegisterEmergency(ctx context.Context, api API, in EmergencyInput, now time.Time) (*EmergencyResult, error) {
	if in.Triage == "" {
		in.Triage = DefaultEmergencyTriage
	}
	if strings.TrimSpace(in.Specialty) == "" {
		in.Specialty = DefaultEmergencySpecialty
	}
	if strings.TrimSpace(in.PreDiagnosis) == "" {
		in.PreDiagnosis = DefaultEmergencyPreDiagnosis
	}

	// 1. Register the patient
	patient, err := api.CreatePatient(ctx, models.Patient{
		Name:       strings.TrimSpace(in.Name),
		NationalID: strings.TrimSpace(in.NationalID),
		Age:        in.Age,
	})
	if err != nil {
		return nil, &EmergencyError{Step: StepPatient, Err: err}
	}

	// 2. Open today's clinical history
	history, err := api.CreateHistory(ctx, models.ClinicalHistory{
		PatientID: patient.ID,
		Date:      now.Format(time.DateOnly),
	})
	if err != nil {
		return nil, &EmergencyError{Step: StepHistory, PatientID: patient.ID, Err: err}
	}

	// 3. Record the first visit
	visit, err := api.CreateVisit(ctx, models.Visit{
		HistoryID:    history.ID,
		EntryTime:    now.UTC().Format(time.RFC3339),
		Triage:       in.Triage,
		PreDiagnosis: in.PreDiagnosis,
		Specialty:    in.Specialty,
		VisitNumber:  1,
	})
	if err != nil {
		return nil, &EmergencyError{Step: StepVisit, PatientID: patient.ID, HistoryID: history.ID, Err: err}
	}

	return &EmergencyResult{Patient: patient, History: history, Visit: visit}, nil
}
