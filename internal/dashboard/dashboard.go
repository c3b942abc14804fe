// Package dashboard builds the composite views of the clinical dashboard on
// top of the Signa API client.
package dashboard

import (
	"context"

	"signa-dashboard/internal/models"
)

// API is the part of the Signa client the dashboard views read and write.
type API interface {
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	ListPatients(ctx context.Context) ([]models.Patient, error)
	ListHistories(ctx context.Context) ([]models.ClinicalHistory, error)
	ListVisits(ctx context.Context) ([]models.Visit, error)
	ListDiagnoses(ctx context.Context) ([]models.Diagnosis, error)

	CreatePatient(ctx context.Context, p models.Patient) (*models.Patient, error)
	CreateHistory(ctx context.Context, h models.ClinicalHistory) (*models.ClinicalHistory, error)
	CreateVisit(ctx context.Context, v models.Visit) (*models.Visit, error)
}

// HistoriesOf returns the clinical histories belonging to one patient.
func HistoriesOf(histories []models.ClinicalHistory, patientID uint64) []models.ClinicalHistory {
	out := []models.ClinicalHistory{}
	for _, h := range histories {
		if h.PatientID == patientID {
			out = append(out, h)
		}
	}
	return out
}

// VisitsOf returns the visits recorded under one clinical history.
func VisitsOf(visits []models.Visit, historyID uint64) []models.Visit {
	out := []models.Visit{}
	for _, v := range visits {
		if v.HistoryID == historyID {
			out = append(out, v)
		}
	}
	return out
}
