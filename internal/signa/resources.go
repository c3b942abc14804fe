package signa

import (
	"context"
	"net/http"

	"signa-dashboard/internal/models"
)

const (
	pathDoctors   = "/doctores/"
	pathPatients  = "/pacientes/"
	pathHistories = "/historias/"
	pathVisits    = "/visitas/"
	pathDiagnoses = "/diagnosticos/"
)

func list[T any](ctx context.Context, c *Client, path, envelope string) ([]T, error) {
	raw, err := c.do(ctx, call{method: http.MethodGet, path: path, want: ShapeArray, envelope: envelope})
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := decode(path, ShapeArray, raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func create[T any](ctx context.Context, c *Client, path, envelope string, payload T) (*T, error) {
	raw, err := c.do(ctx, call{method: http.MethodPost, path: path, body: payload, want: ShapeObject, envelope: envelope})
	if err != nil {
		return nil, err
	}
	var out T
	if err := decode(path, ShapeObject, raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDoctors fetches every registered doctor.
func (c *Client) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	return list[models.Doctor](ctx, c, pathDoctors, "doctores")
}

// CreateDoctor validates and creates a doctor record.
func (c *Client) CreateDoctor(ctx context.Context, d models.Doctor) (*models.Doctor, error) {
	if err := ValidateDoctor(d); err != nil {
		return nil, err
	}
	d.ID = 0
	return create(ctx, c, pathDoctors, "doctor", d)
}

// ListPatients fetches every registered patient.
func (c *Client) ListPatients(ctx context.Context) ([]models.Patient, error) {
	return list[models.Patient](ctx, c, pathPatients, "pacientes")
}

// CreatePatient validates and creates a patient.
func (c *Client) CreatePatient(ctx context.Context, p models.Patient) (*models.Patient, error) {
	if err := ValidatePatient(p); err != nil {
		return nil, err
	}
	p.ID = 0
	return create(ctx, c, pathPatients, "paciente", p)
}

// ListHistories fetches every clinical history.
func (c *Client) ListHistories(ctx context.Context) ([]models.ClinicalHistory, error) {
	return list[models.ClinicalHistory](ctx, c, pathHistories, "historias")
}

// CreateHistory validates and opens a clinical history.
func (c *Client) CreateHistory(ctx context.Context, h models.ClinicalHistory) (*models.ClinicalHistory, error) {
	if err := ValidateHistory(h); err != nil {
		return nil, err
	}
	h.ID = 0
	return create(ctx, c, pathHistories, "historia", h)
}

// ListVisits fetches every visit.
func (c *Client) ListVisits(ctx context.Context) ([]models.Visit, error) {
	return list[models.Visit](ctx, c, pathVisits, "visitas")
}

// CreateVisit validates and records a visit.
func (c *Client) CreateVisit(ctx context.Context, v models.Visit) (*models.Visit, error) {
	if err := ValidateVisit(v); err != nil {
		return nil, err
	}
	v.ID = 0
	return create(ctx, c, pathVisits, "visita", v)
}

// ListDiagnoses fetches every diagnosis.
func (c *Client) ListDiagnoses(ctx context.Context) ([]models.Diagnosis, error) {
	return list[models.Diagnosis](ctx, c, pathDiagnoses, "diagnosticos")
}

// CreateDiagnosis validates and records a diagnosis.
func (c *Client) CreateDiagnosis(ctx context.Context, d models.Diagnosis) (*models.Diagnosis, error) {
	if err := ValidateDiagnosis(d); err != nil {
		return nil, err
	}
	d.ID = 0
	return create(ctx, c, pathDiagnoses, "diagnostico", d)
}
