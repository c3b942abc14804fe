package dashboard

import (
	"context"
	"sync"

	"signa-dashboard/internal/models"
)

// fakeAPI is an in-memory stand-in for the Signa client.
type fakeAPI struct {
	mu sync.Mutex

	doctors   []models.Doctor
	patients  []models.Patient
	histories []models.ClinicalHistory
	visits    []models.Visit
	diagnoses []models.Diagnosis

	listErr   map[string]error
	createErr map[string]error
	listCalls map[string]int
	nextID    uint64
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		listErr:   map[string]error{},
		createErr: map[string]error{},
		listCalls: map[string]int{},
		nextID:    100,
	}
}

func (f *fakeAPI) listed(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls[name]++
	return f.listErr[name]
}

func (f *fakeAPI) id() uint64 {
	f.nextID++
	return f.nextID
}

func (f *fakeAPI) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	if err := f.listed("doctors"); err != nil {
		return nil, err
	}
	return f.doctors, nil
}

func (f *fakeAPI) ListPatients(ctx context.Context) ([]models.Patient, error) {
	if err := f.listed("patients"); err != nil {
		return nil, err
	}
	return f.patients, nil
}

func (f *fakeAPI) ListHistories(ctx context.Context) ([]models.ClinicalHistory, error) {
	if err := f.listed("histories"); err != nil {
		return nil, err
	}
	return f.histories, nil
}

func (f *fakeAPI) ListVisits(ctx context.Context) ([]models.Visit, error) {
	if err := f.listed("visits"); err != nil {
		return nil, err
	}
	return f.visits, nil
}

func (f *fakeAPI) ListDiagnoses(ctx context.Context) ([]models.Diagnosis, error) {
	if err := f.listed("diagnoses"); err != nil {
		return nil, err
	}
	return f.diagnoses, nil
}

func (f *fakeAPI) CreatePatient(ctx context.Context, p models.Patient) (*models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.createErr["patient"]; err != nil {
		return nil, err
	}
	p.ID = f.id()
	f.patients = append(f.patients, p)
	return &p, nil
}

func (f *fakeAPI) CreateHistory(ctx context.Context, h models.ClinicalHistory) (*models.ClinicalHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.createErr["history"]; err != nil {
		return nil, err
	}
	h.ID = f.id()
	f.histories = append(f.histories, h)
	return &h, nil
}

func (f *fakeAPI) CreateVisit(ctx context.Context, v models.Visit) (*models.Visit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.createErr["visit"]; err != nil {
		return nil, err
	}
	v.ID = f.id()
	f.visits = append(f.visits, v)
	return &v, nil
}
