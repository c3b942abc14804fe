package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"signa-dashboard/internal/models"
)

// Stats are the headline counts for the dashboard home page.
type Stats struct {
	Doctors        int                        `json:"doctors"`
	Patients       int                        `json:"patients"`
	Histories      int                        `json:"histories"`
	Visits         int                        `json:"visits"`
	Diagnoses      int                        `json:"diagnoses"`
	VisitsByTriage map[models.TriageLevel]int `json:"visits_by_triage"`
	// Visits whose triage label is not one of the known levels.
	UnclassifiedVisits int `json:"unclassified_visits"`
}

// LoadStats fetches the five collections concurrently. Each fetch keeps its
// own bounded wait; counts are computed only once every fetch has settled.
func LoadStats(ctx context.Context, api API) (*Stats, error) {
	var (
		g         errgroup.Group
		doctors   []models.Doctor
		patients  []models.Patient
		histories []models.ClinicalHistory
		visits    []models.Visit
		diagnoses []models.Diagnosis
	)

	g.Go(func() (err error) { doctors, err = api.ListDoctors(ctx); return })
	g.Go(func() (err error) { patients, err = api.ListPatients(ctx); return })
	g.Go(func() (err error) { histories, err = api.ListHistories(ctx); return })
	g.Go(func() (err error) { visits, err = api.ListVisits(ctx); return })
	g.Go(func() (err error) { diagnoses, err = api.ListDiagnoses(ctx); return })

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &Stats{
		Doctors:        len(doctors),
		Patients:       len(patients),
		Histories:      len(histories),
		Visits:         len(visits),
		Diagnoses:      len(diagnoses),
		VisitsByTriage: make(map[models.TriageLevel]int, len(models.TriageLevels)),
	}
	for _, l := range models.TriageLevels {
		stats.VisitsByTriage[l] = 0
	}
	for _, v := range visits {
		sev := v.Triage.Severity()
		if sev >= len(models.TriageLevels) {
			stats.UnclassifiedVisits++
			continue
		}
		stats.VisitsByTriage[models.TriageLevels[sev]]++
	}
	return stats, nil
}
