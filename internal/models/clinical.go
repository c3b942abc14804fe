package models

// ClinicalHistory adalah satu rekam medis pasien per hari kunjungan
type ClinicalHistory struct {
	ID        uint64 `json:"id,omitempty"`
	PatientID uint64 `json:"paciente_id"`
	Date      string `json:"fecha"` // Format YYYY-MM-DD
}

// Visit adalah satu kunjungan (termasuk triase IGD) di dalam rekam medis
type Visit struct {
	ID           uint64      `json:"id,omitempty"`
	HistoryID    uint64      `json:"historia_id"`
	EntryTime    string      `json:"hora_entrada"` // RFC3339
	Triage       TriageLevel `json:"evaluacion_triaje"`
	PreDiagnosis string      `json:"prediagnostico"`
	Specialty    string      `json:"especialidad"`
	VisitNumber  int         `json:"numero_visita"`
}

// Diagnosis adalah hasil diagnosa dokter untuk satu kunjungan
type Diagnosis struct {
	ID              uint64 `json:"id,omitempty"`
	VisitID         uint64 `json:"visita_id"`
	Diagnosis       string `json:"diagnostico"`
	RPPGResult      string `json:"resultado_rppg"` // Bebas, misal "Normal" / "Anormal"
	PreDiagnosisLog string `json:"informe_prediagnostico"`
}

// VitalSigns adalah hasil analisa rPPG dari layanan inferensi
type VitalSigns struct {
	HeartRate       float64  `json:"heart_rate"`
	RespiratoryRate float64  `json:"respiratory_rate"`
	HRV             *float64 `json:"hrv,omitempty"`
}
