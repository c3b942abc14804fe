package models

// Patient merepresentasikan data pasien di endpoint /pacientes/
type Patient struct {
	ID         uint64 `json:"id,omitempty"`
	Name       string `json:"nombre"`
	NationalID string `json:"cedula"`
	Age        int    `json:"edad"`
}
