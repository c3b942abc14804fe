package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"signa-dashboard/internal/dashboard"
	"signa-dashboard/internal/models"
	"signa-dashboard/pkg/utils"
)

// AddPatient menambahkan data pasien baru
func (h *Handler) AddPatient(c *gin.Context) {
	var input models.Patient
	if !bindJSON(c, &input) {
		return
	}

	patient, err := h.api.CreatePatient(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusCreated, true, "Patient created", patient)
}

// GetPatients melihat daftar pasien
func (h *Handler) GetPatients(c *gin.Context) {
	patients, err := h.api.ListPatients(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Patients", patients)
}

// GetPatientHistories melihat rekam medis milik satu pasien
func (h *Handler) GetPatientHistories(c *gin.Context) {
	// 1. Ambil ID pasien dari URL
	patientID, ok := pathID(c)
	if !ok {
		return
	}

	// 2. API tidak punya filter, jadi saring di sini
	histories, err := h.api.ListHistories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Patient clinical histories", dashboard.HistoriesOf(histories, patientID))
}
