package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"signa-dashboard/internal/models"
	"signa-dashboard/pkg/utils"
)

// GetDoctors menampilkan semua dokter
func (h *Handler) GetDoctors(c *gin.Context) {
	doctors, err := h.api.ListDoctors(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Doctors", doctors)
}

// AddDoctor menambahkan data dokter
func (h *Handler) AddDoctor(c *gin.Context) {
	var input models.Doctor
	if !bindJSON(c, &input) {
		return
	}

	doctor, err := h.api.CreateDoctor(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusCreated, true, "Doctor created", doctor)
}
