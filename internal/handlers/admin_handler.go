package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"signa-dashboard/internal/dashboard"
	"signa-dashboard/internal/models"
	"signa-dashboard/pkg/utils"
)

// GetDashboardStats menampilkan ringkasan angka dashboard
func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := dashboard.LoadStats(c.Request.Context(), h.api)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Dashboard stats", stats)
}

// GetTriageQueue menampilkan antrean IGD urut triase
// Filter (Opsional) ?triage=Rojo&specialty=Cardiología
func (h *Handler) GetTriageQueue(c *gin.Context) {
	filter := dashboard.QueueFilter{
		Triage:    models.TriageLevel(c.Query("triage")),
		Specialty: c.Query("specialty"),
	}
	if filter.Triage != "" && !filter.Triage.Valid() {
		utils.APIError(c, http.StatusBadRequest, "Unknown triage level.",
			&utils.ErrorDetail{Kind: KindValidation, Field: "triage"})
		return
	}

	visits, err := h.api.ListVisits(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Triage queue", dashboard.TriageQueue(visits, filter, h.now()))
}

// RegisterEmergency mendaftarkan pasien IGD sekaligus rekam medis dan kunjungan pertama
func (h *Handler) RegisterEmergency(c *gin.Context) {
	var input dashboard.EmergencyInput
	if !bindJSON(c, &input) {
		return
	}

	res, err := dashboard.RegisterEmergency(c.Request.Context(), h.api, input, h.now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("Emergency patient registered",
		zap.Uint64("patient_id", res.Patient.ID),
		zap.Uint64("visit_id", res.Visit.ID),
		zap.String("triage", string(res.Visit.Triage)))
	utils.APIResponse(c, http.StatusCreated, true, "Emergency patient registered", res)
}
