package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"signa-dashboard/internal/dashboard"
	"signa-dashboard/internal/models"
	"signa-dashboard/internal/signa"
	"signa-dashboard/pkg/utils"
)

// GetHistories menampilkan semua rekam medis
func (h *Handler) GetHistories(c *gin.Context) {
	histories, err := h.api.ListHistories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Clinical histories", histories)
}

// AddHistory membuka rekam medis baru
func (h *Handler) AddHistory(c *gin.Context) {
	var input models.ClinicalHistory
	if !bindJSON(c, &input) {
		return
	}

	history, err := h.api.CreateHistory(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusCreated, true, "Clinical history created", history)
}

// GetHistoryVisits melihat kunjungan di satu rekam medis
func (h *Handler) GetHistoryVisits(c *gin.Context) {
	historyID, ok := pathID(c)
	if !ok {
		return
	}

	visits, err := h.api.ListVisits(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Clinical history visits", dashboard.VisitsOf(visits, historyID))
}

// GetVisits menampilkan semua kunjungan
func (h *Handler) GetVisits(c *gin.Context) {
	visits, err := h.api.ListVisits(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Visits", visits)
}

// AddVisit mencatat kunjungan baru
func (h *Handler) AddVisit(c *gin.Context) {
	var input models.Visit
	if !bindJSON(c, &input) {
		return
	}

	visit, err := h.api.CreateVisit(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusCreated, true, "Visit created", visit)
}

// GetDiagnoses menampilkan semua diagnosa
func (h *Handler) GetDiagnoses(c *gin.Context) {
	diagnoses, err := h.api.ListDiagnoses(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Diagnoses", diagnoses)
}

// AddDiagnosis menyimpan diagnosa dokter untuk satu kunjungan
func (h *Handler) AddDiagnosis(c *gin.Context) {
	var input models.Diagnosis
	if !bindJSON(c, &input) {
		return
	}

	diagnosis, err := h.api.CreateDiagnosis(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.APIResponse(c, http.StatusCreated, true, "Diagnosis created", diagnosis)
}

// AnalyzeRPPG meneruskan video rekaman ke layanan rPPG
func (h *Handler) AnalyzeRPPG(c *gin.Context) {
	// 1. Batasi ukuran upload
	if h.opts.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)
	}

	// 2. Ambil file dari form field "file"
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.APIError(c, http.StatusRequestEntityTooLarge, "The video is too large.",
				&utils.ErrorDetail{Kind: KindValidation, Field: "file"})
			return
		}
		h.respondError(c, &signa.ValidationError{Entity: "rppg", Field: "file", Rule: signa.RuleRequired})
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.unreadableClip(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		h.unreadableClip(c, err)
		return
	}

	// 3. Kirim ke Signa API
	vitals, err := h.api.AnalyzeRPPG(c.Request.Context(), signa.Clip{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("rPPG analyzed", zap.Int("bytes", len(data)), zap.Float64("heart_rate", vitals.HeartRate))
	utils.APIResponse(c, http.StatusOK, true, "Vital signs", vitals)
}

// unreadableClip: file upload tidak bisa dibaca, detail error hanya ke log
func (h *Handler) unreadableClip(c *gin.Context, err error) {
	h.logger.Warn("Uploaded rPPG clip unreadable", zap.Error(err))
	utils.APIError(c, http.StatusBadRequest, "The uploaded video could not be read.",
		&utils.ErrorDetail{Kind: KindValidation, Field: "file"})
}
