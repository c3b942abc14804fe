package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"signa-dashboard/internal/middleware"
	"signa-dashboard/internal/models"
	"signa-dashboard/internal/session"
	"signa-dashboard/internal/signa"
	"signa-dashboard/pkg/utils"
)

// LoginResponse adalah jawaban login: token lokal + status sesi
type LoginResponse struct {
	Token   string           `json:"token"`
	Session session.Snapshot `json:"session"`
}

// LOGIN
func (h *Handler) Login(c *gin.Context) {
	var input models.LoginInput

	// 1. Validasi Input
	if !bindJSON(c, &input) {
		return
	}
	input.NationalID = strings.TrimSpace(input.NationalID)
	if err := signa.ValidateLogin(input.NationalID, input.Password); err != nil {
		h.respondError(c, err)
		return
	}

	// 2. Login ke Signa API (token Signa disimpan oleh session manager)
	ok := h.session.Login(c.Request.Context(), input.NationalID, input.Password)
	snap := h.session.Snapshot()
	if !ok || snap.Doctor == nil {
		utils.APIError(c, http.StatusUnauthorized, "Login failed. Check your national ID and password.",
			&utils.ErrorDetail{Kind: string(signa.ConditionUnauthorized)})
		return
	}

	// 3. Generate token lokal, terikat ke login ini
	token, err := utils.GenerateToken(snap.Doctor.ID, snap.Doctor.Role, snap.SessionID, h.opts.TokenTTL, h.opts.TokenSecret)
	if err != nil {
		h.logger.Error("Failed to sign session token", zap.Error(err))
		utils.APIError(c, http.StatusInternalServerError, "Could not start the session.", &utils.ErrorDetail{Kind: KindInternal})
		return
	}

	// 4. Sukses & Kirim Token (header Bearer atau cookie HttpOnly)
	h.setSessionCookie(c, token, int(h.opts.TokenTTL.Seconds()))
	utils.APIResponse(c, http.StatusOK, true, "Login successful", LoginResponse{Token: token, Session: snap})
}

// LOGOUT
func (h *Handler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	if err := h.session.Logout(c.Request.Context()); err != nil {
		utils.APIError(c, http.StatusInternalServerError, "Signed out, but the stored token could not be removed.",
			&utils.ErrorDetail{Kind: KindInternal})
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Logged out", h.session.Snapshot())
}

// Me mengembalikan sesi yang tersimpan tanpa memanggil API
func (h *Handler) Me(c *gin.Context) {
	utils.APIResponse(c, http.StatusOK, true, "Current session", h.session.Snapshot())
}

// Check memvalidasi ulang token Signa ke API
func (h *Handler) Check(c *gin.Context) {
	if !h.session.Check(c.Request.Context()) {
		utils.APIError(c, http.StatusUnauthorized, "Session is no longer valid.",
			&utils.ErrorDetail{Kind: string(signa.ConditionUnauthorized)})
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Session is valid", h.session.Snapshot())
}

// RegisterDoctor membuat akun dokter baru (khusus role super)
func (h *Handler) RegisterDoctor(c *gin.Context) {
	var input models.RegisterDoctorInput
	if !bindJSON(c, &input) {
		return
	}

	doctor, err := h.api.RegisterDoctor(c.Request.Context(), input, c.Query("secret"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("Doctor registered",
		zap.Uint64("doctor_id", doctor.ID),
		zap.Uint64("registered_by", c.GetUint64(middleware.ContextDoctorID)),
		zap.String("registered_by_role", c.GetString(middleware.ContextRole)))
	utils.APIResponse(c, http.StatusCreated, true, "Doctor registered", doctor)
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", h.opts.SecureCookie, true)
}
