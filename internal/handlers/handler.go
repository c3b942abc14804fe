package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"signa-dashboard/internal/dashboard"
	"signa-dashboard/internal/models"
	"signa-dashboard/internal/session"
	"signa-dashboard/internal/signa"
	"signa-dashboard/pkg/utils"
)

// API adalah method client Signa yang dipakai gateway
type API interface {
	dashboard.API
	CreateDoctor(ctx context.Context, d models.Doctor) (*models.Doctor, error)
	CreateDiagnosis(ctx context.Context, d models.Diagnosis) (*models.Diagnosis, error)
	RegisterDoctor(ctx context.Context, in models.RegisterDoctorInput, secret string) (*models.DoctorAuth, error)
	AnalyzeRPPG(ctx context.Context, clip signa.Clip) (*models.VitalSigns, error)
}

// Options adalah pengaturan handler dari config
type Options struct {
	MaxUploadBytes int64
	TokenSecret    []byte
	TokenTTL       time.Duration
	SecureCookie   bool
}

// Handler melayani JSON API lokal untuk dashboard
type Handler struct {
	api     API
	session *session.Manager
	logger  *zap.Logger
	opts    Options
	now     func() time.Time
}

func New(api API, sm *session.Manager, logger *zap.Logger, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 12 * time.Hour
	}
	return &Handler{api: api, session: sm, logger: logger, opts: opts, now: time.Now}
}

// Session dipakai routes untuk memasang middleware
func (h *Handler) Session() *session.Manager { return h.session }

// TokenSecret dipakai RequireSession untuk validasi token lokal
func (h *Handler) TokenSecret() []byte { return h.opts.TokenSecret }

// Jenis error di ErrorDetail.Kind
const (
	KindValidation = "validation"
	KindTimeout    = "timeout"
	KindConnection = "connection"
	KindMalformed  = "malformed_response"
	KindNetwork    = "network"
	KindInternal   = "internal"
)

// errorStatus memetakan error client ke status HTTP lokal
func errorStatus(err error) (int, *utils.ErrorDetail) {
	var (
		validation *signa.ValidationError
		httpErr    *signa.HTTPError
		timeout    *signa.TimeoutError
		conn       *signa.ConnectionError
		malformed  *signa.MalformedResponseError
		network    *signa.NetworkError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, &utils.ErrorDetail{Kind: KindValidation, Field: validation.Field}
	case errors.As(err, &httpErr):
		status := httpErr.Status
		if httpErr.Condition() == signa.ConditionServerUnavailable {
			status = http.StatusBadGateway
		}
		return status, &utils.ErrorDetail{Kind: string(httpErr.Condition()), RemoteStatus: httpErr.Status}
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout, &utils.ErrorDetail{Kind: KindTimeout}
	case errors.As(err, &conn):
		return http.StatusBadGateway, &utils.ErrorDetail{Kind: KindConnection}
	case errors.As(err, &malformed):
		return http.StatusBadGateway, &utils.ErrorDetail{Kind: KindMalformed}
	case errors.As(err, &network):
		return http.StatusInternalServerError, &utils.ErrorDetail{Kind: KindNetwork}
	}
	return http.StatusInternalServerError, &utils.ErrorDetail{Kind: KindInternal}
}

// respondError mengirim response gagal dan mencatat error server
func (h *Handler) respondError(c *gin.Context, err error) {
	status, detail := errorStatus(err)
	var ee *dashboard.EmergencyError
	if errors.As(err, &ee) {
		detail.Step = ee.Step
	}

	if status >= http.StatusInternalServerError {
		h.logger.Warn("Request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.String("kind", detail.Kind),
			zap.Error(err))
	}
	message := signa.Message(err)
	if detail.Kind == KindInternal {
		// Error internal tidak dikirim apa adanya ke dashboard
		message = "Internal server error."
	}
	utils.APIError(c, status, message, detail)
}

// bindJSON membaca body JSON, kalau gagal langsung 400
func bindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		utils.APIError(c, http.StatusBadRequest, "Invalid JSON body.", &utils.ErrorDetail{Kind: KindValidation})
		return false
	}
	return true
}

// pathID membaca parameter :id (harus angka positif)
func pathID(c *gin.Context) (uint64, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		utils.APIError(c, http.StatusBadRequest, "Invalid ID.", &utils.ErrorDetail{Kind: KindValidation, Field: "id"})
	}
	return id, ok
}
