package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"signa-dashboard/internal/session"
	"signa-dashboard/pkg/utils"
)

// Key context yang diisi RequireSession
const (
	ContextDoctorID = "doctorID"
	ContextRole     = "role"
)

// SessionCookie adalah nama cookie token lokal
const SessionCookie = "signa_session"

// Gate adalah tampilan sesi yang dibutuhkan middleware
type Gate interface {
	Snapshot() session.Snapshot
}

// tokenFromRequest: header "Bearer <token>" dulu, lalu cookie
func tokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// RequireSession: request harus membawa token lokal dari login yang sedang aktif
func RequireSession(g Gate, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Ambil token dari header atau cookie
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			utils.APIError(c, http.StatusUnauthorized, "Sign in required.", &utils.ErrorDetail{Kind: "unauthorized"})
			return
		}

		// 2. Validasi Token
		claims, err := utils.ValidateToken(tokenString, secret)
		if err != nil {
			utils.APIError(c, http.StatusUnauthorized, "Invalid session token.", &utils.ErrorDetail{Kind: "unauthorized"})
			return
		}

		// 3. Token harus milik login yang sedang aktif
		snap := g.Snapshot()
		if !snap.Authenticated || snap.Doctor.ID != claims.DoctorID || snap.SessionID != claims.SessionID {
			utils.APIError(c, http.StatusUnauthorized, "Session has ended. Sign in again.", &utils.ErrorDetail{Kind: "unauthorized"})
			return
		}

		// 4. Simpan identitas ke context
		c.Set(ContextDoctorID, snap.Doctor.ID)
		c.Set(ContextRole, snap.Doctor.Role)

		c.Next()
	}
}

// SuperOnly: hanya untuk dokter dengan role "super"
func SuperOnly(g Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.Snapshot().CanRegisterDoctors {
			utils.APIError(c, http.StatusForbidden, "Access denied: super role required.", &utils.ErrorDetail{Kind: "forbidden"})
			return
		}
		c.Next()
	}
}
