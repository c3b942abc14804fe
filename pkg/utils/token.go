package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims adalah isi token lokal yang diterbitkan gateway saat login.
// SessionID mengikat token ke satu login (sidik jari token Signa).
type SessionClaims struct {
	DoctorID  uint64 `json:"doctor_id"`
	Role      string `json:"role"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// GenerateToken membuat JWT HS256 untuk dashboard
func GenerateToken(doctorID uint64, role, sessionID string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		DoctorID:  doctorID,
		Role:      role,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(doctorID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ValidateToken memeriksa signature dan masa berlaku token lokal
func ValidateToken(encodedToken string, secret []byte) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(encodedToken, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token tidak valid")
	}
	return claims, nil
}

// TokenExpiry membaca klaim 'exp' TANPA verifikasi signature.
// Token yang bukan JWT (opaque) mengembalikan ok=false.
func TokenExpiry(encodedToken string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(encodedToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// TokenExpired true kalau token JWT sudah lewat masa berlakunya
func TokenExpired(encodedToken string, now time.Time) bool {
	exp, ok := TokenExpiry(encodedToken)
	return ok && !now.Before(exp)
}
