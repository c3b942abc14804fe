package config

import (
	"crypto/rand"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"signa-dashboard/internal/session"
	"signa-dashboard/internal/signa"
)

// Pilihan backend penyimpanan token
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

// DefaultDashboardOrigin adalah origin dashboard web saat development
const DefaultDashboardOrigin = "http://localhost:3000"

const minSecretLength = 32

// Config adalah seluruh konfigurasi gateway dari environment
type Config struct {
	Host    string
	Port    string
	GinMode string

	// TokenSecret untuk tanda tangan token lokal gateway
	TokenSecret  []byte
	TokenTTL     time.Duration
	// SecureCookie: cookie sesi hanya dikirim lewat HTTPS
	SecureCookie bool

	Signa signa.Config

	SessionStore string
	SessionFile  string
	// SessionKey untuk enkripsi file token; nil berarti plain text
	SessionKey   *[32]byte

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string

	DBDSN string

	LogLevel  string
	LogFormat string

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxUploadBytes int64
}

// Load membaca konfigurasi dari environment (setelah godotenv.Load di main)
func Load() (*Config, error) {
	cfg := &Config{
		Host:          getEnv("HOST", "127.0.0.1"),
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", ""),
		SessionFile:   getEnv("SESSION_FILE", ".signa/session"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisKey:      getEnv("REDIS_KEY", ""),
		DBDSN:         getEnv("DB_DSN", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", DefaultDashboardOrigin)),
	}

	var err error
	cfg.Signa.BaseURL = getEnv("SIGNA_BASE_URL", signa.DefaultBaseURL)
	if cfg.Signa.Timeout, err = getDuration("SIGNA_TIMEOUT", signa.DefaultTimeout); err != nil {
		return nil, err
	}
	if cfg.Signa.UploadTimeout, err = getDuration("SIGNA_UPLOAD_TIMEOUT", signa.DefaultUploadTimeout); err != nil {
		return nil, err
	}
	if cfg.Signa.Shape, err = signa.ParseResponseShape(getEnv("SIGNA_RESPONSE_SHAPE", string(signa.ResponseEnvelope))); err != nil {
		return nil, fmt.Errorf("config: SIGNA_RESPONSE_SHAPE: %w", err)
	}

	if secret := getEnv("GATEWAY_SECRET", ""); secret != "" {
		if len(secret) < minSecretLength {
			return nil, fmt.Errorf("config: GATEWAY_SECRET must be at least %d characters", minSecretLength)
		}
		cfg.TokenSecret = []byte(secret)
	} else {
		// Tanpa secret, token lokal hanya berlaku selama proses hidup
		cfg.TokenSecret = make([]byte, 32)
		if _, err := rand.Read(cfg.TokenSecret); err != nil {
			return nil, fmt.Errorf("config: generate gateway secret: %w", err)
		}
	}
	if len(cfg.CORSOrigins) == 0 {
		return nil, fmt.Errorf("config: CORS_ORIGINS is empty")
	}

	if cfg.TokenTTL, err = getDuration("GATEWAY_TOKEN_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SecureCookie, err = getBool("COOKIE_SECURE", false); err != nil {
		return nil, err
	}

	cfg.SessionStore = strings.ToLower(getEnv("SESSION_STORE", StoreFile))
	switch cfg.SessionStore {
	case StoreFile, StoreRedis, StoreMemory:
	case StoreMySQL:
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("config: SESSION_STORE=mysql requires DB_DSN")
		}
	default:
		return nil, fmt.Errorf("config: unknown SESSION_STORE %q", cfg.SessionStore)
	}

	if cfg.SessionKey, err = session.ParseKey(getEnv("SESSION_KEY", "")); err != nil {
		return nil, fmt.Errorf("config: SESSION_KEY: %w", err)
	}

	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 5); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}
	maxMB, err := getInt("RPPG_MAX_UPLOAD_MB", 50)
	if err != nil {
		return nil, err
	}
	if maxMB <= 0 {
		return nil, fmt.Errorf("config: RPPG_MAX_UPLOAD_MB must be positive")
	}
	cfg.MaxUploadBytes = int64(maxMB) << 20

	return cfg, nil
}

// ConnectDB membuka koneksi MySQL lewat GORM
func ConnectDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("config: connect mysql: %w", err)
	}
	return db, nil
}

// ConnectRedis membuat client Redis dari konfigurasi
func ConnectRedis(cfg *Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("config: %s: invalid duration %q", key, v)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: invalid integer %q", key, v)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: invalid boolean %q", key, v)
	}
	return b, nil
}

// Addr adalah alamat listen untuk gin
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func getFloat(key string, def float64) (float64, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("config: %s: invalid rate %q", key, v)
	}
	return f, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
