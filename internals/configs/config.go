package configs

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config dibangun sekali di main lalu di-pass ke komponen yang butuh.
type Config struct {
	Port   string
	AppEnv string

	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	AutoMigrate bool

	JWTSecret string
	JWTTTL    time.Duration

	MidtransServerKey  string
	MidtransClientKey  string
	MidtransProduction bool
	MidtransReturnURL  string

	GatewayTimeout time.Duration
	WebhookTimeout time.Duration

	AllowedOrigins        []string
	TokenBlacklistTTLDays int
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() Config {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	return FromEnv()
}

// FromEnv membaca Config dari environment proses tanpa menyentuh file .env.
func FromEnv() Config {
	appEnv := GetEnv("APP_ENV", GetEnv("NODE_ENV", "development"))

	return Config{
		Port:   GetEnv("PORT", "5000"),
		AppEnv: appEnv,

		DBHost:      GetEnv("DB_HOST", "localhost"),
		DBPort:      GetEnv("DB_PORT", "5432"),
		DBUser:      GetEnv("DB_USER"),
		DBPassword:  GetEnv("DB_PASSWORD"),
		DBName:      GetEnv("DB_NAME"),
		DBSSLMode:   GetEnv("DB_SSLMODE", "disable"),
		AutoMigrate: GetBool("DB_AUTO_MIGRATE", true),

		JWTSecret: strings.TrimSpace(GetEnv("JWT_SECRET")),
		JWTTTL:    GetDuration("JWT_TTL", 2*time.Hour),

		MidtransServerKey:  strings.TrimSpace(GetEnv("MIDTRANS_SERVER_KEY")),
		MidtransClientKey:  strings.TrimSpace(GetEnv("MIDTRANS_CLIENT_KEY")),
		MidtransProduction: GetBool("MIDTRANS_IS_PRODUCTION", appEnv == "production"),
		MidtransReturnURL:  GetEnv("RETURN_URL", "https://your-website.com/payment-success"),

		GatewayTimeout: GetDuration("GATEWAY_TIMEOUT", 30*time.Second),
		WebhookTimeout: GetDuration("WEBHOOK_TIMEOUT", 10*time.Second),

		AllowedOrigins:        splitCSV(GetEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		TokenBlacklistTTLDays: GetInt("TOKEN_BLACKLIST_TTL_DAYS", 7),
	}
}

// Validate mengumpulkan semua key wajib yang kosong sekaligus.
func (c Config) Validate() error {
	var errs []error
	if c.MidtransServerKey == "" {
		errs = append(errs, errors.New("MIDTRANS_SERVER_KEY belum diset"))
	}
	if c.MidtransClientKey == "" {
		errs = append(errs, errors.New("MIDTRANS_CLIENT_KEY belum diset"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET belum diset"))
	}
	return errors.Join(errs...)
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// DSN untuk gorm postgres, statement_timeout ikut diset di sisi server.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=referralku&options=-c statement_timeout=3000",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func GetInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// GetDuration menerima format time.ParseDuration ("30s") atau angka detik polos ("30").
func GetDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
