package storage

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	DBUser      string
	DBPassword  string
	DBName      string
	DBHost      string
	DBPort      string
	AutoMigrate bool

	Port          int
	JWTSecret     string
	PeriodMap     string
	AuditSchedule string
	PublicBaseURL string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	NotifyEmails []string

	AdminEmail    string
	AdminPassword string
}

// LoadConfig loads .env (if present) and reads the process environment.
// The returned bool reports whether a .env file was found.
func LoadConfig() (*Config, bool, error) {
	loaded := godotenv.Load() == nil

	cfg := &Config{
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		AutoMigrate:   os.Getenv("DB_AUTO_MIGRATE") == "true",
		JWTSecret:     os.Getenv("JWT_SECRET"),
		PeriodMap:     getEnv("MILESTONE_PERIOD_MAP", "extended"),
		AuditSchedule: getEnv("AUDIT_CRON", "30 12 * * *"),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:9000"), "/"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:      os.Getenv("SMTP_FROM"),
		NotifyEmails:  splitList(os.Getenv("NOTIFY_EMAILS")),
		AdminEmail:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	// Get port from environment variable or use default
	port := getEnv("PORT", "9000")
	portInt, err := strconv.Atoi(port)
	if err != nil {
		return nil, loaded, fmt.Errorf("invalid PORT environment variable: %s. Must be a number", port)
	}
	if portInt < 0 || portInt > 65535 {
		return nil, loaded, fmt.Errorf("invalid PORT: %d. Must be between 0 and 65535", portInt)
	}
	cfg.Port = portInt

	if cfg.JWTSecret == "" {
		return nil, loaded, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.AdminEmail != "" && len(cfg.AdminPassword) < 8 {
		return nil, loaded, fmt.Errorf("ADMIN_PASSWORD must be at least 8 characters when ADMIN_EMAIL is set")
	}
	if cfg.PeriodMap != "standard" && cfg.PeriodMap != "extended" {
		return nil, loaded, fmt.Errorf("MILESTONE_PERIOD_MAP must be standard or extended, got %q", cfg.PeriodMap)
	}
	return cfg, loaded, nil
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Kolkata",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
