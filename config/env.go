package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the process reads from the environment.
type Config struct {
	Port string

	DatabaseURL string
	PGHost      string
	PGUser      string
	PGPass      string
	PGDB        string
	PGPort      string
	DBDebug     bool

	JWTSecret         string
	JWTExpiry         time.Duration
	AdminEmail        string
	AdminPasswordHash string

	CORSAllowedOrigins []string
	PublicURL          string
	SlowRequest        time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	SMTPFrom     string
	ContactInbox string

	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	RemindersEnabled  bool
	ReminderCron      string
	ReminderAfterDays int
}

// Load reads configuration from the environment with defaults.
// Call godotenv.Load beforehand if a .env file should be honoured.
func Load() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		PGHost:      getEnv("PG_HOST", "localhost"),
		PGUser:      getEnv("PG_USER", "postgres"),
		PGPass:      os.Getenv("PG_PASS"),
		PGDB:        getEnv("PG_DB", "pjh_web"),
		PGPort:      getEnv("PG_PORT", "5432"),
		DBDebug:     parseBool("DB_DEBUG", false),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTExpiry:         time.Duration(parseInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		PublicURL:          strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:5173"), "/"),
		SlowRequest:        time.Duration(parseInt("SLOW_REQUEST_MS", 200)) * time.Millisecond,

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     parseInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
		ContactInbox: os.Getenv("CONTACT_INBOX"),

		TwilioAccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber: os.Getenv("TWILIO_PHONE_NUMBER"),

		RemindersEnabled:  parseBool("REMINDERS_ENABLED", false),
		ReminderCron:      getEnv("REMINDER_CRON", "0 9 * * *"),
		ReminderAfterDays: parseInt("REMINDER_AFTER_DAYS", 7),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}

func parseInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid integer for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
