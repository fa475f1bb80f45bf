package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings.
type Config struct {
	Port             string
	SheetURL         string
	FetchTimeout     time.Duration
	DBDriver         string
	DBDSN            string
	PaletteFile      string
	HeatmapRadius    int
	JWTSecret        string
	InviteCode       string
	PublicBaseURL    string
	ExportRatePerMin int
	ExportRetention  time.Duration
	LogLevel         string
	GinMode          string
}

// DefaultSheetURL is the published workshop sheet.
const DefaultSheetURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vSffz39J7Ct_FPvZ34lEL5neXaAWTWeL4g_egbE-gYlM529sGf-oIKN-N2D3sUkxHcsk1kqxj1da89o/pub?gid=1278185519&single=true&output=csv"

// Load reads configuration from the environment and an optional .env file.
// Variables already set in the environment win over .env entries.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	port := getenv("PORT", "8080")
	return Config{
		Port:             port,
		SheetURL:         getenv("SHEET_URL", DefaultSheetURL),
		FetchTimeout:     getenvDuration("FETCH_TIMEOUT", 30*time.Second),
		DBDriver:         strings.ToLower(getenv("DB_DRIVER", "sqlite")),
		DBDSN:            getenv("DB_DSN", "./dashboard.db"),
		PaletteFile:      getenv("PALETTE_FILE", ""),
		HeatmapRadius:    clampInt(getenvInt("HEATMAP_RADIUS", 25), 1, 200),
		JWTSecret:        getenv("JWT_SECRET_KEY", ""),
		InviteCode:       getenv("SIGNUP_INVITE_CODE", ""),
		PublicBaseURL:    strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:"+port), "/"),
		ExportRatePerMin: clampInt(getenvInt("EXPORT_RATE_PER_MINUTE", 30), 1, 6000),
		ExportRetention:  time.Duration(clampInt(getenvInt("EXPORT_LOG_RETENTION_DAYS", 90), 1, 3650)) * 24 * time.Hour,
		LogLevel:         getenv("LOG_LEVEL", "info"),
		GinMode:          getenv("GIN_MODE", "release"),
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
