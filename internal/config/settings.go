package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env (if present) into the process environment.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}
}

// JWTSecret is the HS256 secret shared with the auth service.
func JWTSecret() string {
	return getEnv("JWT_SECRET", "supersecret")
}

// Port is the HTTP listen port.
func Port() string {
	return getEnv("PORT", "8080")
}

// DispatchWorkers bounds how many dates a range query resolves concurrently.
func DispatchWorkers() int {
	n, err := strconv.Atoi(getEnv("DISPATCH_WORKERS", "4"))
	if err != nil || n < 1 {
		return 4
	}
	return n
}

// LogFile is the rotating log file path.
func LogFile() string {
	return getEnv("LOG_FILE", "./logs/app.log")
}

// LogLevel is the logrus level name, e.g. "info" or "debug".
func LogLevel() string {
	return getEnv("LOG_LEVEL", "info")
}

// CORSOrigins lists the allowed browser origins. An empty list reflects any
// request origin.
func CORSOrigins() []string {
	raw := getEnv("CORS_ORIGINS", "")
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists && v != "" {
		return v
	}
	return defaultValue
}
