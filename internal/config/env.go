package config

import (
	"log/slog"

	"github.com/joho/godotenv"
)

// envFiles are tried in order; the first one that loads wins.
var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads variables from a .env file in the working directory.
// Variables already set in the environment are never overridden.
func loadEnvFile() {
	for _, p := range envFiles {
		if err := godotenv.Load(p); err == nil {
			slog.Debug("Loaded environment file", "path", p)
			return
		}
	}
}
