package main

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"brokemate/pkg/advisor"
	"brokemate/pkg/auth"
	"brokemate/pkg/ledger"
	"brokemate/pkg/llm"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Auto-load ./.env if present (no external dependency) before reading vars
	loadDotEnv()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
		slog.Warn("JWT_SECRET not set, using development fallback")
	}
	ollamaURL := os.Getenv("OLLAMA_BASE_URL")
	if ollamaURL == "" {
		ollamaURL = "http://localhost:11434"
	}
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8000"
	}
	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}

	s := &server{
		creds:   auth.NewCredentials(),
		tokens:  auth.NewTokens([]byte(secret)),
		ledger:  ledger.NewStore(),
		advisor: advisor.New(llm.NewOllamaClient(ollamaURL, os.Getenv("OLLAMA_MODEL"))),
	}
	if v := strings.ToLower(os.Getenv("SEED_DEMO_DATA")); v == "1" || v == "true" || v == "yes" {
		seedDemoData(s.creds, s.ledger)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	s.setupRoutes(r)

	slog.Info("starting server", "addr", addr)
	r.Run(addr)
}

// loadDotEnv loads key=value pairs from a local .env file into the environment
// without overwriting variables that are already set. Lines starting with # are ignored.
func loadDotEnv() {
	path := ".env"
	if _, err := os.Stat(path); err != nil {
		return // no .env file
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// split on first '='
		if eq := strings.IndexByte(line, '='); eq > 0 {
			key := strings.TrimSpace(line[:eq])
			val := strings.TrimSpace(line[eq+1:])
			if _, exists := os.LookupEnv(key); !exists {
				_ = os.Setenv(key, val)
			}
		}
	}
}
