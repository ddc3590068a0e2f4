package main

import (
	"fmt"
	"os"
	"strings"

	"cp-valuation/internal/api"
	"cp-valuation/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" && os.Getenv("API_ENV") != "production" {
		logFormat = "console"
	}
	log := logger.New(os.Getenv("LOG_LEVEL"), logFormat, os.Stdout)

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(log, splitOrigins(os.Getenv("CORS_ORIGINS")))

	addr := fmt.Sprintf(":%s", port)
	log.Infof("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.WithError(err).Error("Failed to start server")
		os.Exit(1)
	}
}

func splitOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
