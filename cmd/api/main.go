package main

import (
	"os"

	"github.com/fulafia/esp-portal/internal/pkg/logger"
	"github.com/fulafia/esp-portal/internal/server"
)

// @title FULafia ESP Portal API
// @version 1.0
// @description API for the Federal University of Lafia Entrepreneurship Skills Program portal

// @contact.name Entrepreneurship Department
// @contact.email entrepreneurship@fulafia.edu.ng

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
