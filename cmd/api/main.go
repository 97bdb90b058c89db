package main

import (
	"os"

	"github.com/yigit/coursehub/internal/pkg/logger"
)

// @title CourseHub API
// @version 1.0
// @description CRUD API for courses

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
