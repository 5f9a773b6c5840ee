package main

import (
	"os"

	"github.com/shashiranjanraj/rasoi/internal/server"
	"github.com/shashiranjanraj/rasoi/pkg/logger"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
