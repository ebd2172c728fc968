package main

import (
	"github.com/joho/godotenv"

	"github.com/lorehaven/fablemap/internal/cli"
	"github.com/lorehaven/fablemap/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file found, using environment as-is")
	}
	cli.Execute()
}
