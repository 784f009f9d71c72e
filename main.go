package main

import (
	"os"

	"yt-duration-match/infrastructure/logger"
	"yt-duration-match/interfaces/cli"
)

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
		os.Exit(2)
	}
}

func main() {
	defer recoverPanic()
	cli.Execute()
}
