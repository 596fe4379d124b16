package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/ptlint/ptlint/internal/cli"
	"github.com/sirupsen/logrus"
)

func main() {
	// PTLINT_* variables may come from a .env during development
	_ = godotenv.Load()

	// Setup logging format
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
