package main

import (
	"errors"
	"log"
	"os"

	"github.com/sandeepkv93/goaltrack/internal/cli"
	"github.com/sandeepkv93/goaltrack/internal/config"
)

var version = "dev"

func main() {
	if err := config.LoadDotEnv(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("goaltrack: load .env: %v", err)
	}
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
