package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/helpdesk/internal/dbcontainer"
	"github.com/localnerve/helpdesk/internal/logger"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a throwaway helpdesk database container with the settings from the .env file.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file (DB_TYPE, DB_IMAGE, DB_DATABASE, DB_USER,
DB_PASSWORD, DB_ROOT_PASSWORD, DB_HOST_PORT)

example
  testcontainers -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	log := logger.Init(os.Stderr, "text", "info")

	if envFilename != "" {
		log.Info("loading environment variables", "file", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Error("failed to load environment variables", "error", err)
			os.Exit(1)
		}
	} else {
		log.Info("no environment file specified, using current environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	db, err := dbcontainer.Start(ctx, dbcontainer.OptionsFromEnv())
	if err != nil {
		log.Error("failed to start database container", "error", err)
		os.Exit(1)
	}
	fmt.Printf("DB_HOST=%s\nDB_PORT=%s\n", db.Host, db.Port.Port())

	<-ctx.Done()
	log.Info("received signal, terminating database container")
	if err := db.Terminate(context.Background()); err != nil {
		log.Error("failed to terminate database container", "error", err)
		os.Exit(1)
	}
}
