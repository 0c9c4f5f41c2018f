package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/joinflow/internal/client/cli"
	"github.com/dmitrijs2005/joinflow/internal/client/config"
	"github.com/dmitrijs2005/joinflow/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
