package main

import (
	"context"
	"log"

	"github.com/vitrine-app/vitrine/internal/client/cli"
	"github.com/vitrine-app/vitrine/internal/client/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app := cli.NewApp(cfg)
	app.Run(context.Background())
}
