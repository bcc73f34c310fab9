package main

import (
	"context"
	"log"
	"os"

	"github.com/charbel291291291/election2026/internal/buildinfo"
	"github.com/charbel291291291/election2026/internal/client/cli"
	"github.com/charbel291291291/election2026/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
