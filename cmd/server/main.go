package main

import (
	"context"
	"log"

	"github.com/charbel291291291/election2026/internal/server"
	"github.com/charbel291291291/election2026/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
