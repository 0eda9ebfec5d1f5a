package main

import (
	"context"
	"log"

	"github.com/ansuman15/salon-software-sub002/internal/server"
	"github.com/ansuman15/salon-software-sub002/internal/server/config"

	// The container image may ship without a zoneinfo database.
	_ "time/tzdata"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
