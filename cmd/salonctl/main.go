package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/salonctl"
	"github.com/ansuman15/salon-software-sub002/internal/server/config"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/repomanager"
	"github.com/ansuman15/salon-software-sub002/internal/server/services"
)

const uploadTimeout = 2 * time.Minute

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// run reads connection settings the same way the server does; the
// subcommand and its flags follow them on the command line.
func run() error {
	ctx := context.Background()
	cfg := config.LoadConfig()
	args := commandArgs(os.Args[1:])

	if !salonctl.NeedsDatabase(args) {
		return salonctl.NewApp(nil, os.Stdin, os.Stdout).Run(ctx, args)
	}

	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		return err
	}

	app := salonctl.NewApp(services.NewSalonAdminService(db, rm), os.Stdin, os.Stdout).
		WithMedia(services.NewMediaService(cfg), &http.Client{Timeout: uploadTimeout})
	return app.Run(ctx, args)
}

// commandArgs drops leading config flags such as "-d dsn" so that the
// subcommand comes first.
func commandArgs(args []string) []string {
	for i, a := range args {
		switch a {
		case "create", "list", "rotate-key", "status", "upload-logo", "hash-password":
			return args[i:]
		}
	}
	return nil
}
