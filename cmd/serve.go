package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/HuLaxx/Shiftify-sub000/internal/actions"
	"github.com/HuLaxx/Shiftify-sub000/internal/repositories"
	"github.com/HuLaxx/Shiftify-sub000/internal/server"
)

// Serve runs the HTTP endpoint until the process is interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		cfg.Port = int(port)
	}

	var runs *repositories.RunRepository
	if !cmd.Bool("no-record") {
		repo, closeDB, err := r.runRepository()
		if err != nil {
			return err
		}
		defer closeDB()
		runs = repo
	}

	dispatcher := actions.NewDispatcher(r.client(), r.config.Collector, r.logger)
	return server.New(cfg, dispatcher, runs, r.logger).ListenAndServe(ctx)
}
