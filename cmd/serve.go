package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/niprobin/digging/internal/server"
	"github.com/niprobin/digging/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the dashboard HTTP server until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	host := r.config.Server.Host
	if flag := cmd.String("host"); flag != "" {
		host = flag
	}
	port := r.config.Server.Port
	if flag := cmd.Int("port"); flag != 0 {
		port = flag
	}

	app := server.NewApp(r.config, db, r.logger)
	srv := server.NewServer(app, host, port)

	if cmd.Bool("open") {
		browserHost := host
		if browserHost == "" || browserHost == "0.0.0.0" {
			browserHost = "localhost"
		}
		url := fmt.Sprintf("http://%s:%d", browserHost, port)
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warn("failed to open browser", "url", url, "error", err)
		}
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(sigCtx)
}
