package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/misaghlb/overtime-dashboard/internal/server"
	"github.com/misaghlb/overtime-dashboard/internal/server/handler"
)

// ServeMode runs the HTTP dashboard until the context is cancelled.
func (a *App) ServeMode(ctx context.Context, deps *Dependencies) error {
	dashboard, err := handler.NewDashboardHandler(deps.Reports, a.logger)
	if err != nil {
		return fmt.Errorf("app: dashboard handler: %w", err)
	}

	srv := server.NewServer(
		server.Config{
			Port:        a.cfg.Server.Port,
			CORSOrigins: a.cfg.Server.CORSOrigins,
		},
		server.Handlers{
			Health:    handler.NewHealthHandler(a.logger),
			Report:    handler.NewReportHandler(deps.Reports, a.logger),
			Dashboard: dashboard,
		},
		a.logger,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// OnceMode runs a single rendering pass and prints the JSON report to
// stdout, the CLI equivalent of one dashboard page load.
func (a *App) OnceMode(ctx context.Context, deps *Dependencies) error {
	report, err := deps.Reports.BuildReport(ctx)
	if err != nil {
		return fmt.Errorf("app: build report: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("app: encode report: %w", err)
	}
	return nil
}
