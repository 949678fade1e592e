package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	appHTTP "github.com/homecare-staffing/nursing-backend-go/internal/handler/http"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/jwt"
	"github.com/homecare-staffing/nursing-backend-go/internal/repository/postgresql"
	"github.com/spf13/cobra"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply the schema before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if serveMigrate {
		if err := postgresql.Migrate(ctx, a.db); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}

	tokenAuth := jwt.NewJWTAuth(a.cfg.JWT.Secret)
	attendanceHandler := appHTTP.NewAttendanceHandler(a.attendanceService)
	router := appHTTP.NewRouter(tokenAuth, attendanceHandler, appHTTP.RouterOptions{
		Logger:         a.logger,
		AllowedOrigins: a.cfg.App.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Server running", "addr", srv.Addr, "timezone", a.cfg.App.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
