package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/strideworks/storefront/cmd/storefront/output"
	"github.com/strideworks/storefront/internal/api"
	"github.com/strideworks/storefront/internal/store"
	"github.com/strideworks/storefront/pkg/runtime"
)

const shutdownTimeout = 10 * time.Second

// serveCmd runs the HTTP API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront API server",
	Long: `Run the storefront API server.

The schema is applied on startup, then the server listens on
SERVER_ADDR until SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	db, err := runtime.Connect(ctx, runtime.Config{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		output.Error("Failed to connect to database: %v", err)
		return err
	}
	defer db.Close()

	st, err := store.New(db, cfg.PricingPolicy())
	if err != nil {
		return err
	}
	if err := st.Bootstrap(ctx); err != nil {
		output.Error("Failed to apply schema: %v", err)
		return err
	}

	srv := &http.Server{Addr: cfg.ServerAddr, Handler: api.Router(st)}
	go func() {
		log.WithField("addr", cfg.ServerAddr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to start server")
		}
	}()
	output.Success("Storefront listening on %s", cfg.ServerAddr)

	waitForKillSignal()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
		return err
	}
	output.Muted("Server stopped")
	return nil
}

func waitForKillSignal() {
	killSignalChan := make(chan os.Signal, 1)
	signal.Notify(killSignalChan, os.Interrupt, syscall.SIGTERM)

	switch <-killSignalChan {
	case os.Interrupt:
		log.Info("got SIGINT...")
	case syscall.SIGTERM:
		log.Info("got SIGTERM...")
	}
}
