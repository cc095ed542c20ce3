package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	gdshlog "github.com/msto63/gdsh/foundation/core/log"
	"github.com/msto63/gdsh/internal/remote"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the configured store to remote shells",
	Long: `Serves the configured store over a websocket so remote shells can
connect with the remote store driver.

The server uses the local backend from the store section of the
configuration (memory or sqlite) and listens on the address from
the server section.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			printError("loading configuration", err)
			return err
		}
		if cfg.Store.Driver == "remote" {
			err := errors.New("serve needs a local store backend, not the remote driver")
			printError("configuring store", err)
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			printError("opening store", err)
			return err
		}
		defer store.Close()

		server := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: remote.NewServer(store, logger).Handler(),
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("store server listening", gdshlog.Field("addr", cfg.Server.Addr))
			errCh <- server.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			fmt.Println("shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			printError("serving", err)
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
