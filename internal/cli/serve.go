package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/recorder"
	"github.com/SeamusWaldron/cubestate/internal/transport/ws"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a cube over websocket",
	Long: `Serve one cube session to websocket clients.

Endpoints:
  /ws         state on connect, then one message per transition;
              accepts {"type":"move","notation":"R U"}, {"type":"undo"}
              and {"type":"reset"}
  /api/state  current state as JSON`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Address
	}

	cube := cubestate.NewSession(cubestate.WithLogger(logger))

	db, err := openJournal()
	if err != nil {
		return err
	}
	var rec *recorder.Recorder
	if db != nil {
		defer db.Close()
		rec = recorder.New(db, logger)
		rec.Attach(cube)
		if _, err := rec.Start("serve "+addr, version); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           ws.NewServer(cube, logger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", "err", err)
		}
	}

	if rec != nil {
		if err := rec.End(cube.State()); err != nil {
			logger.Error("failed to close journal session", "err", err)
		}
	}
	return nil
}
