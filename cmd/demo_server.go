package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhubert/tutor/internal/fakebackend"
	"github.com/zhubert/tutor/internal/logger"
)

var demoAddr string

var demoServerCmd = &cobra.Command{
	Use:   "demo-server",
	Short: "Run an in-memory tutor backend for trying the client",
	Long: `Runs a small in-memory backend that speaks the tutor HTTP API.
Chat replies are canned, quizzes come from a fixed question bank and
everything is lost on exit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ln, err := net.Listen("tcp", demoAddr)
		if err != nil {
			return fmt.Errorf("error listening on %s: %w", demoAddr, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Demo backend listening on http://%s\n", ln.Addr())
		return serveDemo(ctx, ln, fakebackend.New(fakebackend.WithRequestLogging()))
	},
}

func init() {
	demoServerCmd.Flags().StringVar(&demoAddr, "addr", "localhost:8000", "Address to listen on")
	rootCmd.AddCommand(demoServerCmd)
}

// serveDemo serves handler on ln until ctx is done.
func serveDemo(ctx context.Context, ln net.Listener, handler http.Handler) error {
	log := logger.WithComponent("demo-server")
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	log.Info("serving", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error stopping demo backend: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("stopped")
	return nil
}
