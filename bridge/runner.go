package bridge

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/viant/staticmcp"
	"github.com/viant/staticmcp/endpoint"
)

const shutdownTimeout = 5 * time.Second

// Run parses args and serves the bridge until interrupted
func Run(args []string, mode endpoint.Mode) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var base *staticmcp.ServerOptions
	if options.ConfigURL != "" {
		loaded, err := staticmcp.LoadServerOptions(ctx, options.ConfigURL)
		if err != nil {
			return err
		}
		base = loaded
	}
	serverOptions, err := options.ServerOptions(base, mode)
	if err != nil {
		return err
	}
	logger := serverOptions.Logger()
	srv, err := staticmcp.NewServer(serverOptions, logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	httpServer := srv.HTTP(ctx, serverOptions.Transport.Addr())
	errs := make(chan error, 1)
	go func() {
		logger.Info("staticmcp bridge listening",
			"addr", httpServer.Addr,
			"mode", srv.Strategy().Mode(),
			"target", serverOptions.Source,
			"layout", srv.Dispatcher().Layout(),
			"protocol", srv.Dispatcher().ProtocolVersion())
		errs <- httpServer.ListenAndServe()
	}()
	select {
	case err = <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
