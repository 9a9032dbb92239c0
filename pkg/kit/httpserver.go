package kit

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// RunHTTPServer serves h on addr until ctx is done or SIGINT/SIGTERM arrives,
// then shuts the server down. onShutdown hooks run in order on every return
// path, including a failed start.
func RunHTTPServer(ctx context.Context, addr string, h http.Handler, log *zap.Logger, onShutdown ...func(context.Context) error) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	var err error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal", zap.Error(context.Cause(ctx)))
	case err = <-errCh:
		log.Error("http server failed", zap.Error(err))
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err == nil {
		err = srv.Shutdown(sctx)
	}
	return errors.Join(err, runHooks(sctx, log, onShutdown))
}

func runHooks(ctx context.Context, log *zap.Logger, hooks []func(context.Context) error) error {
	var err error
	for _, fn := range hooks {
		if herr := fn(ctx); herr != nil {
			log.Warn("shutdown hook failed", zap.Error(herr))
			err = errors.Join(err, herr)
		}
	}
	return err
}
