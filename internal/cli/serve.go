package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/ribs"
	ribshttp "github.com/aretw0/ribs/pkg/adapters/http"
	"github.com/aretw0/ribs/pkg/capsule"
	"github.com/aretw0/ribs/pkg/loop"
	"github.com/aretw0/ribs/pkg/node"
	"github.com/aretw0/ribs/pkg/observability"
	"github.com/aretw0/ribs/pkg/transition"
)

const (
	defaultFrame    = 16 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

// ServeOptions contains the configuration of the serve command.
type ServeOptions struct {
	// Path is a scenario file. Its routes, initial and permanent configurations and
	// transition settings define the served router; its steps are ignored.
	Path    string
	Addr    string
	Capsule string
	Store   StoreOptions

	// Listener overrides Addr.
	Listener net.Listener
}

// Serve hosts a router on a frame loop and exposes it over HTTP until ctx is done.
// With a capsule the router is restored on start and persisted on shutdown.
func Serve(ctx context.Context, opts ServeOptions, out io.Writer, logger *slog.Logger) error {
	s, err := load(opts.Path, logger)
	if err != nil {
		return err
	}
	resolver, err := s.Registry()
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics("")
	driver := transition.NewDriver()
	frame := s.Transition.Frame
	if frame <= 0 {
		frame = defaultFrame
	}

	var api *ribshttp.Server
	host := loop.New(
		loop.WithLogger(logger),
		loop.WithFrames(frame, func(dt time.Duration) {
			driver.Step(dt)
			api.Sync()
		}),
	)

	routerOpts := []ribs.Option{
		ribs.WithLogger(logger),
		ribs.WithLifecycleHooks(observability.Chain(metrics.Hooks(), observability.LoggingHooks(logger))),
		ribs.WithInitialConfiguration(s.Initial),
		ribs.WithPermanent(s.Permanent...),
	}
	if s.Transition.Duration > 0 {
		routerOpts = append(routerOpts,
			ribs.WithScheduler(host),
			ribs.WithTransitionHandler(transition.NewCrossfade(s.Transition.Duration, driver)),
		)
	}

	var manager *capsule.Manager
	if opts.Capsule != "" {
		m, closeStore, err := OpenManager(opts.Store, logger)
		if err != nil {
			return err
		}
		defer closeStore()
		manager = m

		saved, err := ribs.Restore(ctx, manager, opts.Capsule)
		if err != nil {
			return err
		}
		routerOpts = append(routerOpts, ribs.WithSavedState(saved))
	}

	router := ribs.New(resolver, node.New("root"), routerOpts...)
	if err := router.Start(); err != nil {
		return err
	}
	api = ribshttp.NewServer(host, router, ribshttp.WithMetrics(metrics), ribshttp.WithLogger(logger))

	loopCtx, stopLoop := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = host.Run(loopCtx)
	}()
	defer func() {
		stopLoop()
		<-loopDone
		router.Dispose()
	}()

	srv := &http.Server{
		Addr:    opts.Addr,
		Handler: api.Handler(),
		// Open event streams end with ctx so Shutdown does not wait on them.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serverErrors := make(chan error, 1)
	go func() {
		if opts.Listener != nil {
			printSystemMessage(out, "Serving '%s' on %s", s.Name, opts.Listener.Addr())
			serverErrors <- srv.Serve(opts.Listener)
			return
		}
		printSystemMessage(out, "Serving '%s' on %s", s.Name, srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
		_ = srv.Close()
	}
	if err := <-serverErrors; err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warn("Server stopped with error", "err", err)
	}

	if manager != nil {
		err := host.Do(shutdownCtx, func() error {
			return router.Persist(shutdownCtx, manager, opts.Capsule)
		})
		if err != nil {
			return err
		}
		printSystemMessage(out, "Capsule '%s' saved.", opts.Capsule)
	}
	printSystemMessage(out, "Server stopped")
	return nil
}
