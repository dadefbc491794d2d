package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/uswitch/typearchive/pkg/audit"
	"github.com/uswitch/typearchive/pkg/authnz"
	"github.com/uswitch/typearchive/pkg/graphql"
	"github.com/uswitch/typearchive/pkg/logging"
	"github.com/uswitch/typearchive/pkg/middleware"
	"github.com/uswitch/typearchive/pkg/releases"
	"github.com/uswitch/typearchive/pkg/store"
	"github.com/uswitch/typearchive/pkg/store/file"
)

func newServer(config ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         config.Addr,
		Handler:      handler,
		WriteTimeout: secs(config.WriteTimeoutSecs),
		ReadTimeout:  secs(config.ReadTimeoutSecs),
		IdleTimeout:  secs(config.IdleTimeoutSecs),
	}
}

// seed puts every built in release into s, replacing what was there.
func seed(ctx context.Context, s store.Store, logger *zap.Logger) error {
	for _, r := range releases.All() {
		archive, err := r.Archive()
		if err != nil {
			return err
		}

		if err := s.Put(ctx, archive); err != nil {
			return fmt.Errorf("seeding release %s: %w", r.Version, err)
		}

		logger.Debug("seeded release", zap.String("version", r.Version))
	}

	return nil
}

func authenticator(ctx context.Context, config *Config, logger *zap.Logger) (authnz.Authenticator, error) {
	if len(config.Providers) == 0 {
		logger.Warn("no OIDC providers configured, every request is anonymous", zap.String("user", config.AnonymousUser))
		return authnz.NewAnonymousAuthenticator(config.AnonymousUser), nil
	}

	return authnz.NewOIDCAuthenticator(ctx, config.Providers, logger.Named("authn"))
}

func opsHandler() http.Handler {
	opsMux := http.NewServeMux()

	opsMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	return opsMux
}

func run(ctx context.Context, config *Config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s, err := file.NewFileStore(config.Store.Dir,
		file.WithFormat(config.Store.Format),
		file.WithLogger(logger.Named("store")),
	)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	if config.Store.Seed {
		if err := seed(ctx, s, logger); err != nil {
			return err
		}
	}

	providerOpts := []graphql.Option{graphql.WithLogger(logger.Named("graphql"))}
	if config.Follow != "" {
		providerOpts = append(providerOpts, graphql.Following(config.Follow))
	}

	provider, err := graphql.NewProvider(s, providerOpts...)
	if err != nil {
		return fmt.Errorf("building graphql schema: %w", err)
	}

	authn, err := authenticator(ctx, config, logger)
	if err != nil {
		return err
	}

	apiServer := newServer(config.Api.Server, apiHandler(
		s, provider, authn,
		audit.NewAuditLog(logger),
		middleware.NewCORSMiddleware(config.Api.CORS),
		config.Api.MaxBodyBytes,
		logger.Named("api"),
	))
	opsServer := newServer(config.Ops.Server, opsHandler())

	var serverWaitGroup sync.WaitGroup
	errs := make(chan error, 3)

	serverWaitGroup.Add(1)
	go func() {
		defer serverWaitGroup.Done()

		if err := provider.Sync(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errs <- fmt.Errorf("syncing archives: %w", err)
		}
	}()

	for name, server := range map[string]*http.Server{"API": apiServer, "Ops": opsServer} {
		serverWaitGroup.Add(1)

		go func() {
			defer serverWaitGroup.Done()

			logger.Info(name+" server listening", zap.String("addr", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- fmt.Errorf("%s server: %w", name, err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case runErr = <-errs:
		logger.Error("shutting down after an error", zap.Error(runErr))
	}

	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), secs(config.GracefulTimeoutSecs))
	defer cancelShutdown()

	for _, server := range []*http.Server{apiServer, opsServer} {
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down cleanly", zap.String("addr", server.Addr), zap.Error(err))
		}
	}

	serverWaitGroup.Wait()

	return runErr
}

func main() {
	_ = godotenv.Load()

	config, err := ParseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(config.Env, config.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "couldn't create logger: %v\n", err)
		os.Exit(2)
	}
	defer logging.Sync(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config, logger); err != nil {
		logger.Error("http-api failed", zap.Error(err))
		logging.Sync(logger)
		os.Exit(1)
	}
}
