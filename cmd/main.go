// jobmate-posting-service
//
// Backend of the job-offer posting form. Exposes the form over REST (for the
// web UI) and gRPC (for the Gateway):
//   - field-by-field editing with inline validation
//   - document import with heuristic field extraction
//   - submission to the offers API, with an offline queue retried on a
//     fixed schedule while the API is unreachable
//
// The in-progress description and the offline queue live in the local
// key-value store selected by STORE_BACKEND.
package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"jobmate/posting-service/internal/config"
	"jobmate/posting-service/internal/db"
	"jobmate/posting-service/internal/draftstore"
	"jobmate/posting-service/internal/extract"
	"jobmate/posting-service/internal/form"
	"jobmate/posting-service/internal/grpcserver"
	"jobmate/posting-service/internal/httpapi"
	"jobmate/posting-service/internal/logging"
	"jobmate/posting-service/internal/offerapi"
	"jobmate/posting-service/internal/probe"
	"jobmate/posting-service/internal/queue"
	"jobmate/posting-service/internal/store"
)

const (
	version     = "1.0.0"
	redisPrefix = "posting:"
)

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[posting-service] Config error: %v", err)
	}

	logger, err := logging.New("posting-service", cfg.LogLevel)
	if err != nil {
		log.Fatalf("[posting-service] Logger error: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("posting-service stopped with error", zap.Error(err))
	}
	logger.Info("stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Local store ─────────────────────────────────────────────────────────
	kv, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// ── Components ──────────────────────────────────────────────────────────
	client := offerapi.New(cfg.OffersAPIURL, cfg.RecruiterID)
	prb := probe.New(cfg.OffersAPIURL, logger)
	pending := queue.New(kv, client, prb, cfg.RetrySpec, logger)
	extractor := extract.New()

	if err := pending.Start(ctx); err != nil {
		return errors.Wrap(err, "start retry loop")
	}
	defer pending.Stop()

	ctrl := form.NewController(ctx, draftstore.New(kv, logger), extractor, prb, client, pending, logger)

	// ── HTTP server ─────────────────────────────────────────────────────────
	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      httpapi.NewHandler(ctrl, logger, version).Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	// ── gRPC server ─────────────────────────────────────────────────────────
	grpcSrv := grpc.NewServer()
	grpcserver.Register(grpcSrv, grpcserver.NewServer(ctrl, extractor, logger))

	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCPort))
	if err != nil {
		return errors.Wrap(err, "listen gRPC")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP listening", zap.String("version", version), zap.String("port", cfg.Port))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "HTTP server")
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("gRPC listening", zap.String("port", cfg.GRPCPort))
		if err := grpcSrv.Serve(lis); err != nil {
			return errors.Wrap(err, "gRPC server")
		}
		return nil
	})

	// ── Graceful shutdown ───────────────────────────────────────────────────
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		grpcSrv.GracefulStop()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("HTTP shutdown", zap.Error(err))
		}
		return nil
	})

	return g.Wait()
}

// openStore connects the key-value backend named by cfg.StoreBackend.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.KV, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		logger.Info("connecting to Redis")
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "redis")
		}
		logger.Info("Redis connected")
		return store.NewRedis(rdb, redisPrefix), func() { rdb.Close() }, nil

	case config.BackendPostgres:
		logger.Info("connecting to PostgreSQL")
		pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "postgres")
		}
		logger.Info("PostgreSQL connected")
		return store.NewPostgres(pool), pool.Close, nil
	}

	logger.Warn("no persistent store configured, drafts and pending offers are kept in memory")
	return store.NewMemory(), func() {}, nil
}
