package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	auction "lostfound-registry/internal/auctionService"
	bidding "lostfound-registry/internal/biddingService"
	"lostfound-registry/internal/config"
	"lostfound-registry/internal/keylock"
	matching "lostfound-registry/internal/matchingService"
	"lostfound-registry/internal/metrics"
	"lostfound-registry/internal/notify"
	registry "lostfound-registry/internal/registryService"
	"lostfound-registry/internal/repository"
	"lostfound-registry/internal/server"
	"lostfound-registry/utils"

	_ "github.com/joho/godotenv/autoload"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		utils.Fatal("Failed to load configuration", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLevel(cfg.Log.Level); err != nil {
		utils.Fatal("Failed to set log level", map[string]any{"error": err.Error()})
	}

	scorer, err := cfg.Scorer()
	if err != nil {
		utils.Fatal("Failed to build match scorer", map[string]any{"error": err.Error()})
	}
	policy, err := cfg.Policy()
	if err != nil {
		utils.Fatal("Failed to build permission policy", map[string]any{"error": err.Error()})
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	sink, conn := newSink(cfg.Notifications)
	dispatcher := notify.NewDispatcher(sink, cfg.Notifications.BufferSize, m)

	repo := repository.NewMemoryRepo()
	locks := keylock.New()

	matchingSvc := matching.NewMatchingService(repo, repo, scorer, policy, locks, dispatcher, m, matching.Options{
		Threshold: cfg.Matching.Threshold,
		Workers:   cfg.Matching.Workers,
	})
	registrySvc := registry.NewRegistryService(repo, policy, locks, matchingSvc)
	biddingSvc := bidding.NewBiddingService(repo, locks, dispatcher, m)
	auctionSvc := auction.NewAuctionService(repo, repo, policy, locks, dispatcher, m, cfg.Auction.RetentionWindow)
	scheduler := auction.NewScheduler(auctionSvc, cfg.Auction.SweepInterval)

	router := server.SetupRouter(server.Services{
		Items:    registrySvc,
		Matching: matchingSvc,
		Bidding:  biddingSvc,
		Auctions: auctionSvc,
		Metrics:  reg,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return dispatcher.Run(gctx) })
	g.Go(func() error { return scheduler.Run(gctx) })
	g.Go(func() error {
		utils.Info("Starting lost and found registry", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		utils.Info("Shutting down server", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		utils.Fatal("Server stopped with error", map[string]any{"error": err.Error()})
	}
	if conn != nil {
		// flush notifications published while the dispatcher drained its queue
		if err := conn.Drain(); err != nil {
			utils.Warn("Failed to drain NATS connection", map[string]any{"error": err.Error()})
		}
	}
	utils.Info("Server exited", nil)
}

// newSink publishes to NATS when a URL is configured and logs otherwise.
// The returned connection is nil for the log sink.
func newSink(cfg config.NotificationsConfig) (notify.Sink, *nats.Conn) {
	if cfg.NATSURL == "" {
		return notify.LogSink{}, nil
	}
	conn, err := notify.ConnectNATS(cfg.NATSURL)
	if err != nil {
		utils.Fatal("Failed to connect to NATS", map[string]any{"error": err.Error()})
	}
	utils.Info("Publishing notifications to NATS", map[string]any{"url": cfg.NATSURL, "prefix": cfg.SubjectPrefix})
	return notify.NewNATSSink(conn, cfg.SubjectPrefix), conn
}
