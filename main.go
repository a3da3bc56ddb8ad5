package main

import (
	"context"
	"fmt"
	"os"

	auction "art-auction/internal/auctionService"
	bidding "art-auction/internal/bidService"
	"art-auction/internal/cache"
	"art-auction/internal/clock"
	"art-auction/internal/config"
	"art-auction/internal/notifier"
	payment "art-auction/internal/paymentService"
	"art-auction/internal/paystack"
	"art-auction/internal/repository"
	"art-auction/internal/scheduler"
	"art-auction/internal/server"
	"art-auction/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	clk := clock.NewSystem()
	store := repository.NewMemoryStoreWithClock(clk)
	notify := notifier.NewLogNotifier()

	var bidCache cache.BidCache = cache.NoopBidCache{}
	if cfg.RedisAddr != "" {
		bidCache = cache.NewRedisBidCache(cfg.RedisAddr)
	}

	processor := paystack.NewHTTPClient(cfg.PaystackBaseURL, cfg.PaystackSecretKey, cfg.FrontendURL)

	auctionSvc := auction.NewAuctionService(store, notify, clk)
	bidSvc := bidding.NewBidService(store, bidCache, notify, clk, cfg.BidCASMaxRetries)
	paymentSvc := payment.NewPaymentService(store, processor, notify, clk, cfg.Currency, cfg.GracePeriod())

	sched := scheduler.New(store, auctionSvc, paymentSvc, clk, cfg.SchedulerInterval)
	if err := sched.EnsureSweepTask(); err != nil {
		utils.Fatal("failed to enqueue sweep task", map[string]any{"error": err.Error()})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Run(ctx)

	router := server.SetupRouter(auctionSvc, bidSvc, paymentSvc)

	utils.Info("starting auction server", map[string]any{"port": cfg.Port})
	if err := router.Run(cfg.Port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}
