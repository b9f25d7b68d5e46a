package perftests

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	bidding "lostfound-registry/internal/biddingService"
	"lostfound-registry/internal/keylock"
	model "lostfound-registry/internal/models"
	repository "lostfound-registry/internal/repository"
)

var (
	ctx    = context.Background()
	opens  = time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	closes = opens.Add(24 * time.Hour)
	during = opens.Add(time.Hour)
)

// nopNotifier discards notifications
type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, string, map[string]any) {}

// LoadScenario defines configurable benchmark parameters
type LoadScenario struct {
	Name            string
	NumUsers        int
	NumAuctions     int
	BidsPerUser     int
	ReadRatio       int
	MaxBidIncrement int
	Burst           bool // if true, no delay between ops
}

// OperationMetrics collects latencies safely
type OperationMetrics struct {
	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(d time.Duration) {
	om.mu.Lock()
	om.latencies = append(om.latencies, d)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (min, max, avg, p95, p99 time.Duration) {
	om.mu.Lock()
	latencies := append([]time.Duration(nil), om.latencies...)
	om.mu.Unlock()
	if len(latencies) == 0 {
		return
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	min = latencies[0]
	max = latencies[len(latencies)-1]

	var total time.Duration
	for _, d := range latencies {
		total += d
	}
	avg = total / time.Duration(len(latencies))
	p95 = latencies[int(0.95*float64(len(latencies)))]
	p99 = latencies[int(0.99*float64(len(latencies)))]
	return
}

// seedAuction stores a one-item lot and an ACTIVA auction for it
func seedAuction(b *testing.B, repo *repository.MemoryRepo, auctionID string, price float64) {
	b.Helper()
	itemID, lotID := "item_"+auctionID, "lot_"+auctionID
	if err := repo.CreateItem(ctx, model.Item{ItemID: itemID, Kind: model.KindFound, State: model.StateEnAlmacen}); err != nil {
		b.Fatalf("failed to seed item: %v", err)
	}
	if err := repo.CreateLot(ctx, model.Lot{LotID: lotID, ItemIDs: []string{itemID}, State: model.LotAbierto}); err != nil {
		b.Fatalf("failed to seed lot: %v", err)
	}
	if err := repo.CreateAuction(ctx, model.Auction{
		AuctionID: auctionID, LotID: lotID, State: model.AuctionProgramada,
		StartingPrice: price, CurrentPrice: price, StartsAt: opens, EndsAt: closes,
	}); err != nil {
		b.Fatalf("failed to seed auction: %v", err)
	}
	if _, err := repo.OpenAuction(ctx, auctionID, opens); err != nil {
		b.Fatalf("failed to open auction: %v", err)
	}
}

// setupRepo creates repository and bidding service with open auctions
func setupRepo(b *testing.B, numAuctions int) (*repository.MemoryRepo, *bidding.BiddingService) {
	repo := repository.NewMemoryRepo()
	svc := bidding.NewBiddingService(repo, keylock.New(), nopNotifier{}, nil)
	for i := 0; i < numAuctions; i++ {
		seedAuction(b, repo, fmt.Sprintf("auction_%d", i), 100)
	}
	return repo, svc
}

// Benchmark_Load_BiddingSystem runs multiple scenarios
func Benchmark_Load_BiddingSystem(b *testing.B) {
	scenarios := []LoadScenario{
		{"Low-Contention-WriteHeavy", 200, 200, 10, 0, 50, false},
		{"High-Contention-WriteHeavy", 500, 10, 20, 0, 20, false},
		{"Mixed-Workload", 300, 50, 15, 7, 30, false},
		{"ReadHeavy", 200, 50, 5, 9, 20, false},
		{"Edge-Case-SingleAuction", 100, 1, 10, 5, 10, false},
		{"Peak-Burst", 500, 50, 50, 0, 20, true},
	}

	for _, s := range scenarios {
		b.Run(s.Name, func(b *testing.B) {
			runParallelScenario(b, s)
		})
	}
}

func runParallelScenario(b *testing.B, s LoadScenario) {
	b.ReportAllocs()

	_, svc := setupRepo(b, s.NumAuctions)

	var totalOps, admittedBids, rejectedBids, totalReads int64
	auctionAdmitted := make([]int64, s.NumAuctions)
	latencies := &OperationMetrics{}

	start := time.Now()

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

		for pb.Next() {
			auctionIndex := rnd.Intn(s.NumAuctions)
			auctionID := fmt.Sprintf("auction_%d", auctionIndex)
			opType := rnd.Intn(10)

			opStart := time.Now()
			if opType < s.ReadRatio {
				_, _ = svc.GetWinningBid(ctx, auctionID)
				atomic.AddInt64(&totalReads, 1)
			} else {
				amount := float64(100 + rnd.Intn(s.MaxBidIncrement) + 1)
				bidderID := fmt.Sprintf("user_%d", rnd.Intn(s.NumUsers))
				if _, err := svc.SubmitBid(ctx, auctionID, bidderID, amount, during); err != nil {
					atomic.AddInt64(&rejectedBids, 1)
				} else {
					atomic.AddInt64(&admittedBids, 1)
					atomic.AddInt64(&auctionAdmitted[auctionIndex], 1)
				}
			}

			latencies.Record(time.Since(opStart))
			atomic.AddInt64(&totalOps, 1)

			if !s.Burst {
				time.Sleep(time.Millisecond)
			}
		}
	})

	elapsed := time.Since(start)
	throughput := float64(totalOps) / elapsed.Seconds()
	min, max, avg, p95, p99 := latencies.Stats()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	b.Logf(
		"Scenario: %s | Auctions: %d | Total Ops: %d | Admitted Bids: %d | Rejected Bids: %d | Reads: %d | Elapsed: %s | Throughput: %.2f ops/sec | Latency(us) min: %.2f avg: %.2f max: %.2f p95: %.2f p99: %.2f | Memory Alloc: %.2f MB",
		s.Name, s.NumAuctions, totalOps, admittedBids, rejectedBids, totalReads, elapsed,
		throughput,
		float64(min.Microseconds()), float64(avg.Microseconds()), float64(max.Microseconds()),
		float64(p95.Microseconds()), float64(p99.Microseconds()),
		float64(mem.Alloc)/1024/1024,
	)

	for i, v := range auctionAdmitted {
		if v > 0 {
			b.Logf("Auction %d admitted bids: %d", i, v)
		}
	}
}
