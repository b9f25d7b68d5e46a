package auction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	bidding "lostfound-registry/internal/biddingService"
	"lostfound-registry/internal/keylock"
	"lostfound-registry/internal/lifecycle"
	matching "lostfound-registry/internal/matchingService"
	"lostfound-registry/internal/metrics"
	model "lostfound-registry/internal/models"
	"lostfound-registry/internal/notify"
	registry "lostfound-registry/internal/registryService"
	"lostfound-registry/internal/registryerrors"
	"lostfound-registry/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const retention = 30 * 24 * time.Hour

var (
	ctx     = context.Background()
	today   = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	starts  = today.Add(2 * time.Hour)
	ends    = today.Add(4 * time.Hour)
	staff   = model.Actor{UserID: "staff1", Roles: []model.Role{model.RoleStaff}}
	citizen = model.Actor{UserID: "citizen1", Roles: []model.Role{model.RoleCitizen}}
)

type fixture struct {
	repo    *repository.MemoryRepo
	locks   *keylock.Locker
	metrics *metrics.Metrics
	auction *AuctionService
	bidding *bidding.BiddingService
}

func newFixture(t *testing.T, notifier notify.Notifier) *fixture {
	t.Helper()
	repo := repository.NewMemoryRepo()
	locks := keylock.New()
	m := metrics.New(prometheus.NewRegistry())
	return &fixture{
		repo:    repo,
		locks:   locks,
		metrics: m,
		auction: NewAuctionService(repo, repo, lifecycle.DefaultPolicy(), locks, notifier, m, retention).
			WithClock(func() time.Time { return today }),
		bidding: bidding.NewBiddingService(repo, locks, notifier, m),
	}
}

// shelved stores a FOUND item sitting in the warehouse since foundAt
func (f *fixture) shelved(t *testing.T, id string, foundAt time.Time) {
	t.Helper()
	require.NoError(t, f.repo.CreateItem(ctx, model.Item{
		ItemID: id, Kind: model.KindFound, State: model.StateEnAlmacen, Title: id, FoundAt: &foundAt,
	}))
}

// scheduled creates a lot over fresh eligible items and schedules it
func (f *fixture) scheduled(t *testing.T, price float64, itemIDs ...string) (model.Lot, model.Auction) {
	t.Helper()
	for _, id := range itemIDs {
		f.shelved(t, id, today.Add(-2*retention))
	}
	lot, err := f.auction.CreateLot(ctx, staff, itemIDs, today)
	require.NoError(t, err)
	a, err := f.auction.ScheduleAuction(ctx, staff, lot.LotID, price, starts, ends)
	require.NoError(t, err)
	return lot, a
}

func TestAuctionService_CreateLot(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Nop{})
	f.shelved(t, "old1", today.Add(-retention))
	f.shelved(t, "old2", today.Add(-2*retention))
	f.shelved(t, "fresh", today.Add(-retention+time.Minute))
	require.NoError(t, f.repo.CreateItem(ctx, model.Item{ItemID: "lost", Kind: model.KindLost, State: model.StateRegistrado}))
	require.NoError(t, f.repo.CreateItem(ctx, model.Item{ItemID: "unshelved", Kind: model.KindFound, State: model.StateRegistrado}))

	tests := []struct {
		name          string
		actor         model.Actor
		items         []string
		expectedError error
	}{
		{name: "citizen_cannot_create", actor: citizen, items: []string{"old1"}, expectedError: registryerrors.ErrUnauthorized},
		{name: "empty_lot", actor: staff, expectedError: registryerrors.ErrInvalidLot},
		{name: "duplicate_item", actor: staff, items: []string{"old1", "old1"}, expectedError: registryerrors.ErrInvalidLot},
		{name: "lost_item", actor: staff, items: []string{"lost"}, expectedError: registryerrors.ErrInvalidLot},
		{name: "not_in_warehouse", actor: staff, items: []string{"unshelved"}, expectedError: registryerrors.ErrInvalidLot},
		{name: "inside_retention_window", actor: staff, items: []string{"old1", "fresh"}, expectedError: registryerrors.ErrInvalidLot},
		{name: "unknown_item", actor: staff, items: []string{"ghost"}, expectedError: registryerrors.ErrNotFound},
		{name: "valid_lot", actor: staff, items: []string{"old1", "old2"}},
		{name: "item_already_in_lot", actor: staff, items: []string{"old2"}, expectedError: registryerrors.ErrConflict},
	}

	// sequential: the last case depends on the lot created before it
	for _, tc := range tests {
		lot, err := f.auction.CreateLot(ctx, tc.actor, tc.items, today)
		if tc.expectedError != nil {
			require.True(t, errors.Is(err, tc.expectedError), "%s: expected %v, got %v", tc.name, tc.expectedError, err)
			continue
		}
		require.NoError(t, err, tc.name)
		require.Equal(t, model.LotAbierto, lot.State)
		require.Equal(t, tc.items, lot.ItemIDs)
		require.Equal(t, "staff1", lot.CreatedBy)
	}
}

func TestAuctionService_ScheduleAuction(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Nop{})
	lot, a := f.scheduled(t, 100, "i1")
	require.Equal(t, model.AuctionProgramada, a.State)
	require.Equal(t, 100.0, a.CurrentPrice)
	require.Equal(t, 0, a.BidCount)

	stored, err := f.auction.GetLot(ctx, lot.LotID)
	require.NoError(t, err)
	require.Equal(t, model.LotEnSubasta, stored.State)

	tests := []struct {
		name          string
		actor         model.Actor
		lotID         string
		price         float64
		startsAt      time.Time
		endsAt        time.Time
		expectedError error
	}{
		{name: "citizen", actor: citizen, lotID: lot.LotID, price: 10, startsAt: starts, endsAt: ends, expectedError: registryerrors.ErrUnauthorized},
		{name: "zero_price", actor: staff, lotID: lot.LotID, price: 0, startsAt: starts, endsAt: ends, expectedError: registryerrors.ErrInvalidSchedule},
		{name: "end_before_start", actor: staff, lotID: lot.LotID, price: 10, startsAt: ends, endsAt: starts, expectedError: registryerrors.ErrInvalidSchedule},
		{name: "empty_window", actor: staff, lotID: lot.LotID, price: 10, startsAt: starts, endsAt: starts, expectedError: registryerrors.ErrInvalidSchedule},
		{name: "unknown_lot", actor: staff, lotID: "ghost", price: 10, startsAt: starts, endsAt: ends, expectedError: registryerrors.ErrNotFound},
		{name: "lot_already_auctioned", actor: staff, lotID: lot.LotID, price: 10, startsAt: starts, endsAt: ends, expectedError: registryerrors.ErrInvalidState},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := f.auction.ScheduleAuction(ctx, tc.actor, tc.lotID, tc.price, tc.startsAt, tc.endsAt)
			require.True(t, errors.Is(err, tc.expectedError), "expected %v, got %v", tc.expectedError, err)
		})
	}
}

func TestAuctionService_SweepLifecycle(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notifier := notify.NewMockNotifier(ctrl)
	notifier.EXPECT().Notify(gomock.Any(), "A", notify.EventOutbid, gomock.Any())
	notifier.EXPECT().Notify(gomock.Any(), "B", notify.EventAuctionWon, gomock.Any()).
		Do(func(_ context.Context, _, _ string, payload map[string]any) {
			require.Equal(t, 150.0, payload["amount"])
		})

	f := newFixture(t, notifier)
	_, a := f.scheduled(t, 100, "i1")

	res, err := f.auction.Sweep(ctx, starts.Add(-time.Second))
	require.NoError(t, err)
	require.Empty(t, res.Opened)
	require.Empty(t, res.Closed)

	res, err = f.auction.Sweep(ctx, starts)
	require.NoError(t, err)
	require.Equal(t, []string{a.AuctionID}, res.Opened)

	res, err = f.auction.Sweep(ctx, starts.Add(time.Minute))
	require.NoError(t, err)
	require.Empty(t, res.Opened, "opening fires once")

	at := starts.Add(time.Hour)
	_, err = f.bidding.SubmitBid(ctx, a.AuctionID, "A", 120, at)
	require.NoError(t, err)
	_, err = f.bidding.SubmitBid(ctx, a.AuctionID, "B", 120, at)
	require.True(t, errors.Is(err, registryerrors.ErrBidTooLow))
	_, err = f.bidding.SubmitBid(ctx, a.AuctionID, "B", 150, at)
	require.NoError(t, err)

	res, err = f.auction.Sweep(ctx, ends)
	require.NoError(t, err)
	require.Equal(t, []string{a.AuctionID}, res.Closed)

	closed, err := f.auction.GetAuction(ctx, a.AuctionID)
	require.NoError(t, err)
	require.Equal(t, model.AuctionCerrada, closed.State)
	require.Equal(t, "B", closed.WinnerID)
	require.Equal(t, 150.0, closed.CurrentPrice)
	require.Equal(t, 2, closed.BidCount)
	require.Equal(t, ends, *closed.ClosedAt)

	res, err = f.auction.Sweep(ctx, ends.Add(time.Hour))
	require.NoError(t, err)
	require.Empty(t, res.Closed, "closing fires once")

	require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AuctionTransitions.WithLabelValues("ACTIVA")))
	require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AuctionTransitions.WithLabelValues("CERRADA")))
}

func TestAuctionService_SweepWithoutBids(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Nop{})
	lot, a := f.scheduled(t, 50, "i1", "i2")

	// the sweeper was down for the whole window
	res, err := f.auction.Sweep(ctx, ends.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, []string{a.AuctionID}, res.Opened)
	require.Equal(t, []string{a.AuctionID}, res.Closed)

	closed, err := f.auction.GetAuction(ctx, a.AuctionID)
	require.NoError(t, err)
	require.Equal(t, model.AuctionCerrada, closed.State)
	require.Empty(t, closed.WinnerID)

	returned, err := f.auction.GetLot(ctx, lot.LotID)
	require.NoError(t, err)
	require.Equal(t, model.LotDevuelto, returned.State)

	item, err := f.repo.GetItem(ctx, "i1")
	require.NoError(t, err)
	require.Equal(t, model.StateEnAlmacen, item.State, "items stay in the warehouse")

	_, err = f.auction.Adjudicate(ctx, staff, a.AuctionID)
	require.True(t, errors.Is(err, registryerrors.ErrInvalidState))

	relisted, err := f.auction.ScheduleAuction(ctx, staff, lot.LotID, 25, ends.Add(time.Hour), ends.Add(3*time.Hour))
	require.NoError(t, err)
	require.Equal(t, model.AuctionProgramada, relisted.State)
	require.NotEqual(t, a.AuctionID, relisted.AuctionID)
}

func TestAuctionService_ConcurrentSweeps(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Nop{})
	_, a := f.scheduled(t, 10, "i1")

	const workers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	opened, closed := 0, 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.auction.Sweep(ctx, ends)
			if err != nil {
				t.Errorf("sweep: %v", err)
				return
			}
			mu.Lock()
			opened += len(res.Opened)
			closed += len(res.Closed)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Equal(t, 1, opened)
	require.Equal(t, 1, closed)
	require.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AuctionTransitions.WithLabelValues("CERRADA")))

	got, err := f.auction.GetAuction(ctx, a.AuctionID)
	require.NoError(t, err)
	require.Equal(t, model.AuctionCerrada, got.State)
}

func TestAuctionService_CloseRacesBids(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Nop{})
	_, a := f.scheduled(t, 1, "i1")
	_, err := f.auction.Sweep(ctx, starts)
	require.NoError(t, err)

	const bidders = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0
	start := make(chan struct{})

	for i := 0; i < bidders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := f.bidding.SubmitBid(ctx, a.AuctionID, fmt.Sprintf("user-%d", i), float64(2+i), starts.Add(time.Minute))
			switch {
			case err == nil:
				mu.Lock()
				admitted++
				mu.Unlock()
			case errors.Is(err, registryerrors.ErrBidTooLow), errors.Is(err, registryerrors.ErrAuctionNotActive):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		if _, err := f.auction.CloseAuction(ctx, staff, a.AuctionID, starts.Add(time.Hour)); err != nil {
			t.Errorf("close: %v", err)
		}
	}()

	close(start)
	wg.Wait()

	closed, err := f.auction.GetAuction(ctx, a.AuctionID)
	require.NoError(t, err)
	require.Equal(t, model.AuctionCerrada, closed.State)

	bids, err := f.repo.ListBids(ctx, a.AuctionID)
	require.NoError(t, err)
	require.Len(t, bids, admitted, "every admitted bid is recorded before close")
	require.Equal(t, admitted, closed.BidCount)

	if admitted == 0 {
		require.Empty(t, closed.WinningBidID)
		return
	}
	last := bids[len(bids)-1]
	require.Equal(t, last.BidID, closed.WinningBidID)
	require.Equal(t, last.Amount, closed.CurrentPrice)
}

func TestAuctionService_CloseAuction(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Nop{})
	_, a := f.scheduled(t, 10, "i1")

	_, err := f.auction.CloseAuction(ctx, staff, a.AuctionID, starts.Add(-time.Minute))
	require.True(t, errors.Is(err, registryerrors.ErrInvalidState), "scheduled auctions cannot be closed")

	_, err = f.auction.Sweep(ctx, starts)
	require.NoError(t, err)

	_, err = f.auction.CloseAuction(ctx, citizen, a.AuctionID, starts.Add(time.Minute))
	require.True(t, errors.Is(err, registryerrors.ErrUnauthorized))

	_, err = f.auction.CloseAuction(ctx, staff, "ghost", starts.Add(time.Minute))
	require.True(t, errors.Is(err, registryerrors.ErrNotFound))

	early := starts.Add(time.Minute)
	closed, err := f.auction.CloseAuction(ctx, staff, a.AuctionID, early)
	require.NoError(t, err)
	require.Equal(t, early, *closed.ClosedAt)

	_, err = f.bidding.SubmitBid(ctx, a.AuctionID, "late", 500, early.Add(time.Second))
	require.True(t, errors.Is(err, registryerrors.ErrAuctionNotActive))

	_, err = f.auction.CloseAuction(ctx, staff, a.AuctionID, early)
	require.True(t, errors.Is(err, registryerrors.ErrInvalidState))
}

func TestAuctionService_AdjudicateAndHandover(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Nop{})
	lot, a := f.scheduled(t, 10, "i1", "i2")
	_, err := f.auction.Sweep(ctx, starts)
	require.NoError(t, err)

	_, err = f.auction.Adjudicate(ctx, staff, a.AuctionID)
	require.True(t, errors.Is(err, registryerrors.ErrInvalidState), "active auctions cannot be adjudicated")

	_, err = f.bidding.SubmitBid(ctx, a.AuctionID, "winner", 40, starts.Add(time.Minute))
	require.NoError(t, err)
	_, err = f.auction.Sweep(ctx, ends)
	require.NoError(t, err)

	_, err = f.auction.CompleteHandover(ctx, staff, a.AuctionID, ends)
	require.True(t, errors.Is(err, registryerrors.ErrInvalidState), "handover needs adjudication first")

	_, err = f.auction.Adjudicate(ctx, citizen, a.AuctionID)
	require.True(t, errors.Is(err, registryerrors.ErrUnauthorized))

	adjudicated, err := f.auction.Adjudicate(ctx, staff, a.AuctionID)
	require.NoError(t, err)
	require.Equal(t, model.AuctionAdjudicada, adjudicated.State)
	require.Equal(t, today, *adjudicated.AdjudicatedAt)

	stored, err := f.auction.GetLot(ctx, lot.LotID)
	require.NoError(t, err)
	require.Equal(t, model.LotAdjudicado, stored.State)
	for _, id := range lot.ItemIDs {
		item, err := f.repo.GetItem(ctx, id)
		require.NoError(t, err)
		require.Equal(t, model.StateSubasta, item.State)
	}

	_, err = f.auction.CompleteHandover(ctx, citizen, a.AuctionID, ends.Add(time.Hour))
	require.True(t, errors.Is(err, registryerrors.ErrUnauthorized))

	handedOver, err := f.auction.CompleteHandover(ctx, staff, a.AuctionID, ends.Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, ends.Add(time.Hour), *handedOver.HandedOverAt)
	for _, id := range lot.ItemIDs {
		item, err := f.repo.GetItem(ctx, id)
		require.NoError(t, err)
		require.Equal(t, model.StateEntregado, item.State)
	}

	_, err = f.auction.CompleteHandover(ctx, staff, a.AuctionID, ends.Add(2*time.Hour))
	require.True(t, errors.Is(err, registryerrors.ErrInvalidState))
}

func TestAuctionService_LotItemsStayPinned(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Nop{})
	items := registry.NewRegistryService(f.repo, lifecycle.DefaultPolicy(), f.locks, nil)
	matcher := matching.NewMatchingService(f.repo, f.repo, nil, lifecycle.DefaultPolicy(), f.locks, notify.Nop{}, f.metrics, matching.Options{})

	_, a := f.scheduled(t, 10, "i1", "i2")
	require.NoError(t, f.repo.CreateItem(ctx, model.Item{ItemID: "lost1", Kind: model.KindLost, State: model.StateRegistrado, Title: "lost1"}))
	require.NoError(t, f.repo.InsertMatch(ctx, model.Match{
		MatchID: "m1", LostItemID: "lost1", FoundItemID: "i2", Score: 80, State: model.ReviewPending,
	}))

	assertPinned := func(t *testing.T, want model.ItemState) {
		t.Helper()

		_, err := items.Transition(ctx, "i2", model.StateDonado, staff)
		require.True(t, errors.Is(err, registryerrors.ErrInvalidState), "got %v", err)

		_, err = matcher.Confirm(ctx, "m1", staff)
		require.True(t, errors.Is(err, registryerrors.ErrInvalidState), "got %v", err)

		m, err := f.repo.GetMatch(ctx, "m1")
		require.NoError(t, err)
		require.Equal(t, model.ReviewPending, m.State)
		for id, state := range map[string]model.ItemState{"i2": want, "lost1": model.StateRegistrado} {
			item, err := f.repo.GetItem(ctx, id)
			require.NoError(t, err)
			require.Equal(t, state, item.State, id)
		}
	}

	// scheduled
	assertPinned(t, model.StateEnAlmacen)

	_, err := f.auction.Sweep(ctx, starts)
	require.NoError(t, err)
	_, err = f.bidding.SubmitBid(ctx, a.AuctionID, "winner", 40, starts.Add(time.Minute))
	require.NoError(t, err)
	_, err = f.auction.Sweep(ctx, ends)
	require.NoError(t, err)

	// closed, awaiting adjudication
	assertPinned(t, model.StateEnAlmacen)

	_, err = f.auction.Adjudicate(ctx, staff, a.AuctionID)
	require.NoError(t, err)
	for _, id := range []string{"i1", "i2"} {
		item, err := f.repo.GetItem(ctx, id)
		require.NoError(t, err)
		require.Equal(t, model.StateSubasta, item.State)
	}

	// adjudicated items reach the winner through the handover only
	_, err = items.Transition(ctx, "i1", model.StateEntregado, staff)
	require.True(t, errors.Is(err, registryerrors.ErrInvalidState), "got %v", err)
}

func TestAuctionService_ReturnedLotReleasesItems(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Nop{})
	items := registry.NewRegistryService(f.repo, lifecycle.DefaultPolicy(), f.locks, nil)

	lot, _ := f.scheduled(t, 10, "i1")
	_, err := f.auction.Sweep(ctx, ends)
	require.NoError(t, err)

	got, err := f.auction.GetLot(ctx, lot.LotID)
	require.NoError(t, err)
	require.Equal(t, model.LotDevuelto, got.State)

	item, err := items.Transition(ctx, "i1", model.StateDonado, staff)
	require.NoError(t, err)
	require.Equal(t, model.StateDonado, item.State)
}

// failingAuctions fails to load one auction and defers to the repo otherwise
type failingAuctions struct {
	*repository.MemoryRepo
	broken string
}

func (s failingAuctions) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	if auctionID == s.broken {
		return model.Auction{}, errors.New("storage unavailable")
	}
	return s.MemoryRepo.GetAuction(ctx, auctionID)
}

func TestAuctionService_SweepContinuesPastFailures(t *testing.T) {
	t.Parallel()

	f := newFixture(t, notify.Nop{})
	_, broken := f.scheduled(t, 10, "i1")
	_, healthy := f.scheduled(t, 10, "i2")

	svc := NewAuctionService(f.repo, failingAuctions{MemoryRepo: f.repo, broken: broken.AuctionID},
		lifecycle.DefaultPolicy(), f.locks, notify.Nop{}, f.metrics, retention)

	res, err := svc.Sweep(ctx, starts)
	require.Error(t, err)
	require.Contains(t, err.Error(), broken.AuctionID)
	require.Equal(t, []string{healthy.AuctionID}, res.Opened)

	got, err := f.repo.GetAuction(ctx, healthy.AuctionID)
	require.NoError(t, err)
	require.Equal(t, model.AuctionActiva, got.State)
	got, err = f.repo.GetAuction(ctx, broken.AuctionID)
	require.NoError(t, err)
	require.Equal(t, model.AuctionProgramada, got.State)
}

func TestScheduler_Run(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runCtx, cancel := context.WithCancel(ctx)
	swept := make(chan struct{}, 8)

	sweeper := NewMockSweeper(ctrl)
	gomock.InOrder(
		sweeper.EXPECT().Sweep(gomock.Any(), gomock.Any()).Return(SweepResult{}, errors.New("store down")),
		sweeper.EXPECT().Sweep(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, time.Time) (SweepResult, error) {
				select {
				case swept <- struct{}{}:
				default:
				}
				return SweepResult{Opened: []string{"a1"}}, nil
			}).MinTimes(1),
	)

	done := make(chan error, 1)
	go func() { done <- NewScheduler(sweeper, 5*time.Millisecond).Run(runCtx) }()

	select {
	case <-swept:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler never retried after a failed sweep")
	}
	cancel()

	select {
	case err := <-done:
		require.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
}
