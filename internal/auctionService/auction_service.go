package auction

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	bidding "lostfound-registry/internal/biddingService"
	"lostfound-registry/internal/keylock"
	"lostfound-registry/internal/lifecycle"
	"lostfound-registry/internal/metrics"
	"lostfound-registry/internal/models"
	"lostfound-registry/internal/notify"
	"lostfound-registry/internal/registryerrors"
	"lostfound-registry/internal/repository"
	"lostfound-registry/utils"
)

// SweepResult lists the auctions a sweep moved across a boundary
type SweepResult struct {
	Opened []string `json:"opened"`
	Closed []string `json:"closed"`
}

// AuctionService is the auction lifecycle manager. Every state change of an
// auction runs under that auction's key, shared with bid admission.
type AuctionService struct {
	items     repository.ItemStore
	auctions  repository.AuctionStore
	policy    *lifecycle.Policy
	locks     *keylock.Locker
	notifier  notify.Notifier
	metrics   *metrics.Metrics
	retention time.Duration
	now       func() time.Time
}

// NewAuctionService creates a new AuctionService instance. Found items become
// eligible for a lot once retention has passed since they were found.
func NewAuctionService(
	items repository.ItemStore,
	auctions repository.AuctionStore,
	policy *lifecycle.Policy,
	locks *keylock.Locker,
	notifier notify.Notifier,
	m *metrics.Metrics,
	retention time.Duration,
) *AuctionService {
	return &AuctionService{
		items:     items,
		auctions:  auctions,
		policy:    policy,
		locks:     locks,
		notifier:  notifier,
		metrics:   m,
		retention: retention,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used for adjudication timestamps
func (s *AuctionService) WithClock(now func() time.Time) *AuctionService {
	s.now = now
	return s
}

// CreateLot groups unclaimed warehouse items whose retention window is over
func (s *AuctionService) CreateLot(ctx context.Context, actor models.Actor, itemIDs []string, now time.Time) (models.Lot, error) {
	if !s.policy.Permits(actor, lifecycle.EdgeAuction) {
		return models.Lot{}, fmt.Errorf("service: %w - user %q may not create lots", registryerrors.ErrUnauthorized, actor.UserID)
	}
	if len(itemIDs) == 0 {
		return models.Lot{}, fmt.Errorf("service: %w - a lot needs at least one item", registryerrors.ErrInvalidLot)
	}

	keys := make([]string, 0, len(itemIDs))
	seen := make(map[string]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		if _, dup := seen[id]; dup {
			return models.Lot{}, fmt.Errorf("service: %w - item %s listed twice", registryerrors.ErrInvalidLot, id)
		}
		seen[id] = struct{}{}
		keys = append(keys, keylock.ItemKey(id))
	}

	unlock := s.locks.LockMany(keys...)
	defer unlock()

	for _, id := range itemIDs {
		item, err := s.items.GetItem(ctx, id)
		if err != nil {
			return models.Lot{}, fmt.Errorf("service: failed to load item %s: %w", id, err)
		}
		if err := s.eligible(item, now); err != nil {
			return models.Lot{}, err
		}
	}

	lot := models.Lot{
		LotID:     utils.GenerateID(),
		ItemIDs:   append([]string(nil), itemIDs...),
		State:     models.LotAbierto,
		CreatedBy: actor.UserID,
		CreatedAt: now,
	}
	if err := s.auctions.CreateLot(ctx, lot); err != nil {
		return models.Lot{}, fmt.Errorf("service: failed to create lot: %w", err)
	}

	utils.Info("Lot created", map[string]any{"lot_id": lot.LotID, "items": len(lot.ItemIDs), "created_by": actor.UserID})
	return lot, nil
}

func (s *AuctionService) eligible(item models.Item, now time.Time) error {
	if item.Kind != models.KindFound {
		return fmt.Errorf("service: %w - item %s is not a found item", registryerrors.ErrInvalidLot, item.ItemID)
	}
	if item.State != models.StateEnAlmacen {
		return fmt.Errorf("service: %w - item %s is %s", registryerrors.ErrInvalidLot, item.ItemID, item.State)
	}
	if item.FoundAt == nil || now.Before(item.FoundAt.Add(s.retention)) {
		return fmt.Errorf("service: %w - item %s is still within its retention window", registryerrors.ErrInvalidLot, item.ItemID)
	}
	return nil
}

// ScheduleAuction lists a lot that is open or was returned by an auction
// without bids. The auction starts PROGRAMADA at the starting price.
func (s *AuctionService) ScheduleAuction(ctx context.Context, actor models.Actor, lotID string, startingPrice float64, startsAt, endsAt time.Time) (models.Auction, error) {
	if !s.policy.Permits(actor, lifecycle.EdgeAuction) {
		return models.Auction{}, fmt.Errorf("service: %w - user %q may not schedule auctions", registryerrors.ErrUnauthorized, actor.UserID)
	}
	if startingPrice <= 0 || math.IsNaN(startingPrice) || math.IsInf(startingPrice, 0) {
		return models.Auction{}, fmt.Errorf("service: %w - starting price must be positive", registryerrors.ErrInvalidSchedule)
	}
	if startsAt.IsZero() || !endsAt.After(startsAt) {
		return models.Auction{}, fmt.Errorf("service: %w - end must be after start", registryerrors.ErrInvalidSchedule)
	}

	lot, err := s.auctions.GetLot(ctx, lotID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to load lot %s: %w", lotID, err)
	}
	if lot.State != models.LotAbierto && lot.State != models.LotDevuelto {
		return models.Auction{}, fmt.Errorf("service: lot %s is %s: %w", lotID, lot.State, registryerrors.ErrInvalidState)
	}
	for _, id := range lot.ItemIDs {
		item, err := s.items.GetItem(ctx, id)
		if err != nil {
			return models.Auction{}, fmt.Errorf("service: failed to load item %s: %w", id, err)
		}
		if item.State != models.StateEnAlmacen {
			return models.Auction{}, fmt.Errorf("service: item %s of lot %s is %s: %w", id, lotID, item.State, registryerrors.ErrInvalidState)
		}
	}

	a := models.Auction{
		AuctionID:     utils.GenerateID(),
		LotID:         lotID,
		State:         models.AuctionProgramada,
		StartingPrice: startingPrice,
		CurrentPrice:  startingPrice,
		StartsAt:      startsAt.UTC(),
		EndsAt:        endsAt.UTC(),
		CreatedAt:     s.now(),
	}
	if err := s.auctions.CreateAuction(ctx, a); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to schedule auction for lot %s: %w", lotID, err)
	}
	s.metrics.IncrementAuctionTransition(string(models.AuctionProgramada))

	utils.Info("Auction scheduled", map[string]any{
		"auction_id": a.AuctionID,
		"lot_id":     lotID,
		"starts_at":  a.StartsAt,
		"ends_at":    a.EndsAt,
	})
	return a, nil
}

// Sweep fires every due boundary crossing at now. An auction whose start and
// end have both passed is opened and closed in the same sweep. Running it
// again, or from several workers at once, does not fire anything twice.
// An auction that fails to advance is logged and skipped; the failures are
// returned joined once every due auction has been tried.
func (s *AuctionService) Sweep(ctx context.Context, now time.Time) (SweepResult, error) {
	due, err := s.auctions.ListAuctions(ctx, models.AuctionProgramada, models.AuctionActiva)
	if err != nil {
		return SweepResult{}, fmt.Errorf("service: failed to list auctions: %w", err)
	}

	res := SweepResult{Opened: []string{}, Closed: []string{}}
	var errs []error
	for _, a := range due {
		if err := ctx.Err(); err != nil {
			return res, errors.Join(append(errs, err)...)
		}
		if !boundaryDue(a, now) {
			continue
		}

		opened, closed, err := s.advance(ctx, a.AuctionID, now)
		if err != nil {
			utils.Error("Failed to advance auction", map[string]any{
				"auction_id": a.AuctionID,
				"error":      err.Error(),
			})
			errs = append(errs, err)
			continue
		}
		if opened {
			res.Opened = append(res.Opened, a.AuctionID)
		}
		if closed {
			res.Closed = append(res.Closed, a.AuctionID)
		}
	}
	return res, errors.Join(errs...)
}

func boundaryDue(a models.Auction, now time.Time) bool {
	switch a.State {
	case models.AuctionProgramada:
		return !now.Before(a.StartsAt)
	case models.AuctionActiva:
		return !now.Before(a.EndsAt)
	}
	return false
}

// advance re-reads the auction under its lock and takes the boundaries that
// are due. Another worker having taken them first is not an error.
func (s *AuctionService) advance(ctx context.Context, auctionID string, now time.Time) (opened, closed bool, err error) {
	unlock := s.locks.Lock(keylock.AuctionKey(auctionID))
	defer unlock()

	a, err := s.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return false, false, fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
	}

	if a.State == models.AuctionProgramada && !now.Before(a.StartsAt) {
		a, err = s.auctions.OpenAuction(ctx, auctionID, a.StartsAt)
		if errors.Is(err, registryerrors.ErrInvalidState) {
			return false, false, nil
		}
		if err != nil {
			return false, false, fmt.Errorf("service: failed to open auction %s: %w", auctionID, err)
		}
		opened = true
		s.metrics.IncrementAuctionTransition(string(models.AuctionActiva))
		utils.Info("Auction opened", map[string]any{"auction_id": auctionID, "lot_id": a.LotID})
	}

	if a.State == models.AuctionActiva && !now.Before(a.EndsAt) {
		if _, err := s.closeLocked(ctx, a, a.EndsAt); err != nil {
			if errors.Is(err, registryerrors.ErrInvalidState) {
				return opened, false, nil
			}
			return opened, false, err
		}
		closed = true
	}
	return opened, closed, nil
}

// CloseAuction closes an ACTIVA auction before its scheduled end
func (s *AuctionService) CloseAuction(ctx context.Context, actor models.Actor, auctionID string, now time.Time) (models.Auction, error) {
	if !s.policy.Permits(actor, lifecycle.EdgeAuction) {
		return models.Auction{}, fmt.Errorf("service: %w - user %q may not close auctions", registryerrors.ErrUnauthorized, actor.UserID)
	}

	unlock := s.locks.Lock(keylock.AuctionKey(auctionID))
	defer unlock()

	a, err := s.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
	}
	if a.State != models.AuctionActiva {
		return models.Auction{}, fmt.Errorf("service: auction %s is %s: %w", auctionID, a.State, registryerrors.ErrInvalidState)
	}
	at := now
	if a.EndsAt.Before(at) {
		at = a.EndsAt
	}
	return s.closeLocked(ctx, a, at)
}

// closeLocked freezes the auction and records its winner. The caller holds
// the auction key, so no bid can land between reading bids and closing.
func (s *AuctionService) closeLocked(ctx context.Context, a models.Auction, at time.Time) (models.Auction, error) {
	bids, err := s.auctions.ListBids(ctx, a.AuctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to load bids of auction %s: %w", a.AuctionID, err)
	}

	var winner *models.Bid
	if w, ok := bidding.SelectWinner(bids); ok {
		winner = &w
	}

	closed, err := s.auctions.CloseAuction(ctx, a.AuctionID, at, winner)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to close auction %s: %w", a.AuctionID, err)
	}
	s.metrics.IncrementAuctionTransition(string(models.AuctionCerrada))

	if winner == nil {
		utils.Info("Auction closed without bids, lot returned", map[string]any{"auction_id": a.AuctionID, "lot_id": a.LotID})
		return closed, nil
	}

	utils.Info("Auction closed", map[string]any{
		"auction_id": a.AuctionID,
		"winner_id":  winner.BidderID,
		"amount":     winner.Amount,
		"bids":       len(bids),
	})
	s.notifier.Notify(ctx, winner.BidderID, notify.EventAuctionWon, map[string]any{
		"auction_id": a.AuctionID,
		"lot_id":     a.LotID,
		"amount":     winner.Amount,
	})
	return closed, nil
}

// Adjudicate confirms the winner of a CERRADA auction and moves the lot's
// items to SUBASTA together with the auction.
func (s *AuctionService) Adjudicate(ctx context.Context, actor models.Actor, auctionID string) (models.Auction, error) {
	if !s.policy.Permits(actor, lifecycle.EdgeAuction) {
		return models.Auction{}, fmt.Errorf("service: %w - user %q may not adjudicate auctions", registryerrors.ErrUnauthorized, actor.UserID)
	}
	return s.moveLot(ctx, auctionID, models.StateEnAlmacen, models.StateSubasta, func(lot []models.ItemTransition) (models.Auction, error) {
		return s.auctions.AdjudicateAuction(ctx, auctionID, lot, s.now())
	}, string(models.AuctionAdjudicada))
}

// CompleteHandover records that the winner collected the lot
func (s *AuctionService) CompleteHandover(ctx context.Context, actor models.Actor, auctionID string, now time.Time) (models.Auction, error) {
	if !s.policy.Permits(actor, lifecycle.EdgeHandover) {
		return models.Auction{}, fmt.Errorf("service: %w - user %q may not record handovers", registryerrors.ErrUnauthorized, actor.UserID)
	}
	return s.moveLot(ctx, auctionID, models.StateSubasta, models.StateEntregado, func(lot []models.ItemTransition) (models.Auction, error) {
		return s.auctions.CompleteHandover(ctx, auctionID, lot, now)
	}, "handover")
}

// moveLot applies one item edge to every item of the auction's lot through
// apply, holding the auction key and every item key.
func (s *AuctionService) moveLot(
	ctx context.Context,
	auctionID string,
	from, to models.ItemState,
	apply func([]models.ItemTransition) (models.Auction, error),
	label string,
) (models.Auction, error) {
	a, err := s.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
	}
	lot, err := s.auctions.GetLot(ctx, a.LotID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to load lot %s: %w", a.LotID, err)
	}

	keys := []string{keylock.AuctionKey(auctionID)}
	transitions := make([]models.ItemTransition, 0, len(lot.ItemIDs))
	for _, id := range lot.ItemIDs {
		keys = append(keys, keylock.ItemKey(id))
		transitions = append(transitions, models.ItemTransition{ItemID: id, From: []models.ItemState{from}, To: to})
	}

	unlock := s.locks.LockMany(keys...)
	defer unlock()

	updated, err := apply(transitions)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: auction %s %s: %w", auctionID, label, err)
	}
	s.metrics.IncrementAuctionTransition(label)

	utils.Info("Auction lot moved", map[string]any{
		"auction_id": auctionID,
		"lot_id":     lot.LotID,
		"from":       from,
		"to":         to,
	})
	return updated, nil
}

// GetAuction returns one auction
func (s *AuctionService) GetAuction(ctx context.Context, auctionID string) (models.Auction, error) {
	a, err := s.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	return a, nil
}

// GetLot returns one lot
func (s *AuctionService) GetLot(ctx context.Context, lotID string) (models.Lot, error) {
	lot, err := s.auctions.GetLot(ctx, lotID)
	if err != nil {
		return models.Lot{}, fmt.Errorf("service: failed to get lot %s: %w", lotID, err)
	}
	return lot, nil
}
