package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	model "lostfound-registry/internal/models"
	"lostfound-registry/internal/registryerrors"
)

// CreateLot stores a lot. An item may sit in one lot at a time unless its
// previous lot was returned after an auction without bids.
func (r *MemoryRepo) CreateLot(ctx context.Context, lot model.Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lots[lot.LotID]; ok {
		return fmt.Errorf("create lot %s: %w", lot.LotID, registryerrors.ErrConflict)
	}
	for _, itemID := range lot.ItemIDs {
		if _, ok := r.items[itemID]; !ok {
			return fmt.Errorf("create lot %s: item %s: %w", lot.LotID, itemID, registryerrors.ErrNotFound)
		}
		if current, ok := r.itemLots[itemID]; ok && r.lots[current].State != model.LotDevuelto {
			return fmt.Errorf("create lot %s: item %s already in lot %s: %w", lot.LotID, itemID, current, registryerrors.ErrConflict)
		}
	}

	for _, itemID := range lot.ItemIDs {
		r.itemLots[itemID] = lot.LotID
	}
	r.lots[lot.LotID] = cloneLot(lot)
	return nil
}

// GetLot returns one lot by id
func (r *MemoryRepo) GetLot(ctx context.Context, lotID string) (model.Lot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lot, ok := r.lots[lotID]
	if !ok {
		return model.Lot{}, fmt.Errorf("get lot %s: %w", lotID, registryerrors.ErrNotFound)
	}
	return cloneLot(lot), nil
}

// CreateAuction schedules an auction for a lot that is open or was
// returned, and marks the lot as being auctioned.
func (r *MemoryRepo) CreateAuction(ctx context.Context, auction model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auction.AuctionID]; ok {
		return fmt.Errorf("create auction %s: %w", auction.AuctionID, registryerrors.ErrConflict)
	}
	lot, ok := r.lots[auction.LotID]
	if !ok {
		return fmt.Errorf("create auction %s: lot %s: %w", auction.AuctionID, auction.LotID, registryerrors.ErrNotFound)
	}
	if lot.State != model.LotAbierto && lot.State != model.LotDevuelto {
		return fmt.Errorf("create auction %s: lot %s is %s: %w", auction.AuctionID, lot.LotID, lot.State, registryerrors.ErrInvalidState)
	}
	if live, ok := r.lotAuctions[lot.LotID]; ok {
		return fmt.Errorf("create auction %s: lot %s already has auction %s: %w", auction.AuctionID, lot.LotID, live, registryerrors.ErrConflict)
	}
	for _, itemID := range lot.ItemIDs {
		if r.itemLots[itemID] != lot.LotID {
			return fmt.Errorf("create auction %s: item %s moved to lot %s: %w", auction.AuctionID, itemID, r.itemLots[itemID], registryerrors.ErrConflict)
		}
	}

	lot.State = model.LotEnSubasta
	r.lots[lot.LotID] = lot
	r.lotAuctions[lot.LotID] = auction.AuctionID
	r.auctions[auction.AuctionID] = auction
	return nil
}

// GetAuction returns one auction by id
func (r *MemoryRepo) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, registryerrors.ErrNotFound)
	}
	return a, nil
}

// ListAuctions returns auctions in any of the given states (all when none)
// ordered by scheduled end.
func (r *MemoryRepo) ListAuctions(ctx context.Context, states ...model.AuctionState) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Auction, 0)
	for _, a := range r.auctions {
		if len(states) > 0 && !auctionStateIn(a.State, states) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EndsAt.Equal(out[j].EndsAt) {
			return out[i].EndsAt.Before(out[j].EndsAt)
		}
		return out[i].AuctionID < out[j].AuctionID
	})
	return out, nil
}

// OpenAuction moves PROGRAMADA to ACTIVA
func (r *MemoryRepo) OpenAuction(ctx context.Context, auctionID string, at time.Time) (model.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("open auction %s: %w", auctionID, registryerrors.ErrNotFound)
	}
	if a.State != model.AuctionProgramada {
		return a, fmt.Errorf("open auction %s in state %s: %w", auctionID, a.State, registryerrors.ErrInvalidState)
	}

	a.State = model.AuctionActiva
	a.OpenedAt = &at
	r.auctions[auctionID] = a
	return a, nil
}

// RecordBid is the compare-and-set admission primitive: the bid lands only
// if the auction is ACTIVA, the bid predates the end boundary, the current
// price still equals expectedPrice and the amount strictly exceeds it. The
// sequence number, current price, bid count and highest bidder are updated
// in the same critical section.
func (r *MemoryRepo) RecordBid(ctx context.Context, bid model.Bid, expectedPrice float64) (model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[bid.AuctionID]
	if !ok {
		return model.Bid{}, fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, registryerrors.ErrNotFound)
	}
	if a.State != model.AuctionActiva || !bid.SubmittedAt.Before(a.EndsAt) {
		return model.Bid{}, fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, registryerrors.ErrAuctionNotActive)
	}
	if a.CurrentPrice != expectedPrice {
		return model.Bid{}, fmt.Errorf("record bid for auction %s: price moved from %.2f to %.2f: %w", bid.AuctionID, expectedPrice, a.CurrentPrice, registryerrors.ErrConflict)
	}
	if bid.Amount <= a.CurrentPrice {
		return model.Bid{}, fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, registryerrors.ErrBidTooLow)
	}

	bid.Sequence = int64(a.BidCount) + 1
	r.bids[bid.AuctionID] = append(r.bids[bid.AuctionID], bid)

	a.CurrentPrice = bid.Amount
	a.BidCount++
	a.HighestBidID = bid.BidID
	a.HighestBidderID = bid.BidderID
	r.auctions[bid.AuctionID] = a
	return bid, nil
}

// ListBids returns an auction's bids in sequence order
func (r *MemoryRepo) ListBids(ctx context.Context, auctionID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("list bids for auction %s: %w", auctionID, registryerrors.ErrNotFound)
	}
	return append(make([]model.Bid, 0, len(r.bids[auctionID])), r.bids[auctionID]...), nil
}

// CloseAuction moves ACTIVA to CERRADA and records the winner. Without a
// winner the lot goes back to DEVUELTO for administrative re-evaluation.
func (r *MemoryRepo) CloseAuction(ctx context.Context, auctionID string, at time.Time, winner *model.Bid) (model.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("close auction %s: %w", auctionID, registryerrors.ErrNotFound)
	}
	if a.State != model.AuctionActiva {
		return a, fmt.Errorf("close auction %s in state %s: %w", auctionID, a.State, registryerrors.ErrInvalidState)
	}

	a.State = model.AuctionCerrada
	a.ClosedAt = &at
	if winner != nil {
		a.WinningBidID = winner.BidID
		a.WinnerID = winner.BidderID
	} else {
		lot := r.lots[a.LotID]
		lot.State = model.LotDevuelto
		r.lots[a.LotID] = lot
		delete(r.lotAuctions, a.LotID)
	}
	r.auctions[auctionID] = a
	return a, nil
}

// AdjudicateAuction moves a CERRADA auction with a winner to ADJUDICADA,
// marks its lot ADJUDICADO and applies the item transitions atomically.
func (r *MemoryRepo) AdjudicateAuction(ctx context.Context, auctionID string, transitions []model.ItemTransition, at time.Time) (model.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("adjudicate auction %s: %w", auctionID, registryerrors.ErrNotFound)
	}
	if a.State != model.AuctionCerrada || a.WinningBidID == "" {
		return model.Auction{}, fmt.Errorf("adjudicate auction %s in state %s: %w", auctionID, a.State, registryerrors.ErrInvalidState)
	}
	if err := r.checkTransitionsLocked(transitions); err != nil {
		return model.Auction{}, fmt.Errorf("adjudicate auction %s: %w", auctionID, err)
	}

	r.applyTransitionsLocked(transitions, at)
	lot := r.lots[a.LotID]
	lot.State = model.LotAdjudicado
	r.lots[a.LotID] = lot
	a.State = model.AuctionAdjudicada
	a.AdjudicatedAt = &at
	r.auctions[auctionID] = a
	return a, nil
}

// CompleteHandover records the handover of an adjudicated auction's items
func (r *MemoryRepo) CompleteHandover(ctx context.Context, auctionID string, transitions []model.ItemTransition, at time.Time) (model.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("complete handover %s: %w", auctionID, registryerrors.ErrNotFound)
	}
	if a.State != model.AuctionAdjudicada || a.HandedOverAt != nil {
		return model.Auction{}, fmt.Errorf("complete handover %s in state %s: %w", auctionID, a.State, registryerrors.ErrInvalidState)
	}
	if err := r.checkTransitionsLocked(transitions); err != nil {
		return model.Auction{}, fmt.Errorf("complete handover %s: %w", auctionID, err)
	}

	r.applyTransitionsLocked(transitions, at)
	a.HandedOverAt = &at
	r.auctions[auctionID] = a
	return a, nil
}

func auctionStateIn(s model.AuctionState, states []model.AuctionState) bool {
	for _, c := range states {
		if c == s {
			return true
		}
	}
	return false
}

func cloneLot(lot model.Lot) model.Lot {
	lot.ItemIDs = append([]string(nil), lot.ItemIDs...)
	return lot
}
