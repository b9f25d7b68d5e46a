package bidding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"lostfound-registry/internal/keylock"
	"lostfound-registry/internal/metrics"
	"lostfound-registry/internal/models"
	"lostfound-registry/internal/notify"
	"lostfound-registry/internal/registryerrors"
	"lostfound-registry/internal/repository"
	"lostfound-registry/utils"
)

// BiddingService is the bid admission engine. Admission for one auction is
// serialized on that auction's key, the same key the auction manager holds
// while closing, so a bid is either fully admitted before close or rejected.
type BiddingService struct {
	auctions repository.AuctionStore
	locks    *keylock.Locker
	notifier notify.Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(auctions repository.AuctionStore, locks *keylock.Locker, notifier notify.Notifier, m *metrics.Metrics) *BiddingService {
	return &BiddingService{
		auctions: auctions,
		locks:    locks,
		notifier: notifier,
		metrics:  m,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock PlaceBid stamps bids with
func (s *BiddingService) WithClock(now func() time.Time) *BiddingService {
	s.now = now
	return s
}

// PlaceBid submits a bid stamped with the current time
func (s *BiddingService) PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (models.Bid, error) {
	return s.SubmitBid(ctx, auctionID, bidderID, amount, s.now())
}

// SubmitBid admits a bid if the auction is ACTIVA, submittedAt is inside
// [StartsAt, EndsAt) and amount strictly exceeds the current price. On
// success the previous highest bidder is told they were outbid.
func (s *BiddingService) SubmitBid(ctx context.Context, auctionID, bidderID string, amount float64, submittedAt time.Time) (models.Bid, error) {
	start := time.Now()
	defer s.metrics.ObserveBidAdmission(start)

	bid, previous, err := s.admit(ctx, auctionID, bidderID, amount, submittedAt)
	if err != nil {
		s.metrics.IncrementBidRejected(rejectReason(err))
		return models.Bid{}, err
	}
	s.metrics.IncrementBidAdmitted()

	if previous.HighestBidderID != "" && previous.HighestBidderID != bidderID {
		s.notifier.Notify(ctx, previous.HighestBidderID, notify.EventOutbid, map[string]any{
			"auction_id":    auctionID,
			"your_amount":   previous.CurrentPrice,
			"current_price": bid.Amount,
		})
	}

	utils.Debug("Bid admitted", map[string]any{
		"auction_id": auctionID,
		"bid_id":     bid.BidID,
		"bidder_id":  bidderID,
		"amount":     bid.Amount,
		"sequence":   bid.Sequence,
	})
	return bid, nil
}

// admit runs the check-and-record step under the auction lock and returns
// the auction as it was before the bid landed.
func (s *BiddingService) admit(ctx context.Context, auctionID, bidderID string, amount float64, submittedAt time.Time) (models.Bid, models.Auction, error) {
	if err := validateBid(auctionID, bidderID, amount, submittedAt); err != nil {
		return models.Bid{}, models.Auction{}, err
	}

	unlock := s.locks.Lock(keylock.AuctionKey(auctionID))
	defer unlock()

	a, err := s.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Bid{}, models.Auction{}, fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
	}
	if a.State != models.AuctionActiva {
		return models.Bid{}, models.Auction{}, fmt.Errorf("service: %w - auction %s is %s", registryerrors.ErrAuctionNotActive, auctionID, a.State)
	}
	if submittedAt.Before(a.StartsAt) || !submittedAt.Before(a.EndsAt) {
		return models.Bid{}, models.Auction{}, fmt.Errorf("service: %w - bid at %s outside [%s, %s)",
			registryerrors.ErrAuctionNotActive, submittedAt.Format(time.RFC3339Nano), a.StartsAt.Format(time.RFC3339Nano), a.EndsAt.Format(time.RFC3339Nano))
	}
	if amount <= a.CurrentPrice {
		return models.Bid{}, models.Auction{}, fmt.Errorf("service: %w - current price is %.2f", registryerrors.ErrBidTooLow, a.CurrentPrice)
	}

	recorded, err := s.auctions.RecordBid(ctx, models.Bid{
		BidID:       utils.GenerateID(),
		AuctionID:   auctionID,
		BidderID:    bidderID,
		Amount:      amount,
		SubmittedAt: submittedAt,
	}, a.CurrentPrice)
	if err != nil {
		return models.Bid{}, models.Auction{}, fmt.Errorf("service: failed to record bid on auction %s by %s: %w", auctionID, bidderID, err)
	}
	return recorded, a, nil
}

func validateBid(auctionID, bidderID string, amount float64, submittedAt time.Time) error {
	if auctionID == "" || bidderID == "" {
		return fmt.Errorf("service: %w - missing auctionID or bidderID", registryerrors.ErrInvalidBid)
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("service: %w - non-positive bid amount", registryerrors.ErrInvalidBid)
	}
	if submittedAt.IsZero() {
		return fmt.Errorf("service: %w - missing submission time", registryerrors.ErrInvalidBid)
	}
	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, registryerrors.ErrBidTooLow):
		return "too_low"
	case errors.Is(err, registryerrors.ErrAuctionNotActive):
		return "not_active"
	case errors.Is(err, registryerrors.ErrInvalidBid):
		return "invalid"
	case errors.Is(err, registryerrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, registryerrors.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

// GetBids returns all bids of an auction in sequence order
func (s *BiddingService) GetBids(ctx context.Context, auctionID string) ([]models.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", registryerrors.ErrInvalidBid)
	}

	bids, err := s.auctions.ListBids(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// GetWinningBid returns the current highest bid of an auction
func (s *BiddingService) GetWinningBid(ctx context.Context, auctionID string) (models.Bid, error) {
	bids, err := s.GetBids(ctx, auctionID)
	if err != nil {
		return models.Bid{}, err
	}
	winner, ok := SelectWinner(bids)
	if !ok {
		return models.Bid{}, fmt.Errorf("service: auction %s: %w", auctionID, registryerrors.ErrNoBids)
	}
	return winner, nil
}

// SelectWinner picks the highest amount, earliest sequence on equal amounts
func SelectWinner(bids []models.Bid) (models.Bid, bool) {
	if len(bids) == 0 {
		return models.Bid{}, false
	}
	best := bids[0]
	for _, b := range bids[1:] {
		if b.Amount > best.Amount || (b.Amount == best.Amount && b.Sequence < best.Sequence) {
			best = b
		}
	}
	return best, true
}
