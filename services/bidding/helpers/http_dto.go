package helpers

import (
	"time"

	model "lostfound-registry/internal/models"
)

// Request/Response DTOs
type PlaceBidRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID       string  `json:"bid_id"`
	AuctionID   string  `json:"auction_id"`
	BidderID    string  `json:"bidder_id"`
	Amount      float64 `json:"amount"`
	Sequence    int64   `json:"sequence"`
	SubmittedAt string  `json:"submitted_at"`
}

type CreateLotRequest struct {
	ItemIDs []string `json:"item_ids" binding:"required,min=1,dive,required"`
}

type ScheduleAuctionRequest struct {
	StartingPrice float64   `json:"starting_price" binding:"required,gt=0"`
	StartsAt      time.Time `json:"starts_at" binding:"required"`
	EndsAt        time.Time `json:"ends_at" binding:"required"`
}

// NewBidResponse renders a bid with an RFC 3339 submission time
func NewBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		BidID:       bid.BidID,
		AuctionID:   bid.AuctionID,
		BidderID:    bid.BidderID,
		Amount:      bid.Amount,
		Sequence:    bid.Sequence,
		SubmittedAt: bid.SubmittedAt.UTC().Format(time.RFC3339Nano),
	}
}
