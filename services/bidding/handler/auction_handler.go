package handler

import (
	"context"
	"net/http"
	"time"

	model "lostfound-registry/internal/models"
	"lostfound-registry/services/bidding/helpers"
	"lostfound-registry/services/httpx"
	"lostfound-registry/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	CreateLot(ctx context.Context, actor model.Actor, itemIDs []string, now time.Time) (model.Lot, error)
	ScheduleAuction(ctx context.Context, actor model.Actor, lotID string, startingPrice float64, startsAt, endsAt time.Time) (model.Auction, error)
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	CloseAuction(ctx context.Context, actor model.Actor, auctionID string, now time.Time) (model.Auction, error)
	Adjudicate(ctx context.Context, actor model.Actor, auctionID string) (model.Auction, error)
	CompleteHandover(ctx context.Context, actor model.Actor, auctionID string, now time.Time) (model.Auction, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
	now     func() time.Time
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service, now: func() time.Time { return time.Now().UTC() }}
}

// CreateLotHandler handles POST /lots
func (h *AuctionHandler) CreateLotHandler(c *gin.Context) {
	actor, ok := httpx.RequireActor(c, "CreateLotHandler")
	if !ok {
		return
	}

	var req helpers.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.HandleBindError(c, "CreateLotHandler", err)
		return
	}

	lot, err := h.service.CreateLot(c.Request.Context(), actor, req.ItemIDs, h.now())
	if err != nil {
		httpx.HandleServiceError(c, "CreateLotHandler", err, map[string]any{"user_id": actor.UserID, "items": req.ItemIDs})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, lot, "lot created successfully")
	httpx.LogSuccess("CreateLotHandler", "lot created successfully", map[string]any{
		"lot_id":  lot.LotID,
		"items":   len(lot.ItemIDs),
		"user_id": actor.UserID,
	})
}

// ScheduleAuctionHandler handles POST /lots/:lot_id/auctions
func (h *AuctionHandler) ScheduleAuctionHandler(c *gin.Context) {
	actor, ok := httpx.RequireActor(c, "ScheduleAuctionHandler")
	if !ok {
		return
	}

	var req helpers.ScheduleAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.HandleBindError(c, "ScheduleAuctionHandler", err)
		return
	}

	lotID := c.Param("lot_id")
	a, err := h.service.ScheduleAuction(c.Request.Context(), actor, lotID, req.StartingPrice, req.StartsAt, req.EndsAt)
	if err != nil {
		httpx.HandleServiceError(c, "ScheduleAuctionHandler", err, map[string]any{"lot_id": lotID, "user_id": actor.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, a, "auction scheduled successfully")
	httpx.LogSuccess("ScheduleAuctionHandler", "auction scheduled successfully", map[string]any{
		"auction_id": a.AuctionID,
		"lot_id":     lotID,
		"starts_at":  a.StartsAt,
		"ends_at":    a.EndsAt,
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	a, err := h.service.GetAuction(c.Request.Context(), auctionID)
	if err != nil {
		httpx.HandleServiceError(c, "GetAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, a, "auction retrieved successfully")
}

// CloseAuctionHandler handles POST /auctions/:auction_id/close
func (h *AuctionHandler) CloseAuctionHandler(c *gin.Context) {
	h.staffAction(c, "CloseAuctionHandler", "auction closed successfully",
		func(ctx context.Context, actor model.Actor, auctionID string) (model.Auction, error) {
			return h.service.CloseAuction(ctx, actor, auctionID, h.now())
		})
}

// AdjudicateHandler handles POST /auctions/:auction_id/adjudicate
func (h *AuctionHandler) AdjudicateHandler(c *gin.Context) {
	h.staffAction(c, "AdjudicateHandler", "auction adjudicated successfully", h.service.Adjudicate)
}

// HandoverHandler handles POST /auctions/:auction_id/handover
func (h *AuctionHandler) HandoverHandler(c *gin.Context) {
	h.staffAction(c, "HandoverHandler", "handover recorded successfully",
		func(ctx context.Context, actor model.Actor, auctionID string) (model.Auction, error) {
			return h.service.CompleteHandover(ctx, actor, auctionID, h.now())
		})
}

type auctionAction func(ctx context.Context, actor model.Actor, auctionID string) (model.Auction, error)

func (h *AuctionHandler) staffAction(c *gin.Context, name, message string, action auctionAction) {
	actor, ok := httpx.RequireActor(c, name)
	if !ok {
		return
	}

	auctionID := c.Param("auction_id")
	a, err := action(c.Request.Context(), actor, auctionID)
	if err != nil {
		httpx.HandleServiceError(c, name, err, map[string]any{"auction_id": auctionID, "user_id": actor.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, a, message)
	httpx.LogSuccess(name, message, map[string]any{
		"auction_id": auctionID,
		"state":      a.State,
		"user_id":    actor.UserID,
	})
}
