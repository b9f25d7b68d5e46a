package handler

import (
	"context"
	"net/http"
	"strings"

	model "lostfound-registry/internal/models"
	"lostfound-registry/services/httpx"
	"lostfound-registry/services/matching/helpers"
	"lostfound-registry/utils"

	"github.com/gin-gonic/gin"
)

type MatchingServiceInterface interface {
	RequestCandidates(ctx context.Context, itemID string, actor model.Actor) ([]model.Match, error)
	Confirm(ctx context.Context, matchID string, actor model.Actor) (model.Match, error)
	Discard(ctx context.Context, matchID string, actor model.Actor) (model.Match, error)
	ListMatches(ctx context.Context, state model.ReviewState) ([]model.Match, error)
	GetMatch(ctx context.Context, matchID string) (model.Match, error)
}

type MatchingHandler struct {
	service MatchingServiceInterface
}

func NewMatchingHandler(service MatchingServiceInterface) *MatchingHandler {
	return &MatchingHandler{service: service}
}

// GenerateCandidatesHandler handles POST /items/:item_id/matches
func (h *MatchingHandler) GenerateCandidatesHandler(c *gin.Context) {
	actor, ok := httpx.RequireActor(c, "GenerateCandidatesHandler")
	if !ok {
		return
	}

	itemID := c.Param("item_id")
	matches, err := h.service.RequestCandidates(c.Request.Context(), itemID, actor)
	if err != nil {
		httpx.HandleServiceError(c, "GenerateCandidatesHandler", err, map[string]any{"item_id": itemID, "user_id": actor.UserID})
		return
	}
	if matches == nil {
		matches = []model.Match{}
	}

	resp := helpers.CandidatesResponse{ItemID: itemID, Count: len(matches), Matches: matches}
	utils.JSONResponse(c, http.StatusOK, resp, "candidates generated successfully")
	httpx.LogSuccess("GenerateCandidatesHandler", "candidates generated successfully", map[string]any{
		"item_id": itemID,
		"count":   len(matches),
	})
}

// ListMatchesHandler handles GET /matches?state=
func (h *MatchingHandler) ListMatchesHandler(c *gin.Context) {
	var q helpers.ListMatchesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpx.HandleBindError(c, "ListMatchesHandler", err)
		return
	}

	state := model.ReviewState(strings.ToUpper(strings.TrimSpace(q.State)))
	matches, err := h.service.ListMatches(c.Request.Context(), state)
	if err != nil {
		httpx.HandleServiceError(c, "ListMatchesHandler", err, map[string]any{"state": state})
		return
	}
	if matches == nil {
		matches = []model.Match{}
	}

	utils.JSONResponse(c, http.StatusOK, matches, "matches retrieved successfully")
	httpx.LogSuccess("ListMatchesHandler", "matches retrieved successfully", map[string]any{
		"state": state,
		"count": len(matches),
	})
}

// GetMatchHandler handles GET /matches/:match_id
func (h *MatchingHandler) GetMatchHandler(c *gin.Context) {
	matchID := c.Param("match_id")
	m, err := h.service.GetMatch(c.Request.Context(), matchID)
	if err != nil {
		httpx.HandleServiceError(c, "GetMatchHandler", err, map[string]any{"match_id": matchID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, m, "match retrieved successfully")
}

// ConfirmMatchHandler handles POST /matches/:match_id/confirm
func (h *MatchingHandler) ConfirmMatchHandler(c *gin.Context) {
	h.review(c, "ConfirmMatchHandler", h.service.Confirm, "match confirmed successfully")
}

// DiscardMatchHandler handles POST /matches/:match_id/discard
func (h *MatchingHandler) DiscardMatchHandler(c *gin.Context) {
	h.review(c, "DiscardMatchHandler", h.service.Discard, "match discarded successfully")
}

type reviewFunc func(ctx context.Context, matchID string, actor model.Actor) (model.Match, error)

func (h *MatchingHandler) review(c *gin.Context, name string, review reviewFunc, message string) {
	actor, ok := httpx.RequireActor(c, name)
	if !ok {
		return
	}

	matchID := c.Param("match_id")
	m, err := review(c.Request.Context(), matchID, actor)
	if err != nil {
		httpx.HandleServiceError(c, name, err, map[string]any{"match_id": matchID, "user_id": actor.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, m, message)
	httpx.LogSuccess(name, message, map[string]any{
		"match_id":    matchID,
		"state":       m.State,
		"reviewed_by": actor.UserID,
	})
}
