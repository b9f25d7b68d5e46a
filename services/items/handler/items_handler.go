package handler

import (
	"context"
	"net/http"
	"strings"

	model "lostfound-registry/internal/models"
	"lostfound-registry/services/httpx"
	"lostfound-registry/services/items/helpers"
	"lostfound-registry/utils"

	"github.com/gin-gonic/gin"
)

type ItemServiceInterface interface {
	RegisterLost(ctx context.Context, actor model.Actor, item model.Item) (model.Item, error)
	RegisterFound(ctx context.Context, actor model.Actor, item model.Item) (model.Item, error)
	GetItem(ctx context.Context, itemID string) (model.Item, error)
	AddPhoto(ctx context.Context, actor model.Actor, itemID string, photo model.Photo) (model.Photo, error)
	Transition(ctx context.Context, itemID string, target model.ItemState, actor model.Actor) (model.Item, error)
}

type ItemsHandler struct {
	service ItemServiceInterface
}

func NewItemsHandler(service ItemServiceInterface) *ItemsHandler {
	return &ItemsHandler{service: service}
}

// RegisterLostHandler handles POST /items/lost
func (h *ItemsHandler) RegisterLostHandler(c *gin.Context) {
	h.register(c, "RegisterLostHandler", h.service.RegisterLost, "lost item registered successfully")
}

// RegisterFoundHandler handles POST /items/found
func (h *ItemsHandler) RegisterFoundHandler(c *gin.Context) {
	h.register(c, "RegisterFoundHandler", h.service.RegisterFound, "found item registered successfully")
}

type registerFunc func(ctx context.Context, actor model.Actor, item model.Item) (model.Item, error)

func (h *ItemsHandler) register(c *gin.Context, name string, register registerFunc, message string) {
	actor, ok := httpx.RequireActor(c, name)
	if !ok {
		return
	}

	var req helpers.RegisterItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.HandleBindError(c, name, err)
		return
	}

	item, err := register(c.Request.Context(), actor, req.ToItem())
	if err != nil {
		httpx.HandleServiceError(c, name, err, map[string]any{"user_id": actor.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, item, message)
	httpx.LogSuccess(name, message, map[string]any{
		"item_id":       item.ItemID,
		"kind":          item.Kind,
		"registry_code": item.RegistryCode,
		"user_id":       actor.UserID,
	})
}

// GetItemHandler handles GET /items/:item_id
func (h *ItemsHandler) GetItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	item, err := h.service.GetItem(c.Request.Context(), itemID)
	if err != nil {
		httpx.HandleServiceError(c, "GetItemHandler", err, map[string]any{"item_id": itemID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, item, "item retrieved successfully")
}

// TransitionHandler handles POST /items/:item_id/transitions
func (h *ItemsHandler) TransitionHandler(c *gin.Context) {
	actor, ok := httpx.RequireActor(c, "TransitionHandler")
	if !ok {
		return
	}

	var req helpers.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.HandleBindError(c, "TransitionHandler", err)
		return
	}

	itemID := c.Param("item_id")
	target := model.ItemState(strings.ToUpper(strings.TrimSpace(req.Target)))
	item, err := h.service.Transition(c.Request.Context(), itemID, target, actor)
	if err != nil {
		httpx.HandleServiceError(c, "TransitionHandler", err, map[string]any{
			"item_id": itemID,
			"target":  target,
			"user_id": actor.UserID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, item, "item transitioned successfully")
	httpx.LogSuccess("TransitionHandler", "item transitioned successfully", map[string]any{
		"item_id": itemID,
		"state":   item.State,
		"user_id": actor.UserID,
	})
}

// AddPhotoHandler handles POST /items/:item_id/photos
func (h *ItemsHandler) AddPhotoHandler(c *gin.Context) {
	actor, ok := httpx.RequireActor(c, "AddPhotoHandler")
	if !ok {
		return
	}

	var req helpers.AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.HandleBindError(c, "AddPhotoHandler", err)
		return
	}

	itemID := c.Param("item_id")
	photo, err := h.service.AddPhoto(c.Request.Context(), actor, itemID, model.Photo{URL: req.URL, Primary: req.Primary})
	if err != nil {
		httpx.HandleServiceError(c, "AddPhotoHandler", err, map[string]any{"item_id": itemID, "user_id": actor.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, photo, "photo added successfully")
	httpx.LogSuccess("AddPhotoHandler", "photo added successfully", map[string]any{
		"item_id":  itemID,
		"photo_id": photo.PhotoID,
		"primary":  photo.Primary,
	})
}
