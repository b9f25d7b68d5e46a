// Package httpx holds what every HTTP adapter shares: identity lookup,
// error to status mapping and the success log line.
package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"lostfound-registry/internal/models"
	"lostfound-registry/internal/registryerrors"
	"lostfound-registry/utils"

	"github.com/gin-gonic/gin"
)

// Headers set by the upstream identity provider
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserRoles = "X-User-Roles"
)

const actorKey = "actor"

// ActorFromHeaders reads the caller identity. Roles are comma separated and
// case insensitive.
func ActorFromHeaders(r *http.Request) models.Actor {
	actor := models.Actor{UserID: strings.TrimSpace(r.Header.Get(HeaderUserID))}
	for _, role := range strings.Split(r.Header.Get(HeaderUserRoles), ",") {
		role = strings.ToUpper(strings.TrimSpace(role))
		if role != "" {
			actor.Roles = append(actor.Roles, models.Role(role))
		}
	}
	return actor
}

// SetActor stores the caller identity on the request context
func SetActor(c *gin.Context, actor models.Actor) {
	c.Set(actorKey, actor)
}

// Actor returns the caller identity, falling back to the request headers
// when no middleware stored one
func Actor(c *gin.Context) models.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(models.Actor); ok {
			return actor
		}
	}
	return ActorFromHeaders(c.Request)
}

// RequireActor answers 401 for anonymous callers
func RequireActor(c *gin.Context, handlerName string) (models.Actor, bool) {
	actor := Actor(c)
	if actor.UserID == "" {
		utils.AbortJSONError(c, http.StatusUnauthorized, nil, "missing caller identity")
		utils.Warn(handlerName+": anonymous request", map[string]any{"path": c.Request.URL.Path})
		return models.Actor{}, false
	}
	return actor, true
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// HandleServiceError maps err, answers with the envelope and logs it
func HandleServiceError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, registryerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for auction"
	case errors.Is(err, registryerrors.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, registryerrors.ErrUnauthorized):
		return http.StatusForbidden, "operation not permitted"
	case errors.Is(err, registryerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, registryerrors.ErrConflict):
		return http.StatusConflict, "concurrent update, retry"
	case errors.Is(err, registryerrors.ErrAuctionNotActive):
		return http.StatusUnprocessableEntity, "auction not active"
	case errors.Is(err, registryerrors.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, "transition not allowed"
	case errors.Is(err, registryerrors.ErrInvalidState):
		return http.StatusUnprocessableEntity, "operation not allowed in current state"
	case errors.Is(err, registryerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, registryerrors.ErrInvalidItem):
		return http.StatusBadRequest, "invalid item details"
	case errors.Is(err, registryerrors.ErrInvalidLot):
		return http.StatusBadRequest, "invalid lot details"
	case errors.Is(err, registryerrors.ErrInvalidSchedule):
		return http.StatusBadRequest, "invalid auction schedule"
	case errors.Is(err, registryerrors.ErrInvalidQuery):
		return http.StatusBadRequest, "invalid query"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
