package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lostfound-registry/internal/models"
	"lostfound-registry/internal/registryerrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToHTTP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err    error
		status int
	}{
		{registryerrors.ErrNotFound, http.StatusNotFound},
		{registryerrors.ErrNoBids, http.StatusNotFound},
		{registryerrors.ErrUnauthorized, http.StatusForbidden},
		{registryerrors.ErrBidTooLow, http.StatusConflict},
		{registryerrors.ErrConflict, http.StatusConflict},
		{registryerrors.ErrAuctionNotActive, http.StatusUnprocessableEntity},
		{registryerrors.ErrInvalidState, http.StatusUnprocessableEntity},
		{registryerrors.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{registryerrors.ErrInvalidBid, http.StatusBadRequest},
		{registryerrors.ErrInvalidItem, http.StatusBadRequest},
		{registryerrors.ErrInvalidLot, http.StatusBadRequest},
		{registryerrors.ErrInvalidSchedule, http.StatusBadRequest},
		{registryerrors.ErrInvalidQuery, http.StatusBadRequest},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.err.Error(), func(t *testing.T) {
			t.Parallel()
			wrapped := fmt.Errorf("service: outer: %w", tc.err)
			status, message := MapErrorToHTTP(wrapped)
			require.Equal(t, tc.status, status)
			require.NotEmpty(t, message)
		})
	}
}

func TestActorFromHeaders(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, " user1 ")
	req.Header.Set(HeaderUserRoles, "staff, admin,,citizen ")

	actor := ActorFromHeaders(req)
	require.Equal(t, "user1", actor.UserID)
	require.Equal(t, []models.Role{models.RoleStaff, models.RoleAdmin, models.RoleCitizen}, actor.Roles)

	anonymous := ActorFromHeaders(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Empty(t, anonymous.UserID)
	require.Empty(t, anonymous.Roles)
}

func TestRequireActor(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/stored", func(c *gin.Context) {
		SetActor(c, models.Actor{UserID: "stored"})
		if actor, ok := RequireActor(c, "test"); ok {
			c.JSON(http.StatusOK, gin.H{"user": actor.UserID})
		}
	})
	router.GET("/headers", func(c *gin.Context) {
		if actor, ok := RequireActor(c, "test"); ok {
			c.JSON(http.StatusOK, gin.H{"user": actor.UserID})
		}
	}, func(c *gin.Context) {
		// never reached once the request is aborted
		c.Header("X-Next-Handler", "ran")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stored", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"user":"stored"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/headers", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Empty(t, w.Header().Get("X-Next-Handler"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "missing caller identity", resp["message"])
	require.NotContains(t, resp, "error")
}
