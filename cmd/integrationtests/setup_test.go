package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	auction "lostfound-registry/internal/auctionService"
	bidding "lostfound-registry/internal/biddingService"
	"lostfound-registry/internal/keylock"
	"lostfound-registry/internal/lifecycle"
	matching "lostfound-registry/internal/matchingService"
	"lostfound-registry/internal/metrics"
	"lostfound-registry/internal/notify"
	registry "lostfound-registry/internal/registryService"
	"lostfound-registry/internal/repository"
	"lostfound-registry/internal/scoring"
	"lostfound-registry/internal/server"
	"lostfound-registry/services/httpx"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// TestEnv is a fully wired registry over the in-memory store
type TestEnv struct {
	Router   *gin.Engine
	Repo     *repository.MemoryRepo
	Auctions *auction.AuctionService
	Metrics  *metrics.Metrics
}

// Caller is the identity a request is sent with; zero means anonymous
type Caller struct {
	UserID string
	Roles  string
}

var (
	Anonymous = Caller{}
	Staff     = Caller{UserID: "clerk1", Roles: "STAFF"}
)

// Citizen returns a caller with the citizen role
func Citizen(id string) Caller {
	return Caller{UserID: id, Roles: "CITIZEN"}
}

// SetupTestRouter wires every service the way main does, with no retention
// window so registered items can be auctioned right away.
func SetupTestRouter(t *testing.T) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	scorer, err := scoring.New(scoring.DefaultWeights(), 1)
	if err != nil {
		t.Fatalf("failed to build scorer: %v", err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	repo := repository.NewMemoryRepo()
	locks := keylock.New()
	policy := lifecycle.DefaultPolicy()

	ctx, cancel := context.WithCancel(context.Background())
	dispatcher := notify.NewDispatcher(notify.LogSink{}, 64, m)
	go func() { _ = dispatcher.Run(ctx) }()
	t.Cleanup(cancel)

	matchingSvc := matching.NewMatchingService(repo, repo, scorer, policy, locks, dispatcher, m, matching.Options{Threshold: 30, Workers: 4})
	registrySvc := registry.NewRegistryService(repo, policy, locks, matchingSvc)
	biddingSvc := bidding.NewBiddingService(repo, locks, dispatcher, m)
	auctionSvc := auction.NewAuctionService(repo, repo, policy, locks, dispatcher, m, 0)

	router := server.SetupRouter(server.Services{
		Items:    registrySvc,
		Matching: matchingSvc,
		Bidding:  biddingSvc,
		Auctions: auctionSvc,
		Metrics:  reg,
	})
	return &TestEnv{Router: router, Repo: repo, Auctions: auctionSvc, Metrics: m}
}

// ExecuteRequestAndParse executes an HTTP request on the given router as caller
// and parses the response. Successful responses are unwrapped to their data.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, caller Caller, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if caller.UserID != "" {
		req.Header.Set(httpx.HeaderUserID, caller.UserID)
		req.Header.Set(httpx.HeaderUserRoles, caller.Roles)
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}

		if w.Code < 300 {
			if data, ok := resp["data"].(map[string]any); ok {
				resp = data
			}
		}
	}

	return resp, w
}

// ExecuteListRequest executes a GET request whose data is a list
func ExecuteListRequest(t *testing.T, router *gin.Engine, url string) ([]any, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", url, nil))

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	list, _ := resp["data"].([]any)
	return list, w
}
