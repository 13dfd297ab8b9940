package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auction-house/internal/auction"
	"auction-house/internal/catalog"
	"auction-house/internal/clock"
	model "auction-house/internal/models"
	"auction-house/internal/server"
	"auction-house/internal/session"
	"auction-house/internal/store"
	sessionhelpers "auction-house/services/session/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// testNow pins the clock so deadline checks are deterministic.
var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

// SetupTestRouter initializes the router with in-memory collaborators and
// the given auctions for black-box API testing.
func SetupTestRouter(auctions ...model.Auction) *gin.Engine {
	gin.SetMode(gin.TestMode)

	sessions := session.NewManager(store.NewMemoryStore())
	engine := auction.NewEngine(auction.DefaultIncrement)
	for _, a := range auctions {
		engine.Add(a)
	}
	return server.SetupRouter(sessions, engine, clock.Fixed{Instant: testNow})
}

// SetupSeededRouter initializes the router with the demo catalog.
func SetupSeededRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	sessions := session.NewManager(store.NewMemoryStore())
	engine := auction.NewEngine(auction.DefaultIncrement)
	for _, a := range catalog.Seed(testNow) {
		engine.Add(a)
	}
	return server.SetupRouter(sessions, engine, clock.Fixed{Instant: testNow})
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
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
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// LoginAs signs the shared session in so gated routes become reachable.
func LoginAs(t *testing.T, router *gin.Engine, email string) {
	t.Helper()
	_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auth/login",
		sessionhelpers.LoginRequest{Email: email, Password: "integration-pw"})
	require.Equal(t, http.StatusOK, w.Code, "login must succeed before exercising gated routes")
}

// openLot creates an open auction ending 24h after testNow.
func openLot(id string, currentBid int64) model.Auction {
	return model.Auction{
		ID:          id,
		Title:       "Lote " + id,
		Description: "Descripción del lote " + id,
		Category:    "Arte",
		Seller:      "vendedor",
		CurrentBid:  currentBid,
		EndTime:     testNow.Add(24 * time.Hour),
	}
}
