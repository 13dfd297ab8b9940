package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/clock"
	model "auction-house/internal/models"
	"auction-house/services/auction/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

// newTestRouter wires the handler behind a stub gate that injects a fixed
// session user, mirroring the production middleware.
func newTestRouter(h *AuctionHandler, user *model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if user != nil {
		router.Use(func(c *gin.Context) {
			c.Set(CurrentUserKey, *user)
			c.Next()
		})
	}
	router.GET("/auctions", h.ListAuctionsHandler)
	router.GET("/categories", h.ListCategoriesHandler)
	router.GET("/auctions/:auction_id", h.GetAuctionHandler)
	router.GET("/auctions/:auction_id/bids", h.ListBidsHandler)
	router.POST("/auctions/:auction_id/bids", h.PlaceBidHandler)
	router.GET("/auctions/:auction_id/remaining", h.RemainingTimeHandler)
	return router
}

func doRequest(router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		data, _ := json.Marshal(v)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func openAuction(id string) model.Auction {
	return model.Auction{
		ID:          id,
		Title:       "Reloj Vintage de Colección",
		Description: "Reloj de los años 50.",
		Category:    "Antigüedades",
		Seller:      "AntiqueCollector",
		CurrentBid:  450,
		MinNextBid:  460,
		Increment:   10,
		EndTime:     testNow.Add(24 * time.Hour),
	}
}

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService, clock.Fixed{Instant: testNow})

	tests := []struct {
		name           string
		url            string
		body           any
		user           *model.User
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "success_valid_bid",
			url:  "/auctions/1/bids",
			body: helpers.PlaceBidRequest{Amount: 460},
			user: &model.User{ID: "u1", DisplayName: "alice", Email: "alice@example.com"},
			mockSetup: func() {
				accepted := openAuction("1")
				accepted.CurrentBid = 460
				accepted.MinNextBid = 470
				accepted.BidHistory = []model.BidRecord{{BidderID: "alice", Amount: 460, Timestamp: testNow}}
				mockService.EXPECT().
					PlaceBid("1", "alice", int64(460), testNow).
					Return(accepted, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid placed successfully",
		},
		{
			name:           "invalid_json",
			url:            "/auctions/1/bids",
			body:           `{amount: nope}`,
			user:           &model.User{DisplayName: "alice"},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "missing_amount",
			url:            "/auctions/1/bids",
			body:           map[string]any{},
			user:           &model.User{DisplayName: "alice"},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "no_session_user",
			url:            "/auctions/1/bids",
			body:           helpers.PlaceBidRequest{Amount: 460},
			user:           nil,
			mockSetup:      func() {},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "authentication required",
		},
		{
			name: "auction_not_found",
			url:  "/auctions/missing/bids",
			body: helpers.PlaceBidRequest{Amount: 460},
			user: &model.User{DisplayName: "alice"},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid("missing", "alice", int64(460), testNow).
					Return(model.Auction{}, fmt.Errorf("engine: missing: %w", auctionerrors.ErrAuctionNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "auction not found",
		},
		{
			name: "auction_closed",
			url:  "/auctions/1/bids",
			body: helpers.PlaceBidRequest{Amount: 460},
			user: &model.User{DisplayName: "alice"},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid("1", "alice", int64(460), testNow).
					Return(model.Auction{}, fmt.Errorf("engine: 1: %w", auctionerrors.ErrAuctionClosed))
			},
			expectedStatus: http.StatusGone,
			expectedMsg:    "auction has ended",
		},
		{
			name: "bid_too_low",
			url:  "/auctions/1/bids",
			body: helpers.PlaceBidRequest{Amount: 455},
			user: &model.User{DisplayName: "bob"},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid("1", "bob", int64(455), testNow).
					Return(model.Auction{}, fmt.Errorf("engine: 1: %w", &auctionerrors.BidTooLowError{Required: 460}))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "bid amount too low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			router := newTestRouter(handler, tc.user)
			w := doRequest(router, http.MethodPost, tc.url, tc.body)
			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Equal(t, tc.expectedMsg, resp["message"])

			if tc.expectedStatus == http.StatusCreated {
				data := resp["data"].(map[string]any)
				require.Equal(t, 460.0, data["current_bid"])
				require.Equal(t, 470.0, data["min_next_bid"])
				history := data["bid_history"].([]any)
				require.Len(t, history, 1)
				head := history[0].(map[string]any)
				require.Equal(t, "alice", head["bidder_id"])
			}
		})
	}
}

// Test ListAuctionsHandler filtering
func TestListAuctionsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService, clock.Fixed{Instant: testNow})
	router := newTestRouter(handler, &model.User{DisplayName: "alice"})

	catalog := []model.Auction{
		openAuction("1"),
		{ID: "2", Title: "Cuadro de Arte Moderno", Description: "Obra original.", Category: "Arte", CurrentBid: 1200, EndTime: testNow.Add(48 * time.Hour)},
	}

	tests := []struct {
		name        string
		url         string
		expectedIDs []string
	}{
		{name: "no_filter", url: "/auctions", expectedIDs: []string{"1", "2"}},
		{name: "query_reloj", url: "/auctions?q=reloj", expectedIDs: []string{"1"}},
		{name: "category_arte", url: "/auctions?category=Arte", expectedIDs: []string{"2"}},
		{name: "no_match", url: "/auctions?q=submarino", expectedIDs: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService.EXPECT().List().Return(catalog)

			w := doRequest(router, http.MethodGet, tc.url, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			data := resp["data"].([]any)

			ids := make([]string, 0, len(data))
			for _, item := range data {
				ids = append(ids, item.(map[string]any)["auction_id"].(string))
			}
			require.Equal(t, tc.expectedIDs, ids)
		})
	}
}

// Test GetAuctionHandler
func TestGetAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService, clock.Fixed{Instant: testNow})
	router := newTestRouter(handler, &model.User{DisplayName: "alice"})

	t.Run("found_includes_history", func(t *testing.T) {
		a := openAuction("1")
		a.BidHistory = []model.BidRecord{
			{BidderID: "Collector123", Amount: 450, Timestamp: testNow.Add(-time.Hour)},
		}
		mockService.EXPECT().Get("1").Return(a, nil)

		w := doRequest(router, http.MethodGet, "/auctions/1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]any)
		require.Equal(t, "AntiqueCollector", data["seller"])
		require.Len(t, data["bid_history"].([]any), 1)
	})

	t.Run("not_found", func(t *testing.T) {
		mockService.EXPECT().Get("missing").
			Return(model.Auction{}, fmt.Errorf("engine: missing: %w", auctionerrors.ErrAuctionNotFound))

		w := doRequest(router, http.MethodGet, "/auctions/missing", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// Test ListBidsHandler
func TestListBidsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService, clock.Fixed{Instant: testNow})
	router := newTestRouter(handler, &model.User{DisplayName: "alice"})

	t.Run("with_bids", func(t *testing.T) {
		mockService.EXPECT().ListBids("1").Return([]model.BidRecord{
			{BidderID: "bob", Amount: 470, Timestamp: testNow},
			{BidderID: "alice", Amount: 460, Timestamp: testNow.Add(-time.Minute)},
		}, nil)

		w := doRequest(router, http.MethodGet, "/auctions/1/bids", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].([]any)
		require.Len(t, data, 2)
		require.Equal(t, "bob", data[0].(map[string]any)["bidder_id"])
	})

	t.Run("empty_history", func(t *testing.T) {
		mockService.EXPECT().ListBids("2").Return(nil, nil)

		w := doRequest(router, http.MethodGet, "/auctions/2/bids", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Empty(t, resp["data"].([]any))
	})

	t.Run("unknown_auction", func(t *testing.T) {
		mockService.EXPECT().ListBids("missing").
			Return(nil, fmt.Errorf("engine: missing: %w", auctionerrors.ErrAuctionNotFound))

		w := doRequest(router, http.MethodGet, "/auctions/missing/bids", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// Test RemainingTimeHandler
func TestRemainingTimeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService, clock.Fixed{Instant: testNow})
	router := newTestRouter(handler, &model.User{DisplayName: "alice"})

	tests := []struct {
		name            string
		endTime         time.Time
		expectedSeconds float64
		expectedClosed  bool
	}{
		{name: "open_auction", endTime: testNow.Add(90 * time.Minute), expectedSeconds: 5400, expectedClosed: false},
		{name: "ends_exactly_now", endTime: testNow, expectedSeconds: 0, expectedClosed: true},
		{name: "already_ended", endTime: testNow.Add(-time.Hour), expectedSeconds: 0, expectedClosed: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := openAuction("1")
			a.EndTime = tc.endTime
			mockService.EXPECT().Get("1").Return(a, nil)

			w := doRequest(router, http.MethodGet, "/auctions/1/remaining", nil)
			require.Equal(t, http.StatusOK, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			data := resp["data"].(map[string]any)
			require.Equal(t, tc.expectedSeconds, data["remaining_seconds"])
			require.Equal(t, tc.expectedClosed, data["closed"])
		})
	}
}

// Test ListCategoriesHandler
func TestListCategoriesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService, clock.Fixed{Instant: testNow})
	router := newTestRouter(handler, &model.User{DisplayName: "alice"})

	mockService.EXPECT().List().Return([]model.Auction{
		{ID: "1", Category: "Antigüedades"},
		{ID: "2", Category: "Arte"},
		{ID: "3", Category: "Arte"},
	})

	w := doRequest(router, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]any)
	require.Equal(t, []any{"Antigüedades", "Arte"}, data)
}
