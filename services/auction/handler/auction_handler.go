package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"auction-house/internal/auction"
	"auction-house/internal/catalog"
	"auction-house/internal/clock"
	model "auction-house/internal/models"
	"auction-house/services/auction/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

// CurrentUserKey is the gin context key under which the session gate stores
// the authenticated user.
const CurrentUserKey = "currentUser"

type AuctionServiceInterface interface {
	PlaceBid(auctionID, bidderID string, amount int64, now time.Time) (model.Auction, error)
	Get(auctionID string) (model.Auction, error)
	List() []model.Auction
	ListBids(auctionID string) ([]model.BidRecord, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
	clock   clock.Clock
}

func NewAuctionHandler(service AuctionServiceInterface, clk clock.Clock) *AuctionHandler {
	return &AuctionHandler{service: service, clock: clk}
}

// ListAuctionsHandler handles GET /auctions?q=...&category=...
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	query := c.Query("q")
	category := c.Query("category")

	auctions := catalog.Filter(h.service.List(), query, category)

	resp := make([]helpers.AuctionResponse, 0, len(auctions))
	for _, a := range auctions {
		resp = append(resp, helpers.ToAuctionResponse(a, false))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"query":    query,
		"category": category,
		"count":    len(resp),
	})
}

// ListCategoriesHandler handles GET /categories
func (h *AuctionHandler) ListCategoriesHandler(c *gin.Context) {
	categories := catalog.Categories(h.service.List())
	utils.JSONResponse(c, http.StatusOK, categories, "categories retrieved successfully")
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	a, err := h.service.Get(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionHandler: error retrieving auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAuctionResponse(a, true), "auction retrieved successfully")
	helpers.LogSuccess("GetAuctionHandler", "auction retrieved successfully", map[string]any{
		"auction_id": auctionID,
	})
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids. The bidder
// identity comes from the gated session, never from the request body.
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	user, ok := currentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, errors.New("no session user"), "authentication required")
		return
	}

	a, err := h.service.PlaceBid(auctionID, user.DisplayName, req.Amount, h.clock.Now())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"handler":    "PlaceBidHandler",
			"auction_id": auctionID,
			"bidder_id":  user.DisplayName,
			"amount":     req.Amount,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToAuctionResponse(a, true), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"auction_id":   auctionID,
		"bidder_id":    user.DisplayName,
		"amount":       req.Amount,
		"min_next_bid": a.MinNextBid,
	})
}

// ListBidsHandler handles GET /auctions/:auction_id/bids
func (h *AuctionHandler) ListBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bids, err := h.service.ListBids(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListBidsHandler: error retrieving bids", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidRecordResponses(bids), "bids retrieved successfully")
	helpers.LogSuccess("ListBidsHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(bids),
	})
}

// RemainingTimeHandler handles GET /auctions/:auction_id/remaining
func (h *AuctionHandler) RemainingTimeHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	a, err := h.service.Get(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	remaining := auction.RemainingTime(a, h.clock.Now())

	resp := helpers.RemainingTimeResponse{
		AuctionID:        auctionID,
		RemainingSeconds: int64(remaining.Seconds()),
		Closed:           remaining == 0,
	}
	utils.JSONResponse(c, http.StatusOK, resp, "remaining time retrieved successfully")
}

// currentUser reads the session user placed into the context by the gate
// middleware.
func currentUser(c *gin.Context) (model.User, bool) {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}
