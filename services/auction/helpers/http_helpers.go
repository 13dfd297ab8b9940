package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps bidding engine errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrAuctionClosed):
		return http.StatusGone, "auction has ended"
	case errors.Is(err, auctionerrors.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid bid amount"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// ToAuctionResponse converts an auction snapshot into its API shape. The bid
// history is included only for detail views.
func ToAuctionResponse(a models.Auction, withHistory bool) AuctionResponse {
	resp := AuctionResponse{
		AuctionID:   a.ID,
		Title:       a.Title,
		Description: a.Description,
		Category:    a.Category,
		Seller:      a.Seller,
		CurrentBid:  a.CurrentBid,
		MinNextBid:  a.MinNextBid,
		EndTime:     a.EndTime.UTC().Format(time.RFC3339),
	}
	if withHistory {
		resp.BidHistory = ToBidRecordResponses(a.BidHistory)
	}
	return resp
}

// ToBidRecordResponses converts a bid history into its API shape.
func ToBidRecordResponses(history []models.BidRecord) []BidRecordResponse {
	out := make([]BidRecordResponse, 0, len(history))
	for _, b := range history {
		out = append(out, BidRecordResponse{
			BidderID:  b.BidderID,
			Amount:    b.Amount,
			Timestamp: b.Timestamp.UTC().Format(time.RFC3339),
		})
	}
	return out
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
