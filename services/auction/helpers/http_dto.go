package helpers

// Request/Response DTOs
type PlaceBidRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

type BidRecordResponse struct {
	BidderID  string `json:"bidder_id"`
	Amount    int64  `json:"amount"`
	Timestamp string `json:"timestamp"`
}

type AuctionResponse struct {
	AuctionID   string              `json:"auction_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Seller      string              `json:"seller"`
	CurrentBid  int64               `json:"current_bid"`
	MinNextBid  int64               `json:"min_next_bid"`
	EndTime     string              `json:"end_time"`
	BidHistory  []BidRecordResponse `json:"bid_history,omitempty"`
}

type RemainingTimeResponse struct {
	AuctionID        string `json:"auction_id"`
	RemainingSeconds int64  `json:"remaining_seconds"`
	Closed           bool   `json:"closed"`
}
