package models

import "time"

// User represents the currently signed-in participant. The JSON field names
// match the flat record persisted in the key-value store.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	Email       string `json:"email"`
}

// BidRecord is one entry in an auction's bid history
type BidRecord struct {
	BidderID  string    `json:"bidder_id"`
	Amount    int64     `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// Auction is a snapshot of one auction's state. Amounts are minor-unit
// integers. BidHistory is ordered most-recent-first; when non-empty its head
// amount equals CurrentBid. Snapshots returned by the engine never share a
// BidHistory backing array, so callers may hold them freely.
type Auction struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Seller      string      `json:"seller"`
	CurrentBid  int64       `json:"current_bid"`
	MinNextBid  int64       `json:"min_next_bid"`
	Increment   int64       `json:"increment"`
	EndTime     time.Time   `json:"end_time"`
	BidHistory  []BidRecord `json:"bid_history"`
}

// Open reports whether the auction still accepts bids at the given instant.
func (a Auction) Open(now time.Time) bool {
	return now.Before(a.EndTime)
}
