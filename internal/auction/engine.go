package auction

import (
	"fmt"
	"sync"
	"time"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
)

// DefaultIncrement is the minimum raise over the current bid, in minor
// units, used when an auction does not carry its own increment.
const DefaultIncrement int64 = 10

// Engine owns the live state of every auction and is the only writer of it.
// Bids on the same auction are serialized; different auctions proceed
// independently. All Auction values handed out are snapshots with their own
// BidHistory backing array.
type Engine struct {
	mu        sync.RWMutex
	auctions  map[string]*auctionState
	order     []string // auction IDs in insertion order
	increment int64
}

// auctionState pairs one auction's snapshot with the lock that serializes
// its bids.
type auctionState struct {
	mu   sync.Mutex
	snap models.Auction
}

// NewEngine creates an empty engine. A non-positive defaultIncrement falls
// back to DefaultIncrement.
func NewEngine(defaultIncrement int64) *Engine {
	if defaultIncrement <= 0 {
		defaultIncrement = DefaultIncrement
	}
	return &Engine{
		auctions:  make(map[string]*auctionState),
		increment: defaultIncrement,
	}
}

// Add registers an auction with the engine. A zero Increment takes the
// engine default; a zero MinNextBid is derived from CurrentBid plus the
// increment. Re-adding an existing ID replaces its state.
func (e *Engine) Add(a models.Auction) {
	if a.Increment <= 0 {
		a.Increment = e.increment
	}
	if a.MinNextBid <= a.CurrentBid {
		a.MinNextBid = a.CurrentBid + a.Increment
	}
	a.BidHistory = cloneHistory(a.BidHistory)

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.auctions[a.ID]; !exists {
		e.order = append(e.order, a.ID)
	}
	e.auctions[a.ID] = &auctionState{snap: a}
}

// Get returns a snapshot of one auction.
func (e *Engine) Get(auctionID string) (models.Auction, error) {
	st, err := e.lookup(auctionID)
	if err != nil {
		return models.Auction{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return snapshot(st.snap), nil
}

// List returns snapshots of every auction in insertion order.
func (e *Engine) List() []models.Auction {
	e.mu.RLock()
	states := make([]*auctionState, 0, len(e.order))
	for _, id := range e.order {
		states = append(states, e.auctions[id])
	}
	e.mu.RUnlock()

	out := make([]models.Auction, 0, len(states))
	for _, st := range states {
		st.mu.Lock()
		out = append(out, snapshot(st.snap))
		st.mu.Unlock()
	}
	return out
}

// PlaceBid applies one challenger bid against the auction's current
// snapshot. Rejections leave the stored snapshot untouched; acceptance swaps
// in a fresh snapshot with the bid prepended to the history. Two concurrent
// bids on the same auction are ordered, and the loser is re-validated
// against the winner's updated minimum.
func (e *Engine) PlaceBid(auctionID, bidderID string, amount int64, now time.Time) (models.Auction, error) {
	st, err := e.lookup(auctionID)
	if err != nil {
		return models.Auction{}, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	cur := st.snap
	if !cur.Open(now) {
		return models.Auction{}, fmt.Errorf("engine: bid on %s: %w", auctionID, auctionerrors.ErrAuctionClosed)
	}
	if amount < 0 {
		return models.Auction{}, fmt.Errorf("engine: bid on %s: %w", auctionID, auctionerrors.ErrInvalidAmount)
	}
	if amount < cur.MinNextBid {
		return models.Auction{}, fmt.Errorf("engine: bid on %s: %w", auctionID, &auctionerrors.BidTooLowError{Required: cur.MinNextBid})
	}

	next := cur
	next.CurrentBid = amount
	next.MinNextBid = amount + cur.Increment

	history := make([]models.BidRecord, 0, len(cur.BidHistory)+1)
	history = append(history, models.BidRecord{BidderID: bidderID, Amount: amount, Timestamp: now})
	history = append(history, cur.BidHistory...)
	next.BidHistory = history

	st.snap = next
	return snapshot(next), nil
}

// ListBids returns the auction's bid history, most recent first.
func (e *Engine) ListBids(auctionID string) ([]models.BidRecord, error) {
	st, err := e.lookup(auctionID)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return cloneHistory(st.snap.BidHistory), nil
}

func (e *Engine) lookup(auctionID string) (*auctionState, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	st, ok := e.auctions[auctionID]
	if !ok {
		return nil, fmt.Errorf("engine: %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return st, nil
}

// RemainingTime reports how long the auction stays open from the given
// instant; zero means closed.
func RemainingTime(a models.Auction, now time.Time) time.Duration {
	if !now.Before(a.EndTime) {
		return 0
	}
	return a.EndTime.Sub(now)
}

// snapshot copies an auction so no BidHistory backing array is shared.
func snapshot(a models.Auction) models.Auction {
	a.BidHistory = cloneHistory(a.BidHistory)
	return a
}

func cloneHistory(h []models.BidRecord) []models.BidRecord {
	if len(h) == 0 {
		return nil
	}
	return append([]models.BidRecord(nil), h...)
}
