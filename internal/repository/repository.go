package repository

import (
	"context"
	"sync"
	"time"

	model "lostfound-registry/internal/models"
)

// ItemFilter narrows ListItems. CategoryOrUnset keeps items whose category
// equals it or is empty; an empty CategoryOrUnset keeps every category.
type ItemFilter struct {
	Kind            model.ItemKind
	States          []model.ItemState
	CategoryOrUnset string
}

// ItemStore defines the item storage interface of the registry
type ItemStore interface {
	CreateItem(ctx context.Context, item model.Item) error
	GetItem(ctx context.Context, itemID string) (model.Item, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]model.Item, error)
	TransitionItems(ctx context.Context, transitions []model.ItemTransition, at time.Time) error
	AddPhoto(ctx context.Context, itemID string, photo model.Photo) (model.Photo, error)
}

// MatchStore defines the candidate match storage interface
type MatchStore interface {
	InsertMatch(ctx context.Context, match model.Match) error
	GetMatch(ctx context.Context, matchID string) (model.Match, error)
	GetMatchByPair(ctx context.Context, lostItemID, foundItemID string) (model.Match, error)
	RefreshMatchScore(ctx context.Context, matchID string, score float64, features []model.Feature, at time.Time) (model.Match, error)
	ListMatches(ctx context.Context, state model.ReviewState) ([]model.Match, error)
	ConfirmMatch(ctx context.Context, matchID string, transitions []model.ItemTransition, reviewer string, at time.Time) (model.Match, error)
	DiscardMatch(ctx context.Context, matchID, reviewer string, at time.Time) (model.Match, error)
}

// AuctionStore defines the lot, auction and bid storage interface
type AuctionStore interface {
	CreateLot(ctx context.Context, lot model.Lot) error
	GetLot(ctx context.Context, lotID string) (model.Lot, error)
	CreateAuction(ctx context.Context, auction model.Auction) error
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	ListAuctions(ctx context.Context, states ...model.AuctionState) ([]model.Auction, error)
	OpenAuction(ctx context.Context, auctionID string, at time.Time) (model.Auction, error)
	RecordBid(ctx context.Context, bid model.Bid, expectedPrice float64) (model.Bid, error)
	ListBids(ctx context.Context, auctionID string) ([]model.Bid, error)
	CloseAuction(ctx context.Context, auctionID string, at time.Time, winner *model.Bid) (model.Auction, error)
	AdjudicateAuction(ctx context.Context, auctionID string, transitions []model.ItemTransition, at time.Time) (model.Auction, error)
	CompleteHandover(ctx context.Context, auctionID string, transitions []model.ItemTransition, at time.Time) (model.Auction, error)
}

// Store is the full persistence boundary consumed by the core
type Store interface {
	ItemStore
	MatchStore
	AuctionStore
}

type pairKey struct {
	lost  string
	found string
}

// MemoryRepo is a concurrency-safe in-memory implementation of Store.
// Every multi-record mutation runs under one write lock, so partial writes
// are never observable.
type MemoryRepo struct {
	mu            sync.RWMutex
	items         map[string]model.Item    // key: itemID
	registryCodes map[string]string        // key: registry code -> itemID
	matches       map[string]model.Match   // key: matchID
	pairs         map[pairKey]string       // key: (lost, found) -> matchID
	lots          map[string]model.Lot     // key: lotID
	itemLots      map[string]string        // key: itemID -> lotID of its current lot
	auctions      map[string]model.Auction // key: auctionID
	lotAuctions   map[string]string        // key: lotID -> auctionID of its live auction
	bids          map[string][]model.Bid   // key: auctionID -> bids in sequence order
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		items:         make(map[string]model.Item),
		registryCodes: make(map[string]string),
		matches:       make(map[string]model.Match),
		pairs:         make(map[pairKey]string),
		lots:          make(map[string]model.Lot),
		itemLots:      make(map[string]string),
		auctions:      make(map[string]model.Auction),
		lotAuctions:   make(map[string]string),
		bids:          make(map[string][]model.Bid),
	}
}

var _ Store = (*MemoryRepo)(nil)
