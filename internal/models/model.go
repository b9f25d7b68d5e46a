package models

import "time"

// ItemKind distinguishes citizen reports from staff registrations
type ItemKind string

const (
	KindLost  ItemKind = "LOST"
	KindFound ItemKind = "FOUND"
)

// ItemState is the lifecycle state of an Objeto
type ItemState string

const (
	StateRegistrado ItemState = "REGISTRADO"
	StateEnAlmacen  ItemState = "EN_ALMACEN"
	StateReclamado  ItemState = "RECLAMADO"
	StateSubasta    ItemState = "SUBASTA"
	StateDonado     ItemState = "DONADO"
	StateReciclado  ItemState = "RECICLADO"
	StateDestruido  ItemState = "DESTRUIDO"
	StateEntregado  ItemState = "ENTREGADO"
)

// Terminal reports whether no further lifecycle edge leaves the state
func (s ItemState) Terminal() bool {
	switch s {
	case StateEntregado, StateDonado, StateReciclado, StateDestruido:
		return true
	}
	return false
}

// GeoPoint is where a found item was picked up
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Item (Objeto) is a lost or found physical object record
type Item struct {
	ItemID            string     `json:"item_id"`
	Kind              ItemKind   `json:"kind"`
	State             ItemState  `json:"state"`
	CategoryID        string     `json:"category_id,omitempty"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Brand             string     `json:"brand,omitempty"`
	Model             string     `json:"model,omitempty"`
	Color             string     `json:"color,omitempty"`
	Serial            string     `json:"serial,omitempty"`
	RegistryCode      string     `json:"registry_code,omitempty"`
	WarehouseLocation string     `json:"warehouse_location,omitempty"`
	Location          *GeoPoint  `json:"location,omitempty"`
	FoundAt           *time.Time `json:"found_at,omitempty"`
	OwnerID           string     `json:"owner_id,omitempty"`
	RegisteredBy      string     `json:"registered_by,omitempty"`
	Photos            []Photo    `json:"photos"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// PrimaryPhoto returns the item's primary photo, if any
func (i Item) PrimaryPhoto() (Photo, bool) {
	for _, p := range i.Photos {
		if p.Primary {
			return p, true
		}
	}
	return Photo{}, false
}

// Photo (ObjetoFoto) belongs to exactly one item
type Photo struct {
	PhotoID string `json:"photo_id"`
	ItemID  string `json:"item_id"`
	URL     string `json:"url"`
	Order   int    `json:"order"`
	Primary bool   `json:"primary"`
}

// ItemTransition is a compare-and-set lifecycle move applied by the store
type ItemTransition struct {
	ItemID string
	From   []ItemState
	To     ItemState
}

// ReviewState is the staff review state of a candidate match
type ReviewState string

const (
	ReviewPending   ReviewState = "PENDING"
	ReviewConfirmed ReviewState = "CONFIRMED"
	ReviewDiscarded ReviewState = "DISCARDED"
)

// Feature names a scoring feature category
type Feature string

const (
	FeatureCategory    Feature = "category"
	FeatureColor       Feature = "color"
	FeatureBrandModel  Feature = "brand_model"
	FeatureDescription Feature = "description"
	FeatureImage       Feature = "image"
)

// Match (Coincidencia) pairs one lost and one found item
type Match struct {
	MatchID         string      `json:"match_id"`
	LostItemID      string      `json:"lost_item_id"`
	FoundItemID     string      `json:"found_item_id"`
	Score           float64     `json:"score"`
	MatchedFeatures []Feature   `json:"matched_features"`
	State           ReviewState `json:"state"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	ReviewedBy      string      `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time  `json:"reviewed_at,omitempty"`
}

// LotState tracks a lot's disposition around its auctions
type LotState string

const (
	LotAbierto    LotState = "ABIERTO"
	LotEnSubasta  LotState = "EN_SUBASTA"
	LotDevuelto   LotState = "DEVUELTO"
	LotAdjudicado LotState = "ADJUDICADO"
)

// Lot (Lote) groups unclaimed found items for a single auction
type Lot struct {
	LotID     string    `json:"lot_id"`
	ItemIDs   []string  `json:"item_ids"`
	State     LotState  `json:"state"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// AuctionState is the Subasta state machine
type AuctionState string

const (
	AuctionProgramada AuctionState = "PROGRAMADA"
	AuctionActiva     AuctionState = "ACTIVA"
	AuctionCerrada    AuctionState = "CERRADA"
	AuctionAdjudicada AuctionState = "ADJUDICADA"
)

// Auction (Subasta) is a time-boxed bidding process for one lot
type Auction struct {
	AuctionID       string       `json:"auction_id"`
	LotID           string       `json:"lot_id"`
	State           AuctionState `json:"state"`
	StartingPrice   float64      `json:"starting_price"`
	CurrentPrice    float64      `json:"current_price"`
	BidCount        int          `json:"bid_count"`
	HighestBidID    string       `json:"highest_bid_id,omitempty"`
	HighestBidderID string       `json:"highest_bidder_id,omitempty"`
	StartsAt        time.Time    `json:"starts_at"`
	EndsAt          time.Time    `json:"ends_at"`
	OpenedAt        *time.Time   `json:"opened_at,omitempty"`
	ClosedAt        *time.Time   `json:"closed_at,omitempty"`
	WinningBidID    string       `json:"winning_bid_id,omitempty"`
	WinnerID        string       `json:"winner_id,omitempty"`
	AdjudicatedAt   *time.Time   `json:"adjudicated_at,omitempty"`
	HandedOverAt    *time.Time   `json:"handed_over_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

// Bid (Puja) is immutable once admitted
type Bid struct {
	BidID       string    `json:"bid_id"`
	AuctionID   string    `json:"auction_id"`
	BidderID    string    `json:"bidder_id"`
	Amount      float64   `json:"amount"`
	Sequence    int64     `json:"sequence"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Role is supplied by the identity provider
type Role string

const (
	RoleCitizen Role = "CITIZEN"
	RoleStaff   Role = "STAFF"
	RoleAdmin   Role = "ADMIN"
)

// Actor is the caller of a mutating operation
type Actor struct {
	UserID string `json:"user_id"`
	Roles  []Role `json:"roles"`
}
