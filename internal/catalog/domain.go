// internal/catalog/domain.go
package catalog

import (
	"time"

	"reusehub/internal/taxonomy"
)

// Item is a single donated good, decomposed into one or more physical
// pieces. After creation the only mutable field is AssignedOrderID, which
// transitions at most once from nil to a concrete order id.
type Item struct {
	ItemID          int64             `json:"itemID" db:"item_id"`
	Description     string            `json:"description" db:"description"`
	PhotoRef        string            `json:"photoRef,omitempty" db:"photo_ref"`
	Color           string            `json:"color,omitempty" db:"color"`
	IsNew           bool              `json:"isNew" db:"is_new"`
	Material        string            `json:"material,omitempty" db:"material"`
	Category        taxonomy.Category `json:"category"`
	DonorUsername   string            `json:"donorUsername" db:"donor_username"`
	DonatedAt       time.Time         `json:"donatedAt" db:"donated_at"`
	AssignedOrderID *int64            `json:"assignedOrderID,omitempty" db:"assigned_order_id"`
	Pieces          []Piece           `json:"pieces"`
}

// Piece is one physical component of an item, stored at a (room, shelf)
// location. Pieces are owned exclusively by their item and immutable after
// creation.
type Piece struct {
	PieceNum    int       `json:"pieceNum" db:"piece_num"`
	Description string    `json:"description" db:"description"`
	Length      float64   `json:"length" db:"length"`
	Width       float64   `json:"width" db:"width"`
	Height      float64   `json:"height" db:"height"`
	Location    Placement `json:"location"`
	Notes       string    `json:"notes,omitempty" db:"notes"`
}

// Placement is the (room, shelf) pair a piece sits at.
type Placement struct {
	RoomNum  int `json:"roomNum" db:"room_num"`
	ShelfNum int `json:"shelfNum" db:"shelf_num"`
}

// ItemDescriptor carries the item-level fields of a new donation.
type ItemDescriptor struct {
	Description   string            `json:"description"`
	PhotoRef      string            `json:"photoRef"`
	Color         string            `json:"color"`
	IsNew         bool              `json:"isNew"`
	Material      string            `json:"material"`
	Category      taxonomy.Category `json:"category"`
	DonorUsername string            `json:"donorUsername"`
}

// PieceDescriptor carries one piece of a new donation. PieceNum 0 asks the
// catalog to number the piece sequentially within the item.
type PieceDescriptor struct {
	PieceNum    int     `json:"pieceNum"`
	Description string  `json:"description"`
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	RoomNum     int     `json:"roomNum"`
	ShelfNum    int     `json:"shelfNum"`
	Notes       string  `json:"notes"`
}

// DonationAcceptedEvent is recorded when a new item enters the catalog.
type DonationAcceptedEvent struct {
	ItemID        int64  `json:"item_id"`
	DonorUsername string `json:"donor_username"`
	MainCategory  string `json:"main_category"`
	SubCategory   string `json:"sub_category"`
	PieceCount    int    `json:"piece_count"`
}

// ItemAssignedEvent is recorded when an item is placed into an order.
type ItemAssignedEvent struct {
	ItemID  int64 `json:"item_id"`
	OrderID int64 `json:"order_id"`
}
