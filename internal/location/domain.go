// internal/location/domain.go
package location

// Room is a physical storage room in the center.
type Room struct {
	RoomNum int `json:"roomNum" db:"room_num"`
}

// Shelf is one shelf inside a room. Shelves belong to exactly one room and
// are created administratively, not through the flows served here.
type Shelf struct {
	ShelfNum    int    `json:"shelfNum" db:"shelf_num"`
	RoomNum     int    `json:"roomNum" db:"room_num"`
	Description string `json:"description" db:"description"`
}
