// Package memstore is the in-process store used in development and tests.
// One mutex guards all aggregates so cross-aggregate operations (appending
// an order line while claiming the item) are naturally atomic.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"reusehub/internal/catalog"
	"reusehub/internal/fault"
	"reusehub/internal/identity"
	"reusehub/internal/ledger"
	"reusehub/internal/location"
	"reusehub/internal/taxonomy"
)

// Store implements the Store contract of every bounded context.
type Store struct {
	mu sync.RWMutex

	categories []taxonomy.Category
	rooms      map[int]bool
	shelves    map[int][]location.Shelf

	items   map[int64]*catalog.Item
	itemSeq int64

	orders   map[int64]*ledger.Order
	lines    map[int64][]ledger.Line
	orderSeq int64

	users map[string]identity.User
}

// New creates an empty store.
func New() *Store {
	return &Store{
		rooms:   make(map[int]bool),
		shelves: make(map[int][]location.Shelf),
		items:   make(map[int64]*catalog.Item),
		orders:  make(map[int64]*ledger.Order),
		lines:   make(map[int64][]ledger.Line),
		users:   make(map[string]identity.User),
	}
}

var (
	_ taxonomy.Store = (*Store)(nil)
	_ location.Store = (*Store)(nil)
	_ catalog.Store  = (*Store)(nil)
	_ ledger.Store   = (*Store)(nil)
	_ identity.Store = (*Store)(nil)
)

// SeedCategories registers category pairs. Registration is administrative
// and happens outside the served flows, so seeding has no validation beyond
// dropping exact duplicates.
func (s *Store) SeedCategories(categories ...taxonomy.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range categories {
		dup := false
		for _, existing := range s.categories {
			if existing == c {
				dup = true
				break
			}
		}
		if !dup {
			s.categories = append(s.categories, c)
		}
	}
}

// SeedShelf registers a shelf, creating its room as needed.
func (s *Store) SeedShelf(shelf location.Shelf) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[shelf.RoomNum] = true
	s.shelves[shelf.RoomNum] = append(s.shelves[shelf.RoomNum], shelf)
}

func (s *Store) ListCategories(_ context.Context) ([]taxonomy.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]taxonomy.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (s *Store) ListRooms(_ context.Context) ([]location.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]location.Room, 0, len(s.rooms))
	for num := range s.rooms {
		rooms = append(rooms, location.Room{RoomNum: num})
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomNum < rooms[j].RoomNum })
	return rooms, nil
}

func (s *Store) ShelvesInRoom(_ context.Context, roomNum int) ([]location.Shelf, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.rooms[roomNum] {
		return nil, fault.NotFoundf("room %d", roomNum)
	}
	shelves := make([]location.Shelf, len(s.shelves[roomNum]))
	copy(shelves, s.shelves[roomNum])
	sort.Slice(shelves, func(i, j int) bool { return shelves[i].ShelfNum < shelves[j].ShelfNum })
	return shelves, nil
}

func (s *Store) InsertItem(_ context.Context, item *catalog.Item) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.itemSeq++
	stored := cloneItem(item)
	stored.ItemID = s.itemSeq
	s.items[stored.ItemID] = stored
	item.ItemID = stored.ItemID
	return stored.ItemID, nil
}

func (s *Store) GetItem(_ context.Context, itemID int64) (*catalog.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[itemID]
	if !ok {
		return nil, fault.NotFoundf("item %d", itemID)
	}
	return cloneItem(item), nil
}

func (s *Store) AssignItem(_ context.Context, itemID, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignItemLocked(itemID, orderID)
}

// assignItemLocked is the compare-and-set on assignedOrderID; callers hold
// the write lock.
func (s *Store) assignItemLocked(itemID, orderID int64) error {
	item, ok := s.items[itemID]
	if !ok {
		return fault.NotFoundf("item %d", itemID)
	}
	if item.AssignedOrderID != nil {
		if *item.AssignedOrderID == orderID {
			return nil
		}
		return fault.Conflictf("item %d already assigned to order %d", itemID, *item.AssignedOrderID)
	}
	assigned := orderID
	item.AssignedOrderID = &assigned
	return nil
}

func (s *Store) ListUnassigned(_ context.Context, mainCategory, subCategory string) ([]catalog.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []catalog.Item
	for _, item := range s.items {
		if item.Category.MainCategory != mainCategory || item.Category.SubCategory != subCategory {
			continue
		}
		if item.AssignedOrderID != nil {
			continue
		}
		items = append(items, *cloneItem(item))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ItemID < items[j].ItemID })
	return items, nil
}

func (s *Store) InsertOrder(_ context.Context, order *ledger.Order) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orderSeq++
	stored := *order
	stored.OrderID = s.orderSeq
	stored.Items = nil
	s.orders[stored.OrderID] = &stored
	order.OrderID = stored.OrderID
	return stored.OrderID, nil
}

func (s *Store) GetOrder(_ context.Context, orderID int64) (*ledger.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, fault.NotFoundf("order %d", orderID)
	}
	out := *order
	return &out, nil
}

func (s *Store) AppendItem(_ context.Context, orderID, itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[orderID]; !ok {
		return fault.NotFoundf("order %d", orderID)
	}
	item, ok := s.items[itemID]
	if !ok {
		return fault.NotFoundf("item %d", itemID)
	}

	// Already appended to this order: idempotent no-op.
	if item.AssignedOrderID != nil && *item.AssignedOrderID == orderID {
		return nil
	}

	if err := s.assignItemLocked(itemID, orderID); err != nil {
		return err
	}
	s.lines[orderID] = append(s.lines[orderID], ledger.Line{
		OrderID: orderID,
		ItemID:  itemID,
		Found:   false,
		AddedAt: time.Now().UTC(),
	})
	return nil
}

func (s *Store) ListOrderItems(_ context.Context, orderID int64) ([]catalog.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.orders[orderID]; !ok {
		return nil, fault.NotFoundf("order %d", orderID)
	}

	var items []catalog.Item
	for _, line := range s.lines[orderID] {
		if item, ok := s.items[line.ItemID]; ok {
			items = append(items, *cloneItem(item))
		}
	}
	return items, nil
}

func (s *Store) InsertUser(_ context.Context, user *identity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.users[user.Username]; taken {
		return fault.Conflictf("username %q taken", user.Username)
	}
	s.users[user.Username] = *user
	return nil
}

func (s *Store) GetUser(_ context.Context, username string) (*identity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, fault.NotFoundf("user %q", username)
	}
	out := user
	return &out, nil
}

// cloneItem copies an item deeply enough that callers can never alias the
// stored pieces or assignment pointer.
func cloneItem(item *catalog.Item) *catalog.Item {
	out := *item
	out.Pieces = make([]catalog.Piece, len(item.Pieces))
	copy(out.Pieces, item.Pieces)
	if item.AssignedOrderID != nil {
		assigned := *item.AssignedOrderID
		out.AssignedOrderID = &assigned
	}
	return &out
}
