// Package pgstore is the PostgreSQL store. Assignment invariants are
// enforced with conditional updates inside transactions so they hold across
// processes, not just within one.
package pgstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"reusehub/internal/fault"
	"reusehub/internal/identity"
	"reusehub/internal/location"
	"reusehub/internal/taxonomy"
)

// Store implements the Store contract of every bounded context over one
// database handle.
type Store struct {
	db *sqlx.DB
}

// New wraps an open database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open connects to PostgreSQL and returns a ready store.
func Open(databaseURL string) (*Store, *sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return New(db), db, nil
}

var (
	_ taxonomy.Store = (*Store)(nil)
	_ location.Store = (*Store)(nil)
	_ identity.Store = (*Store)(nil)
)

func (s *Store) ListCategories(ctx context.Context) ([]taxonomy.Category, error) {
	var categories []taxonomy.Category
	err := s.db.SelectContext(ctx, &categories, `
		SELECT main_category, sub_category
		FROM categories
		ORDER BY main_category, sub_category
	`)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	return categories, nil
}

func (s *Store) ListRooms(ctx context.Context) ([]location.Room, error) {
	var rooms []location.Room
	err := s.db.SelectContext(ctx, &rooms, `
		SELECT DISTINCT room_num
		FROM shelves
		ORDER BY room_num
	`)
	if err != nil {
		return nil, fmt.Errorf("select rooms: %w", err)
	}
	return rooms, nil
}

func (s *Store) ShelvesInRoom(ctx context.Context, roomNum int) ([]location.Shelf, error) {
	var shelves []location.Shelf
	err := s.db.SelectContext(ctx, &shelves, `
		SELECT shelf_num, room_num, description
		FROM shelves
		WHERE room_num = $1
		ORDER BY shelf_num
	`, roomNum)
	if err != nil {
		return nil, fmt.Errorf("select shelves: %w", err)
	}
	if len(shelves) == 0 {
		return nil, fault.NotFoundf("room %d", roomNum)
	}
	return shelves, nil
}

func (s *Store) InsertUser(ctx context.Context, user *identity.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, first_name, last_name, role, bill_addr, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.Username, user.FirstName, user.LastName, user.Role, user.BillAddr, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fault.Conflictf("username %q taken", user.Username)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, username string) (*identity.User, error) {
	var user identity.User
	err := s.db.GetContext(ctx, &user, `
		SELECT username, first_name, last_name, role, bill_addr, created_at
		FROM users
		WHERE username = $1
	`, username)
	if err != nil {
		if isNoRows(err) {
			return nil, fault.NotFoundf("user %q", username)
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &user, nil
}
