package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"reusehub/internal/catalog"
	"reusehub/internal/fault"
	"reusehub/internal/taxonomy"
)

var (
	_ catalog.Store = (*Store)(nil)
)

// itemRow flattens catalog.Item for scanning; the nested category and piece
// list are reassembled afterwards.
type itemRow struct {
	ItemID          int64         `db:"item_id"`
	Description     string        `db:"description"`
	PhotoRef        string        `db:"photo_ref"`
	Color           string        `db:"color"`
	IsNew           bool          `db:"is_new"`
	Material        string        `db:"material"`
	MainCategory    string        `db:"main_category"`
	SubCategory     string        `db:"sub_category"`
	DonorUsername   string        `db:"donor_username"`
	DonatedAt       time.Time     `db:"donated_at"`
	AssignedOrderID sql.NullInt64 `db:"assigned_order_id"`
}

type pieceRow struct {
	ItemID      int64   `db:"item_id"`
	PieceNum    int     `db:"piece_num"`
	Description string  `db:"description"`
	Length      float64 `db:"length"`
	Width       float64 `db:"width"`
	Height      float64 `db:"height"`
	RoomNum     int     `db:"room_num"`
	ShelfNum    int     `db:"shelf_num"`
	Notes       string  `db:"notes"`
}

func (r itemRow) toItem() catalog.Item {
	item := catalog.Item{
		ItemID:        r.ItemID,
		Description:   r.Description,
		PhotoRef:      r.PhotoRef,
		Color:         r.Color,
		IsNew:         r.IsNew,
		Material:      r.Material,
		Category:      taxonomy.Category{MainCategory: r.MainCategory, SubCategory: r.SubCategory},
		DonorUsername: r.DonorUsername,
		DonatedAt:     r.DonatedAt,
	}
	if r.AssignedOrderID.Valid {
		assigned := r.AssignedOrderID.Int64
		item.AssignedOrderID = &assigned
	}
	return item
}

func (r pieceRow) toPiece() catalog.Piece {
	return catalog.Piece{
		PieceNum:    r.PieceNum,
		Description: r.Description,
		Length:      r.Length,
		Width:       r.Width,
		Height:      r.Height,
		Location:    catalog.Placement{RoomNum: r.RoomNum, ShelfNum: r.ShelfNum},
		Notes:       r.Notes,
	}
}

const itemColumns = `
	item_id, description, photo_ref, color, is_new, material,
	main_category, sub_category, donor_username, donated_at, assigned_order_id
`

func (s *Store) InsertItem(ctx context.Context, item *catalog.Item) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var itemID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO items (description, photo_ref, color, is_new, material,
			main_category, sub_category, donor_username, donated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING item_id
	`, item.Description, item.PhotoRef, item.Color, item.IsNew, item.Material,
		item.Category.MainCategory, item.Category.SubCategory, item.DonorUsername, item.DonatedAt,
	).Scan(&itemID)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}

	for _, p := range item.Pieces {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO pieces (item_id, piece_num, description, length, width, height,
				room_num, shelf_num, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, itemID, p.PieceNum, p.Description, p.Length, p.Width, p.Height,
			p.Location.RoomNum, p.Location.ShelfNum, p.Notes)
		if err != nil {
			return 0, fmt.Errorf("insert piece %d: %w", p.PieceNum, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	item.ItemID = itemID
	return itemID, nil
}

func (s *Store) GetItem(ctx context.Context, itemID int64) (*catalog.Item, error) {
	var row itemRow
	err := s.db.GetContext(ctx, &row, `
		SELECT `+itemColumns+`
		FROM items
		WHERE item_id = $1
	`, itemID)
	if err != nil {
		if isNoRows(err) {
			return nil, fault.NotFoundf("item %d", itemID)
		}
		return nil, fmt.Errorf("select item: %w", err)
	}

	item := row.toItem()
	pieces, err := s.piecesFor(ctx, []int64{itemID})
	if err != nil {
		return nil, err
	}
	item.Pieces = pieces[itemID]
	return &item, nil
}

// AssignItem is the cross-process compare-and-set: the WHERE clause only
// matches an unassigned item or a repeat of the same order.
func (s *Store) AssignItem(ctx context.Context, itemID, orderID int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE items
		SET assigned_order_id = $1
		WHERE item_id = $2
		AND (assigned_order_id IS NULL OR assigned_order_id = $1)
	`, orderID, itemID)
	if err != nil {
		return fmt.Errorf("assign item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		var assigned sql.NullInt64
		err := s.db.GetContext(ctx, &assigned, `SELECT assigned_order_id FROM items WHERE item_id = $1`, itemID)
		if isNoRows(err) {
			return fault.NotFoundf("item %d", itemID)
		}
		if err != nil {
			return fmt.Errorf("inspect item: %w", err)
		}
		return fault.Conflictf("item %d already assigned to order %d", itemID, assigned.Int64)
	}
	return nil
}

func (s *Store) ListUnassigned(ctx context.Context, mainCategory, subCategory string) ([]catalog.Item, error) {
	var rows []itemRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+itemColumns+`
		FROM items
		WHERE main_category = $1 AND sub_category = $2
		AND assigned_order_id IS NULL
		ORDER BY item_id
	`, mainCategory, subCategory)
	if err != nil {
		return nil, fmt.Errorf("select available items: %w", err)
	}
	return s.attachPieces(ctx, rows)
}

// attachPieces resolves the pieces of every listed item in one query.
func (s *Store) attachPieces(ctx context.Context, rows []itemRow) ([]catalog.Item, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ItemID
	}
	pieces, err := s.piecesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]catalog.Item, len(rows))
	for i, r := range rows {
		items[i] = r.toItem()
		items[i].Pieces = pieces[r.ItemID]
	}
	return items, nil
}

func (s *Store) piecesFor(ctx context.Context, itemIDs []int64) (map[int64][]catalog.Piece, error) {
	var rows []pieceRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT item_id, piece_num, description, length, width, height, room_num, shelf_num, notes
		FROM pieces
		WHERE item_id = ANY($1)
		ORDER BY item_id, piece_num
	`, pq.Array(itemIDs))
	if err != nil {
		return nil, fmt.Errorf("select pieces: %w", err)
	}

	byItem := make(map[int64][]catalog.Piece, len(itemIDs))
	for _, r := range rows {
		byItem[r.ItemID] = append(byItem[r.ItemID], r.toPiece())
	}
	return byItem, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
