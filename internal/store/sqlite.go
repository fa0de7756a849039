package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/dmitrijs2005/clipvault/internal/dbx"
	"github.com/dmitrijs2005/clipvault/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or
// *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// InTx runs fn with a repository bound to a single transaction. When the
// receiver is already transaction-scoped, fn runs on it directly.
func (r *SQLiteRepository) InTx(ctx context.Context, fn func(r Repository) error) error {
	db, ok := r.db.(*sql.DB)
	if !ok {
		return fn(r)
	}
	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(&SQLiteRepository{db: tx})
	})
}

const itemColumns = `id, created_at, kind, size, content_hash, file_path, is_pinned, content_blob, preview_blob, rtf_blob`

func scanItem(row interface{ Scan(dest ...any) error }) (*models.Item, error) {
	var (
		item     models.Item
		filePath sql.NullString
		pinned   int64
	)
	err := row.Scan(&item.ID, &item.CreatedAt, &item.Kind, &item.Size, &item.ContentHash,
		&filePath, &pinned, &item.ContentBlob, &item.PreviewBlob, &item.RTFBlob)
	if err != nil {
		return nil, err
	}
	item.FilePath = filePath.String
	item.IsPinned = pinned != 0
	return &item, nil
}

// nullIfEmpty maps the absent file path to NULL so the column stays NULL for
// text and image rows, matching the dedup key's "filePath-or-absent" shape.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *SQLiteRepository) Insert(ctx context.Context, item *models.Item) error {
	query := `INSERT INTO items (` + itemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.CreatedAt, item.Kind, item.Size, item.ContentHash,
		nullIfEmpty(item.FilePath), boolToInt(item.IsPinned),
		item.ContentBlob, item.PreviewBlob, item.RTFBlob)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) FindByDedupKey(ctx context.Context, kind models.Kind, contentHash []byte, filePath string) (string, error) {
	query := `SELECT id FROM items
		WHERE kind = ? AND content_hash = ? AND IFNULL(file_path, '') = ?
		ORDER BY created_at DESC LIMIT 1`

	var id string
	err := r.db.QueryRowContext(ctx, query, kind, contentHash, filePath).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up dedup key: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) List(ctx context.Context, kind models.Kind, limit int) ([]*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var result []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (r *SQLiteRepository) SetPinned(ctx context.Context, id string, pinned bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE items SET is_pinned = ? WHERE id = ?`, boolToInt(pinned), id)
	if err != nil {
		return fmt.Errorf("failed to update pinned flag: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM items`)
	if err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return n, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
