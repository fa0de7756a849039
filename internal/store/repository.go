package store

import (
	"context"

	"github.com/dmitrijs2005/clipvault/internal/models"
)

// Repository describes row-level operations on clipboard history items.
// Implementations are backed by a local SQLite database.
type Repository interface {
	// InTx runs fn against a transaction-scoped Repository, committing on
	// success and rolling back on error or panic.
	InTx(ctx context.Context, fn func(r Repository) error) error

	// Insert writes a new item row.
	Insert(ctx context.Context, item *models.Item) error

	// FindByDedupKey returns the id of an existing item with the same
	// (kind, contentHash, filePath) tuple, or common.ErrNotFound.
	FindByDedupKey(ctx context.Context, kind models.Kind, contentHash []byte, filePath string) (string, error)

	// List returns items ordered by creation time descending. kind filters
	// when non-empty; limit <= 0 means no limit.
	List(ctx context.Context, kind models.Kind, limit int) ([]*models.Item, error)

	// GetByID returns a single item or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Item, error)

	// SetPinned updates an item's pinned flag. Unknown ids are a no-op.
	SetPinned(ctx context.Context, id string, pinned bool) error

	// DeleteByID removes an item. Deleting an unknown id is a no-op success.
	DeleteByID(ctx context.Context, id string) error

	// DeleteAll removes every item.
	DeleteAll(ctx context.Context) error

	// Count returns the number of stored items.
	Count(ctx context.Context) (int64, error)
}
