// Package service implements the clipboard history operations on top of the
// repository, the vault and the clipboard adapter. It owns all encryption
// and decryption: blobs never leave this layer in plaintext except through
// the operations that exist to reveal them.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/clipvault/internal/clipboard"
	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/dmitrijs2005/clipvault/internal/cryptox"
	"github.com/dmitrijs2005/clipvault/internal/logging"
	"github.com/dmitrijs2005/clipvault/internal/models"
	"github.com/dmitrijs2005/clipvault/internal/settings"
	"github.com/dmitrijs2005/clipvault/internal/store"
	"github.com/dmitrijs2005/clipvault/internal/vault"
)

// previewRunes caps the length of a stored text preview.
const previewRunes = 100

// History is the application service behind every user-facing operation:
// capture persistence, listing, search, copy-back, pinning, deletion and
// the master-key lifecycle.
type History struct {
	repo     store.Repository
	vault    *vault.Vault
	source   clipboard.Source
	settings *settings.Manager
	logger   logging.Logger

	now func() time.Time
}

func NewHistory(repo store.Repository, v *vault.Vault, source clipboard.Source, s *settings.Manager, logger logging.Logger) *History {
	return &History{
		repo:     repo,
		vault:    v,
		source:   source,
		settings: s,
		logger:   logger.With("component", "history"),
		now:      time.Now,
	}
}

// Save persists a captured item. A capture whose (kind, content hash, file
// path) key matches an existing row is discarded with common.ErrDuplicate.
// Text and image payloads are encrypted under the master key, so saving them
// while the vault is locked fails with common.ErrNotUnlocked; file captures
// carry only plaintext paths and are stored regardless of lock state.
func (h *History) Save(ctx context.Context, cap *models.CapturedItem) (*models.Item, error) {
	if !cap.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedKind, cap.Kind)
	}

	var filePath string
	if cap.Kind == models.KindFile {
		encoded, err := encodePaths(cap.Paths)
		if err != nil {
			return nil, err
		}
		filePath = encoded
	}

	item := &models.Item{
		ID:          uuid.NewString(),
		CreatedAt:   h.now().UnixMilli(),
		Kind:        cap.Kind,
		Size:        cap.Size,
		ContentHash: cap.ContentHash,
		FilePath:    filePath,
	}

	if cap.Kind != models.KindFile {
		err := h.vault.WithKey(func(key []byte) error {
			var err error
			if item.ContentBlob, err = cryptox.Encrypt(key, cap.Content); err != nil {
				return err
			}
			if cap.Kind == models.KindText {
				if item.PreviewBlob, err = cryptox.Encrypt(key, []byte(truncateRunes(string(cap.Content), previewRunes))); err != nil {
					return err
				}
				if len(cap.RTF) > 0 {
					if item.RTFBlob, err = cryptox.Encrypt(key, cap.RTF); err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// The dedup check and the insert share one transaction so a capture
	// observed twice in quick succession still lands exactly once.
	err := h.repo.InTx(ctx, func(r store.Repository) error {
		if _, err := r.FindByDedupKey(ctx, cap.Kind, cap.ContentHash, filePath); err == nil {
			return common.ErrDuplicate
		} else if !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("dedup lookup: %w", err)
		}
		if err := r.Insert(ctx, item); err != nil {
			return fmt.Errorf("inserting item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListRecent returns item overviews newest first, optionally filtered by
// kind. Previews are best effort: text previews require the vault to be
// unlocked, file previews are derived from the plaintext paths, images have
// none. A row whose preview fails to decrypt is returned without one.
func (h *History) ListRecent(ctx context.Context, kind models.Kind, limit int) ([]models.ItemOverview, error) {
	items, err := h.repo.List(ctx, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	out := make([]models.ItemOverview, 0, len(items))
	for _, item := range items {
		ov := item.Overview()
		ov.Preview = h.preview(ctx, item)
		out = append(out, ov)
	}
	return out, nil
}

func (h *History) preview(ctx context.Context, item *models.Item) string {
	switch item.Kind {
	case models.KindFile:
		paths, err := decodePaths(item.FilePath)
		if err != nil || len(paths) == 0 {
			return ""
		}
		return filepath.Base(paths[0])
	case models.KindText:
		blob := item.PreviewBlob
		if len(blob) == 0 {
			blob = item.ContentBlob
		}
		text, err := h.decrypt(blob)
		if err != nil {
			if !errors.Is(err, common.ErrNotUnlocked) {
				h.logger.Warn(ctx, "preview decryption failed", "id", item.ID, "error", err)
			}
			return ""
		}
		return truncateRunes(string(text), previewRunes)
	}
	return ""
}

// Search returns up to limit overviews of items matching the query, newest
// first. An empty query degrades to ListRecent. Matching is case-insensitive
// substring: file items match on any of their paths, text items on decrypted
// content, image items never match. Because text matching needs plaintext, a
// non-empty query requires the vault to be unlocked.
func (h *History) Search(ctx context.Context, query string, kind models.Kind, limit int) ([]models.ItemOverview, error) {
	if query == "" {
		return h.ListRecent(ctx, kind, limit)
	}
	if !h.vault.IsUnlocked() {
		return nil, common.ErrNotUnlocked
	}

	items, err := h.repo.List(ctx, kind, 0)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	needle := strings.ToLower(query)
	var out []models.ItemOverview
	for _, item := range items {
		if limit > 0 && len(out) >= limit {
			break
		}
		match, err := h.matches(item, needle)
		if err != nil {
			// A tampered or key-rotated row must not fail the whole search.
			h.logger.Warn(ctx, "skipping undecryptable item", "id", item.ID, "error", err)
			continue
		}
		if !match {
			continue
		}
		ov := item.Overview()
		ov.Preview = h.preview(ctx, item)
		out = append(out, ov)
	}
	return out, nil
}

func (h *History) matches(item *models.Item, needle string) (bool, error) {
	switch item.Kind {
	case models.KindFile:
		paths, err := decodePaths(item.FilePath)
		if err != nil {
			return false, err
		}
		for _, p := range paths {
			if strings.Contains(strings.ToLower(p), needle) {
				return true, nil
			}
		}
		return false, nil
	case models.KindText:
		blob := item.ContentBlob
		if len(blob) == 0 {
			blob = item.PreviewBlob
		}
		text, err := h.decrypt(blob)
		if err != nil {
			return false, err
		}
		return strings.Contains(strings.ToLower(string(text)), needle), nil
	}
	return false, nil
}

func (h *History) decrypt(blob []byte) ([]byte, error) {
	if len(blob) == 0 {
		return nil, nil
	}
	var plain []byte
	err := h.vault.WithKey(func(key []byte) error {
		var err error
		plain, err = cryptox.Decrypt(key, blob)
		return err
	})
	if err != nil {
		return nil, err
	}
	return plain, nil
}

// CopyItem decrypts the item's payload and places it back on the system
// clipboard. The subsequent change-counter tick will observe content whose
// hash already exists, so the round trip lands as a dedup no-op.
//
// File items depend on the clipboard adapter being able to write path lists;
// an adapter without that capability (the golang.design/x/clipboard one
// surfaces only text and image formats) reports common.ErrUnsupportedKind.
func (h *History) CopyItem(ctx context.Context, id string) error {
	item, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	reps := &clipboard.Representations{}
	switch item.Kind {
	case models.KindFile:
		paths, err := decodePaths(item.FilePath)
		if err != nil {
			return fmt.Errorf("decoding file paths: %w", err)
		}
		reps.Paths = paths
	case models.KindImage:
		if reps.Image, err = h.decrypt(item.ContentBlob); err != nil {
			return err
		}
	case models.KindText:
		if reps.Text, err = h.decrypt(item.ContentBlob); err != nil {
			return err
		}
		if reps.RTF, err = h.decrypt(item.RTFBlob); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", common.ErrUnsupportedKind, item.Kind)
	}

	if err := h.source.Write(reps); err != nil {
		return fmt.Errorf("writing %s item to clipboard: %w", item.Kind, err)
	}
	h.logger.Info(ctx, "item copied to clipboard", "id", id, "kind", item.Kind)
	return nil
}

// Pin sets or clears the pinned flag. Pinning a nonexistent item is a no-op.
func (h *History) Pin(ctx context.Context, id string, pinned bool) error {
	return h.repo.SetPinned(ctx, id, pinned)
}

// Delete removes a single item. Deleting a nonexistent item is a no-op.
func (h *History) Delete(ctx context.Context, id string) error {
	return h.repo.DeleteByID(ctx, id)
}

// Clear removes the entire history.
func (h *History) Clear(ctx context.Context) error {
	if err := h.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	h.logger.Info(ctx, "history cleared")
	return nil
}

// Unlock loads the master key, generating one on first run.
func (h *History) Unlock(ctx context.Context) error {
	return h.vault.Unlock(ctx)
}

// Lock wipes the in-memory master key.
func (h *History) Lock() {
	h.vault.Lock()
}

// IsUnlocked reports whether decryption is currently possible.
func (h *History) IsUnlocked() bool {
	return h.vault.IsUnlocked()
}

// ResetMasterKey replaces the master key with a fresh one, abandoning every
// previously encrypted blob. Stored rows are left in place; they surface as
// undecryptable and can be removed with Clear.
func (h *History) ResetMasterKey(ctx context.Context) error {
	return h.vault.Reset(ctx)
}

// GetSettings returns the current user preferences.
func (h *History) GetSettings() settings.Settings {
	return h.settings.Get()
}

// UpdateSettings persists new preferences and applies the auto-lock window
// to the running vault.
func (h *History) UpdateSettings(ctx context.Context, s settings.Settings) error {
	if err := h.settings.Update(s); err != nil {
		return err
	}
	h.vault.SetAutoLock(h.settings.AutoLock())
	h.logger.Info(ctx, "settings updated",
		"hotkey", h.settings.Get().Hotkey,
		"auto_lock_minutes", h.settings.Get().AutoLockMinutes)
	return nil
}

// encodePaths serializes a canonicalized path list for the file_path column.
func encodePaths(paths []string) (string, error) {
	data, err := json.Marshal(clipboard.CanonicalPaths(paths))
	if err != nil {
		return "", fmt.Errorf("encoding file paths: %w", err)
	}
	return string(data), nil
}

func decodePaths(encoded string) ([]string, error) {
	if encoded == "" {
		return nil, nil
	}
	var paths []string
	if err := json.Unmarshal([]byte(encoded), &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
