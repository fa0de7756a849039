// Package models defines clipboard item types shared across the capture,
// storage and query layers.
package models

import "encoding/hex"

// Kind classifies a clipboard item.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindFile  Kind = "file"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindImage, KindFile:
		return true
	}
	return false
}

// CapturedItem is an ephemeral capture produced by the watcher. It exists
// only until it is either discarded as a duplicate or encrypted into an Item.
//
// Content holds the raw payload for text (UTF-8) and image (PNG) captures.
// Paths holds the file paths of a file capture, already canonicalized into
// sorted order. RTF optionally carries the rich-text representation that
// accompanies a text capture.
type CapturedItem struct {
	Kind        Kind
	Content     []byte
	RTF         []byte
	Paths       []string
	ContentHash []byte
	Size        int64
}

// Item is a persisted clipboard history row. The three blob fields each hold
// an independently encrypted payload laid out as nonce||ciphertext||tag, or
// nil when the payload is absent. FilePath is plaintext: paths are not
// treated as secret.
type Item struct {
	ID          string
	CreatedAt   int64 // unix milliseconds
	Kind        Kind
	Size        int64
	ContentHash []byte
	FilePath    string
	IsPinned    bool
	ContentBlob []byte
	PreviewBlob []byte
	RTFBlob     []byte
}

// ItemOverview is the decrypted-metadata view handed to the presentation
// layer. Preview is empty when the vault is locked or the item has no
// textual representation.
type ItemOverview struct {
	ID          string
	CreatedAt   int64
	Kind        Kind
	Size        int64
	ContentHash string
	FilePath    string
	IsPinned    bool
	Preview     string
}

// Overview builds the metadata view of an item. The preview is filled in by
// the service layer, which owns decryption.
func (i *Item) Overview() ItemOverview {
	return ItemOverview{
		ID:          i.ID,
		CreatedAt:   i.CreatedAt,
		Kind:        i.Kind,
		Size:        i.Size,
		ContentHash: hex.EncodeToString(i.ContentHash),
		FilePath:    i.FilePath,
		IsPinned:    i.IsPinned,
	}
}
