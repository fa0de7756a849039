// Package clipboard contains the system-clipboard adapter interface, the
// polling watcher that turns clipboard changes into captured items, and the
// content fingerprinting used for deduplication.
package clipboard

// Representations holds the payloads a clipboard change can expose. Any
// subset may be present; the watcher classifies a capture by the first
// representation found in priority order (paths, image, text).
type Representations struct {
	// Paths is the list of file paths on the clipboard, if any.
	Paths []string
	// Image is PNG-encoded image data.
	Image []byte
	// RTF is the rich-text representation accompanying Text.
	RTF []byte
	// Text is the plain-text payload, UTF-8.
	Text []byte
}

// Empty reports whether no representation is present.
func (r *Representations) Empty() bool {
	return r == nil || (len(r.Paths) == 0 && len(r.Image) == 0 && len(r.RTF) == 0 && len(r.Text) == 0)
}

// Source is the platform clipboard adapter consumed by the watcher and the
// copy-back path. Implementations must be safe for use from a single
// long-lived goroutine plus occasional Write calls from query callers.
type Source interface {
	// ChangeCounter returns a monotonically increasing value that changes
	// whenever the clipboard content changes. The watcher only reads the
	// clipboard when the counter differs from its last observed value.
	ChangeCounter() (uint64, error)

	// Read returns the currently available representations.
	Read() (*Representations, error)

	// Write places the given representations back onto the system clipboard.
	Write(reps *Representations) error
}
