package clipboard

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/clipvault/internal/common"
	xclipboard "golang.design/x/clipboard"
)

// SystemSource adapts golang.design/x/clipboard to the Source interface. The
// library exposes text and image formats; file-path and RTF representations
// are platform pasteboard features it does not surface, so they are never
// reported by this adapter.
//
// The library also exposes no native change count, so the adapter keeps its
// own: ChangeCounter digests the current content and bumps the counter when
// the digest differs from the previous call.
type SystemSource struct {
	mu          sync.Mutex
	counter     uint64
	lastDigest  [sha256.Size]byte
	initialized bool
}

// NewSystemSource initializes the platform clipboard and returns the adapter.
func NewSystemSource() (*SystemSource, error) {
	if err := xclipboard.Init(); err != nil {
		return nil, fmt.Errorf("clipboard init: %w", err)
	}
	return &SystemSource{initialized: true}, nil
}

func (s *SystemSource) ChangeCounter() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := sha256.New()
	h.Write(xclipboard.Read(xclipboard.FmtText))
	h.Write([]byte{0})
	h.Write(xclipboard.Read(xclipboard.FmtImage))

	var digest [sha256.Size]byte
	h.Sum(digest[:0])

	if digest != s.lastDigest {
		s.lastDigest = digest
		s.counter++
	}
	return s.counter, nil
}

func (s *SystemSource) Read() (*Representations, error) {
	reps := &Representations{}
	if text := xclipboard.Read(xclipboard.FmtText); len(text) > 0 {
		reps.Text = text
	}
	if img := xclipboard.Read(xclipboard.FmtImage); len(img) > 0 {
		reps.Image = img
	}
	return reps, nil
}

func (s *SystemSource) Write(reps *Representations) error {
	switch {
	case reps == nil:
		return common.ErrUnsupportedKind
	case len(reps.Text) > 0:
		xclipboard.Write(xclipboard.FmtText, reps.Text)
	case len(reps.Image) > 0:
		xclipboard.Write(xclipboard.FmtImage, reps.Image)
	default:
		// file paths cannot be written through this adapter
		return common.ErrUnsupportedKind
	}
	return nil
}
