package clipboard

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/clipvault/internal/common"
	"github.com/dmitrijs2005/clipvault/internal/logging"
	"github.com/dmitrijs2005/clipvault/internal/models"
)

// DefaultPollInterval is how often the watcher checks the clipboard change
// counter when the configuration does not say otherwise.
const DefaultPollInterval = 250 * time.Millisecond

// Saver persists a captured item. Implemented by the history service; a
// duplicate capture is reported as common.ErrDuplicate and is not a failure.
type Saver interface {
	Save(ctx context.Context, item *models.CapturedItem) (*models.Item, error)
}

// Event notifies listeners (the presentation layer) that history changed.
type Event struct {
	ID   string
	Kind models.Kind
}

// Watcher polls the clipboard source and turns genuinely new content into
// stored history items. A single bad poll never terminates the loop: source
// errors are logged and polling continues on the next tick.
type Watcher struct {
	source   Source
	saver    Saver
	logger   logging.Logger
	interval time.Duration

	lastCounter uint64
	primed      bool
	events      chan Event
}

func NewWatcher(source Source, saver Saver, interval time.Duration, logger logging.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{
		source:   source,
		saver:    saver,
		logger:   logger.With("component", "watcher"),
		interval: interval,
		events:   make(chan Event, 64),
	}
}

// Events returns the channel on which saved captures are announced. Sends
// are non-blocking; a slow or absent listener only misses notifications,
// never stalls the capture pipeline.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Run polls until ctx is cancelled. It is the caller's goroutine; the
// watcher never blocks on the presentation layer.
func (w *Watcher) Run(ctx context.Context) {
	w.logger.Info(ctx, "clipboard watcher started", "interval", w.interval.String())

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "clipboard watcher stopped")
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	counter, err := w.source.ChangeCounter()
	if err != nil {
		w.logger.Error(ctx, "change counter read failed", "error", err)
		return
	}

	if w.primed && counter == w.lastCounter {
		return // idle tick
	}

	// The first observed counter value seeds the baseline; whatever is on
	// the clipboard at startup is captured once.
	w.primed = true
	w.lastCounter = counter

	reps, err := w.source.Read()
	if err != nil {
		w.logger.Error(ctx, "clipboard read failed", "error", err)
		return
	}

	item := Classify(reps)
	if item == nil {
		w.logger.Debug(ctx, "no supported representation on clipboard")
		return
	}

	saved, err := w.saver.Save(ctx, item)
	switch {
	case err == nil:
		w.logger.Info(ctx, "capture saved", "kind", item.Kind, "size", item.Size, "id", saved.ID)
		w.emit(Event{ID: saved.ID, Kind: saved.Kind})
	case errors.Is(err, common.ErrDuplicate):
		w.logger.Debug(ctx, "duplicate capture skipped", "kind", item.Kind)
	case errors.Is(err, common.ErrNotUnlocked):
		w.logger.Debug(ctx, "vault locked, capture skipped", "kind", item.Kind)
	default:
		w.logger.Error(ctx, "saving capture failed", "kind", item.Kind, "error", err)
	}
}

func (w *Watcher) emit(e Event) {
	select {
	case w.events <- e:
	default:
	}
}

// Classify builds a CapturedItem from the available representations using
// the fixed priority order: file paths, then image data, then text (rich
// text rides along on a text capture as a sidecar payload, and stands in for
// the content hash when no plain text accompanies it). Returns nil when
// nothing usable is present.
func Classify(reps *Representations) *models.CapturedItem {
	if reps.Empty() {
		return nil
	}

	if len(reps.Paths) > 0 {
		paths := CanonicalPaths(reps.Paths)
		return &models.CapturedItem{
			Kind:        models.KindFile,
			Paths:       paths,
			ContentHash: HashPaths(paths),
			Size:        int64(len(paths)),
		}
	}

	if len(reps.Image) > 0 {
		return &models.CapturedItem{
			Kind:        models.KindImage,
			Content:     reps.Image,
			ContentHash: HashContent(reps.Image),
			Size:        int64(len(reps.Image)),
		}
	}

	hashed := reps.Text
	if len(hashed) == 0 {
		hashed = reps.RTF
	}
	return &models.CapturedItem{
		Kind:        models.KindText,
		Content:     reps.Text,
		RTF:         reps.RTF,
		ContentHash: HashContent(hashed),
		Size:        int64(len(reps.Text)),
	}
}
