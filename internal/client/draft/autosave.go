// Package draft keeps the in-progress blog form in the local store.
//
// An Autosaver is a two-state machine. Idle: nothing scheduled. Pending: a
// save is scheduled Delay after the most recent Touch. Every Touch cancels
// the scheduled save and arms a new one, so a burst of edits collapses into
// a single write of the latest state once editing stops. When the save
// fires, the draft is written only if one of its text fields is non-empty.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

// DefaultDelay is the quiet period before a draft is saved.
const DefaultDelay = 2 * time.Second

var ErrStopped = errors.New("autosaver stopped")

// Autosaver debounces draft writes to a metadata.Repository.
type Autosaver struct {
	store  metadata.Repository
	key    string
	delay  time.Duration
	clock  Clock
	logger logging.Logger

	// saveMu serializes writes with Clear so a save cannot outlive it.
	saveMu sync.Mutex

	mu      sync.Mutex
	pending Timer
	latest  models.Draft
	gen     uint64
	stopped bool
	saved   func(models.Draft)
}

// New returns an idle Autosaver writing under key. A non-positive delay
// selects DefaultDelay; a nil clock selects SystemClock.
func New(store metadata.Repository, key string, delay time.Duration, clock Clock, logger logging.Logger) *Autosaver {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Autosaver{
		store:  store,
		key:    key,
		delay:  delay,
		clock:  clock,
		logger: logger,
	}
}

// OnSaved registers fn to be called after each successful write.
func (a *Autosaver) OnSaved(fn func(models.Draft)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.saved = fn
}

// Touch records d as the latest form state and re-arms the save timer.
func (a *Autosaver) Touch(d models.Draft) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}
	if a.pending != nil {
		a.pending.Stop()
	}
	a.latest = d
	a.gen++
	gen := a.gen
	a.pending = a.clock.AfterFunc(a.delay, func() { a.fire(gen) })
}

// Pending reports whether a save is scheduled.
func (a *Autosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}

func (a *Autosaver) fire(gen uint64) {
	a.mu.Lock()
	// a Touch or Clear that raced with the timer owns the schedule now
	if a.stopped || gen != a.gen {
		a.mu.Unlock()
		return
	}
	a.pending = nil
	d := a.latest
	a.mu.Unlock()

	if err := a.save(context.Background(), d, gen); err != nil {
		a.logger.Error(context.Background(), "autosave failed", "key", a.key, "error", err)
	}
}

// save writes d if it has text and gen is still current. Storage is
// touched under saveMu only, never under mu.
func (a *Autosaver) save(ctx context.Context, d models.Draft, gen uint64) error {
	if !d.HasText() {
		return nil
	}

	b, err := json.Marshal(d)
	if err != nil {
		return err
	}

	a.saveMu.Lock()
	a.mu.Lock()
	current := !a.stopped && gen == a.gen
	a.mu.Unlock()
	if !current {
		a.saveMu.Unlock()
		return nil
	}
	err = a.store.Set(ctx, a.key, b)
	a.saveMu.Unlock()
	if err != nil {
		return err
	}

	a.logger.Debug(ctx, "draft saved", "key", a.key)

	a.mu.Lock()
	fn := a.saved
	a.mu.Unlock()
	if fn != nil {
		fn(d)
	}
	return nil
}

// Load reads the persisted draft. A missing or unparsable value yields
// NewDraft() and false; the parse failure is logged, not returned. The
// returned error reports storage failures only.
func (a *Autosaver) Load(ctx context.Context) (models.Draft, bool, error) {
	b, err := a.store.Get(ctx, a.key)
	if err != nil {
		return models.NewDraft(), false, err
	}
	if len(b) == 0 {
		return models.NewDraft(), false, nil
	}

	d := models.NewDraft()
	if err := json.Unmarshal(b, &d); err != nil {
		a.logger.Warn(ctx, "ignoring unreadable draft", "key", a.key, "error", err)
		return models.NewDraft(), false, nil
	}
	return d, true, nil
}

// Flush cancels the timer and saves the latest touched state right away.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return ErrStopped
	}
	if a.pending == nil {
		a.mu.Unlock()
		return nil
	}
	a.pending.Stop()
	a.pending = nil
	a.gen++
	gen := a.gen
	d := a.latest
	a.mu.Unlock()

	return a.save(ctx, d, gen)
}

// Clear cancels any scheduled save and removes the persisted draft. A save
// already writing when Clear is called finishes first and is then removed.
func (a *Autosaver) Clear(ctx context.Context) error {
	a.cancel()

	a.saveMu.Lock()
	defer a.saveMu.Unlock()
	return a.store.Delete(ctx, a.key)
}

// Stop cancels any scheduled save without writing. Later Touch calls are
// ignored.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	if a.pending != nil {
		a.pending.Stop()
		a.pending = nil
	}
	a.gen++
}

func (a *Autosaver) cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending != nil {
		a.pending.Stop()
		a.pending = nil
	}
	a.gen++
}
