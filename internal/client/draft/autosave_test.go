package draft

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/client/models"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- manual clock ----

type manualTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type manualClock struct {
	now    time.Duration
	timers []*manualTimer
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward by d and runs every live timer that comes due.
func (c *manualClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		due := make([]*manualTimer, 0)
		for _, t := range c.timers {
			if !t.stopped && !t.fired && t.at <= target {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			break
		}
		sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
		t := due[0]
		c.now = t.at
		t.fired = true
		t.f()
	}
	c.now = target
}

// ---- fake store ----

type fakeStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes []writeRecord
	SetErr error

	// when gate is set, Set signals started and waits for gate to close
	started chan struct{}
	gate    chan struct{}
}

type writeRecord struct {
	key   string
	value []byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *fakeStore) Set(_ context.Context, key string, value []byte) error {
	if s.gate != nil {
		s.started <- struct{}{}
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	s.data[key] = value
	s.writes = append(s.writes, writeRecord{key, value})
	return nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func newTestAutosaver(store *fakeStore, clock *manualClock) *Autosaver {
	return New(store, "blogDraft", 2*time.Second, clock, logging.NewDiscardLogger())
}

func decodeDraft(t *testing.T, b []byte) models.Draft {
	t.Helper()
	var d models.Draft
	require.NoError(t, json.Unmarshal(b, &d))
	return d
}

// ---- tests ----

func TestTouch_DebouncesToSingleWriteOfLatestState(t *testing.T) {
	store := newFakeStore()
	clock := &manualClock{}
	a := newTestAutosaver(store, clock)

	first := models.Draft{Title: "Hel", Published: true}
	second := models.Draft{Title: "Hello", Summary: "s", Published: true}

	a.Touch(first)
	clock.Advance(1000 * time.Millisecond)
	a.Touch(second)

	clock.Advance(1999 * time.Millisecond)
	assert.Empty(t, store.writes)
	assert.True(t, a.Pending())

	clock.Advance(1 * time.Millisecond)
	require.Len(t, store.writes, 1)
	assert.Equal(t, 3000*time.Millisecond, clock.now)
	assert.Equal(t, "blogDraft", store.writes[0].key)
	assert.Equal(t, second, decodeDraft(t, store.writes[0].value))
	assert.False(t, a.Pending())

	clock.Advance(10 * time.Second)
	assert.Len(t, store.writes, 1)
}

func TestTouch_SkipsEmptyDraft(t *testing.T) {
	store := newFakeStore()
	clock := &manualClock{}
	a := newTestAutosaver(store, clock)

	a.Touch(models.Draft{Tags: "go", Published: false})
	clock.Advance(5 * time.Second)

	assert.Empty(t, store.writes)
}

func TestOnSaved(t *testing.T) {
	store := newFakeStore()
	clock := &manualClock{}
	a := newTestAutosaver(store, clock)

	var got []models.Draft
	a.OnSaved(func(d models.Draft) { got = append(got, d) })

	a.Touch(models.Draft{Content: "<p>x</p>"})
	clock.Advance(2 * time.Second)

	require.Len(t, got, 1)
	assert.Equal(t, "<p>x</p>", got[0].Content)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		a := newTestAutosaver(newFakeStore(), &manualClock{})
		d, ok, err := a.Load(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, models.NewDraft(), d)
	})

	t.Run("valid", func(t *testing.T) {
		store := newFakeStore()
		store.data["blogDraft"] = []byte(`{"title":"T","content":"C","summary":"S","tags":"a,b","published":false}`)
		a := newTestAutosaver(store, &manualClock{})

		d, ok, err := a.Load(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, models.Draft{Title: "T", Content: "C", Summary: "S", Tags: "a,b", Published: false}, d)
	})

	t.Run("partial keeps defaults", func(t *testing.T) {
		store := newFakeStore()
		store.data["blogDraft"] = []byte(`{"title":"T"}`)
		a := newTestAutosaver(store, &manualClock{})

		d, ok, err := a.Load(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "T", d.Title)
		assert.True(t, d.Published)
	})

	t.Run("malformed", func(t *testing.T) {
		store := newFakeStore()
		store.data["blogDraft"] = []byte(`{not json`)
		a := newTestAutosaver(store, &manualClock{})

		d, ok, err := a.Load(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, models.NewDraft(), d)
	})
}

func TestClear_CancelsPendingAndRemoves(t *testing.T) {
	store := newFakeStore()
	store.data["blogDraft"] = []byte(`{"title":"old"}`)
	clock := &manualClock{}
	a := newTestAutosaver(store, clock)

	a.Touch(models.Draft{Title: "new"})
	require.NoError(t, a.Clear(context.Background()))
	clock.Advance(5 * time.Second)

	assert.Empty(t, store.writes)
	_, ok := store.data["blogDraft"]
	assert.False(t, ok)
}

func TestClear_WaitsForSaveInProgress(t *testing.T) {
	store := newFakeStore()
	store.started = make(chan struct{}, 1)
	store.gate = make(chan struct{})
	clock := &manualClock{}
	a := newTestAutosaver(store, clock)

	a.Touch(models.Draft{Title: "x"})

	fired := make(chan struct{})
	go func() {
		defer close(fired)
		clock.Advance(DefaultDelay)
	}()
	<-store.started

	a.mu.Lock()
	before := a.gen
	a.mu.Unlock()

	cleared := make(chan error, 1)
	go func() { cleared <- a.Clear(context.Background()) }()

	require.Eventually(t, func() bool {
		a.mu.Lock()
		defer a.mu.Unlock()
		return a.gen > before
	}, time.Second, time.Millisecond)

	close(store.gate)
	<-fired
	require.NoError(t, <-cleared)

	got, err := store.Get(context.Background(), a.key)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSave_SkippedAfterClear(t *testing.T) {
	store := newFakeStore()
	a := newTestAutosaver(store, &manualClock{})

	a.mu.Lock()
	gen := a.gen
	a.mu.Unlock()

	require.NoError(t, a.Clear(context.Background()))
	require.NoError(t, a.save(context.Background(), models.Draft{Title: "late"}, gen))

	assert.Empty(t, store.writes)
}

func TestFlush(t *testing.T) {
	store := newFakeStore()
	clock := &manualClock{}
	a := newTestAutosaver(store, clock)
	ctx := context.Background()

	require.NoError(t, a.Flush(ctx))
	assert.Empty(t, store.writes)

	a.Touch(models.Draft{Title: "now"})
	require.NoError(t, a.Flush(ctx))
	require.Len(t, store.writes, 1)

	clock.Advance(5 * time.Second)
	assert.Len(t, store.writes, 1)
}

func TestStop(t *testing.T) {
	store := newFakeStore()
	clock := &manualClock{}
	a := newTestAutosaver(store, clock)

	a.Touch(models.Draft{Title: "x"})
	a.Stop()
	a.Touch(models.Draft{Title: "y"})
	clock.Advance(5 * time.Second)

	assert.Empty(t, store.writes)
	assert.ErrorIs(t, a.Flush(context.Background()), ErrStopped)
}

func TestSaveError_IsLoggedNotFatal(t *testing.T) {
	store := newFakeStore()
	store.SetErr = errors.New("disk full")
	clock := &manualClock{}
	a := newTestAutosaver(store, clock)

	a.Touch(models.Draft{Title: "x"})
	assert.NotPanics(t, func() { clock.Advance(2 * time.Second) })
	assert.Empty(t, store.writes)
}

func TestNew_Defaults(t *testing.T) {
	a := New(newFakeStore(), "k", 0, nil, logging.NewDiscardLogger())
	assert.Equal(t, DefaultDelay, a.delay)
	assert.IsType(t, SystemClock{}, a.clock)
}

func TestSystemClock(t *testing.T) {
	done := make(chan struct{})
	SystemClock{}.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}
