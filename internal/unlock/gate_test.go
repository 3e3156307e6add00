package unlock

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	at      time.Time
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and fires due timers in deadline order.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	kept := c.timers[:0]
	for _, t := range c.timers {
		switch {
		case t.stopped:
		case !t.at.After(c.now):
			due = append(due, t)
		default:
			kept = append(kept, t)
		}
	}
	c.timers = kept
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.f()
	}
}

type staticCode struct {
	code string
	err  error
}

func (s staticCode) SecretCode(context.Context) (string, error) { return s.code, s.err }

func TestLogoClicks_FiveInsideWindowOpenEntry(t *testing.T) {
	clock := newFakeClock()
	g := NewGate(staticCode{code: "123456"}, clock)

	for i := 1; i < ClicksToOpen; i++ {
		snap := g.LogoClick()
		require.Equal(t, Locked, snap.State)
		require.Equal(t, i, snap.Clicks)
		clock.Advance(1900 * time.Millisecond)
	}

	snap := g.LogoClick()
	assert.Equal(t, CodeEntryOpen, snap.State)
	assert.Zero(t, snap.Clicks)

	clock.Advance(5 * time.Second)
	assert.Equal(t, CodeEntryOpen, g.Snapshot().State)
}

func TestLogoClicks_GapResetsCount(t *testing.T) {
	clock := newFakeClock()
	g := NewGate(staticCode{code: "123456"}, clock)

	for i := 0; i < 4; i++ {
		g.LogoClick()
	}
	clock.Advance(ClickWindow)
	assert.Zero(t, g.Snapshot().Clicks)

	for i := 0; i < 4; i++ {
		g.LogoClick()
	}
	assert.Equal(t, Locked, g.Snapshot().State)
	assert.Equal(t, 4, g.Snapshot().Clicks)

	clock.Advance(ClickWindow + time.Millisecond)
	snap := g.LogoClick()
	assert.Equal(t, Locked, snap.State)
	assert.Equal(t, 1, snap.Clicks)
}

func TestLogoClicks_StaleTimerIgnored(t *testing.T) {
	clock := newFakeClock()
	g := NewGate(staticCode{code: "123456"}, clock)

	g.LogoClick()
	first := clock.timers[0]
	clock.Advance(time.Second)
	g.LogoClick()

	// a timer that fires after being superseded must not reset the count
	first.f()
	assert.Equal(t, 2, g.Snapshot().Clicks)
}

func TestSubmit(t *testing.T) {
	g := NewGate(staticCode{code: "123456"}, newFakeClock())

	_, err := g.Submit(context.Background(), "123456")
	require.ErrorIs(t, err, ErrWrongState)

	_, err = g.OpenCodeEntry()
	require.NoError(t, err)

	snap, err := g.Submit(context.Background(), "000000")
	require.ErrorIs(t, err, ErrInvalidCode)
	assert.Equal(t, CodeEntryOpen, snap.State)
	assert.Equal(t, "000000", snap.EnteredCode)

	snap, err = g.Submit(context.Background(), "12a3")
	require.ErrorIs(t, err, ErrCodeFormat)
	assert.Equal(t, CodeEntryOpen, snap.State)
	assert.Equal(t, "123", snap.EnteredCode)

	snap, err = g.Submit(context.Background(), "12-34-56-78")
	require.NoError(t, err)
	assert.Equal(t, Unlocked, snap.State)
	assert.Empty(t, snap.EnteredCode)

	g.LogoClick()
	assert.Equal(t, Unlocked, g.Snapshot().State)

	snap, err = g.Close()
	require.NoError(t, err)
	assert.Equal(t, Locked, snap.State)
}

func TestSubmit_CodeSourceError(t *testing.T) {
	boom := errors.New("store down")
	g := NewGate(staticCode{err: boom}, newFakeClock())
	_, err := g.OpenCodeEntry()
	require.NoError(t, err)

	snap, err := g.Submit(context.Background(), "123456")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, CodeEntryOpen, snap.State)
}

func TestCancelAndClose(t *testing.T) {
	g := NewGate(staticCode{code: "123456"}, newFakeClock())

	_, err := g.Cancel()
	require.ErrorIs(t, err, ErrWrongState)
	_, err = g.Close()
	require.ErrorIs(t, err, ErrWrongState)

	_, err = g.OpenCodeEntry()
	require.NoError(t, err)
	snap, err := g.Cancel()
	require.NoError(t, err)
	assert.Equal(t, Locked, snap.State)

	_, _ = g.OpenCodeEntry()
	_, err = g.Submit(context.Background(), "123456")
	require.NoError(t, err)
	_, err = g.OpenCodeEntry()
	require.ErrorIs(t, err, ErrWrongState)
}

func TestRegistry(t *testing.T) {
	clock := newFakeClock()
	r := NewRegistry(staticCode{code: "123456"}, clock, time.Hour)

	a := r.Get("a")
	require.Same(t, a, r.Get("a"))
	require.NotSame(t, a, r.Get("b"))
	require.Equal(t, 2, r.Len())

	clock.Advance(30 * time.Minute)
	a.LogoClick()
	clock.Advance(45 * time.Minute)

	require.Equal(t, 1, r.Sweep())
	require.Equal(t, 1, r.Len())
	require.Same(t, a, r.Get("a"))
}

func TestStateText(t *testing.T) {
	b, err := CodeEntryOpen.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "code_entry_open", string(b))
}
