// Package unlock implements the hidden admin entry: five quick logo clicks open a code prompt,
// and the right six-digit code unlocks the dashboard.
package unlock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Skotchmaster/showcase/internal/domain"
)

type State int

const (
	Locked State = iota
	CodeEntryOpen
	Unlocked
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case CodeEntryOpen:
		return "code_entry_open"
	case Unlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

const (
	ClicksToOpen = 5
	ClickWindow  = 2 * time.Second
)

var (
	ErrCodeFormat  = errors.New("code must be exactly 6 digits")
	ErrInvalidCode = errors.New("invalid code")
	ErrWrongState  = errors.New("action not allowed in current state")
)

// CodeSource returns the currently configured secret code.
type CodeSource interface {
	SecretCode(ctx context.Context) (string, error)
}

type Snapshot struct {
	State       State     `json:"state"`
	Clicks      int       `json:"clicks"`
	EnteredCode string    `json:"enteredCode"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Gate is one visitor's unlock state machine. Safe for concurrent use.
type Gate struct {
	mu    sync.Mutex
	clock Clock
	codes CodeSource

	state   State
	clicks  int
	entered string
	timer   Timer
	token   uint64
	updated time.Time
}

func NewGate(codes CodeSource, clock Clock) *Gate {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Gate{codes: codes, clock: clock, updated: clock.Now()}
}

// LogoClick counts a logo click while locked. Each click restarts the reset window; the fifth
// click inside it opens code entry.
func (g *Gate) LogoClick() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Locked {
		return g.snapshot()
	}

	g.stopTimer()
	g.clicks++
	g.touch()

	if g.clicks >= ClicksToOpen {
		g.clicks = 0
		g.state = CodeEntryOpen
		g.entered = ""
		return g.snapshot()
	}

	tok := g.token
	g.timer = g.clock.AfterFunc(ClickWindow, func() { g.expire(tok) })
	return g.snapshot()
}

// expire resets the click count unless a newer click superseded the timer.
func (g *Gate) expire(tok uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if tok != g.token || g.state != Locked {
		return
	}
	g.clicks = 0
	g.timer = nil
	g.touch()
}

// OpenCodeEntry is the direct "Admin Access" affordance.
func (g *Gate) OpenCodeEntry() (Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case CodeEntryOpen:
		return g.snapshot(), nil
	case Unlocked:
		return g.snapshot(), ErrWrongState
	}
	g.stopTimer()
	g.clicks = 0
	g.entered = ""
	g.state = CodeEntryOpen
	g.touch()
	return g.snapshot(), nil
}

// Submit checks a code. Wrong or malformed codes keep the prompt open with the entry intact.
func (g *Gate) Submit(ctx context.Context, raw string) (Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != CodeEntryOpen {
		return g.snapshot(), ErrWrongState
	}

	code := domain.SanitizeCode(raw)
	g.entered = code
	g.touch()
	if len(code) != domain.SecretCodeLength {
		return g.snapshot(), ErrCodeFormat
	}

	secret, err := g.codes.SecretCode(ctx)
	if err != nil {
		return g.snapshot(), err
	}
	if code != secret {
		return g.snapshot(), ErrInvalidCode
	}

	g.state = Unlocked
	g.entered = ""
	return g.snapshot(), nil
}

func (g *Gate) Cancel() (Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != CodeEntryOpen {
		return g.snapshot(), ErrWrongState
	}
	g.state = Locked
	g.entered = ""
	g.touch()
	return g.snapshot(), nil
}

// Close re-locks an unlocked dashboard.
func (g *Gate) Close() (Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Unlocked {
		return g.snapshot(), ErrWrongState
	}
	g.state = Locked
	g.touch()
	return g.snapshot(), nil
}

func (g *Gate) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

func (g *Gate) lastUpdate() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.updated
}

func (g *Gate) snapshot() Snapshot {
	return Snapshot{State: g.state, Clicks: g.clicks, EnteredCode: g.entered, UpdatedAt: g.updated}
}

// stopTimer cancels the pending reset and invalidates its token.
func (g *Gate) stopTimer() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.token++
}

func (g *Gate) touch() { g.updated = g.clock.Now() }
