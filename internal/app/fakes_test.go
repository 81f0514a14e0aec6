package app_test

import (
	"fmt"
	"sync"
	"time"

	"github.com/dkeye/WatchParty/internal/core"
	"github.com/dkeye/WatchParty/internal/domain"
)

// recConn records every frame it accepts. A full conn rejects with
// core.ErrBackpressure.
type recConn struct {
	mu     sync.Mutex
	frames []string
	full   bool
	closed bool
}

func (c *recConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return core.ErrConnClosed
	}
	if c.full {
		return core.ErrBackpressure
	}
	c.frames = append(c.frames, string(f))
	return nil
}

func (c *recConn) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *recConn) got() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.frames...)
}

type textEncoder struct{}

func (textEncoder) PeerJoined(sid core.SessionID) core.Frame { return core.Frame("joined:" + sid) }
func (textEncoder) PeerLeft(sid core.SessionID) core.Frame   { return core.Frame("left:" + sid) }
func (textEncoder) PlaybackSync(st domain.PlaybackState) core.Frame {
	return core.Frame(fmt.Sprintf("sync:%s:%g", st.Kind, st.Position))
}
func (textEncoder) Signal(env core.Envelope) core.Frame {
	return core.Frame(fmt.Sprintf("signal:%s:%s:%s", env.Kind, env.From, env.Payload))
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock { return &clock{t: time.Unix(1700000000, 0)} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
