package app

import (
	"context"
	"testing"

	"github.com/dkeye/WatchParty/internal/core"
)

type nopConn struct{}

func (nopConn) TrySend(core.Frame) error { return nil }
func (nopConn) Close()                   {}

func TestRegisterAssignsFreshIDs(t *testing.T) {
	r := NewRegistry()
	seen := make(map[core.SessionID]bool)
	for i := 0; i < 100; i++ {
		s := r.Register(nopConn{}, nil)
		if s.ID == "" || seen[s.ID] {
			t.Fatalf("duplicate or empty id %q", s.ID)
		}
		seen[s.ID] = true
	}
	if r.Count() != 100 {
		t.Fatalf("Count = %d", r.Count())
	}
}

func TestRegisterSkipsTakenIDs(t *testing.T) {
	r := NewRegistry()
	ids := []core.SessionID{"a", "a", "b"}
	r.newID = func() core.SessionID {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	if got := r.Register(nopConn{}, nil).ID; got != "a" {
		t.Fatalf("first id = %q", got)
	}
	if got := r.Register(nopConn{}, nil).ID; got != "b" {
		t.Fatalf("second id = %q, want b", got)
	}
}

func TestUnregisterOnce(t *testing.T) {
	r := NewRegistry()
	s := r.Register(nopConn{}, nil)
	if _, ok := r.Unregister(s.ID); !ok {
		t.Fatal("first unregister failed")
	}
	if _, ok := r.Unregister(s.ID); ok {
		t.Fatal("second unregister succeeded")
	}
	if _, ok := r.Conn(s.ID); ok {
		t.Fatal("conn still resolvable")
	}
}

func TestCancelReachesTransport(t *testing.T) {
	r := NewRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	s := r.Register(nopConn{}, cancel)
	if !r.Cancel(s.ID) {
		t.Fatal("cancel failed")
	}
	if ctx.Err() == nil {
		t.Fatal("transport context not canceled")
	}
	if r.Cancel("nobody") {
		t.Fatal("cancel of unknown session succeeded")
	}
}

func TestSessionTerminateRunsOnce(t *testing.T) {
	s := &Session{ID: "a"}
	calls := 0
	if !s.Terminate(func() { calls++ }) {
		t.Fatal("first terminate refused")
	}
	if s.Terminate(func() { calls++ }) {
		t.Fatal("second terminate accepted")
	}
	if s.With(func() { calls++ }) {
		t.Fatal("With ran after terminate")
	}
	if calls != 1 {
		t.Fatalf("calls = %d", calls)
	}
}
