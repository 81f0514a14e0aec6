package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/WatchParty/internal/app"
	"github.com/dkeye/WatchParty/internal/core"
	"github.com/dkeye/WatchParty/internal/domain"
)

func TestGetOrCreateConcurrent(t *testing.T) {
	rooms := app.NewRoomManager(nil)
	got := make([]core.RoomService, 32)
	var wg sync.WaitGroup
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = rooms.GetOrCreate("r")
		}(i)
	}
	wg.Wait()
	for _, r := range got {
		if r != got[0] {
			t.Fatal("GetOrCreate returned different rooms")
		}
	}
	if rooms.Count() != 1 {
		t.Fatalf("Count = %d", rooms.Count())
	}
}

func TestListSorted(t *testing.T) {
	rooms := app.NewRoomManager(nil)
	for _, id := range []domain.RoomID{"c", "a", "b"} {
		rooms.GetOrCreate(id)
	}
	list := rooms.List()
	if len(list) != 3 || list[0].ID != "a" || list[2].ID != "c" {
		t.Fatalf("List = %+v", list)
	}
}

func TestSweepIdleKeepsOccupiedAndRecent(t *testing.T) {
	c := newClock()
	rooms := app.NewRoomManager(c.Now)
	rooms.GetOrCreate("old")
	rooms.GetOrCreate("busy").Join("a", &recConn{}, textEncoder{})

	c.Advance(10 * time.Minute)
	rooms.GetOrCreate("recent")

	removed := rooms.SweepIdle(5 * time.Minute)
	if len(removed) != 1 || removed[0] != "old" {
		t.Fatalf("removed = %v", removed)
	}
	if _, ok := rooms.Get("busy"); !ok {
		t.Fatal("occupied room swept")
	}
	if _, ok := rooms.Get("recent"); !ok {
		t.Fatal("recent room swept")
	}
}

func TestJanitorSweeps(t *testing.T) {
	c := newClock()
	rooms := app.NewRoomManager(c.Now)
	rooms.GetOrCreate("old")
	c.Advance(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- (&app.Janitor{Rooms: rooms, TTL: time.Minute, Interval: time.Millisecond}).Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for rooms.Count() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("janitor did not sweep")
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}

func TestJanitorDisabled(t *testing.T) {
	rooms := app.NewRoomManager(nil)
	rooms.GetOrCreate("kept")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := (&app.Janitor{Rooms: rooms}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if rooms.Count() != 1 {
		t.Fatal("room swept with sweeping disabled")
	}
}

func TestPolicyFromString(t *testing.T) {
	for name, want := range map[string]app.BackpressureAction{"": app.DropFrame, "drop": app.DropFrame, "kick": app.KickMember} {
		p, err := app.PolicyFromString(name)
		if err != nil {
			t.Fatal(err)
		}
		if got := p.OnBackPressure("a"); got != want {
			t.Errorf("%q: action = %v", name, got)
		}
	}
	if _, err := app.PolicyFromString("ban"); err == nil {
		t.Fatal("unknown policy accepted")
	}
}
