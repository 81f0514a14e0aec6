package app

import (
	"sort"
	"sync"
	"time"

	"github.com/dkeye/WatchParty/internal/core"
	"github.com/dkeye/WatchParty/internal/domain"
	"github.com/rs/zerolog/log"
)

type RoomManagerImpl struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]core.RoomService
	now   func() time.Time
}

func NewRoomManager(now func() time.Time) core.RoomManager {
	if now == nil {
		now = time.Now
	}
	return &RoomManagerImpl{
		rooms: make(map[domain.RoomID]core.RoomService),
		now:   now,
	}
}

func (f *RoomManagerImpl) GetOrCreate(id domain.RoomID) core.RoomService {
	f.mu.RLock()
	room, ok := f.rooms[id]
	f.mu.RUnlock()
	if ok {
		return room
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if room, ok = f.rooms[id]; ok {
		return room
	}
	room = core.NewRoomService(&domain.Room{ID: id}, f.now())
	f.rooms[id] = room
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room created")
	return room
}

func (f *RoomManagerImpl) Get(id domain.RoomID) (core.RoomService, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	room, ok := f.rooms[id]
	return room, ok
}

func (f *RoomManagerImpl) List() []core.RoomInfo {
	f.mu.RLock()
	out := make([]core.RoomInfo, 0, len(f.rooms))
	for _, r := range f.rooms {
		out = append(out, r.Info())
	}
	f.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *RoomManagerImpl) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.rooms)
}

// SweepIdle drops rooms that have had no members for longer than ttl.
// A dropped room is closed first, so a join racing with the sweep
// retries on a fresh room instead of landing in an orphan.
func (f *RoomManagerImpl) SweepIdle(ttl time.Duration) []domain.RoomID {
	cutoff := f.now().Add(-ttl)
	f.mu.Lock()
	defer f.mu.Unlock()
	var removed []domain.RoomID
	for id, r := range f.rooms {
		if r.TryClose(cutoff) {
			delete(f.rooms, id)
			removed = append(removed, id)
		}
	}
	if len(removed) > 0 {
		log.Info().Str("module", "app.rooms").Int("removed", len(removed)).Int("left", len(f.rooms)).Msg("swept idle rooms")
	}
	return removed
}
