package app

import (
	"time"

	"github.com/dkeye/WatchParty/internal/core"
	"github.com/dkeye/WatchParty/internal/domain"
)

// PlaybackStore keeps the latest playback report of every room.
// Concurrent reports are last-write-wins by arrival order.
type PlaybackStore struct {
	Rooms core.RoomManager

	maxIDLen int
	now      func() time.Time
}

func NewPlaybackStore(rooms core.RoomManager, maxIDLen int, now func() time.Time) *PlaybackStore {
	if now == nil {
		now = time.Now
	}
	return &PlaybackStore{Rooms: rooms, maxIDLen: maxIDLen, now: now}
}

// Update replaces the room's state and sends it to every member but from.
// Unknown rooms are created.
func (s *PlaybackStore) Update(
	raw string,
	from core.SessionID,
	kind domain.PlaybackKind,
	position float64,
	enc core.Encoder,
) (domain.PlaybackState, core.PublishResult, error) {
	id, err := domain.NewRoomID(raw, s.maxIDLen)
	if err != nil {
		return domain.PlaybackState{}, core.PublishResult{}, err
	}
	st, err := domain.NewPlaybackState(kind, position, s.now())
	if err != nil {
		return domain.PlaybackState{}, core.PublishResult{}, err
	}
	for {
		if res, ok := s.Rooms.GetOrCreate(id).UpdatePlayback(from, st, enc); ok {
			return st, res, nil
		}
	}
}

func (s *PlaybackStore) Get(id domain.RoomID) (domain.PlaybackState, bool) {
	room, ok := s.Rooms.Get(id)
	if !ok {
		return domain.PlaybackState{}, false
	}
	return room.Playback()
}
