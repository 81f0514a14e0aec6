package core

import (
	"sort"
	"sync"
	"time"

	"github.com/dkeye/WatchParty/internal/domain"
	"github.com/rs/zerolog/log"
)

// roomImpl is a threadsafe in-memory room.
// It never closes adapter-owned resources.
type roomImpl struct {
	room *domain.Room

	mu        sync.Mutex
	members   map[SessionID]SignalConnection
	playback  *domain.PlaybackState
	idleSince time.Time
	closed    bool
}

// NewRoomService returns an empty room. now marks the start of its idle period.
func NewRoomService(room *domain.Room, now time.Time) RoomService {
	return &roomImpl{
		room:      room,
		members:   make(map[SessionID]SignalConnection),
		idleSince: now,
	}
}

func (r *roomImpl) Room() *domain.Room { return r.room }

func (r *roomImpl) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

func (r *roomImpl) Members() []SessionID {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]SessionID, 0, len(r.members))
	for sid := range r.members {
		out = append(out, sid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *roomImpl) Has(sid SessionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.members[sid]
	return ok
}

func (r *roomImpl) Playback() (domain.PlaybackState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.playback == nil {
		return domain.PlaybackState{}, false
	}
	return *r.playback, true
}

func (r *roomImpl) Info() RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	info := RoomInfo{ID: r.room.ID, MemberCount: len(r.members)}
	if r.playback != nil {
		st := *r.playback
		info.Playback = &st
	}
	return info
}

// Join adds sid, announces it to the other members and seeds it with the
// stored playback state. Announcement and seed happen under the room lock
// so no playback update can slip in between them.
func (r *roomImpl) Join(sid SessionID, conn SignalConnection, enc Encoder) JoinResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return JoinResult{Closed: true}
	}
	if _, ok := r.members[sid]; ok {
		return JoinResult{}
	}

	res := JoinResult{Added: true}
	res.Published = r.broadcastLocked(sid, enc.PeerJoined(sid))

	r.members[sid] = conn
	r.idleSince = time.Time{}

	if r.playback != nil {
		seed := *r.playback
		res.Seed = &seed
		res.Published.merge(r.unicastLocked(sid, conn, enc.PlaybackSync(seed)))
	}
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("sid", string(sid)).Int("members", len(r.members)).Msg("member added")
	return res
}

// Leave removes sid and tells the remaining members. The second value is
// false when sid was not a member.
func (r *roomImpl) Leave(sid SessionID, enc Encoder, now time.Time) (PublishResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[sid]; !ok {
		return PublishResult{}, false
	}
	delete(r.members, sid)
	if len(r.members) == 0 {
		r.idleSince = now
	}
	res := r.broadcastLocked(sid, enc.PeerLeft(sid))
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("sid", string(sid)).Int("members", len(r.members)).Msg("member removed")
	return res, true
}

// UpdatePlayback overwrites the stored state and fans it out to everyone
// except the reporter. It reports false if the room was already closed.
func (r *roomImpl) UpdatePlayback(from SessionID, state domain.PlaybackState, enc Encoder) (PublishResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return PublishResult{}, false
	}
	r.playback = &state
	return r.broadcastLocked(from, enc.PlaybackSync(state)), true
}

func (r *roomImpl) TryClose(cutoff time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return true
	}
	if len(r.members) > 0 || r.idleSince.IsZero() || r.idleSince.After(cutoff) {
		return false
	}
	r.closed = true
	return true
}

func (r *roomImpl) broadcastLocked(from SessionID, data Frame) PublishResult {
	res := PublishResult{}
	for sid, m := range r.members {
		if sid == from {
			continue
		}
		res.merge(r.unicastLocked(sid, m, data))
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.room.ID)).Str("from", string(from)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

func (r *roomImpl) unicastLocked(sid SessionID, conn SignalConnection, data Frame) PublishResult {
	if err := conn.TrySend(data); err != nil {
		return PublishResult{Dropped: []SessionID{sid}}
	}
	return PublishResult{SendTo: 1}
}
