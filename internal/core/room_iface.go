package core

import (
	"time"

	"github.com/dkeye/WatchParty/internal/domain"
)

// PublishResult reports delivery stats/backpressure to orchestrator.
type PublishResult struct {
	SendTo  int
	Dropped []SessionID
}

func (p *PublishResult) merge(o PublishResult) {
	p.SendTo += o.SendTo
	p.Dropped = append(p.Dropped, o.Dropped...)
}

// JoinResult describes what a Join did inside the room.
type JoinResult struct {
	// Added is false when the session was already a member.
	Added bool
	// Closed is set when the room was swept before the join landed;
	// the caller should fetch a fresh room and retry.
	Closed bool
	// Seed is the playback state unicast to the joiner, if any.
	Seed *domain.PlaybackState
	// Published covers both the peer-joined announcement and the seed.
	Published PublishResult
}

type RoomInfo struct {
	ID          domain.RoomID         `json:"name"`
	MemberCount int                   `json:"member_count"`
	Playback    *domain.PlaybackState `json:"playback,omitempty"`
}

// RoomService is the core-facing API of a room.
// It owns the membership set and playback state, and serializes every
// change together with the broadcast it causes. It never closes
// transport resources.
type RoomService interface {
	Room() *domain.Room
	MemberCount() int
	Members() []SessionID
	Has(sid SessionID) bool
	Playback() (domain.PlaybackState, bool)
	Info() RoomInfo

	Join(sid SessionID, conn SignalConnection, enc Encoder) JoinResult
	Leave(sid SessionID, enc Encoder, now time.Time) (PublishResult, bool)
	UpdatePlayback(from SessionID, state domain.PlaybackState, enc Encoder) (PublishResult, bool)

	// TryClose closes the room if it has been empty since before cutoff.
	TryClose(cutoff time.Time) bool
}

type RoomManager interface {
	GetOrCreate(id domain.RoomID) RoomService
	Get(id domain.RoomID) (RoomService, bool)
	List() []RoomInfo
	Count() int
	SweepIdle(ttl time.Duration) []domain.RoomID
}
