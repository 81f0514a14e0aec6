package app

import (
	"sync"
	"time"

	"github.com/dkeye/WatchParty/internal/core"
	"github.com/dkeye/WatchParty/internal/domain"
)

// JoinOutcome is what Directory.Join did. When the session was a member of
// another room it was moved: From names that room and Left holds the
// peer-left fan-out there.
type JoinOutcome struct {
	core.JoinResult
	Room  domain.RoomID
	Moved bool
	From  domain.RoomID
	Left  core.PublishResult
}

// Directory maps room ids to members and each member back to its one room.
type Directory struct {
	Rooms core.RoomManager

	mu       sync.RWMutex
	index    map[core.SessionID]domain.RoomID
	maxIDLen int
	now      func() time.Time
}

func NewDirectory(rooms core.RoomManager, maxIDLen int, now func() time.Time) *Directory {
	if now == nil {
		now = time.Now
	}
	return &Directory{
		Rooms:    rooms,
		index:    make(map[core.SessionID]domain.RoomID),
		maxIDLen: maxIDLen,
		now:      now,
	}
}

// Join puts sid in the room named raw, creating it if needed. Joining the
// room sid is already in changes nothing.
func (d *Directory) Join(raw string, sid core.SessionID, conn core.SignalConnection, enc core.Encoder) (JoinOutcome, error) {
	id, err := domain.NewRoomID(raw, d.maxIDLen)
	if err != nil {
		return JoinOutcome{}, err
	}

	out := JoinOutcome{Room: id}
	if prev, ok := d.RoomOf(sid); ok && prev != id {
		if _, res, left := d.Leave(sid, enc); left {
			out.Moved, out.From, out.Left = true, prev, res
		}
	}

	for {
		res := d.Rooms.GetOrCreate(id).Join(sid, conn, enc)
		if res.Closed {
			continue
		}
		out.JoinResult = res
		break
	}

	d.mu.Lock()
	d.index[sid] = id
	d.mu.Unlock()
	return out, nil
}

// Leave removes sid from whichever room it is in.
func (d *Directory) Leave(sid core.SessionID, enc core.Encoder) (domain.RoomID, core.PublishResult, bool) {
	d.mu.Lock()
	id, ok := d.index[sid]
	delete(d.index, sid)
	d.mu.Unlock()
	if !ok {
		return "", core.PublishResult{}, false
	}

	room, ok := d.Rooms.Get(id)
	if !ok {
		return id, core.PublishResult{}, true
	}
	res, _ := room.Leave(sid, enc, d.now())
	return id, res, true
}

func (d *Directory) RoomOf(sid core.SessionID) (domain.RoomID, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.index[sid]
	return id, ok
}

// Members is a snapshot of the room's member set; nil for unknown rooms.
func (d *Directory) Members(id domain.RoomID) []core.SessionID {
	room, ok := d.Rooms.Get(id)
	if !ok {
		return nil
	}
	return room.Members()
}
