package orch

import (
	"github.com/dkeye/WatchParty/internal/app"
	"github.com/dkeye/WatchParty/internal/core"
	"github.com/dkeye/WatchParty/internal/domain"
	"github.com/rs/zerolog/log"
)

// Join moves sid into roomID: existing members get peer-joined, then the
// joiner alone gets the stored playback state, if any.
func (o *Orchestrator) Join(sid core.SessionID, roomID string) {
	sess, ok := o.Registry.Get(sid)
	if !ok {
		return
	}

	var (
		out app.JoinOutcome
		err error
	)
	if !sess.With(func() { out, err = o.Rooms.Join(roomID, sid, sess.Conn, o.Encoder) }) {
		return
	}
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("sid", string(sid)).Msg("join ignored")
		return
	}

	if out.Moved {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("from_room", string(out.From)).Msg("left room to join another")
		o.applyPolicy(out.Left)
	}
	if out.Added {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(out.Room)).Bool("seeded", out.Seed != nil).Msg("joined room")
	}
	o.applyPolicy(out.Published)
}

// Disconnect terminates sid. It is safe to call from several code paths;
// only the first call leaves the room and notifies the remaining members.
func (o *Orchestrator) Disconnect(sid core.SessionID) {
	sess, ok := o.Registry.Unregister(sid)
	if !ok {
		return
	}

	var (
		room domain.RoomID
		res  core.PublishResult
		left bool
	)
	sess.Terminate(func() { room, res, left = o.Rooms.Leave(sid, o.Encoder) })
	sess.Cancel()
	sess.Conn.Close()

	if left {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(room)).Int("notified", res.SendTo).Msg("member disconnected")
	} else {
		log.Info().Str("module", "orch").Str("sid", string(sid)).Msg("session disconnected")
	}
	o.applyPolicy(res)
}
