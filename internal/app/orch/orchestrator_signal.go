package orch

import (
	"encoding/json"
	"errors"

	"github.com/dkeye/WatchParty/internal/core"
	"github.com/dkeye/WatchParty/internal/domain"
	"github.com/rs/zerolog/log"
)

// Signal relays an opaque handshake payload from sid to to. The sender is
// always the transport session; nothing in the payload can change it.
func (o *Orchestrator) Signal(sid core.SessionID, kind domain.SignalKind, to core.SessionID, payload json.RawMessage) {
	if _, ok := o.Registry.Get(sid); !ok {
		return
	}
	err := o.Relay.Relay(core.Envelope{Kind: kind, From: sid, To: to, Payload: payload}, o.Encoder)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrBackpressure):
		o.applyPolicy(core.PublishResult{Dropped: []core.SessionID{to}})
	default:
		log.Debug().Err(err).Str("module", "orch").Str("sid", string(sid)).Str("to", string(to)).Msg("relay dropped")
	}
}

// UpdatePlayback stores the report for roomID and fans it out to every
// other member. The reporter never gets its own update back.
func (o *Orchestrator) UpdatePlayback(sid core.SessionID, roomID string, kind domain.PlaybackKind, position float64) {
	if _, ok := o.Registry.Get(sid); !ok {
		return
	}
	st, res, err := o.Playback.Update(roomID, sid, kind, position, o.Encoder)
	if err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("sid", string(sid)).Msg("playback update ignored")
		return
	}
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", roomID).Str("kind", string(st.Kind)).Float64("position", st.Position).Int("sent_to", res.SendTo).Msg("playback updated")
	o.applyPolicy(res)
}
