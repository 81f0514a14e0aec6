// Package orch drives the session lifecycle: connect, join, signal,
// playback and disconnect, on top of the app components.
package orch

import (
	"context"

	"github.com/dkeye/WatchParty/internal/app"
	"github.com/dkeye/WatchParty/internal/core"
	"github.com/rs/zerolog/log"
)

type Orchestrator struct {
	Registry *app.Registry
	Rooms    *app.Directory
	Playback *app.PlaybackStore
	Relay    *app.Relay
	Policy   app.Policy
	Encoder  core.Encoder
}

// Connect registers a fresh transport session in the CONNECTED state.
func (o *Orchestrator) Connect(conn core.SignalConnection, cancel context.CancelFunc) core.SessionID {
	return o.Registry.Register(conn, cancel).ID
}

// State reports where sid is in its lifecycle.
func (o *Orchestrator) State(sid core.SessionID) core.SessionState {
	if _, ok := o.Registry.Get(sid); !ok {
		return core.StateTerminated
	}
	if _, ok := o.Rooms.RoomOf(sid); ok {
		return core.StateJoined
	}
	return core.StateConnected
}

// applyPolicy hands members whose queue overflowed to the backpressure policy.
func (o *Orchestrator) applyPolicy(res core.PublishResult) {
	if o.Policy == nil {
		return
	}
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(slow) {
		case app.KickMember:
			log.Warn().Str("module", "orch").Str("sid", string(slow)).Msg("kicking slow member")
			o.Disconnect(slow)
		case app.DropFrame, app.NoAction:
			log.Warn().Str("module", "orch").Str("sid", string(slow)).Msg("dropped frame for slow member")
		}
	}
}
