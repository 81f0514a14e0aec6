package signal

import (
	"github.com/dkeye/WatchParty/internal/core"
	"github.com/dkeye/WatchParty/internal/protocol"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleJoin(sid core.SessionID, _ *WsSignalConn, msg protocol.Message) {
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", msg.RoomID).Msg("join")
	ctl.Orch.Join(sid, msg.RoomID)
}

func (ctl *SignalWSController) handlePlayback(sid core.SessionID, _ *WsSignalConn, msg protocol.Message) {
	ctl.Orch.UpdatePlayback(sid, msg.RoomID, msg.Kind, msg.Position)
}
