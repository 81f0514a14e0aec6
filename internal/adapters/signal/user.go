package signal

import (
	"github.com/dkeye/WatchParty/internal/core"
	"github.com/dkeye/WatchParty/internal/protocol"
)

// handleWhoAmI tells a client its own identity and current room.
func (ctl *SignalWSController) handleWhoAmI(sid core.SessionID, c *WsSignalConn, _ protocol.Message) {
	room, _ := ctl.Orch.Rooms.RoomOf(sid)
	ctl.send(c, ctl.codec.WhoAmI(sid, room))
}
