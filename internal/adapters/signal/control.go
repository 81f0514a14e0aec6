package signal

import (
	"github.com/dkeye/WatchParty/internal/core"
	"github.com/dkeye/WatchParty/internal/protocol"
)

func (ctl *SignalWSController) handlePing(_ core.SessionID, c *WsSignalConn, _ protocol.Message) {
	ctl.send(c, ctl.codec.Pong())
}
