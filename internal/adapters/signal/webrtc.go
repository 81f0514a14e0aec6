package signal

import (
	"github.com/dkeye/WatchParty/internal/core"
	"github.com/dkeye/WatchParty/internal/protocol"
)

// handleRelay forwards offers, answers and ICE candidates. The payload is
// passed along as raw JSON; the sender is the socket's own identity.
func (ctl *SignalWSController) handleRelay(sid core.SessionID, _ *WsSignalConn, msg protocol.Message) {
	kind, ok := msg.Type.SignalKind()
	if !ok {
		return
	}
	ctl.Orch.Signal(sid, kind, msg.To, msg.Payload)
}
