package core

import (
	"encoding/json"
	"errors"

	"github.com/dkeye/WatchParty/internal/domain"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

// Frame is a raw encoded outbound message.
type Frame []byte

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
// TrySend must never block.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// Envelope is a handshake message addressed from one session to another.
// Payload belongs to the peer negotiation protocol and is forwarded untouched.
type Envelope struct {
	Kind    domain.SignalKind
	From    SessionID
	To      SessionID
	Payload json.RawMessage
}

//go:generate mockgen -source=signal_iface.go -destination=mocks/signal_mock.go -package=mocks

// Encoder turns coordinator events into wire frames.
type Encoder interface {
	PeerJoined(from SessionID) Frame
	PeerLeft(from SessionID) Frame
	PlaybackSync(state domain.PlaybackState) Frame
	Signal(env Envelope) Frame
}
