// Package protocol is the JSON wire format spoken over the signaling socket.
// Every frame is a single object with a "type" field naming the event.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dkeye/WatchParty/internal/core"
	"github.com/dkeye/WatchParty/internal/domain"
)

type Type string

// Client to server.
const (
	TypeJoinRoom       Type = "join-room"
	TypeSignalOffer    Type = "signal-offer"
	TypeSignalAnswer   Type = "signal-answer"
	TypeSignalICE      Type = "signal-ice"
	TypePlaybackUpdate Type = "playback-update"
	TypePing           Type = "ping"
	TypeWhoAmI         Type = "whoami"
)

// Server to client. Relayed envelopes reuse the signal-* names.
const (
	TypePeerJoined   Type = "peer-joined"
	TypePeerLeft     Type = "peer-left"
	TypePlaybackSync Type = "playback-sync"
	TypePong         Type = "pong"
)

// Event names used by the first browser client.
var aliases = map[Type]Type{
	"webrtc-offer":         TypeSignalOffer,
	"webrtc-answer":        TypeSignalAnswer,
	"webrtc-ice-candidate": TypeSignalICE,
}

var (
	ErrMalformed   = errors.New("malformed message")
	ErrUnknownType = errors.New("unknown message type")
)

// SignalKind maps a signal-* type to the relay kind.
func (t Type) SignalKind() (domain.SignalKind, bool) {
	switch t {
	case TypeSignalOffer:
		return domain.SignalOffer, true
	case TypeSignalAnswer:
		return domain.SignalAnswer, true
	case TypeSignalICE:
		return domain.SignalICECandidate, true
	}
	return "", false
}

func signalType(k domain.SignalKind) (Type, string) {
	switch k {
	case domain.SignalOffer:
		return TypeSignalOffer, "offer"
	case domain.SignalAnswer:
		return TypeSignalAnswer, "answer"
	default:
		return TypeSignalICE, "candidate"
	}
}

// Message is a decoded client request. Only the fields relevant to Type are set.
type Message struct {
	Type Type

	RoomID string

	To      core.SessionID
	Payload json.RawMessage

	Kind     domain.PlaybackKind
	Position float64
}

type inbound struct {
	Type      Type            `json:"type"`
	RoomID    string          `json:"roomId"`
	To        string          `json:"to"`
	Offer     json.RawMessage `json:"offer"`
	Answer    json.RawMessage `json:"answer"`
	Candidate json.RawMessage `json:"candidate"`
	Kind      string          `json:"kind"`
	Position  *float64        `json:"position"`
}

// Decode parses and checks a client frame. Field values are not
// interpreted beyond presence; domain validation happens downstream.
func Decode(data []byte) (Message, error) {
	var in inbound
	if err := json.Unmarshal(data, &in); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if alias, ok := aliases[in.Type]; ok {
		in.Type = alias
	}

	msg := Message{Type: in.Type}
	switch in.Type {
	case TypeJoinRoom:
		if strings.TrimSpace(in.RoomID) == "" {
			return msg, fmt.Errorf("%w: missing roomId", ErrMalformed)
		}
		msg.RoomID = in.RoomID

	case TypeSignalOffer, TypeSignalAnswer, TypeSignalICE:
		if in.To == "" {
			return msg, fmt.Errorf("%w: missing to", ErrMalformed)
		}
		msg.To = core.SessionID(in.To)
		switch in.Type {
		case TypeSignalOffer:
			msg.Payload = in.Offer
		case TypeSignalAnswer:
			msg.Payload = in.Answer
		default:
			msg.Payload = in.Candidate
		}
		if len(msg.Payload) == 0 {
			return msg, fmt.Errorf("%w: missing payload", ErrMalformed)
		}

	case TypePlaybackUpdate:
		if strings.TrimSpace(in.RoomID) == "" {
			return msg, fmt.Errorf("%w: missing roomId", ErrMalformed)
		}
		if in.Kind == "" || in.Position == nil {
			return msg, fmt.Errorf("%w: missing kind or position", ErrMalformed)
		}
		msg.RoomID = in.RoomID
		msg.Kind = domain.PlaybackKind(strings.ToUpper(in.Kind))
		msg.Position = *in.Position

	case TypePing, TypeWhoAmI:

	default:
		return msg, fmt.Errorf("%w: %q", ErrUnknownType, in.Type)
	}
	return msg, nil
}
