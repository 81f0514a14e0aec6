package protocol

import (
	"encoding/json"

	"github.com/dkeye/WatchParty/internal/core"
	"github.com/dkeye/WatchParty/internal/domain"
	"github.com/rs/zerolog/log"
)

type peerMsg struct {
	Type Type           `json:"type"`
	From core.SessionID `json:"from"`
}

type playbackMsg struct {
	Type       Type                `json:"type"`
	Kind       domain.PlaybackKind `json:"kind"`
	Position   float64             `json:"position"`
	ObservedAt int64               `json:"observedAt"`
}

type signalMsg struct {
	Type      Type            `json:"type"`
	From      core.SessionID  `json:"from"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

type whoamiMsg struct {
	Type   Type           `json:"type"`
	ID     core.SessionID `json:"id"`
	RoomID domain.RoomID  `json:"roomId,omitempty"`
}

// Codec implements core.Encoder for the JSON protocol.
type Codec struct{}

var _ core.Encoder = Codec{}

func (Codec) PeerJoined(from core.SessionID) core.Frame {
	return marshal(peerMsg{Type: TypePeerJoined, From: from})
}

func (Codec) PeerLeft(from core.SessionID) core.Frame {
	return marshal(peerMsg{Type: TypePeerLeft, From: from})
}

// PlaybackSync carries observedAt as unix milliseconds.
func (Codec) PlaybackSync(st domain.PlaybackState) core.Frame {
	return marshal(playbackMsg{
		Type:       TypePlaybackSync,
		Kind:       st.Kind,
		Position:   st.Position,
		ObservedAt: st.ObservedAt.UnixMilli(),
	})
}

func (Codec) Signal(env core.Envelope) core.Frame {
	typ, field := signalType(env.Kind)
	m := signalMsg{Type: typ, From: env.From}
	switch field {
	case "offer":
		m.Offer = env.Payload
	case "answer":
		m.Answer = env.Payload
	default:
		m.Candidate = env.Payload
	}
	return marshal(m)
}

func (Codec) Pong() core.Frame {
	return marshal(struct {
		Type Type `json:"type"`
	}{Type: TypePong})
}

func (Codec) WhoAmI(sid core.SessionID, room domain.RoomID) core.Frame {
	return marshal(whoamiMsg{Type: TypeWhoAmI, ID: sid, RoomID: room})
}

func marshal(v any) core.Frame {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "protocol").Msg("marshal frame")
		return nil
	}
	return b
}
