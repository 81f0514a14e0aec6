package app

import (
	"errors"
	"fmt"

	"github.com/dkeye/WatchParty/internal/core"
	"github.com/dkeye/WatchParty/internal/domain"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownRecipient = errors.New("unknown recipient")
	ErrCrossRoom        = errors.New("recipient is in another room")
)

// Relay forwards handshake envelopes between live sessions. Payloads are
// opaque and delivery is best effort: errors are for the caller's logs,
// the sender is never told.
type Relay struct {
	Registry  *Registry
	Directory *Directory

	// SameRoomOnly drops envelopes whose sender and recipient are not
	// members of the same room.
	SameRoomOnly bool
}

func (r *Relay) Relay(env core.Envelope, enc core.Encoder) error {
	if !env.Kind.Valid() {
		return domain.ErrInvalidSignalKind
	}
	conn, ok := r.Registry.Conn(env.To)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRecipient, env.To)
	}
	if r.SameRoomOnly && r.Directory != nil {
		from, okFrom := r.Directory.RoomOf(env.From)
		to, okTo := r.Directory.RoomOf(env.To)
		if !okFrom || !okTo || from != to {
			return ErrCrossRoom
		}
	}

	frame := enc.Signal(env)
	if len(frame) == 0 {
		return fmt.Errorf("encode %s envelope", env.Kind)
	}
	if err := conn.TrySend(frame); err != nil {
		return err
	}
	log.Debug().Str("module", "app.relay").Str("kind", string(env.Kind)).Str("from", string(env.From)).Str("to", string(env.To)).Msg("relayed")
	return nil
}
