package app

import (
	"context"
	"time"

	"github.com/dkeye/WatchParty/internal/core"
	"github.com/rs/zerolog/log"
)

// Janitor periodically drops rooms that stayed empty longer than TTL.
// With TTL <= 0 empty rooms, and their playback state, are kept forever.
type Janitor struct {
	Rooms    core.RoomManager
	TTL      time.Duration
	Interval time.Duration
}

// Run blocks until ctx is done.
func (j *Janitor) Run(ctx context.Context) error {
	if j.TTL <= 0 {
		log.Info().Str("module", "app.janitor").Msg("idle room sweeping disabled")
		<-ctx.Done()
		return nil
	}
	interval := j.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	log.Info().Str("module", "app.janitor").Dur("ttl", j.TTL).Dur("interval", interval).Msg("idle room sweeping enabled")

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			j.Rooms.SweepIdle(j.TTL)
		}
	}
}
