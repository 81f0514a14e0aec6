package domain

import (
	"errors"
	"math"
	"time"
)

var (
	ErrInvalidPlaybackKind = errors.New("invalid playback kind")
	ErrInvalidPosition     = errors.New("invalid playback position")
)

type PlaybackKind string

const (
	PlaybackPlay  PlaybackKind = "PLAY"
	PlaybackPause PlaybackKind = "PAUSE"
)

func (k PlaybackKind) Valid() bool {
	return k == PlaybackPlay || k == PlaybackPause
}

// PlaybackState is the last reported shared-video state of a room.
// It is replaced wholesale on every update.
type PlaybackState struct {
	Kind       PlaybackKind `json:"kind"`
	Position   float64      `json:"position"`
	ObservedAt time.Time    `json:"observedAt"`
}

func NewPlaybackState(kind PlaybackKind, position float64, at time.Time) (PlaybackState, error) {
	if !kind.Valid() {
		return PlaybackState{}, ErrInvalidPlaybackKind
	}
	if position < 0 || math.IsNaN(position) || math.IsInf(position, 0) {
		return PlaybackState{}, ErrInvalidPosition
	}
	return PlaybackState{Kind: kind, Position: position, ObservedAt: at}, nil
}
