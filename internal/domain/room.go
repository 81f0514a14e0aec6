// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"strings"
)

const DefaultMaxRoomIDLen = 128

var (
	ErrRoomIDEmpty   = errors.New("room id empty")
	ErrRoomIDTooLong = errors.New("room id too long")
)

type RoomID string

type Room struct {
	ID RoomID `json:"id"`
}

// NewRoomID trims the caller supplied name and checks it against maxLen.
// maxLen <= 0 means DefaultMaxRoomIDLen.
func NewRoomID(raw string, maxLen int) (RoomID, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxRoomIDLen
	}
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", ErrRoomIDEmpty
	}
	if len(id) > maxLen {
		return "", ErrRoomIDTooLong
	}
	return RoomID(id), nil
}
