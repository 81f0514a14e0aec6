package app

import (
	"fmt"

	"github.com/dkeye/WatchParty/internal/core"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

// Policy decides what happens to a member whose outbound queue was full.
// The frame itself is always dropped.
type Policy interface {
	OnBackPressure(sid core.SessionID) BackpressureAction
}

type SimplePolicy struct {
	Action BackpressureAction
}

func (p SimplePolicy) OnBackPressure(core.SessionID) BackpressureAction {
	return p.Action
}

// PolicyFromString maps the signal.slow_policy setting to a Policy.
func PolicyFromString(name string) (Policy, error) {
	switch name {
	case "", "drop":
		return SimplePolicy{Action: DropFrame}, nil
	case "kick":
		return SimplePolicy{Action: KickMember}, nil
	}
	return nil, fmt.Errorf("unknown slow policy %q", name)
}
