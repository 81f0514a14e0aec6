package core

type SessionID string

// SessionState is the lifecycle position of one transport session.
type SessionState int

const (
	StateTerminated SessionState = iota
	StateConnected
	StateJoined
)

func (s SessionState) String() string {
	switch s {
	case StateConnected:
		return "CONNECTED"
	case StateJoined:
		return "JOINED"
	default:
		return "TERMINATED"
	}
}
