// Package rtc holds the WebRTC settings handed to browser peers. The
// coordinator never opens peer connections itself.
package rtc

import (
	"errors"
	"fmt"

	"github.com/dkeye/WatchParty/internal/config"
	"github.com/pion/stun/v3"
	"github.com/pion/webrtc/v4"
)

var ErrNoURLs = errors.New("ice server without urls")

func DefaultICEServers() []webrtc.ICEServer {
	return []webrtc.ICEServer{
		{
			URLs: []string{"stun:stun.l.google.com:19302"},
		},
	}
}

// ICEServers checks every configured URL and converts the list for clients.
// An empty list falls back to DefaultICEServers.
func ICEServers(in []config.ICEServer) ([]webrtc.ICEServer, error) {
	if len(in) == 0 {
		return DefaultICEServers(), nil
	}
	out := make([]webrtc.ICEServer, 0, len(in))
	for i, s := range in {
		if len(s.URLs) == 0 {
			return nil, fmt.Errorf("ice.servers[%d]: %w", i, ErrNoURLs)
		}
		for _, raw := range s.URLs {
			if _, err := stun.ParseURI(raw); err != nil {
				return nil, fmt.Errorf("ice.servers[%d]: %q: %w", i, raw, err)
			}
		}
		srv := webrtc.ICEServer{URLs: s.URLs, Username: s.Username}
		if s.Credential != "" {
			srv.Credential = s.Credential
		}
		out = append(out, srv)
	}
	return out, nil
}
