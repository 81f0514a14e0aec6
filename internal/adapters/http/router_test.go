package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dkeye/WatchParty/internal/adapters/rtc"
	"github.com/dkeye/WatchParty/internal/app"
	"github.com/dkeye/WatchParty/internal/app/orch"
	"github.com/dkeye/WatchParty/internal/config"
	"github.com/dkeye/WatchParty/internal/protocol"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func testConfig() *config.Config {
	return &config.Config{
		Mode: "test",
		HTTP: config.HTTPConfig{Port: 4000, AllowedOrigins: []string{"*"}},
		Signal: config.SignalConfig{
			ReadLimit:  64 * 1024,
			SendQueue:  16,
			WriteWait:  time.Second,
			PongWait:   time.Minute,
			PingPeriod: 54 * time.Second,
			SlowPolicy: "drop",
		},
	}
}

func newServer(t *testing.T) (*httptest.Server, *orch.Orchestrator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rooms := app.NewRoomManager(nil)
	reg := app.NewRegistry()
	dir := app.NewDirectory(rooms, 0, nil)
	o := &orch.Orchestrator{
		Registry: reg,
		Rooms:    dir,
		Playback: app.NewPlaybackStore(rooms, 0, nil),
		Relay:    &app.Relay{Registry: reg, Directory: dir},
		Policy:   app.SimplePolicy{Action: app.DropFrame},
		Encoder:  protocol.Codec{},
	}

	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(SetupRouter(ctx, testConfig(), o, rtc.DefaultICEServers()))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return srv, o
}

type client struct {
	t  *testing.T
	ws *websocket.Conn
	id string
}

// dial connects and learns the server assigned identity.
func dial(t *testing.T, srv *httptest.Server) *client {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ws.Close() })
	c := &client{t: t, ws: ws}
	c.send(map[string]any{"type": "whoami"})
	c.id = c.expect("whoami")["id"].(string)
	return c
}

func (c *client) send(v any) {
	c.t.Helper()
	if err := c.ws.WriteJSON(v); err != nil {
		c.t.Fatal(err)
	}
}

func (c *client) read() map[string]any {
	c.t.Helper()
	_ = c.ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var m map[string]any
	if err := c.ws.ReadJSON(&m); err != nil {
		c.t.Fatalf("read: %v", err)
	}
	return m
}

func (c *client) expect(typ string) map[string]any {
	c.t.Helper()
	m := c.read()
	if m["type"] != typ {
		c.t.Fatalf("got %v, want type %s", m, typ)
	}
	return m
}

// sync round-trips a whoami so every earlier frame from c has been handled.
func (c *client) sync() map[string]any {
	c.t.Helper()
	c.send(map[string]any{"type": "whoami"})
	return c.expect("whoami")
}

func TestMovieNightOverWebsocket(t *testing.T) {
	srv, _ := newServer(t)

	a := dial(t, srv)
	a.send(map[string]any{"type": "join-room", "roomId": "movie-night"})
	if got := a.sync()["roomId"]; got != "movie-night" {
		t.Fatalf("A roomId = %v", got)
	}

	b := dial(t, srv)
	b.send(map[string]any{"type": "join-room", "roomId": "movie-night"})
	b.sync()
	if m := a.expect("peer-joined"); m["from"] != b.id {
		t.Fatalf("peer-joined = %v", m)
	}

	a.send(map[string]any{"type": "playback-update", "roomId": "movie-night", "kind": "PLAY", "position": 12.5})
	if m := b.expect("playback-sync"); m["kind"] != "PLAY" || m["position"] != 12.5 {
		t.Fatalf("playback-sync = %v", m)
	}

	c := dial(t, srv)
	c.send(map[string]any{"type": "join-room", "roomId": "movie-night"})
	if m := c.expect("playback-sync"); m["position"] != 12.5 {
		t.Fatalf("seed = %v", m)
	}
	a.expect("peer-joined")
	b.expect("peer-joined")

	a.send(map[string]any{"type": "signal-offer", "to": c.id, "offer": map[string]any{"type": "offer", "sdp": "v=0"}})
	m := c.expect("signal-offer")
	if m["from"] != a.id {
		t.Fatalf("offer from %v, want %s", m["from"], a.id)
	}
	if offer, _ := m["offer"].(map[string]any); offer["sdp"] != "v=0" {
		t.Fatalf("offer payload = %v", m["offer"])
	}

	b.ws.Close()
	if m := a.expect("peer-left"); m["from"] != b.id {
		t.Fatalf("A peer-left = %v", m)
	}
	if m := c.expect("peer-left"); m["from"] != b.id {
		t.Fatalf("C peer-left = %v", m)
	}

	res, err := http.Get(srv.URL + "/api/rooms/movie-night")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	var info struct {
		Name        string `json:"name"`
		MemberCount int    `json:"member_count"`
		Playback    *struct {
			Kind string `json:"kind"`
		} `json:"playback"`
	}
	if err := json.NewDecoder(res.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.Name != "movie-night" || info.MemberCount != 2 || info.Playback == nil || info.Playback.Kind != "PLAY" {
		t.Fatalf("room info = %+v", info)
	}
}

func TestMalformedFramesAreIgnored(t *testing.T) {
	srv, _ := newServer(t)
	a := dial(t, srv)
	if err := a.ws.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	a.send(map[string]any{"type": "join-room"})
	a.send(map[string]any{"type": "launch-missiles"})
	a.send(map[string]any{"type": "ping"})
	a.expect("pong")
	if _, ok := a.sync()["roomId"]; ok {
		t.Fatal("malformed join placed the client in a room")
	}
}

func TestLegacyEventNames(t *testing.T) {
	srv, _ := newServer(t)
	a := dial(t, srv)
	b := dial(t, srv)
	a.send(map[string]any{"type": "webrtc-ice-candidate", "to": b.id, "candidate": map[string]any{"candidate": "c1"}})
	if m := b.expect("signal-ice"); m["from"] != a.id {
		t.Fatalf("candidate = %v", m)
	}
}

func TestHTTPEndpoints(t *testing.T) {
	srv, _ := newServer(t)

	get := func(path string) (int, string) {
		t.Helper()
		res, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		body, _ := io.ReadAll(res.Body)
		return res.StatusCode, string(body)
	}

	if code, body := get("/"); code != http.StatusOK || body != healthText {
		t.Fatalf("/ = %d %q", code, body)
	}
	if code, body := get("/api/ice-servers"); code != http.StatusOK || !strings.Contains(body, "stun:stun.l.google.com:19302") {
		t.Fatalf("/api/ice-servers = %d %s", code, body)
	}
	if code, _ := get("/api/rooms/nope"); code != http.StatusNotFound {
		t.Fatalf("/api/rooms/nope = %d", code)
	}

	dial(t, srv)
	code, body := get("/healthz")
	var health struct {
		Status      string `json:"status"`
		Connections int    `json:"connections"`
	}
	if err := json.Unmarshal([]byte(body), &health); err != nil || code != http.StatusOK {
		t.Fatalf("/healthz = %d %s", code, body)
	}
	if health.Status != "ok" || health.Connections != 1 {
		t.Fatalf("health = %+v", health)
	}
}
