package signal

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/WatchParty/internal/app/orch"
	"github.com/dkeye/WatchParty/internal/core"
	"github.com/dkeye/WatchParty/internal/protocol"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Options tune the websocket transport.
type Options struct {
	ReadLimit    int64
	SendQueue    int
	WriteWait    time.Duration
	PongWait     time.Duration
	PingPeriod   time.Duration
	RateLimit    int
	RateInterval time.Duration
	// AllowedOrigins empty or containing "*" accepts any origin.
	AllowedOrigins []string
}

func DefaultOptions() Options {
	return Options{
		ReadLimit:    64 * 1024,
		SendQueue:    64,
		WriteWait:    10 * time.Second,
		PongWait:     60 * time.Second,
		PingPeriod:   54 * time.Second,
		RateInterval: time.Second,
	}
}

type handlerFunc func(sid core.SessionID, c *WsSignalConn, msg protocol.Message)

type SignalWSController struct {
	Orch *orch.Orchestrator

	opts     Options
	codec    protocol.Codec
	limiter  *RateLimiter
	handlers map[protocol.Type]handlerFunc
	upgrader websocket.Upgrader
}

func NewSignalWSController(o *orch.Orchestrator, opts Options) *SignalWSController {
	ctl := &SignalWSController{
		Orch: o,
		opts: opts,
		upgrader: websocket.Upgrader{
			CheckOrigin: checkOrigin(opts.AllowedOrigins),
		},
	}
	if opts.RateLimit > 0 {
		ctl.limiter = NewRateLimiter(opts.RateLimit, opts.RateInterval)
	}
	ctl.handlers = map[protocol.Type]handlerFunc{
		protocol.TypeJoinRoom:       ctl.handleJoin,
		protocol.TypePlaybackUpdate: ctl.handlePlayback,
		protocol.TypeSignalOffer:    ctl.handleRelay,
		protocol.TypeSignalAnswer:   ctl.handleRelay,
		protocol.TypeSignalICE:      ctl.handleRelay,
		protocol.TypePing:           ctl.handlePing,
		protocol.TypeWhoAmI:         ctl.handleWhoAmI,
	}
	return ctl
}

// WsSignalConn is a websocket endpoint with a bounded outbound queue.
// It implements core.SignalConnection.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newWsSignalConn(ws *websocket.Conn, queue int) *WsSignalConn {
	if queue <= 0 {
		queue = 1
	}
	return &WsSignalConn{conn: ws, send: make(chan core.Frame, queue)}
}

// TrySend queues f without blocking. A full queue drops f.
func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return core.ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	conn := newWsSignalConn(ws, ctl.opts.SendQueue)
	ctx, cancel := context.WithCancel(ctx)
	sid := ctl.Orch.Connect(conn, cancel)
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("remote", ws.RemoteAddr().String()).Msg("new WS connection")

	go ctl.writePump(ctx, sid, conn)
	go ctl.readPump(sid, conn)
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
