package http

import (
	"context"
	"net/http"

	"github.com/dkeye/WatchParty/internal/adapters/signal"
	"github.com/dkeye/WatchParty/internal/app/orch"
	"github.com/dkeye/WatchParty/internal/config"
	"github.com/dkeye/WatchParty/internal/domain"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

const healthText = "watch-party signaling server is running"

// SignalOptions converts the signal section of the config for the websocket adapter.
func SignalOptions(cfg *config.Config) signal.Options {
	return signal.Options{
		ReadLimit:      cfg.Signal.ReadLimit,
		SendQueue:      cfg.Signal.SendQueue,
		WriteWait:      cfg.Signal.WriteWait,
		PongWait:       cfg.Signal.PongWait,
		PingPeriod:     cfg.Signal.PingPeriod,
		RateLimit:      cfg.Signal.RateLimit,
		RateInterval:   cfg.Signal.RateInterval,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{http.MethodGet, http.MethodPost}
	all := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			all = true
		}
	}
	if all {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return cors.New(c)
}

// SetupRouter wires the HTTP surface: health, ICE servers, room inspection
// and the websocket signaling endpoint. ctx bounds every websocket session.
func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator, iceServers []webrtc.ICEServer) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.HTTP.AllowedOrigins))

	if cfg.HTTP.StaticPath != "" {
		r.Static("/static", cfg.HTTP.StaticPath)
		r.GET("/", func(c *gin.Context) {
			c.File(cfg.HTTP.StaticPath + "/index.html")
		})
	} else {
		r.GET("/", func(c *gin.Context) {
			c.String(http.StatusOK, healthText)
		})
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"connections": o.Registry.Count(),
			"rooms":       o.Rooms.Rooms.Count(),
		})
	})

	api := r.Group("/api")

	api.GET("/ice-servers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"iceServers": iceServers})
	})

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": o.Rooms.Rooms.List()})
	})

	api.GET("/rooms/:id", func(c *gin.Context) {
		room, ok := o.Rooms.Rooms.Get(domain.RoomID(c.Param("id")))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, room.Info())
	})

	ctrl := signal.NewSignalWSController(o, SignalOptions(cfg))
	r.GET("/ws", func(c *gin.Context) {
		ctrl.HandleSignal(ctx, c)
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.HTTP.StaticPath).Msg("router setup")
	return r
}
