package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// Config configures the playground server.
type Config struct {
	// Address is the listen address used by Run.
	// Default: "localhost:8080"
	Address string

	// Tooltip is the configuration every session's controller starts with.
	Tooltip tooltip.Config

	// ReadBufferSize is the websocket read buffer size.
	ReadBufferSize int

	// WriteBufferSize is the websocket write buffer size.
	WriteBufferSize int

	// MaxMessageSize is the largest frame accepted from a client.
	MaxMessageSize int64

	// HandshakeTimeout bounds the wait for the hello frame.
	HandshakeTimeout time.Duration

	// ReadTimeout closes sessions that stay silent this long.
	ReadTimeout time.Duration

	// WriteTimeout bounds each frame write.
	WriteTimeout time.Duration

	// HeartbeatInterval is the ping period.
	HeartbeatInterval time.Duration

	// ShutdownTimeout bounds graceful shutdown in Run.
	ShutdownTimeout time.Duration

	// CheckOrigin validates the websocket Origin header.
	// Default: same host only.
	CheckOrigin func(r *http.Request) bool

	// Logger is the server logger. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           "localhost:8080",
		Tooltip:           tooltip.DefaultConfig(),
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		MaxMessageSize:    64 * 1024,
		HandshakeTimeout:  5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		CheckOrigin:       sameOrigin,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	defaults := DefaultConfig()
	if c == nil {
		return defaults
	}
	out := *c
	if out.Address == "" {
		out.Address = defaults.Address
	}
	if out.Tooltip == (tooltip.Config{}) {
		out.Tooltip = defaults.Tooltip
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = defaults.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = defaults.WriteBufferSize
	}
	if out.MaxMessageSize == 0 {
		out.MaxMessageSize = defaults.MaxMessageSize
	}
	if out.HandshakeTimeout == 0 {
		out.HandshakeTimeout = defaults.HandshakeTimeout
	}
	if out.ReadTimeout == 0 {
		out.ReadTimeout = defaults.ReadTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = defaults.WriteTimeout
	}
	if out.HeartbeatInterval == 0 {
		out.HeartbeatInterval = defaults.HeartbeatInterval
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = defaults.CheckOrigin
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}

// sameOrigin accepts requests without an Origin header and requests whose
// Origin host matches the request host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, scheme := range []string{"http://", "https://"} {
		if origin == scheme+r.Host {
			return true
		}
	}
	return false
}
