package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
)

// EngineOption configures an Engine during creation.
type EngineOption func(*engineConfig)

// engineConfig holds the optional collaborators of an engine.
type engineConfig struct {
	logger *log.Logger
	clock  quartz.Clock
	bus    EventBus
	gameID string
}

// WithLogger sets the logger turns and results are reported to.
// Defaults to a logger that discards everything.
func WithLogger(logger *log.Logger) EngineOption {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithClock sets the clock used to timestamp events. Tests pass
// quartz.NewMock(t) to get stable timestamps.
func WithClock(clock quartz.Clock) EngineOption {
	return func(c *engineConfig) {
		c.clock = clock
	}
}

// WithEventBus publishes events on an existing bus instead of a private one.
func WithEventBus(bus EventBus) EngineOption {
	return func(c *engineConfig) {
		c.bus = bus
	}
}

// WithGameID overrides the generated game identifier.
func WithGameID(id string) EngineOption {
	return func(c *engineConfig) {
		c.gameID = id
	}
}

func newEngineConfig(opts []EngineOption) *engineConfig {
	cfg := &engineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}
	if cfg.gameID == "" {
		// UUIDv7 keeps game ids sortable by creation time
		cfg.gameID = uuid.Must(uuid.NewV7()).String()
	}
	return cfg
}
