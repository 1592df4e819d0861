// Package notify is the semantic event surface of the core: slices
// and thunks report success/error outcomes here and the UI layer
// decides how to render them.
package notify

import (
	"dashboard-core/internal/common/logger"
	"dashboard-core/internal/common/metrics"
)

// Level classifies a toast event.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Event is one toast-worthy outcome.
type Event struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives semantic outcomes from the core.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Bus is a buffered channel Notifier. Emission never blocks; when the
// buffer is full the new event is dropped and counted as dropped, not
// emitted.
type Bus struct {
	events chan Event
	logger logger.Logger
}

func NewBus(buffer int, log logger.Logger) *Bus {
	if buffer <= 0 {
		buffer = 64
	}
	return &Bus{
		events: make(chan Event, buffer),
		logger: log.WithFields(map[string]interface{}{"component": "notify"}),
	}
}

// Events exposes the stream for the rendering layer to drain.
func (b *Bus) Events() <-chan Event {
	return b.events
}

func (b *Bus) Success(message string) {
	b.emit(Event{Level: LevelSuccess, Message: message})
}

func (b *Bus) Error(message string) {
	b.emit(Event{Level: LevelError, Message: message})
}

func (b *Bus) emit(ev Event) {
	select {
	case b.events <- ev:
		metrics.ToastsEmitted.WithLabelValues(string(ev.Level)).Inc()
	default:
		metrics.ToastsDropped.WithLabelValues(string(ev.Level)).Inc()
		b.logger.Warn("toast dropped, consumer not draining", map[string]interface{}{
			"level":   ev.Level,
			"message": ev.Message,
		})
	}
}

// NopNotifier discards all events, for tests and headless runs.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}
