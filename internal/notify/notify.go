// Package notify carries transient, dismissable notifications from the
// account service to whatever surface renders them.
package notify

import (
	"log/slog"
	"sync"
)

// Level classifies a notification for styling and log severity.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is one transient message. Notifications are fire-and-forget:
// once drained they are gone.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier is the sink the account service reports outcomes to.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// Flash is an in-memory notification queue. Handlers drain it into the
// response so the client can render toasts.
type Flash struct {
	mu      sync.Mutex
	pending []Notification
	logger  *slog.Logger
}

// NewFlash creates a flash queue. Every notification is also logged.
func NewFlash(logger *slog.Logger) *Flash {
	if logger == nil {
		logger = slog.Default()
	}
	return &Flash{logger: logger.With("component", "notify")}
}

func (f *Flash) push(level Level, message string) {
	f.mu.Lock()
	f.pending = append(f.pending, Notification{Level: level, Message: message})
	f.mu.Unlock()

	switch level {
	case LevelError:
		f.logger.Warn("notification", "level", level, "message", message)
	default:
		f.logger.Info("notification", "level", level, "message", message)
	}
}

func (f *Flash) Success(message string) { f.push(LevelSuccess, message) }
func (f *Flash) Error(message string)   { f.push(LevelError, message) }
func (f *Flash) Info(message string)    { f.push(LevelInfo, message) }

// Drain returns the pending notifications and clears the queue.
func (f *Flash) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.pending
	f.pending = nil
	return out
}
