// Package notify delivers user-visible notices
package notify

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultTTL is how long a non-permanent notice stays visible
const DefaultTTL = 5 * time.Second

// Level is the notice severity
type Level uint8

const (
	LevelInfo Level = iota
	LevelError
)

// Notifier surfaces messages to the user
type Notifier interface {
	Info(msg string)
	Error(msg string, permanent bool)
}

// Notice is one queued message
type Notice struct {
	Level     Level
	Message   string
	Permanent bool
	Expires   time.Time
}

// Banner keeps notices for the presenter to draw
type Banner struct {
	mu      sync.Mutex
	notices []Notice
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

// NewBanner creates a banner with DefaultTTL
func NewBanner(logger *slog.Logger) *Banner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Banner{ttl: DefaultTTL, now: time.Now, logger: logger}
}

// Info implements Notifier
func (b *Banner) Info(msg string) {
	b.push(Notice{Level: LevelInfo, Message: msg})
	b.logger.Info("notice", "message", msg)
}

// Error implements Notifier
func (b *Banner) Error(msg string, permanent bool) {
	b.push(Notice{Level: LevelError, Message: msg, Permanent: permanent})
	b.logger.Error("notice", "message", msg, "permanent", permanent)
}

func (b *Banner) push(n Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !n.Permanent {
		n.Expires = b.now().Add(b.ttl)
	}
	b.notices = append(b.notices, n)
}

// Active returns live notices and drops expired ones, oldest first
func (b *Banner) Active() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	kept := b.notices[:0]
	for _, n := range b.notices {
		if n.Permanent || now.Before(n.Expires) {
			kept = append(kept, n)
		}
	}
	b.notices = kept
	return append([]Notice(nil), kept...)
}
