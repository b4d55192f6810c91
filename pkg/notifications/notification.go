package notifications

import (
	"strings"
	"time"
)

// DefaultDuration is how long a notification stays visible when the caller
// does not ask for a specific duration.
const DefaultDuration = 5 * time.Second

// Severity represents the notification severity.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ParseSeverity converts a raw string into a Severity.
// Unrecognized values fall back to SeverityInfo.
func ParseSeverity(s string) Severity {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if sev.Valid() {
		return sev
	}
	return SeverityInfo
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

func (s Severity) String() string {
	return string(s)
}

// Notification is a short-lived message displayed to the user until its
// duration elapses or it is dismissed.
type Notification struct {
	ID        string        `json:"id"`
	Severity  Severity      `json:"severity"`
	Title     string        `json:"title,omitempty"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"-"`
	CreatedAt time.Time     `json:"created_at"`
}

// ExpiresAt returns the moment the notification is due for removal.
func (n Notification) ExpiresAt() time.Time {
	return n.CreatedAt.Add(n.Duration)
}

// Elapsed returns how long the notification has been visible at now.
func (n Notification) Elapsed(now time.Time) time.Duration {
	return max(now.Sub(n.CreatedAt), 0)
}

// Remaining returns the time left before the notification expires.
// It never returns a negative duration.
func (n Notification) Remaining(now time.Time) time.Duration {
	return max(n.Duration-n.Elapsed(now), 0)
}

// Progress returns the remaining fraction of the display time in [0, 1],
// suitable for drawing a countdown bar. Zero-duration notifications report 0.
func (n Notification) Progress(now time.Time) float64 {
	if n.Duration <= 0 {
		return 0
	}
	return float64(n.Remaining(now)) / float64(n.Duration)
}
