package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/dashkit/pkg/clock"
	"github.com/dmitrymomot/dashkit/pkg/logger"
)

// Manager publishes notifications into a Store and removes each one when its
// timer fires or when it is dismissed. It is the only writer of its Store.
//
// All mutations and timer callbacks are serialized by a single mutex, so
// Publish, Dismiss, ClearAll and expiry never interleave.
type Manager struct {
	store  *Store
	clock  clock.Clock
	ids    IDGenerator
	logger *slog.Logger
	feed   *feed

	timers map[string]*pendingTimer
	closed bool
	mu     sync.Mutex
}

// pendingTimer is the timer table entry for one visible notification.
// A firing timer acts only if its own entry is still registered, which makes
// callbacks that lost the race with Stop harmless.
type pendingTimer struct {
	timer clock.Timer
}

// ManagerOption configures a Manager.
type ManagerOption func(*managerConfig)

type managerConfig struct {
	clock      clock.Clock
	ids        IDGenerator
	logger     *slog.Logger
	bufferSize int
}

// WithClock sets the time source. Defaults to clock.Real().
func WithClock(c clock.Clock) ManagerOption {
	return func(cfg *managerConfig) {
		if c != nil {
			cfg.clock = c
		}
	}
}

// WithIDGenerator sets the id generator. Defaults to a SequenceGenerator.
func WithIDGenerator(g IDGenerator) ManagerOption {
	return func(cfg *managerConfig) {
		if g != nil {
			cfg.ids = g
		}
	}
}

// WithManagerLogger sets the logger for the Manager.
func WithManagerLogger(l *slog.Logger) ManagerOption {
	return func(cfg *managerConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithSubscriberBuffer sets the per-subscription event buffer. Default is 16.
func WithSubscriberBuffer(size int) ManagerOption {
	return func(cfg *managerConfig) {
		if size > 0 {
			cfg.bufferSize = size
		}
	}
}

// NewManager creates a notification manager with an empty store.
func NewManager(opts ...ManagerOption) *Manager {
	cfg := &managerConfig{
		clock:      clock.Real(),
		logger:     slog.Default(),
		bufferSize: 16,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.ids == nil {
		cfg.ids = NewSequenceGenerator()
	}

	return &Manager{
		store:  NewStore(),
		clock:  cfg.clock,
		ids:    cfg.ids,
		logger: cfg.logger.With(logger.Component("notifications")),
		feed:   newFeed(cfg.bufferSize),
		timers: make(map[string]*pendingTimer),
	}
}

// Publish shows a notification and schedules its removal.
//
// When no duration is given DefaultDuration is used; otherwise the first value
// is used as is. A zero duration removes the notification on the next timer
// tick, so it is still listed right after Publish returns. Negative durations
// are treated as zero. Unknown severities are published as SeverityInfo.
//
// Publish returns the notification id, or an empty string if the manager is
// closed or the id generator produced a duplicate.
func (m *Manager) Publish(ctx context.Context, severity Severity, title, message string, duration ...time.Duration) string {
	if !severity.Valid() {
		severity = SeverityInfo
	}
	d := resolveDuration(duration)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		m.logger.WarnContext(ctx, "notification dropped: manager closed", logger.Severity(severity))
		return ""
	}

	now := m.clock.Now()
	notif := Notification{
		ID:        m.ids.NewID(severity, now),
		Severity:  severity,
		Title:     title,
		Message:   message,
		Duration:  d,
		CreatedAt: now,
	}

	if err := m.store.Insert(notif); err != nil {
		m.logger.ErrorContext(ctx, "notification rejected by store",
			logger.NotificationID(notif.ID),
			logger.Severity(severity),
			logger.Error(err),
		)
		return ""
	}

	p := &pendingTimer{}
	p.timer = m.clock.AfterFunc(d, func() { m.expire(p, notif.ID) })
	m.timers[notif.ID] = p

	m.feed.emit(Event{Type: EventPublished, Notification: notif, At: now})
	m.logger.DebugContext(ctx, "notification published",
		logger.NotificationID(notif.ID),
		logger.Severity(severity),
		logger.Duration(d),
	)

	return notif.ID
}

// Success publishes a SeveritySuccess notification.
func (m *Manager) Success(ctx context.Context, title, message string, duration ...time.Duration) string {
	return m.Publish(ctx, SeveritySuccess, title, message, duration...)
}

// Error publishes a SeverityError notification.
func (m *Manager) Error(ctx context.Context, title, message string, duration ...time.Duration) string {
	return m.Publish(ctx, SeverityError, title, message, duration...)
}

// Warning publishes a SeverityWarning notification.
func (m *Manager) Warning(ctx context.Context, title, message string, duration ...time.Duration) string {
	return m.Publish(ctx, SeverityWarning, title, message, duration...)
}

// Info publishes a SeverityInfo notification.
func (m *Manager) Info(ctx context.Context, title, message string, duration ...time.Duration) string {
	return m.Publish(ctx, SeverityInfo, title, message, duration...)
}

// Dismiss cancels the pending timer for id and removes the notification.
// It is safe to call repeatedly, with unknown ids, or after the timer fired.
// It reports whether a notification was removed by this call.
func (m *Manager) Dismiss(ctx context.Context, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.timers[id]; ok {
		p.timer.Stop()
		delete(m.timers, id)
	}

	notif, ok := m.store.Get(id)
	if !ok || !m.store.RemoveByID(id) {
		return false
	}

	m.feed.emit(Event{Type: EventDismissed, Notification: notif, At: m.clock.Now()})
	m.logger.DebugContext(ctx, "notification dismissed", logger.NotificationID(id))
	return true
}

// ClearAll cancels every pending timer and empties the store in one step.
// It returns the number of notifications removed.
func (m *Manager) ClearAll(ctx context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.clearLocked()
	if n > 0 {
		m.feed.emit(Event{Type: EventCleared, Removed: n, At: m.clock.Now()})
	}
	m.logger.DebugContext(ctx, "notifications cleared", logger.Count(n))
	return n
}

// Close clears all notifications and closes every subscription.
// Publishing after Close is a no-op.
func (m *Manager) Close() error {
	m.mu.Lock()
	m.clearLocked()
	m.closed = true
	m.mu.Unlock()

	m.feed.close()
	return nil
}

// Ready returns ErrManagerClosed once Close has been called.
// Its signature fits readiness probes.
func (m *Manager) Ready(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrManagerClosed
	}
	return nil
}

// Subscribe returns a feed of changes. The subscription ends when ctx is
// cancelled, when it is closed, or when the manager is closed.
func (m *Manager) Subscribe(ctx context.Context) *Subscription {
	return m.feed.subscribe(ctx)
}

// List returns the visible notifications, oldest first.
func (m *Manager) List() []Notification {
	return m.store.List()
}

// Get returns the visible notification with the given id.
func (m *Manager) Get(id string) (Notification, bool) {
	return m.store.Get(id)
}

// Remaining returns the display time left for id.
func (m *Manager) Remaining(id string) (time.Duration, bool) {
	notif, ok := m.store.Get(id)
	if !ok {
		return 0, false
	}
	return notif.Remaining(m.clock.Now()), true
}

// Progress returns the remaining fraction of display time for id.
func (m *Manager) Progress(id string) (float64, bool) {
	notif, ok := m.store.Get(id)
	if !ok {
		return 0, false
	}
	return notif.Progress(m.clock.Now()), true
}

// Now returns the current time of the manager's clock.
func (m *Manager) Now() time.Time {
	return m.clock.Now()
}

// Pending returns the number of armed timers.
func (m *Manager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *Manager) expire(p *pendingTimer, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timers[id] != p {
		return
	}
	delete(m.timers, id)

	notif, ok := m.store.Get(id)
	if !ok || !m.store.RemoveByID(id) {
		return
	}

	m.feed.emit(Event{Type: EventExpired, Notification: notif, At: m.clock.Now()})
	m.logger.Debug("notification expired", logger.NotificationID(id))
}

// clearLocked must be called with m.mu held.
func (m *Manager) clearLocked() int {
	for _, p := range m.timers {
		p.timer.Stop()
	}
	clear(m.timers)
	return m.store.Clear()
}

func resolveDuration(duration []time.Duration) time.Duration {
	if len(duration) == 0 {
		return DefaultDuration
	}
	return max(duration[0], 0)
}
