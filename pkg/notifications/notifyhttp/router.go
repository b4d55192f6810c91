package notifyhttp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/dashkit/pkg/logger"
	"github.com/dmitrymomot/dashkit/pkg/notifications"
)

const maxBodyBytes = 64 << 10

// Notifier is the subset of *notifications.Manager used by the router.
type Notifier interface {
	Publish(ctx context.Context, severity notifications.Severity, title, message string, duration ...time.Duration) string
	Dismiss(ctx context.Context, id string) bool
	ClearAll(ctx context.Context) int
	List() []notifications.Notification
	Now() time.Time
}

// Option configures the router.
type Option func(*handler)

// WithLogger sets the logger used for request failures.
func WithLogger(l *slog.Logger) Option {
	return func(h *handler) {
		if l != nil {
			h.logger = l
		}
	}
}

type handler struct {
	notifier Notifier
	logger   *slog.Logger
}

// Router exposes the notifier to the dashboard front end:
//
//	GET    /       list visible notifications, oldest first
//	POST   /       publish a notification
//	DELETE /       clear all notifications
//	DELETE /{id}   dismiss one notification
func Router(n Notifier, opts ...Option) chi.Router {
	h := &handler{notifier: n, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.publish)
	r.Delete("/", h.clear)
	r.Delete("/{id}", h.dismiss)
	return r
}

// View is the JSON representation of a visible notification.
type View struct {
	ID          string                 `json:"id"`
	Severity    notifications.Severity `json:"severity"`
	Title       string                 `json:"title,omitempty"`
	Message     string                 `json:"message,omitempty"`
	DurationMs  int64                  `json:"duration_ms"`
	CreatedAt   time.Time              `json:"created_at"`
	RemainingMs int64                  `json:"remaining_ms"`
	Progress    float64                `json:"progress"`
}

// PublishRequest is the body accepted by POST /.
// A missing duration_ms means the default duration; 0 is honoured as is.
type PublishRequest struct {
	Severity   string `json:"severity"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	DurationMs *int64 `json:"duration_ms,omitempty"`
}

type envelope struct {
	Data  any          `json:"data,omitempty"`
	Error *errorDetail `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	now := h.notifier.Now()
	items := h.notifier.List()

	views := make([]View, len(items))
	for i, n := range items {
		views[i] = View{
			ID:          n.ID,
			Severity:    n.Severity,
			Title:       n.Title,
			Message:     n.Message,
			DurationMs:  n.Duration.Milliseconds(),
			CreatedAt:   n.CreatedAt,
			RemainingMs: n.Remaining(now).Milliseconds(),
			Progress:    n.Progress(now),
		}
	}

	h.write(w, r, http.StatusOK, envelope{Data: views})
}

func (h *handler) publish(w http.ResponseWriter, r *http.Request) {
	var req PublishRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		msg := "request body must be a JSON object"
		if errors.Is(err, io.EOF) {
			msg = "request body is empty"
		}
		h.write(w, r, http.StatusBadRequest, envelope{Error: &errorDetail{Code: "invalid_request", Message: msg}})
		return
	}

	var durations []time.Duration
	if req.DurationMs != nil {
		durations = append(durations, time.Duration(*req.DurationMs)*time.Millisecond)
	}

	id := h.notifier.Publish(r.Context(), notifications.ParseSeverity(req.Severity), req.Title, req.Message, durations...)
	if id == "" {
		h.write(w, r, http.StatusServiceUnavailable, envelope{Error: &errorDetail{
			Code:    "not_published",
			Message: "notification could not be published",
		}})
		return
	}

	h.write(w, r, http.StatusCreated, envelope{Data: map[string]string{"id": id}})
}

func (h *handler) dismiss(w http.ResponseWriter, r *http.Request) {
	removed := h.notifier.Dismiss(r.Context(), chi.URLParam(r, "id"))
	h.write(w, r, http.StatusOK, envelope{Data: map[string]bool{"removed": removed}})
}

func (h *handler) clear(w http.ResponseWriter, r *http.Request) {
	n := h.notifier.ClearAll(r.Context())
	h.write(w, r, http.StatusOK, envelope{Data: map[string]int{"removed": n}})
}

func (h *handler) write(w http.ResponseWriter, r *http.Request, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write response",
			logger.Component("notifyhttp"),
			logger.Error(err),
		)
	}
}
