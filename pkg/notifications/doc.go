// Package notifications implements transient, auto-expiring user
// notifications ("toasts") for the dashboard.
//
// # Architecture
//
//   - Store: ordered, in-memory collection of visible notifications (oldest first).
//   - Manager: the public API. It creates notifications, inserts them into its
//     Store, arms one cancellable timer per notification and removes the
//     notification when the timer fires or the notification is dismissed.
//
// A Manager is created once at application start and passed to the pages that
// need it. There is no package-level state, so independent managers can be
// used side by side (for example in parallel tests).
//
// # Basic Usage
//
//	manager := notifications.NewManager(notifications.WithManagerLogger(log))
//	defer manager.Close()
//
//	id := manager.Success(ctx, "Project saved", "All changes were stored")
//	manager.Error(ctx, "Upload failed", err.Error(), 10*time.Second)
//
//	// user clicked the close button
//	manager.Dismiss(ctx, id)
//
// # Durations
//
// Without an explicit duration a notification is visible for DefaultDuration
// (5s). A zero duration still defers removal to the next timer tick, so the
// notification is listed once before it disappears. There is no "never expire"
// mode.
//
// # Rendering
//
// Renderers read Manager.List and compute countdown bars on demand with
// Notification.Remaining and Notification.Progress. Subscribe delivers change
// events for renderers that prefer push over polling; slow subscribers miss
// events instead of blocking the manager.
//
// # Testing
//
// Pass a clock.Manual through WithClock to drive expiry with simulated time:
//
//	clk := clock.NewManual(time.Time{})
//	manager := notifications.NewManager(notifications.WithClock(clk))
//	manager.Info(ctx, "t", "m", 100*time.Millisecond)
//	clk.Advance(100 * time.Millisecond) // notification removed
package notifications
