package collab

import (
	"context"

	"github.com/collabcloud/collab/internal/model"
	"github.com/collabcloud/collab/internal/session"
)

// Recorder is the fire-and-forget activity log. Record never returns an
// error: a failed append is logged as a warning and discarded, so a flaky
// activity backend can never abort the operation that produced the entry.
type Recorder struct {
	store   Store
	session *session.Session
	clock   Clock
	logger  Logger
}

// NewRecorder creates a Recorder writing through the given store.
func NewRecorder(store Store, sess *session.Session, clock Clock, logger Logger) *Recorder {
	return &Recorder{
		store:   store,
		session: sess,
		clock:   clock,
		logger:  logger,
	}
}

// Record appends one activity entry, stamped with the session's user and
// the current time. Failures are swallowed.
func (r *Recorder) Record(ctx context.Context, action model.ActionType, details, projectID string) {
	entry := model.ActivityLogEntry{
		ActionType:    action,
		ActionDetails: details,
		UserID:        r.session.UserID,
		ProjectID:     projectID,
		Timestamp:     r.clock.Now(),
	}

	if err := r.store.AppendActivity(ctx, entry); err != nil {
		r.logger.Warn("activity append failed",
			"action", string(action),
			"error", err)
	}
}

// Logs returns activity entries newest-first. A backend failure degrades
// to an empty list rather than an error.
func (r *Recorder) Logs(ctx context.Context) []*model.ActivityLogEntry {
	entries, err := r.store.ActivityLogs(ctx)
	if err != nil {
		r.logger.Warn("activity log fetch failed", "error", err)
		return nil
	}
	return entries
}

// Clear removes all activity entries where the backend supports it.
// Failures are logged and swallowed; callers must not assume success.
func (r *Recorder) Clear(ctx context.Context) {
	if err := r.store.ClearActivityLogs(ctx); err != nil {
		r.logger.Warn("activity log clear failed", "error", err)
	}
}
