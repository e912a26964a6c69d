package app

import (
	"context"
	"fmt"
	"time"

	"novenapp_alert_bot/internal/domain/settings"

	"github.com/sirupsen/logrus"
)

// Automation is the daily gate around the alert dispatcher: the whole
// pipeline executes at most once per calendar day, tracked by a persisted
// marker. A run that errors leaves the marker untouched so the next trigger
// (session login, cron) retries the same day.
//
// The check-then-set on the marker is not atomic. Two near-simultaneous
// triggers can both pass the check; the notification ledger is what
// prevents duplicate sends in that case.
type Automation struct {
	dispatcher *Dispatcher
	store      settings.Store
	logger     *logrus.Entry
	now        func() time.Time
}

func NewAutomation(dispatcher *Dispatcher, store settings.Store, logger *logrus.Entry) *Automation {
	return &Automation{
		dispatcher: dispatcher,
		store:      store,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the gate's clock for tests.
func (a *Automation) WithClock(now func() time.Time) *Automation {
	a.now = now
	return a
}

// RunDaily executes the alerting pipeline if it has not yet run today.
// Returns whether the dispatcher actually ran and a human-readable message.
// Nothing escapes: errors and panics are converted into (false, message) so
// the host process never crashes on an automation trigger.
func (a *Automation) RunDaily(ctx context.Context) (ran bool, message string) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.WithField("panic", r).Error("Daily automation panicked")
			ran, message = false, fmt.Sprintf("Error: %v", r)
		}
	}()

	todayStr := a.now().Format(dateLayout)

	lastRun, err := a.store.Get(ctx, keyDailyMarker, "")
	if err != nil {
		// An unreadable marker falls through to a run attempt; the ledger
		// still dedups individual sends.
		a.logger.WithError(err).Warn("Could not read daily run marker")
	}
	if lastRun == todayStr {
		return false, "Already checked today."
	}

	a.logger.WithField("date", todayStr).Info("Executing daily notification check")
	summary, err := a.dispatcher.CheckAndNotifyDeadlines(ctx)
	if err != nil {
		// Marker deliberately not advanced: retry-until-success within the
		// same calendar day.
		a.logger.WithError(err).Error("Daily notification check failed")
		return false, fmt.Sprintf("Error: %v", err)
	}

	if err := a.store.Set(ctx, keyDailyMarker, todayStr); err != nil {
		a.logger.WithError(err).Error("Could not persist daily run marker")
	}
	result := summary.String()
	a.logger.WithField("result", result).Info("Daily notification check done")
	return true, result
}
