package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"novenapp_alert_bot/internal/domain/deadline"
	"novenapp_alert_bot/internal/domain/settings"
)

// Persisted key layout inside the shared system_config table. The formats
// are shared with the rest of the ERP and must not change.
const (
	keyAlertDays    = "alert_days"
	keyMonthlyLimit = "notif_monthly_limit"
	keyDailyMarker  = "last_notification_date_verified"

	defaultAlertDays    = 15
	defaultMonthlyLimit = 100

	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// EventKey builds the dedup ledger key for a deadline event. Keyed on the
// subject ID alone: if a subject's reference date is later extended into a
// new alert window, the old key still suppresses re-notification.
func EventKey(kind deadline.Kind, subjectID int64) string {
	return fmt.Sprintf("notif_%s_%d", kind, subjectID)
}

// Ledger provides the notification dedup record and the monthly send quota
// on top of the shared settings store. It is the idempotency backstop for
// the whole pipeline: the daily gate's check-then-set is not atomic, the
// ledger is what actually prevents duplicate sends.
type Ledger struct {
	store settings.Store
}

func NewLedger(store settings.Store) *Ledger {
	return &Ledger{store: store}
}

// AlreadyNotified reports whether a notification was ever sent for the
// event key. Read errors are treated as "not notified"; the quota and the
// at-most-daily gate bound the blast radius of a wrong answer.
func (l *Ledger) AlreadyNotified(ctx context.Context, eventKey string) bool {
	val, err := l.store.Get(ctx, eventKey, "")
	if err != nil {
		return false
	}
	return val != ""
}

// MarkNotified records the date of a successful send for the event key.
func (l *Ledger) MarkNotified(ctx context.Context, eventKey string, date time.Time) error {
	return l.store.Set(ctx, eventKey, date.Format(dateLayout))
}

func monthlyKey(t time.Time) string {
	return "notif_usage_" + t.Format(monthLayout)
}

// MonthlyCount returns the number of notifications sent in t's calendar
// month. A new month reads a fresh key, which implicitly resets the quota.
func (l *Ledger) MonthlyCount(ctx context.Context, t time.Time) int {
	return settings.GetInt(ctx, l.store, monthlyKey(t), 0)
}

// IncrementMonthly bumps the counter for t's calendar month by one. The
// read-modify-write is not transactional; concurrent triggers can race,
// which is accepted for a single-organization deployment.
func (l *Ledger) IncrementMonthly(ctx context.Context, t time.Time) error {
	current := l.MonthlyCount(ctx, t)
	return l.store.Set(ctx, monthlyKey(t), strconv.Itoa(current+1))
}

// MonthlyLimit returns the configured hard cap on sends per month.
func (l *Ledger) MonthlyLimit(ctx context.Context) int {
	return settings.GetInt(ctx, l.store, keyMonthlyLimit, defaultMonthlyLimit)
}

// AlertDays returns the configured lookahead window in days.
func (l *Ledger) AlertDays(ctx context.Context) int {
	return settings.GetInt(ctx, l.store, keyAlertDays, defaultAlertDays)
}

// SetAlertDays updates the lookahead window. Exposed to the admin surface.
func (l *Ledger) SetAlertDays(ctx context.Context, days int) error {
	if days < 0 {
		return fmt.Errorf("alert window must be non-negative, got %d", days)
	}
	return l.store.Set(ctx, keyAlertDays, strconv.Itoa(days))
}

// SetMonthlyLimit updates the monthly send cap. Exposed to the admin surface.
func (l *Ledger) SetMonthlyLimit(ctx context.Context, limit int) error {
	if limit < 0 {
		return fmt.Errorf("monthly limit must be non-negative, got %d", limit)
	}
	return l.store.Set(ctx, keyMonthlyLimit, strconv.Itoa(limit))
}
