package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"novenapp_alert_bot/internal/domain/deadline"
	"novenapp_alert_bot/internal/domain/delivery"
	"novenapp_alert_bot/internal/domain/user"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrDeliveryNotConfigured is returned when no delivery sender was wired.
// The daily gate does not advance the run marker on this error.
var ErrDeliveryNotConfigured = errors.New("delivery service is not configured")

// kindOrder is the fixed processing order within a dispatch run.
var kindOrder = [...]deadline.Kind{deadline.KindProject, deadline.KindContract, deadline.KindGuarantee}

// Summary is the result of one dispatch run, rendered for humans by
// String().
type Summary struct {
	RunID       string
	Sent        int
	Threshold   int
	NoDeadlines bool
	Lines       []string
}

// String renders the run summary in the format the automation log and the
// admin surface expect.
func (s Summary) String() string {
	if s.NoDeadlines {
		return fmt.Sprintf("Sin vencimientos próximos (Umbral: %d días).", s.Threshold)
	}
	return fmt.Sprintf("Proceso Finalizado. %d notificaciones enviadas. Detalles: %s",
		s.Sent, strings.Join(s.Lines, "; "))
}

// Dispatcher orchestrates the deadline queries, the dedup ledger, the
// monthly quota and the delivery sender into one alerting run.
type Dispatcher struct {
	subjects deadline.Repository
	users    user.Repository
	ledger   *Ledger
	sender   delivery.Sender
	logger   *logrus.Entry
	now      func() time.Time
}

func NewDispatcher(
	subjects deadline.Repository,
	users user.Repository,
	ledger *Ledger,
	sender delivery.Sender,
	logger *logrus.Entry,
) *Dispatcher {
	return &Dispatcher{
		subjects: subjects,
		users:    users,
		ledger:   ledger,
		sender:   sender,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the dispatcher's clock. Used by tests and by the
// automation gate so both agree on "today".
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// CheckAndNotifyDeadlines runs one alerting pass: fetch due subjects for
// the three kinds, resolve recipients, and send one alert per not-yet-
// notified subject to every recipient, bounded by the monthly quota.
//
// Failure policy: a failed deadline query degrades to zero due subjects for
// that kind (logged, not raised); a failed send affects only that recipient;
// an unresolved recipient list or an unconfigured sender aborts the run with
// an error so the daily gate retries later the same day.
func (d *Dispatcher) CheckAndNotifyDeadlines(ctx context.Context) (Summary, error) {
	runID := uuid.NewString()
	log := d.logger.WithField("run_id", runID)

	if d.sender == nil {
		return Summary{RunID: runID}, ErrDeliveryNotConfigured
	}

	today := deadline.DateOnly(d.now())
	window := d.ledger.AlertDays(ctx)
	summary := Summary{RunID: runID, Threshold: window}

	// 1. Gather due subjects per kind, in fixed order. Query errors
	//    degrade to an empty slice for that kind.
	var due []deadline.Subject
	for _, kind := range kindOrder {
		subjects, err := d.subjects.ListExpiring(ctx, kind, today, window)
		if err != nil {
			log.WithError(err).WithField("kind", string(kind)).Warn("Deadline query failed; treating as no due subjects")
			continue
		}
		for _, s := range subjects {
			if deadline.Due(s, today, window) {
				due = append(due, s)
			}
		}
	}

	// 2. Nothing due: no recipient resolution, no quota consumption.
	if len(due) == 0 {
		summary.NoDeadlines = true
		log.WithField("window_days", window).Info("No upcoming deadlines")
		return summary, nil
	}

	// 3. Resolve recipients. A missing email column aborts the run.
	allUsers, err := d.users.ListAll(ctx)
	if err != nil {
		log.WithError(err).Error("Could not resolve alert recipients")
		return summary, fmt.Errorf("resolving recipients: %w", err)
	}
	recipients := user.AlertRecipients(allUsers)
	log.WithFields(logrus.Fields{
		"due_subjects": len(due),
		"recipients":   len(recipients),
	}).Info("Dispatching deadline alerts")

	// 4. One event per due subject. The ledger check comes first: an
	//    already-notified subject consumes neither sends nor quota reads.
	for _, subject := range due {
		eventKey := EventKey(subject.Kind, subject.ID)
		if d.ledger.AlreadyNotified(ctx, eventKey) {
			log.WithField("event_key", eventKey).Debug("Already notified; skipping")
			continue
		}

		daysLeft := deadline.DaysLeft(subject.ReferenceDate, today)
		subjectLine, body := renderAlert(subject, daysLeft)

		successAny := false
		for _, recipient := range recipients {
			if d.trySend(ctx, log, recipient, subjectLine, body, today) {
				successAny = true
				summary.Sent++
			}
		}

		// The ledger entry is written only when at least one recipient got
		// the alert. A fully failed event stays eligible for a future run.
		if successAny {
			if err := d.ledger.MarkNotified(ctx, eventKey, today); err != nil {
				log.WithError(err).WithField("event_key", eventKey).Error("Failed to write ledger entry")
			}
			summary.Lines = append(summary.Lines,
				fmt.Sprintf("%s ID %d: Alertados %d usuarios.", subject.Kind, subject.ID, len(recipients)))
		}
	}

	log.WithField("sent", summary.Sent).Info("Dispatch run finished")
	return summary, nil
}

// trySend attempts one delivery, enforcing the monthly quota first: once
// the cap is reached the external service is not contacted and the counter
// is not incremented.
func (d *Dispatcher) trySend(ctx context.Context, log *logrus.Entry, to delivery.Recipient, subject, body string, today time.Time) bool {
	limit := d.ledger.MonthlyLimit(ctx)
	if current := d.ledger.MonthlyCount(ctx, today); current >= limit {
		log.WithFields(logrus.Fields{
			"current": current,
			"limit":   limit,
		}).Warn("Monthly notification limit reached; send refused")
		return false
	}

	if err := d.sender.Send(ctx, to, subject, body); err != nil {
		log.WithError(err).WithField("recipient", to.Email).Warn("Delivery failed for recipient")
		return false
	}

	if err := d.ledger.IncrementMonthly(ctx, today); err != nil {
		log.WithError(err).Warn("Could not increment monthly usage counter")
	}
	return true
}
