package scheduler

import (
	"context"
	"time"

	"novenapp_alert_bot/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const jobTimeout = 10 * time.Minute

// DailyScheduler triggers the automation gate on a cron spec. The gate
// itself guarantees at-most-once-per-day execution, so the spec only
// decides when during the day the check happens.
type DailyScheduler struct {
	cronEngine *cron.Cron
	automation *app.Automation
	logger     *logrus.Entry
	cronSpec   string
}

func NewDailyScheduler(automation *app.Automation, logger *logrus.Entry, cronSpec string) *DailyScheduler {
	return &DailyScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)), // server's local time decides the calendar day
		automation: automation,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

func (s *DailyScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for daily deadline check")
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		ran, message := s.automation.RunDaily(ctx)
		s.logger.WithFields(logrus.Fields{
			"ran":     ran,
			"message": message,
		}).Info("Daily deadline check completed")
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Daily scheduler started")
	return nil
}

func (s *DailyScheduler) Stop() {
	s.logger.Info("Stopping daily scheduler...")
	ctx := s.cronEngine.Stop() // waits for running jobs
	<-ctx.Done()
	s.logger.Info("Daily scheduler gracefully stopped")
}
