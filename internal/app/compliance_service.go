package app

import (
	"context"
	"fmt"
	"time"

	"novenapp_alert_bot/internal/domain/compliance"

	"github.com/sirupsen/logrus"
)

// ComplianceService computes the portfolio-wide compliance KPIs consumed by
// the dashboard and the admin surface.
type ComplianceService struct {
	repo   compliance.Repository
	logger *logrus.Entry
	now    func() time.Time
}

func NewComplianceService(repo compliance.Repository, logger *logrus.Entry) *ComplianceService {
	return &ComplianceService{repo: repo, logger: logger, now: time.Now}
}

// WithClock overrides the service's clock for tests.
func (s *ComplianceService) WithClock(now func() time.Time) *ComplianceService {
	s.now = now
	return s
}

// Stats classifies every compliance document of every subcontractor and
// returns the aggregate counts. Document fetch failures for a single
// subcontractor degrade to "no documents" for that subcontractor.
func (s *ComplianceService) Stats(ctx context.Context) (compliance.Stats, error) {
	subs, err := s.repo.ListSubcontractors(ctx)
	if err != nil {
		return compliance.Stats{}, fmt.Errorf("listing subcontractors: %w", err)
	}

	docsBySub := make(map[int64][]compliance.Document, len(subs))
	for _, sub := range subs {
		docs, err := s.repo.ListDocuments(ctx, sub.ID)
		if err != nil {
			s.logger.WithError(err).WithField("subcontractor_id", sub.ID).Warn("Could not list compliance documents")
			continue
		}
		docsBySub[sub.ID] = docs
	}

	return compliance.Aggregate(subs, docsBySub, s.now()), nil
}
