package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"novenapp_alert_bot/internal/domain/deadline"
)

// PostgresSubjectRepository implements deadline.Repository over the ERP's
// projects, contracts and guarantees tables.
type PostgresSubjectRepository struct {
	db *sql.DB
}

func NewPostgresSubjectRepository(db *sql.DB) *PostgresSubjectRepository {
	return &PostgresSubjectRepository{db: db}
}

// ListExpiring returns the non-terminal subjects of a kind whose reference
// date falls within [today, today+windowDays]. Filters are applied in SQL,
// matching the rules the dashboard queries use.
func (r *PostgresSubjectRepository) ListExpiring(ctx context.Context, kind deadline.Kind, today time.Time, windowDays int) ([]deadline.Subject, error) {
	from := deadline.DateOnly(today)
	until := from.AddDate(0, 0, windowDays)

	return withRetry(ctx, func(ctx context.Context) ([]deadline.Subject, error) {
		switch kind {
		case deadline.KindProject:
			return r.listProjects(ctx, from, until)
		case deadline.KindContract:
			return r.listContracts(ctx, from, until)
		case deadline.KindGuarantee:
			return r.listGuarantees(ctx, from, until)
		default:
			return nil, fmt.Errorf("unknown subject kind: %q", kind)
		}
	})
}

func (r *PostgresSubjectRepository) listProjects(ctx context.Context, from, until time.Time) ([]deadline.Subject, error) {
	query := `SELECT id, name, status, end_date FROM projects
               WHERE status <> 'Completado' AND status <> 'En Cierre'
                 AND end_date >= $1 AND end_date <= $2
               ORDER BY end_date`

	rows, err := r.db.QueryContext(ctx, query, from, until)
	if err != nil {
		return nil, fmt.Errorf("error listing expiring projects: %w", err)
	}
	defer rows.Close()

	subjects := make([]deadline.Subject, 0)
	for rows.Next() {
		s := deadline.Subject{Kind: deadline.KindProject}
		var status string
		if err := rows.Scan(&s.ID, &s.DisplayName, &status, &s.ReferenceDate); err != nil {
			return nil, fmt.Errorf("error scanning expiring project: %w", err)
		}
		s.Status = deadline.Status(status)
		subjects = append(subjects, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expiring projects: %w", err)
	}
	return subjects, nil
}

func (r *PostgresSubjectRepository) listContracts(ctx context.Context, from, until time.Time) ([]deadline.Subject, error) {
	query := `SELECT id, contractor_name, status, end_date FROM contracts
               WHERE status <> 'Terminado'
                 AND end_date >= $1 AND end_date <= $2
               ORDER BY end_date`

	rows, err := r.db.QueryContext(ctx, query, from, until)
	if err != nil {
		return nil, fmt.Errorf("error listing expiring contracts: %w", err)
	}
	defer rows.Close()

	subjects := make([]deadline.Subject, 0)
	for rows.Next() {
		s := deadline.Subject{Kind: deadline.KindContract}
		var status string
		var contractor sql.NullString
		if err := rows.Scan(&s.ID, &contractor, &status, &s.ReferenceDate); err != nil {
			return nil, fmt.Errorf("error scanning expiring contract: %w", err)
		}
		s.Status = deadline.Status(status)
		s.ContractorName = contractor.String
		s.DisplayName = contractor.String
		subjects = append(subjects, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expiring contracts: %w", err)
	}
	return subjects, nil
}

func (r *PostgresSubjectRepository) listGuarantees(ctx context.Context, from, until time.Time) ([]deadline.Subject, error) {
	// Only Vigente guarantees are ever alerted.
	query := `SELECT id, type, amount, status, expiration_date FROM guarantees
               WHERE status = 'Vigente'
                 AND expiration_date >= $1 AND expiration_date <= $2
               ORDER BY expiration_date`

	rows, err := r.db.QueryContext(ctx, query, from, until)
	if err != nil {
		return nil, fmt.Errorf("error listing expiring guarantees: %w", err)
	}
	defer rows.Close()

	subjects := make([]deadline.Subject, 0)
	for rows.Next() {
		s := deadline.Subject{Kind: deadline.KindGuarantee}
		var status string
		var gType sql.NullString
		var amount sql.NullFloat64
		if err := rows.Scan(&s.ID, &gType, &amount, &status, &s.ReferenceDate); err != nil {
			return nil, fmt.Errorf("error scanning expiring guarantee: %w", err)
		}
		s.Status = deadline.Status(status)
		s.GuaranteeType = gType.String
		s.GuaranteeAmount = amount.Float64
		s.DisplayName = gType.String
		subjects = append(subjects, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expiring guarantees: %w", err)
	}
	return subjects, nil
}
