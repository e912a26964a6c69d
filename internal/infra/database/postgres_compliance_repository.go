package database

import (
	"context"
	"database/sql"
	"fmt"

	"novenapp_alert_bot/internal/domain/compliance"
)

// PostgresComplianceRepository implements compliance.Repository over the
// subcontractors and compliance_documents tables.
type PostgresComplianceRepository struct {
	db *sql.DB
}

func NewPostgresComplianceRepository(db *sql.DB) *PostgresComplianceRepository {
	return &PostgresComplianceRepository{db: db}
}

func (r *PostgresComplianceRepository) ListSubcontractors(ctx context.Context) ([]compliance.Subcontractor, error) {
	return withRetry(ctx, func(ctx context.Context) ([]compliance.Subcontractor, error) {
		query := `SELECT id, name, status FROM subcontractors ORDER BY name`

		rows, err := r.db.QueryContext(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("error listing subcontractors: %w", err)
		}
		defer rows.Close()

		subs := make([]compliance.Subcontractor, 0)
		for rows.Next() {
			var s compliance.Subcontractor
			var status string
			if err := rows.Scan(&s.ID, &s.Name, &status); err != nil {
				return nil, fmt.Errorf("error scanning subcontractor: %w", err)
			}
			s.Status = compliance.SubcontractorStatus(status)
			subs = append(subs, s)
		}
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("error iterating subcontractors: %w", err)
		}
		return subs, nil
	})
}

func (r *PostgresComplianceRepository) ListDocuments(ctx context.Context, subcontractorID int64) ([]compliance.Document, error) {
	return withRetry(ctx, func(ctx context.Context) ([]compliance.Document, error) {
		query := `SELECT id, subcontractor_id, document_type, status, expiration_date
                   FROM compliance_documents WHERE subcontractor_id = $1 ORDER BY id`

		rows, err := r.db.QueryContext(ctx, query, subcontractorID)
		if err != nil {
			return nil, fmt.Errorf("error listing compliance documents: %w", err)
		}
		defer rows.Close()

		docs := make([]compliance.Document, 0)
		for rows.Next() {
			var d compliance.Document
			var status string
			var expiration sql.NullTime
			if err := rows.Scan(&d.ID, &d.SubcontractorID, &d.Type, &status, &expiration); err != nil {
				return nil, fmt.Errorf("error scanning compliance document: %w", err)
			}
			d.DeclaredStatus = compliance.DocumentStatus(status)
			if expiration.Valid {
				t := expiration.Time
				d.ExpirationDate = &t
			}
			docs = append(docs, d)
		}
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("error iterating compliance documents: %w", err)
		}
		return docs, nil
	})
}
