package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"novenapp_alert_bot/internal/domain/user"

	"github.com/lib/pq"
)

// ErrEmailColumnMissing is returned when the users table has no email
// column (the email migration has not been applied). Recipient resolution
// cannot proceed without it.
var ErrEmailColumnMissing = fmt.Errorf("users table has no email column")

// undefined_column, per the PostgreSQL error code table.
const pqUndefinedColumn = "42703"

// PostgresUserRepository implements user.Repository over the ERP users table.
type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) ListAll(ctx context.Context) ([]*user.User, error) {
	return withRetry(ctx, func(ctx context.Context) ([]*user.User, error) {
		query := `SELECT id, username, full_name, role, email FROM users ORDER BY id`

		rows, err := r.db.QueryContext(ctx, query)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && string(pqErr.Code) == pqUndefinedColumn {
				return nil, ErrEmailColumnMissing
			}
			return nil, fmt.Errorf("error listing users: %w", err)
		}
		defer rows.Close()

		users := make([]*user.User, 0)
		for rows.Next() {
			u := &user.User{}
			var role string
			if err := rows.Scan(&u.ID, &u.Username, &u.FullName, &role, &u.Email); err != nil {
				return nil, fmt.Errorf("error scanning user: %w", err)
			}
			u.Role = user.Role(role)
			users = append(users, u)
		}
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("error iterating users: %w", err)
		}
		return users, nil
	})
}
