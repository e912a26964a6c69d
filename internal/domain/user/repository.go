package user

import "context"

// Repository defines read access to ERP users for recipient resolution.
type Repository interface {
	// ListAll returns every user with id, name, role and email. When the
	// email column does not exist yet (migration not applied) the
	// implementation returns database.ErrEmailColumnMissing.
	ListAll(ctx context.Context) ([]*User, error)
}
