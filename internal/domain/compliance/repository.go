package compliance

import "context"

// Repository defines read access to subcontractors and their compliance
// documents.
type Repository interface {
	ListSubcontractors(ctx context.Context) ([]Subcontractor, error)
	ListDocuments(ctx context.Context, subcontractorID int64) ([]Document, error)
}
