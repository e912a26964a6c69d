package compliance

import "time"

// DocumentStatus is the status declared on a compliance document by the
// user who uploaded it. The effective bucket may differ once the expiration
// date is taken into account (see Classify).
type DocumentStatus string

const (
	DocStatusVigente   DocumentStatus = "Vigente"
	DocStatusVencido   DocumentStatus = "Vencido"
	DocStatusPendiente DocumentStatus = "Pendiente"
)

// Document is a compliance document (F30, contrato marco, anexos, etc.)
// belonging to exactly one subcontractor.
type Document struct {
	ID              int64
	SubcontractorID int64
	Type            string
	DeclaredStatus  DocumentStatus
	ExpirationDate  *time.Time // nil when the document has no expiry
}

// SubcontractorStatus is the administrative status of a subcontractor,
// independent of its document state.
type SubcontractorStatus string

const (
	SubStatusActivo    SubcontractorStatus = "Activo"
	SubStatusBloqueado SubcontractorStatus = "Bloqueado"
)

// Subcontractor is the parent entity of compliance documents.
type Subcontractor struct {
	ID     int64
	Name   string
	Status SubcontractorStatus
}
