package deadline

import "time"

// Kind identifies the class of record being checked for an upcoming deadline.
// The string values double as the type labels used in persisted notification
// keys (notif_<label>_<id>), so they must stay byte-identical to the ones the
// ERP already wrote to the config table.
type Kind string

const (
	KindProject   Kind = "Proyecto"
	KindContract  Kind = "Contrato"
	KindGuarantee Kind = "Garantía"
)

// Status is the domain status of a subject. The ERP stores these as free
// text; values outside the known set are preserved verbatim and treated as
// non-terminal (the record keeps being scanned for deadlines).
type Status string

const (
	StatusCompletado Status = "Completado"
	StatusEnCierre   Status = "En Cierre"
	StatusTerminado  Status = "Terminado"
	StatusVigente    Status = "Vigente"
)

// Known reports whether the status is one of the closed set the alerting
// rules reason about.
func (s Status) Known() bool {
	switch s {
	case StatusCompletado, StatusEnCierre, StatusTerminado, StatusVigente:
		return true
	}
	return false
}

// Subject is a project, contract or guarantee with a reference date that may
// fall inside the alert window. Created and updated by the ERP's CRUD
// surface; read-only here.
type Subject struct {
	ID            int64
	Kind          Kind
	DisplayName   string
	Status        Status
	ReferenceDate time.Time // end_date or expiration_date, date-granular

	// Kind-specific fields consumed by the alert templates.
	ContractorName  string
	GuaranteeType   string
	GuaranteeAmount float64
}

// Terminal reports whether a subject in the given status is excluded from
// deadline scans for its kind. Guarantees invert the rule: only Vigente
// guarantees are ever alerted.
func Terminal(k Kind, s Status) bool {
	switch k {
	case KindProject:
		return s == StatusCompletado || s == StatusEnCierre
	case KindContract:
		return s == StatusTerminado
	case KindGuarantee:
		return s != StatusVigente
	}
	return false
}

// Due reports whether the subject's reference date falls within
// [today, today+windowDays] and the subject is not in a terminal status.
// Comparison is date-granular; time-of-day is ignored.
func Due(s Subject, today time.Time, windowDays int) bool {
	if Terminal(s.Kind, s.Status) {
		return false
	}
	ref := DateOnly(s.ReferenceDate)
	from := DateOnly(today)
	until := from.AddDate(0, 0, windowDays)
	return !ref.Before(from) && !ref.After(until)
}

// DaysLeft returns the number of days remaining until ref, inclusive of
// today: a deadline falling on today reports 1.
func DaysLeft(ref, today time.Time) int {
	diff := DateOnly(ref).Sub(DateOnly(today))
	return int(diff.Hours()/24) + 1
}

// DateOnly reduces t to its calendar date, rebuilt as midnight UTC.
// Normalizing to one location matters: reference dates scanned from
// Postgres DATE columns arrive as midnight UTC while the process clock is
// local, and comparing instants across locations would shift the window
// edges by a day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
