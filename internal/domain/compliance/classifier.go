package compliance

import "time"

// porVencerDays is the lookahead under which a still-valid document is
// reported as expiring soon.
const porVencerDays = 30

// Bucket is the effective classification of a compliance document.
type Bucket string

const (
	BucketVigente   Bucket = "Vigente"
	BucketPorVencer Bucket = "Por Vencer"
	BucketVencido   Bucket = "Vencido"

	// BucketDesconocido marks a document whose declared status is outside
	// the known set. Such documents contribute to no KPI; they surface as
	// data-quality issues instead of being silently folded into a bucket.
	BucketDesconocido Bucket = "Desconocido"
)

// Classify computes the effective bucket of a document from its declared
// status and expiration date:
//
//   - a declared Vencido stays Vencido;
//   - Pendiente is grouped with Vencido (needs attention either way);
//   - a declared Vigente is overridden by the expiration date when the date
//     has already passed, and demoted to Por Vencer when fewer than 30 days
//     remain. Without an expiration date the declaration stands.
//
// A declared status outside the known set classifies as Desconocido.
func Classify(declared DocumentStatus, expiration *time.Time, today time.Time) Bucket {
	switch declared {
	case DocStatusVencido:
		return BucketVencido
	case DocStatusPendiente:
		return BucketVencido
	case DocStatusVigente:
		if expiration == nil {
			return BucketVigente
		}
		days := daysUntil(*expiration, today)
		switch {
		case days < 0:
			return BucketVencido
		case days < porVencerDays:
			return BucketPorVencer
		default:
			return BucketVigente
		}
	default:
		return BucketDesconocido
	}
}

// Stats is the portfolio-wide compliance aggregate shown on the dashboard
// and reported through the admin surface.
type Stats struct {
	Vigente   int
	PorVencer int
	Vencido   int

	// PendingAlerts counts every document needing attention
	// (Vencido or Por Vencer).
	PendingAlerts int

	ActiveSubs  int
	BlockedSubs int
}

// Aggregate classifies every document of every subcontractor and tallies
// the bucket counts plus the Activo/Bloqueado subcontractor counts.
// docsBySub maps subcontractor ID to its documents; subcontractors with no
// entry simply contribute no documents.
func Aggregate(subs []Subcontractor, docsBySub map[int64][]Document, today time.Time) Stats {
	var st Stats
	for _, sub := range subs {
		switch sub.Status {
		case SubStatusActivo:
			st.ActiveSubs++
		case SubStatusBloqueado:
			st.BlockedSubs++
		}
		for _, doc := range docsBySub[sub.ID] {
			switch Classify(doc.DeclaredStatus, doc.ExpirationDate, today) {
			case BucketVigente:
				st.Vigente++
			case BucketPorVencer:
				st.PorVencer++
				st.PendingAlerts++
			case BucketVencido:
				st.Vencido++
				st.PendingAlerts++
			case BucketDesconocido:
				// Dropped from every count; only the three known statuses
				// feed the KPIs.
			}
		}
	}
	return st
}

// daysUntil counts whole calendar days from today to expiration. Both
// operands are rebuilt as midnight UTC from their own calendar date so the
// count is stable regardless of the locations they carry (DATE columns
// scan as UTC, the process clock is local).
func daysUntil(expiration, today time.Time) int {
	exp := time.Date(expiration.Year(), expiration.Month(), expiration.Day(), 0, 0, 0, 0, time.UTC)
	now := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(exp.Sub(now).Hours() / 24)
}
