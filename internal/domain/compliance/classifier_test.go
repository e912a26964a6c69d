package compliance_test

import (
	"testing"
	"time"

	"novenapp_alert_bot/internal/domain/compliance"

	"github.com/stretchr/testify/assert"
)

var today = time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)

func datePtr(daysFromToday int) *time.Time {
	d := today.AddDate(0, 0, daysFromToday)
	return &d
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		declared   compliance.DocumentStatus
		expiration *time.Time
		want       compliance.Bucket
	}{
		{"declared vencido stays vencido", compliance.DocStatusVencido, datePtr(90), compliance.BucketVencido},
		{"pendiente grouped with vencido", compliance.DocStatusPendiente, nil, compliance.BucketVencido},
		{"vigente without expiration stays vigente", compliance.DocStatusVigente, nil, compliance.BucketVigente},
		{"vigente expiring in 10 days is por vencer", compliance.DocStatusVigente, datePtr(10), compliance.BucketPorVencer},
		{"vigente expiring today is por vencer", compliance.DocStatusVigente, datePtr(0), compliance.BucketPorVencer},
		{"vigente expiring in 29 days is por vencer", compliance.DocStatusVigente, datePtr(29), compliance.BucketPorVencer},
		{"vigente expiring in 30 days stays vigente", compliance.DocStatusVigente, datePtr(30), compliance.BucketVigente},
		{"expired date overrides stale vigente", compliance.DocStatusVigente, datePtr(-1), compliance.BucketVencido},
		{"long expired vigente is vencido", compliance.DocStatusVigente, datePtr(-200), compliance.BucketVencido},
		{"unmapped status is desconocido", compliance.DocumentStatus("Rechazado"), datePtr(90), compliance.BucketDesconocido},
		{"empty status is desconocido", compliance.DocumentStatus(""), nil, compliance.BucketDesconocido},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compliance.Classify(tt.declared, tt.expiration, today)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Expiration dates scan from DATE columns as midnight UTC while today
// carries the server's location. The 30-day boundary must depend on
// calendar dates only.
func TestClassifyWithMixedLocations(t *testing.T) {
	santiago := time.FixedZone("America/Santiago", -4*60*60)
	localToday := time.Date(2025, time.September, 1, 10, 30, 0, 0, santiago)

	in30 := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, compliance.BucketVigente,
		compliance.Classify(compliance.DocStatusVigente, &in30, localToday),
		"exactly 30 days out stays vigente in a western zone")

	in29 := time.Date(2025, time.September, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, compliance.BucketPorVencer,
		compliance.Classify(compliance.DocStatusVigente, &in29, localToday))

	yesterday := time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, compliance.BucketVencido,
		compliance.Classify(compliance.DocStatusVigente, &yesterday, localToday))
}

func TestAggregate(t *testing.T) {
	subs := []compliance.Subcontractor{
		{ID: 1, Name: "Eléctrica Andes", Status: compliance.SubStatusActivo},
		{ID: 2, Name: "Hormigones Sur", Status: compliance.SubStatusActivo},
		{ID: 3, Name: "Montajes Pacífico", Status: compliance.SubStatusBloqueado},
	}
	docs := map[int64][]compliance.Document{
		1: {
			{ID: 10, SubcontractorID: 1, Type: "F30", DeclaredStatus: compliance.DocStatusVigente, ExpirationDate: datePtr(60)},
			{ID: 11, SubcontractorID: 1, Type: "F30-1", DeclaredStatus: compliance.DocStatusVigente, ExpirationDate: datePtr(5)},
		},
		2: {
			{ID: 20, SubcontractorID: 2, Type: "Contrato", DeclaredStatus: compliance.DocStatusPendiente},
			{ID: 21, SubcontractorID: 2, Type: "Finiquito", DeclaredStatus: compliance.DocStatusVencido},
			// Unmapped status: feeds no bucket and no alert count.
			{ID: 22, SubcontractorID: 2, Type: "Anexo", DeclaredStatus: compliance.DocumentStatus("Rechazado")},
		},
		// Subcontractor 3 has no documents.
	}

	stats := compliance.Aggregate(subs, docs, today)

	assert.Equal(t, 1, stats.Vigente)
	assert.Equal(t, 1, stats.PorVencer)
	assert.Equal(t, 2, stats.Vencido)
	assert.Equal(t, 3, stats.PendingAlerts, "por vencer + vencido need attention")
	assert.Equal(t, 2, stats.ActiveSubs)
	assert.Equal(t, 1, stats.BlockedSubs)
}

func TestAggregateEmpty(t *testing.T) {
	stats := compliance.Aggregate(nil, nil, today)
	assert.Zero(t, stats)
}
