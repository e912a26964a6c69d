package deadline_test

import (
	"testing"
	"time"

	"novenapp_alert_bot/internal/domain/deadline"

	"github.com/stretchr/testify/assert"
)

var today = time.Date(2025, time.July, 1, 14, 45, 0, 0, time.UTC)

func TestTerminal(t *testing.T) {
	tests := []struct {
		name   string
		kind   deadline.Kind
		status deadline.Status
		want   bool
	}{
		{"completed project", deadline.KindProject, deadline.StatusCompletado, true},
		{"closing project", deadline.KindProject, deadline.StatusEnCierre, true},
		{"running project", deadline.KindProject, deadline.Status("En Ejecución"), false},
		{"unknown project status scans", deadline.KindProject, deadline.Status("Algo Raro"), false},
		{"finished contract", deadline.KindContract, deadline.StatusTerminado, true},
		{"current contract", deadline.KindContract, deadline.StatusVigente, false},
		{"current guarantee", deadline.KindGuarantee, deadline.StatusVigente, false},
		{"cashed guarantee never alerts", deadline.KindGuarantee, deadline.Status("Cobrada"), true},
		{"unknown guarantee status never alerts", deadline.KindGuarantee, deadline.Status("???"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deadline.Terminal(tt.kind, tt.status))
		})
	}
}

func TestDue(t *testing.T) {
	subject := func(daysAhead int, status deadline.Status) deadline.Subject {
		return deadline.Subject{
			ID:            1,
			Kind:          deadline.KindProject,
			Status:        status,
			ReferenceDate: today.AddDate(0, 0, daysAhead),
		}
	}

	assert.True(t, deadline.Due(subject(0, "En Ejecución"), today, 15), "deadline today is due")
	assert.True(t, deadline.Due(subject(15, "En Ejecución"), today, 15), "window is inclusive")
	assert.False(t, deadline.Due(subject(16, "En Ejecución"), today, 15), "beyond the window")
	assert.False(t, deadline.Due(subject(-1, "En Ejecución"), today, 15), "already past")
	assert.False(t, deadline.Due(subject(5, deadline.StatusCompletado), today, 15), "terminal status excluded")
	assert.True(t, deadline.Due(subject(0, "En Ejecución"), today, 0), "zero window still covers today")
}

// Reference dates scan from DATE columns as midnight UTC while the process
// clock carries the server's location. The window math must compare
// calendar dates, not instants, or the inclusive edges shift by a day.
func TestDueWithMixedLocations(t *testing.T) {
	santiago := time.FixedZone("America/Santiago", -4*60*60)
	tokyo := time.FixedZone("Asia/Tokyo", 9*60*60)

	subject := func(ref time.Time) deadline.Subject {
		return deadline.Subject{
			ID:            1,
			Kind:          deadline.KindProject,
			Status:        deadline.Status("En Ejecución"),
			ReferenceDate: ref,
		}
	}

	// West of UTC: a deadline falling on today must still be due even
	// though local 10:30 is an instant after the UTC midnight of the
	// reference date.
	refToday := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	nowWest := time.Date(2025, time.September, 1, 10, 30, 0, 0, santiago)
	assert.True(t, deadline.Due(subject(refToday), nowWest, 15), "deadline today is due in a western zone")

	// East of UTC: the inclusive edge today+window must hold.
	refEdge := time.Date(2025, time.September, 16, 0, 0, 0, 0, time.UTC)
	nowEast := time.Date(2025, time.September, 1, 10, 30, 0, 0, tokyo)
	assert.True(t, deadline.Due(subject(refEdge), nowEast, 15), "window edge is inclusive in an eastern zone")

	// One day past the edge stays out regardless of location.
	refPastEdge := time.Date(2025, time.September, 17, 0, 0, 0, 0, time.UTC)
	assert.False(t, deadline.Due(subject(refPastEdge), nowEast, 15))
}

func TestDaysLeft(t *testing.T) {
	assert.Equal(t, 1, deadline.DaysLeft(today, today), "deadline today counts as one day")
	assert.Equal(t, 6, deadline.DaysLeft(today.AddDate(0, 0, 5), today))
	// Time-of-day must not shift the count.
	lateRef := time.Date(2025, time.July, 3, 23, 59, 0, 0, time.UTC)
	earlyNow := time.Date(2025, time.July, 1, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 3, deadline.DaysLeft(lateRef, earlyNow))
	// Nor must the operands' locations: a UTC reference date against a
	// western local clock counts the same calendar days.
	lima := time.FixedZone("America/Lima", -5*60*60)
	utcRef := time.Date(2025, time.July, 3, 0, 0, 0, 0, time.UTC)
	localNow := time.Date(2025, time.July, 1, 22, 0, 0, 0, lima)
	assert.Equal(t, 3, deadline.DaysLeft(utcRef, localNow))
}

func TestStatusKnown(t *testing.T) {
	assert.True(t, deadline.StatusVigente.Known())
	assert.True(t, deadline.StatusCompletado.Known())
	assert.False(t, deadline.Status("En Ejecución").Known())
	assert.False(t, deadline.Status("").Known())
}
