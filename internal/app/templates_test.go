package app

import (
	"strings"
	"testing"
	"time"

	"novenapp_alert_bot/internal/domain/deadline"
)

func TestRenderAlertSubjects(t *testing.T) {
	ref := time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC)

	project := deadline.Subject{Kind: deadline.KindProject, DisplayName: "Edificio Central", ReferenceDate: ref}
	subject, body := renderAlert(project, 5)
	if subject != "⚠️ Vencimiento Proyecto: Edificio Central (5 días)" {
		t.Errorf("unexpected project subject: %q", subject)
	}
	if !strings.Contains(body, "Edificio Central") || !strings.Contains(body, "2025-08-20") {
		t.Errorf("project body missing fields: %q", body)
	}

	contract := deadline.Subject{Kind: deadline.KindContract, ContractorName: "Constructora Sur", ReferenceDate: ref}
	subject, body = renderAlert(contract, 3)
	if subject != "⚠️ Vencimiento Contrato: Constructora Sur (3 días)" {
		t.Errorf("unexpected contract subject: %q", subject)
	}
	if !strings.Contains(body, "Revise estados de pago") {
		t.Errorf("contract body missing wording: %q", body)
	}

	guarantee := deadline.Subject{Kind: deadline.KindGuarantee, GuaranteeType: "Fiel Cumplimiento", GuaranteeAmount: 1500000, ReferenceDate: ref}
	subject, body = renderAlert(guarantee, 10)
	if subject != "⚠️ Vencimiento Garantía: Fiel Cumplimiento (10 días)" {
		t.Errorf("unexpected guarantee subject: %q", subject)
	}
	if !strings.Contains(body, "renovación o devolución") {
		t.Errorf("guarantee body missing wording: %q", body)
	}
}

func TestRenderAlertFallbackLabels(t *testing.T) {
	ref := time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC)

	contract := deadline.Subject{Kind: deadline.KindContract, ReferenceDate: ref}
	subject, _ := renderAlert(contract, 2)
	if !strings.Contains(subject, "Contratista") {
		t.Errorf("missing contractor fallback: %q", subject)
	}

	guarantee := deadline.Subject{Kind: deadline.KindGuarantee, ReferenceDate: ref}
	subject, _ = renderAlert(guarantee, 2)
	if !strings.Contains(subject, "Doc") {
		t.Errorf("missing guarantee type fallback: %q", subject)
	}
}
