package app

import (
	"fmt"
	"html/template"
	"strings"

	"novenapp_alert_bot/internal/domain/deadline"
)

// HTML bodies for the three alert kinds. Wording matches the emails the
// organization already receives.

var projectAlertTmpl = template.Must(template.New("project").Parse(`
<div style="font-family: sans-serif; padding: 20px; border: 1px solid #e2e8f0; border-radius: 8px;">
    <h2 style="color: #c0392b;">⚠️ Alerta de Vencimiento de Proyecto</h2>
    <p>El proyecto <strong>{{.Name}}</strong> está próximo a su fecha de término.</p>
    <ul>
        <li><strong>Fecha de Fin:</strong> {{.Date}}</li>
        <li><strong>Días Restantes:</strong> {{.Days}} días</li>
    </ul>
    <p style="color: #64748b; font-size: 14px;">Gestione el cierre o extensión correspondiente.</p>
    <hr>
    <small>Notificación Automática - Novenapp</small>
</div>`))

var contractAlertTmpl = template.Must(template.New("contract").Parse(`
<div style="font-family: sans-serif; padding: 20px; border: 1px solid #e2e8f0; border-radius: 8px;">
    <h2 style="color: #d35400;">⚠️ Alerta de Vencimiento de Contrato</h2>
    <p>El contrato con <strong>{{.Name}}</strong> está por vencer.</p>
    <ul>
        <li><strong>Fecha de Término:</strong> {{.Date}}</li>
        <li><strong>Días Restantes:</strong> {{.Days}} días</li>
    </ul>
    <p style="color: #64748b; font-size: 14px;">Revise estados de pago y recepciones finales.</p>
    <hr>
    <small>Notificación Automática - Novenapp</small>
</div>`))

var guaranteeAlertTmpl = template.Must(template.New("guarantee").Parse(`
<div style="font-family: sans-serif; padding: 20px; border: 1px solid #e2e8f0; border-radius: 8px;">
    <h2 style="color: #e67e22;">⚠️ Alerta de Vencimiento de Garantía</h2>
    <p>Una boleta de garantía ({{.Type}}) está próxima a expirar.</p>
    <ul>
        <li><strong>Monto:</strong> {{.Amount}}</li>
        <li><strong>Vencimiento:</strong> {{.Date}}</li>
        <li><strong>Días Restantes:</strong> {{.Days}} días</li>
    </ul>
    <p style="color: #64748b; font-size: 14px;">Gestione la renovación o devolución del documento.</p>
    <hr>
    <small>Notificación Automática - Novenapp</small>
</div>`))

// renderAlert produces the type-specific subject line and HTML body for a
// due subject.
func renderAlert(s deadline.Subject, daysLeft int) (subject, body string) {
	date := s.ReferenceDate.Format(dateLayout)
	var buf strings.Builder

	switch s.Kind {
	case deadline.KindGuarantee:
		gType := s.GuaranteeType
		if gType == "" {
			gType = "Doc"
		}
		subject = fmt.Sprintf("⚠️ Vencimiento Garantía: %s (%d días)", gType, daysLeft)
		_ = guaranteeAlertTmpl.Execute(&buf, struct {
			Type   string
			Amount float64
			Date   string
			Days   int
		}{gType, s.GuaranteeAmount, date, daysLeft})
	case deadline.KindContract:
		contractor := s.ContractorName
		if contractor == "" {
			contractor = "Contratista"
		}
		subject = fmt.Sprintf("⚠️ Vencimiento Contrato: %s (%d días)", contractor, daysLeft)
		_ = contractAlertTmpl.Execute(&buf, struct {
			Name string
			Date string
			Days int
		}{contractor, date, daysLeft})
	default:
		subject = fmt.Sprintf("⚠️ Vencimiento Proyecto: %s (%d días)", s.DisplayName, daysLeft)
		_ = projectAlertTmpl.Execute(&buf, struct {
			Name string
			Date string
			Days int
		}{s.DisplayName, date, daysLeft})
	}
	return subject, buf.String()
}
