package user

import (
	"database/sql"
	"strings"

	"novenapp_alert_bot/internal/domain/delivery"
)

// Role is the ERP role of a user. Stored as free text; only the roles the
// alerting rules care about are named here.
type Role string

const (
	RoleAdministrador  Role = "Administrador"
	RoleProgramador    Role = "Programador"
	RoleResidenteObra  Role = "Residente de Obra"
	RoleJefeTerreno    Role = "Jefe de Terreno"
	RoleOficinaTecnica Role = "Oficina Técnica"
)

// User represents an ERP user.
type User struct {
	ID       int64
	Username string
	FullName string
	Role     Role
	Email    sql.NullString // optional until the email migration has run
}

// alertRoles are the roles that receive deadline alerts.
var alertRoles = map[Role]bool{
	RoleAdministrador: true,
	RoleProgramador:   true,
	RoleResidenteObra: true,
}

// AlertRecipients filters users down to valid notification targets: alert
// role and a plausible email address (must contain "@").
func AlertRecipients(users []*User) []delivery.Recipient {
	recipients := make([]delivery.Recipient, 0, len(users))
	for _, u := range users {
		if !alertRoles[u.Role] {
			continue
		}
		if !u.Email.Valid || !strings.Contains(u.Email.String, "@") {
			continue
		}
		recipients = append(recipients, delivery.Recipient{
			UserID: u.ID,
			Name:   u.FullName,
			Email:  u.Email.String,
		})
	}
	return recipients
}
