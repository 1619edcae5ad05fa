package domain

import "strings"

// Role is the closed set of application roles.
type Role string

const (
	RoleAdmin     Role = "Administrador"
	RoleTeacher   Role = "Docente"
	RoleAssistant Role = "Asistente"
	RoleStudent   Role = "Estudiante"
)

// Capability is an action guarded at the HTTP boundary.
type Capability string

const (
	CapIssueCodes           Capability = "issue_codes"
	CapRedeemCodes          Capability = "redeem_codes"
	CapDispatchCertificates Capability = "dispatch_certificates"
	CapImportAttendees      Capability = "import_attendees"
	CapViewStats            Capability = "view_stats"
)

var capabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapIssueCodes:           true,
		CapRedeemCodes:          true,
		CapDispatchCertificates: true,
		CapImportAttendees:      true,
		CapViewStats:            true,
	},
	RoleTeacher: {
		CapIssueCodes:           true,
		CapRedeemCodes:          true,
		CapDispatchCertificates: true,
		CapViewStats:            true,
	},
	RoleAssistant: {
		CapRedeemCodes: true,
	},
	RoleStudent: {},
}

// ParseRole maps a role string to a known Role, case-insensitively.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for r := range capabilities {
		if strings.EqualFold(string(r), s) {
			return r, true
		}
	}
	return "", false
}

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	return capabilities[r][c]
}

// Session is the authenticated caller, built once per request by the auth middleware.
type Session struct {
	UserID string
	Role   Role
}

// TokenIssuer issues signed tokens for scanning stations and staff.
type TokenIssuer interface {
	Issue(userID string, role Role) (string, error)
}

// TokenVerifier verifies a token and returns the session it encodes.
type TokenVerifier interface {
	Verify(token string) (*Session, error)
}
