package domain

import (
	"context"
	"time"
)

// Attendee is a person eligible for event entitlements.
// ID is the stable external identifier (e.g. national ID). Optional fields are empty when absent.
// swagger:model Attendee
type Attendee struct {
	ID        string    `json:"identificacion"`
	FullName  string    `json:"nombre_completo"`
	Email     string    `json:"correo"`
	Phone     string    `json:"telefono"`
	Site      string    `json:"sede"`
	CreatedAt time.Time `json:"fecha_registro"`
}

// HasEmail reports whether the attendee can be reached by mail.
func (a *Attendee) HasEmail() bool {
	return a != nil && a.Email != ""
}

// AttendeeDirectory is the read side of the attendee source of truth.
type AttendeeDirectory interface {
	List(ctx context.Context) ([]*Attendee, error)
	GetByID(ctx context.Context, id string) (*Attendee, error)
}

// AttendeeRepository extends the directory with the write used by spreadsheet import.
// Upsert returns created=true when the identifier did not exist before.
type AttendeeRepository interface {
	AttendeeDirectory
	Upsert(ctx context.Context, a *Attendee) (created bool, err error)
}

// AttendeeImportResult summarizes a spreadsheet import.
type AttendeeImportResult struct {
	Created int      `json:"creados"`
	Updated int      `json:"actualizados"`
	Errors  []string `json:"errores"`
}
