package domain

import (
	"context"
	"io"
	"time"
)

// Attachment is a file carried by an outgoing email.
// Inline attachments are referenced from the HTML body by ContentID.
type Attachment struct {
	FileName    string
	ContentType string
	ContentID   string
	Inline      bool
	Data        []byte
}

// EmailMessage is a rendered email ready for the transport.
type EmailMessage struct {
	To          string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, msg *EmailMessage) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// QRCodeEncoder turns a code value into a PNG image.
type QRCodeEncoder interface {
	EncodePNG(value string) ([]byte, error)
}

// MealCodeEntry is one code as shown in the codes email.
type MealCodeEntry struct {
	MealType  string
	Label     string
	ContentID string
}

// MealCodesEmailData holds data for the codes email.
type MealCodesEmailData struct {
	Attendee *Attendee
	Event    EventDetails
	Codes    []*RedemptionCode
}

// CertificateEmailData holds data for the certificate email.
type CertificateEmailData struct {
	Attendee *Attendee
	Event    EventDetails
	FileName string
	PDF      []byte
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendMealCodes(ctx context.Context, data *MealCodesEmailData) error
	SendCertificate(ctx context.Context, data *CertificateEmailData) error
}

// CodeDispatchService issues codes and mails them to attendees.
type CodeDispatchService interface {
	BulkIssueAndNotify(ctx context.Context, mealTypes []string) (*BulkIssueAndNotifyResult, error)
	// SendCodes returns the address the codes were sent to.
	SendCodes(ctx context.Context, attendeeID string) (string, error)
}

// AttendeeImportService loads attendees from a CSV spreadsheet export.
type AttendeeImportService interface {
	Import(ctx context.Context, r io.Reader) (*AttendeeImportResult, error)
}

// EventDetails describes the event the codes belong to. Event CRUD lives elsewhere;
// the service reads these from configuration.
type EventDetails struct {
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	MealTypes   []string
}
