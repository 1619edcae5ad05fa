package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventpass/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	qr       domain.QRCodeEncoder
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer, template renderer and QR encoder.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, qr domain.QRCodeEncoder, logger *slog.Logger) domain.EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{mailer: mailer, renderer: renderer, qr: qr, logger: logger}
}

// mealCodesView is what the meal_codes template sees.
type mealCodesView struct {
	Attendee *domain.Attendee
	Event    domain.EventDetails
	Codes    []domain.MealCodeEntry
}

// SendMealCodes sends the attendee's codes using the "meal_codes" template, one inline QR image per code.
func (s *emailService) SendMealCodes(ctx context.Context, data *domain.MealCodesEmailData) error {
	if data == nil || data.Attendee == nil {
		return fmt.Errorf("meal codes email data is nil")
	}
	if !data.Attendee.HasEmail() {
		return domain.ErrMissingContact
	}

	view := mealCodesView{Attendee: data.Attendee, Event: data.Event, Codes: make([]domain.MealCodeEntry, 0, len(data.Codes))}
	attachments := make([]domain.Attachment, 0, len(data.Codes))
	for i, c := range data.Codes {
		png, err := s.qr.EncodePNG(c.Value)
		if err != nil {
			return fmt.Errorf("encode qr for %s: %w", c.MealType, err)
		}
		cid := fmt.Sprintf("qr-%d", i+1)
		view.Codes = append(view.Codes, domain.MealCodeEntry{MealType: c.MealType, Label: c.Value, ContentID: cid})
		attachments = append(attachments, domain.Attachment{
			FileName:    fmt.Sprintf("qr_%s.png", c.MealType),
			ContentType: "image/png",
			ContentID:   cid,
			Inline:      true,
			Data:        png,
		})
	}

	subject, htmlBody, textBody, err := s.renderer.Render("meal_codes", view)
	if err != nil {
		return fmt.Errorf("failed to render meal_codes template: %w", err)
	}
	msg := &domain.EmailMessage{
		To:          data.Attendee.Email,
		Subject:     subject,
		HTML:        htmlBody,
		Text:        textBody,
		Attachments: attachments,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send meal codes email: %w", err)
	}
	s.logger.Info("meal codes email sent", "attendee_id", data.Attendee.ID, "codes", len(data.Codes))
	return nil
}

// SendCertificate sends a certificate PDF using the "certificate" template.
func (s *emailService) SendCertificate(ctx context.Context, data *domain.CertificateEmailData) error {
	if data == nil || data.Attendee == nil {
		return fmt.Errorf("certificate email data is nil")
	}
	if !data.Attendee.HasEmail() {
		return domain.ErrMissingContact
	}
	subject, htmlBody, textBody, err := s.renderer.Render("certificate", data)
	if err != nil {
		return fmt.Errorf("failed to render certificate template: %w", err)
	}
	msg := &domain.EmailMessage{
		To:      data.Attendee.Email,
		Subject: subject,
		HTML:    htmlBody,
		Text:    textBody,
		Attachments: []domain.Attachment{{
			FileName:    data.FileName,
			ContentType: "application/pdf",
			Data:        data.PDF,
		}},
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send certificate email: %w", err)
	}
	s.logger.Info("certificate email sent", "attendee_id", data.Attendee.ID, "file", data.FileName)
	return nil
}
