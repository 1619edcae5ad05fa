package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"eventpass/internal/domain"
)

const (
	previewName       = "JUAN PEREZ (VISTA PREVIA)"
	previewIdentifier = "123456789"
)

type certificateService struct {
	attendees  domain.AttendeeDirectory
	codes      domain.RedemptionCodeRepository
	source     domain.ArtifactSource
	renderer   domain.CertificateRenderer
	email      domain.EmailService
	dispatcher *Dispatcher
	event      domain.EventDetails
	logger     *slog.Logger
}

// NewCertificateService creates a CertificateService.
func NewCertificateService(
	attendees domain.AttendeeDirectory,
	codes domain.RedemptionCodeRepository,
	source domain.ArtifactSource,
	renderer domain.CertificateRenderer,
	email domain.EmailService,
	dispatcher *Dispatcher,
	event domain.EventDetails,
	logger *slog.Logger,
) domain.CertificateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &certificateService{
		attendees:  attendees,
		codes:      codes,
		source:     source,
		renderer:   renderer,
		email:      email,
		dispatcher: dispatcher,
		event:      event,
		logger:     logger,
	}
}

// directoryIndex loads the directory once, keyed by normalized identifier.
func directoryIndex(ctx context.Context, dir domain.AttendeeDirectory) (map[string]*domain.Attendee, error) {
	attendees, err := dir.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	index := make(map[string]*domain.Attendee, len(attendees))
	for _, a := range attendees {
		index[domain.NormalizeIdentifier(a.ID)] = a
	}
	return index, nil
}

func resolveAttendee(a *domain.Attendee) (*domain.Attendee, domain.MatchKind, error) {
	switch {
	case a == nil:
		return nil, domain.Unmatched, nil
	case !a.HasEmail():
		return a, domain.MissingContactKind, nil
	default:
		return a, domain.Matched, nil
	}
}

func receiptFor(a *domain.Attendee) domain.DispatchReceipt {
	return domain.DispatchReceipt{Name: a.FullName, Identifier: a.ID, Contact: a.Email}
}

func (s *certificateService) DispatchFromArtifacts(ctx context.Context) (*domain.DispatchResult, error) {
	artifacts, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	index, err := directoryIndex(ctx, s.attendees)
	if err != nil {
		return nil, err
	}

	result := Dispatch(ctx, s.dispatcher, artifacts, DispatchPlan[domain.CertificateArtifact, *domain.Attendee]{
		Key:      func(a domain.CertificateArtifact) string { return a.FileName },
		Identify: func(_ domain.CertificateArtifact, a *domain.Attendee) string { return a.ID },
		Resolve: func(_ context.Context, a domain.CertificateArtifact) (*domain.Attendee, domain.MatchKind, error) {
			return resolveAttendee(index[a.Identifier])
		},
		Act: func(ctx context.Context, artifact domain.CertificateArtifact, a *domain.Attendee) (domain.DispatchReceipt, error) {
			pdf, err := s.source.Read(ctx, artifact)
			if err != nil {
				return domain.DispatchReceipt{}, fmt.Errorf("read %s: %w", artifact.FileName, err)
			}
			if err := s.email.SendCertificate(ctx, &domain.CertificateEmailData{
				Attendee: a,
				Event:    s.event,
				FileName: artifact.FileName,
				PDF:      pdf,
			}); err != nil {
				return domain.DispatchReceipt{}, err
			}
			return receiptFor(a), nil
		},
	})
	s.logger.Info("certificate artifacts dispatched", "artifacts", len(artifacts), "sent", len(result.Succeeded))
	return result, nil
}

// DispatchFromTemplate certifies every attendee whose entry code was redeemed.
func (s *certificateService) DispatchFromTemplate(ctx context.Context, template []byte) (*domain.DispatchResult, error) {
	if len(template) == 0 {
		return nil, fmt.Errorf("%w: certificate template is empty", domain.ErrInvalidInput)
	}
	present, err := s.codes.ListRedeemedAttendeeIDs(ctx, domain.EntryMealType)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	index, err := directoryIndex(ctx, s.attendees)
	if err != nil {
		return nil, err
	}

	result := Dispatch(ctx, s.dispatcher, present, DispatchPlan[string, *domain.Attendee]{
		Key: func(id string) string { return id },
		Resolve: func(_ context.Context, id string) (*domain.Attendee, domain.MatchKind, error) {
			return resolveAttendee(index[domain.NormalizeIdentifier(id)])
		},
		Act: func(ctx context.Context, _ string, a *domain.Attendee) (domain.DispatchReceipt, error) {
			pdf, err := s.renderer.Render(ctx, template, strings.ToUpper(a.FullName), a.ID)
			if err != nil {
				return domain.DispatchReceipt{}, fmt.Errorf("render certificate: %w", err)
			}
			if err := s.email.SendCertificate(ctx, &domain.CertificateEmailData{
				Attendee: a,
				Event:    s.event,
				FileName: fmt.Sprintf("certificado_%s.pdf", a.ID),
				PDF:      pdf,
			}); err != nil {
				return domain.DispatchReceipt{}, err
			}
			return receiptFor(a), nil
		},
	})
	s.logger.Info("template certificates dispatched", "attendees", len(present), "sent", len(result.Succeeded))
	return result, nil
}

func (s *certificateService) Preview(ctx context.Context, template []byte) ([]byte, error) {
	if len(template) == 0 {
		return nil, fmt.Errorf("%w: certificate template is empty", domain.ErrInvalidInput)
	}
	pdf, err := s.renderer.Render(ctx, template, previewName, previewIdentifier)
	if err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	return pdf, nil
}
