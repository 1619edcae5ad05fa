package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eventpass/internal/domain"
)

type codeDispatchService struct {
	issuer     domain.CodeIssuer
	attendees  domain.AttendeeDirectory
	codes      domain.RedemptionCodeRepository
	email      domain.EmailService
	dispatcher *Dispatcher
	event      domain.EventDetails
	logger     *slog.Logger
}

// NewCodeDispatchService creates a CodeDispatchService.
func NewCodeDispatchService(
	issuer domain.CodeIssuer,
	attendees domain.AttendeeDirectory,
	codes domain.RedemptionCodeRepository,
	email domain.EmailService,
	dispatcher *Dispatcher,
	event domain.EventDetails,
	logger *slog.Logger,
) domain.CodeDispatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &codeDispatchService{
		issuer:     issuer,
		attendees:  attendees,
		codes:      codes,
		email:      email,
		dispatcher: dispatcher,
		event:      event,
		logger:     logger,
	}
}

// BulkIssueAndNotify issues pending codes and mails every attendee that received new ones.
// With no meal types given, the configured event meal types are used. The entry code is always issued.
func (s *codeDispatchService) BulkIssueAndNotify(ctx context.Context, mealTypes []string) (*domain.BulkIssueAndNotifyResult, error) {
	if len(normalizeMealTypes(mealTypes)) == 0 {
		mealTypes = s.event.MealTypes
	}
	issued, err := s.issuer.IssueForAllPending(ctx, withEntryFirst(mealTypes))
	if err != nil {
		return nil, err
	}
	index, err := directoryIndex(ctx, s.attendees)
	if err != nil {
		return nil, err
	}
	codesByAttendee, err := s.codes.ListByAttendeeIDs(ctx, issued.AttendeesProcessed)
	if err != nil {
		return nil, fmt.Errorf("load issued codes: %w", err)
	}

	emails := Dispatch(ctx, s.dispatcher, issued.AttendeesProcessed, DispatchPlan[string, *domain.Attendee]{
		Key: func(id string) string { return id },
		Resolve: func(_ context.Context, id string) (*domain.Attendee, domain.MatchKind, error) {
			return resolveAttendee(index[domain.NormalizeIdentifier(id)])
		},
		Act: func(ctx context.Context, id string, a *domain.Attendee) (domain.DispatchReceipt, error) {
			if err := s.email.SendMealCodes(ctx, &domain.MealCodesEmailData{
				Attendee: a,
				Event:    s.event,
				Codes:    codesByAttendee[id],
			}); err != nil {
				return domain.DispatchReceipt{}, err
			}
			return receiptFor(a), nil
		},
	})
	return &domain.BulkIssueAndNotifyResult{Issue: issued, Emails: emails}, nil
}

// SendCodes mails every code the attendee holds and returns the address used.
func (s *codeDispatchService) SendCodes(ctx context.Context, attendeeID string) (string, error) {
	a, err := s.attendees.GetByID(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrAttendeeNotFound
		}
		return "", fmt.Errorf("get attendee: %w", err)
	}
	codes, err := s.codes.ListByAttendeeID(ctx, attendeeID)
	if err != nil {
		return "", fmt.Errorf("list codes: %w", err)
	}
	if len(codes) == 0 {
		return "", domain.ErrNotFound
	}
	if !a.HasEmail() {
		return "", domain.ErrMissingContact
	}
	if err := s.email.SendMealCodes(ctx, &domain.MealCodesEmailData{Attendee: a, Event: s.event, Codes: codes}); err != nil {
		return "", err
	}
	return a.Email, nil
}
