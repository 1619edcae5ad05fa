package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventpass/internal/domain"
)

type codeIssuer struct {
	attendees domain.AttendeeDirectory
	codes     domain.RedemptionCodeRepository
	newValue  func() string
	now       func() time.Time
	logger    *slog.Logger
}

// NewCodeIssuer creates a CodeIssuer. Code values are random UUIDs.
func NewCodeIssuer(attendees domain.AttendeeDirectory, codes domain.RedemptionCodeRepository, logger *slog.Logger) domain.CodeIssuer {
	if logger == nil {
		logger = slog.Default()
	}
	return &codeIssuer{
		attendees: attendees,
		codes:     codes,
		newValue:  uuid.NewString,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *codeIssuer) IssueForAttendee(ctx context.Context, attendeeID string, mealTypes []string) ([]*domain.RedemptionCode, error) {
	types := normalizeMealTypes(mealTypes)
	if len(types) == 0 {
		return nil, fmt.Errorf("%w: at least one meal type is required", domain.ErrInvalidInput)
	}
	if _, err := s.attendees.GetByID(ctx, attendeeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAttendeeNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}
	existing, err := s.codes.ListByAttendeeID(ctx, attendeeID)
	if err != nil {
		return nil, fmt.Errorf("list codes: %w", err)
	}
	return s.issueMissing(ctx, attendeeID, types, existing)
}

func (s *codeIssuer) IssueForAllPending(ctx context.Context, mealTypes []string) (*domain.BulkIssueResult, error) {
	types := normalizeMealTypes(mealTypes)
	if len(types) == 0 {
		return nil, fmt.Errorf("%w: at least one meal type is required", domain.ErrInvalidInput)
	}
	attendees, err := s.attendees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	ids := make([]string, len(attendees))
	for i, a := range attendees {
		ids[i] = a.ID
	}
	coverage, err := s.codes.ListByAttendeeIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load code coverage: %w", err)
	}

	result := &domain.BulkIssueResult{
		AttendeesProcessed: []string{},
		PerAttendeeErrors:  []domain.DispatchFailure{},
	}
	for _, a := range attendees {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		created, err := s.issueMissing(ctx, a.ID, types, coverage[a.ID])
		result.TotalCodesGenerated += len(created)
		if len(created) > 0 {
			result.AttendeesProcessed = append(result.AttendeesProcessed, a.ID)
		}
		if err != nil {
			result.PerAttendeeErrors = append(result.PerAttendeeErrors, domain.DispatchFailure{Key: a.ID, Error: err.Error()})
		}
	}

	s.logger.Info("bulk code issuance finished",
		"attendees", len(attendees),
		"processed", len(result.AttendeesProcessed),
		"codes", result.TotalCodesGenerated,
		"errors", len(result.PerAttendeeErrors),
	)
	return result, nil
}

// issueMissing creates a code for every meal type not present in existing. Creation stops at
// the first write error; codes created before it are returned with the error.
func (s *codeIssuer) issueMissing(ctx context.Context, attendeeID string, types []string, existing []*domain.RedemptionCode) ([]*domain.RedemptionCode, error) {
	covered := make(map[string]bool, len(existing))
	for _, c := range existing {
		covered[c.MealType] = true
	}
	created := make([]*domain.RedemptionCode, 0, len(types))
	for _, mealType := range types {
		if covered[mealType] {
			continue
		}
		code := domain.NewRedemptionCode(attendeeID, mealType, s.newValue(), s.now().UTC())
		ok, err := s.codes.CreateIfAbsent(ctx, code)
		if err != nil {
			if errors.Is(err, domain.ErrAttendeeNotFound) {
				return created, err
			}
			return created, fmt.Errorf("create %s code: %w", mealType, err)
		}
		if ok {
			created = append(created, code)
		}
	}
	return created, nil
}

// normalizeMealTypes trims, drops empty labels and removes duplicates keeping first occurrence.
func normalizeMealTypes(mealTypes []string) []string {
	seen := make(map[string]bool, len(mealTypes))
	out := make([]string, 0, len(mealTypes))
	for _, t := range mealTypes {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// withEntryFirst puts the entry entitlement ahead of the meal types.
func withEntryFirst(mealTypes []string) []string {
	types := normalizeMealTypes(mealTypes)
	out := make([]string, 0, len(types)+1)
	out = append(out, domain.EntryMealType)
	for _, t := range types {
		if t != domain.EntryMealType {
			out = append(out, t)
		}
	}
	return out
}
