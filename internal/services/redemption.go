package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"eventpass/internal/domain"
)

const (
	unknownAttendeeName = "Desconocido"
	notAvailable        = "N/A"
	undefinedSite       = "Sin Definir"
)

type redemptionValidator struct {
	attendees domain.AttendeeDirectory
	codes     domain.RedemptionCodeRepository
	now       func() time.Time
	logger    *slog.Logger
}

// NewRedemptionValidator creates a RedemptionValidator over the given directory and code store.
func NewRedemptionValidator(attendees domain.AttendeeDirectory, codes domain.RedemptionCodeRepository, logger *slog.Logger) domain.RedemptionValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &redemptionValidator{attendees: attendees, codes: codes, now: time.Now, logger: logger}
}

// Redeem consumes the code. A value that is not a code is tried as an attendee identifier,
// which redeems that attendee's first unredeemed code.
func (s *redemptionValidator) Redeem(ctx context.Context, value string) (*domain.Redemption, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: code is required", domain.ErrInvalidInput)
	}

	now := s.now().UTC()
	code, transitioned, err := s.codes.MarkUsed(ctx, value, now)
	if errors.Is(err, domain.ErrNotFound) {
		code, transitioned, err = s.redeemByAttendee(ctx, value, now)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCode) {
			s.logger.Warn("unknown code presented", "value", value)
			return nil, err
		}
		return nil, fmt.Errorf("mark code used: %w", err)
	}

	usedAt := now
	if code.UsedAt != nil {
		usedAt = *code.UsedAt
	}
	redemption := &domain.Redemption{
		Attendee:  s.snapshot(ctx, code.AttendeeID),
		MealType:  code.MealType,
		UsedAt:    usedAt,
		CodeValue: code.Value,
	}
	if !transitioned {
		return nil, &domain.AlreadyRedeemedError{Original: redemption}
	}
	s.logger.Info("code redeemed", "attendee_id", code.AttendeeID, "meal_type", code.MealType)
	return redemption, nil
}

func (s *redemptionValidator) redeemByAttendee(ctx context.Context, attendeeID string, now time.Time) (*domain.RedemptionCode, bool, error) {
	first, err := s.codes.FirstForAttendee(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrUnknownCode
		}
		return nil, false, err
	}
	code, transitioned, err := s.codes.MarkUsed(ctx, first.Value, now)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, false, domain.ErrUnknownCode
	}
	return code, transitioned, err
}

// snapshot never fails: a code whose attendee is gone still redeems.
func (s *redemptionValidator) snapshot(ctx context.Context, attendeeID string) domain.Attendee {
	a, err := s.attendees.GetByID(ctx, attendeeID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("load attendee snapshot", "attendee_id", attendeeID, "error", err)
		}
		return domain.Attendee{ID: notAvailable, FullName: unknownAttendeeName, Site: notAvailable}
	}
	snap := *a
	if strings.TrimSpace(snap.Site) == "" {
		snap.Site = notAvailable
	}
	return snap
}

func (s *redemptionValidator) ListCodes(ctx context.Context, filter domain.CodeFilter, params domain.PaginationParams) ([]*domain.RedemptionCode, int, error) {
	filter.MealType = strings.TrimSpace(filter.MealType)
	codes, total, err := s.codes.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list codes: %w", err)
	}
	return codes, total, nil
}

func (s *redemptionValidator) Stats(ctx context.Context) (*domain.RedemptionStats, error) {
	byMeal, err := s.codes.CountByMealType(ctx)
	if err != nil {
		return nil, fmt.Errorf("count codes: %w", err)
	}
	present, err := s.codes.ListRedeemedAttendeeIDs(ctx, domain.EntryMealType)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	attendees, err := s.attendees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	siteByID := make(map[string]string, len(attendees))
	for _, a := range attendees {
		siteByID[a.ID] = a.Site
	}

	title := cases.Title(language.Spanish)
	bySite := make(map[string]int)
	for _, id := range present {
		site := strings.TrimSpace(siteByID[id])
		if site == "" {
			site = undefinedSite
		} else {
			site = title.String(site)
		}
		bySite[site]++
	}
	return &domain.RedemptionStats{
		ByMealType:       byMeal,
		AttendanceBySite: bySite,
		Attendance:       len(present),
	}, nil
}
