package domain

import (
	"context"
	"time"
)

// EntryMealType is the access entitlement issued before any meal type.
const EntryMealType = "ENTRADA"

// RedemptionCode is a single-use credential tying one attendee to one entitlement.
// Used transitions false to true exactly once and is never reset.
// swagger:model RedemptionCode
type RedemptionCode struct {
	ID         string     `json:"id"`
	AttendeeID string     `json:"identificacion"`
	MealType   string     `json:"tipo_comida"`
	Value      string     `json:"codigo"`
	Used       bool       `json:"usado"`
	UsedAt     *time.Time `json:"fecha_uso"`
	CreatedAt  time.Time  `json:"fecha_creacion"`
}

// NewRedemptionCode returns an unredeemed code. ID is set by the repository on create.
func NewRedemptionCode(attendeeID, mealType, value string, createdAt time.Time) *RedemptionCode {
	return &RedemptionCode{
		AttendeeID: attendeeID,
		MealType:   mealType,
		Value:      value,
		CreatedAt:  createdAt,
	}
}

// Redemption describes the first use of a code.
type Redemption struct {
	Attendee  Attendee
	MealType  string
	UsedAt    time.Time
	CodeValue string
}

// CodeFilter narrows code listings. Nil fields are not applied.
type CodeFilter struct {
	MealType string
	Used     *bool
}

// PaginationParams selects one page of a code listing. Page is 1-based.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset is the number of rows before the page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// MealTypeStats counts issued and consumed codes of one meal type.
type MealTypeStats struct {
	MealType string `json:"tipo_comida"`
	Total    int    `json:"total"`
	Used     int    `json:"usados"`
}

// RedemptionStats aggregates redemption activity.
// swagger:model RedemptionStats
type RedemptionStats struct {
	ByMealType       []MealTypeStats `json:"por_tipo"`
	AttendanceBySite map[string]int  `json:"asistencia_por_sede"`
	Attendance       int             `json:"asistentes_reales"`
}

// RedemptionCodeRepository is the only mutated shared store of the core.
type RedemptionCodeRepository interface {
	// CreateIfAbsent inserts the code unless one exists for (attendee, meal type).
	// created is false when the pair was already covered.
	CreateIfAbsent(ctx context.Context, code *RedemptionCode) (created bool, err error)
	ListByAttendeeID(ctx context.Context, attendeeID string) ([]*RedemptionCode, error)
	// ListByAttendeeIDs loads the codes of many attendees in a single query.
	ListByAttendeeIDs(ctx context.Context, attendeeIDs []string) (map[string][]*RedemptionCode, error)
	GetByValue(ctx context.Context, value string) (*RedemptionCode, error)
	// FirstForAttendee returns the attendee's first code preferring unredeemed ones.
	FirstForAttendee(ctx context.Context, attendeeID string) (*RedemptionCode, error)
	// MarkUsed atomically flips used to true when it is still false.
	// transitioned is false when the code was already redeemed; the stored row is returned either way.
	MarkUsed(ctx context.Context, value string, usedAt time.Time) (code *RedemptionCode, transitioned bool, err error)
	ListRedeemedAttendeeIDs(ctx context.Context, mealType string) ([]string, error)
	List(ctx context.Context, filter CodeFilter, params PaginationParams) ([]*RedemptionCode, int, error)
	CountByMealType(ctx context.Context) ([]MealTypeStats, error)
}

// CodeIssuer creates redemption codes idempotently.
type CodeIssuer interface {
	IssueForAttendee(ctx context.Context, attendeeID string, mealTypes []string) ([]*RedemptionCode, error)
	IssueForAllPending(ctx context.Context, mealTypes []string) (*BulkIssueResult, error)
}

// RedemptionValidator validates presented codes exactly once.
type RedemptionValidator interface {
	Redeem(ctx context.Context, value string) (*Redemption, error)
	ListCodes(ctx context.Context, filter CodeFilter, params PaginationParams) ([]*RedemptionCode, int, error)
	Stats(ctx context.Context) (*RedemptionStats, error)
}

// BulkIssueResult reports a mass issuance run.
type BulkIssueResult struct {
	AttendeesProcessed  []string
	TotalCodesGenerated int
	PerAttendeeErrors   []DispatchFailure
}

// BulkIssueAndNotifyResult combines mass issuance with the email dispatch that follows it.
type BulkIssueAndNotifyResult struct {
	Issue  *BulkIssueResult
	Emails *DispatchResult
}
