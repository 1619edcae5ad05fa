package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"eventpass/internal/domain"
)

type redemptionCodeRepository struct {
	DB *sql.DB
}

// NewRedemptionCodeRepository returns a domain.RedemptionCodeRepository implemented with Postgres.
func NewRedemptionCodeRepository(db *sql.DB) domain.RedemptionCodeRepository {
	return &redemptionCodeRepository{DB: db}
}

const codeColumns = `id, attendee_id, meal_type, code, used, used_at, created_at`

func scanCode(row interface{ Scan(...any) error }) (*domain.RedemptionCode, error) {
	c := &domain.RedemptionCode{}
	var usedAt sql.NullTime
	if err := row.Scan(&c.ID, &c.AttendeeID, &c.MealType, &c.Value, &c.Used, &usedAt, &c.CreatedAt); err != nil {
		return nil, err
	}
	if usedAt.Valid {
		c.UsedAt = &usedAt.Time
	}
	return c, nil
}

func scanCodes(rows *sql.Rows) ([]*domain.RedemptionCode, error) {
	defer rows.Close()
	codes := make([]*domain.RedemptionCode, 0)
	for rows.Next() {
		c, err := scanCode(rows)
		if err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

func (r *redemptionCodeRepository) CreateIfAbsent(ctx context.Context, code *domain.RedemptionCode) (bool, error) {
	query := `
		INSERT INTO redemption_codes (attendee_id, meal_type, code, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (attendee_id, meal_type) DO NOTHING
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, code.AttendeeID, code.MealType, code.Value, code.CreatedAt).Scan(&code.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return false, domain.ErrAttendeeNotFound
		}
		return false, err
	}
	return true, nil
}

func (r *redemptionCodeRepository) ListByAttendeeID(ctx context.Context, attendeeID string) ([]*domain.RedemptionCode, error) {
	query := `
		SELECT ` + codeColumns + `
		FROM redemption_codes
		WHERE attendee_id = $1
		ORDER BY created_at, meal_type
	`
	rows, err := r.DB.QueryContext(ctx, query, attendeeID)
	if err != nil {
		return nil, err
	}
	return scanCodes(rows)
}

func (r *redemptionCodeRepository) ListByAttendeeIDs(ctx context.Context, attendeeIDs []string) (map[string][]*domain.RedemptionCode, error) {
	out := make(map[string][]*domain.RedemptionCode, len(attendeeIDs))
	if len(attendeeIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT ` + codeColumns + `
		FROM redemption_codes
		WHERE attendee_id = ANY($1)
		ORDER BY attendee_id, created_at, meal_type
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(attendeeIDs))
	if err != nil {
		return nil, err
	}
	codes, err := scanCodes(rows)
	if err != nil {
		return nil, err
	}
	for _, c := range codes {
		out[c.AttendeeID] = append(out[c.AttendeeID], c)
	}
	return out, nil
}

func (r *redemptionCodeRepository) GetByValue(ctx context.Context, value string) (*domain.RedemptionCode, error) {
	query := `
		SELECT ` + codeColumns + `
		FROM redemption_codes
		WHERE code = $1
	`
	c, err := scanCode(r.DB.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *redemptionCodeRepository) FirstForAttendee(ctx context.Context, attendeeID string) (*domain.RedemptionCode, error) {
	query := `
		SELECT ` + codeColumns + `
		FROM redemption_codes
		WHERE attendee_id = $1
		ORDER BY used, created_at
		LIMIT 1
	`
	c, err := scanCode(r.DB.QueryRowContext(ctx, query, attendeeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// MarkUsed relies on the row lock taken by UPDATE: a concurrent redeemer blocks, then
// re-evaluates used = FALSE against the committed row and updates nothing.
func (r *redemptionCodeRepository) MarkUsed(ctx context.Context, value string, usedAt time.Time) (*domain.RedemptionCode, bool, error) {
	query := `
		UPDATE redemption_codes
		SET used = TRUE, used_at = $2
		WHERE code = $1 AND used = FALSE
		RETURNING ` + codeColumns
	c, err := scanCode(r.DB.QueryRowContext(ctx, query, value, usedAt))
	if err == nil {
		return c, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}
	existing, err := r.GetByValue(ctx, value)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *redemptionCodeRepository) ListRedeemedAttendeeIDs(ctx context.Context, mealType string) ([]string, error) {
	query := `
		SELECT DISTINCT attendee_id
		FROM redemption_codes
		WHERE meal_type = $1 AND used = TRUE
		ORDER BY attendee_id
	`
	rows, err := r.DB.QueryContext(ctx, query, mealType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *redemptionCodeRepository) List(ctx context.Context, filter domain.CodeFilter, params domain.PaginationParams) ([]*domain.RedemptionCode, int, error) {
	var where []string
	var args []interface{}
	n := 1
	if filter.MealType != "" {
		where = append(where, fmt.Sprintf("meal_type = $%d", n))
		args = append(args, filter.MealType)
		n++
	}
	if filter.Used != nil {
		where = append(where, fmt.Sprintf("used = $%d", n))
		args = append(args, *filter.Used)
		n++
	}
	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM redemption_codes ` + whereClause
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM redemption_codes
		%s
		ORDER BY created_at, attendee_id, meal_type
		LIMIT $%d OFFSET $%d
	`, codeColumns, whereClause, n, n+1)
	args = append(args, params.PageSize, params.Offset())
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	codes, err := scanCodes(rows)
	if err != nil {
		return nil, 0, err
	}
	return codes, total, nil
}

func (r *redemptionCodeRepository) CountByMealType(ctx context.Context) ([]domain.MealTypeStats, error) {
	query := `
		SELECT meal_type, COUNT(*), COUNT(*) FILTER (WHERE used)
		FROM redemption_codes
		GROUP BY meal_type
		ORDER BY meal_type
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	stats := make([]domain.MealTypeStats, 0)
	for rows.Next() {
		var s domain.MealTypeStats
		if err := rows.Scan(&s.MealType, &s.Total, &s.Used); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
