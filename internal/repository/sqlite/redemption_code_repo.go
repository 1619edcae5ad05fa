package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventpass/internal/domain"
)

type redemptionCodeRepository struct {
	DB *sql.DB
}

// NewRedemptionCodeRepository returns a domain.RedemptionCodeRepository backed by SQLite.
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
	id := uuid.NewString()
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO redemption_codes (id, attendee_id, meal_type, code, used, created_at)
		VALUES (?, ?, ?, ?, 0, ?)
		ON CONFLICT (attendee_id, meal_type) DO NOTHING
	`, id, code.AttendeeID, code.MealType, code.Value, code.CreatedAt.UTC())
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrAttendeeNotFound
		}
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	code.ID = id
	return true, nil
}

func (r *redemptionCodeRepository) ListByAttendeeID(ctx context.Context, attendeeID string) ([]*domain.RedemptionCode, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+codeColumns+`
		FROM redemption_codes
		WHERE attendee_id = ?
		ORDER BY created_at, meal_type
	`, attendeeID)
	if err != nil {
		return nil, err
	}
	return scanCodes(rows)
}

// maxBatch stays below SQLite's default host parameter limit.
const maxBatch = 500

func (r *redemptionCodeRepository) ListByAttendeeIDs(ctx context.Context, attendeeIDs []string) (map[string][]*domain.RedemptionCode, error) {
	out := make(map[string][]*domain.RedemptionCode, len(attendeeIDs))
	for start := 0; start < len(attendeeIDs); start += maxBatch {
		end := min(start+maxBatch, len(attendeeIDs))
		batch := attendeeIDs[start:end]
		args := make([]any, len(batch))
		for i, id := range batch {
			args[i] = id
		}
		rows, err := r.DB.QueryContext(ctx, `
			SELECT `+codeColumns+`
			FROM redemption_codes
			WHERE attendee_id IN (`+placeholders(len(batch))+`)
			ORDER BY attendee_id, created_at, meal_type
		`, args...)
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
	}
	return out, nil
}

func (r *redemptionCodeRepository) GetByValue(ctx context.Context, value string) (*domain.RedemptionCode, error) {
	c, err := scanCode(r.DB.QueryRowContext(ctx, `SELECT `+codeColumns+` FROM redemption_codes WHERE code = ?`, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *redemptionCodeRepository) FirstForAttendee(ctx context.Context, attendeeID string) (*domain.RedemptionCode, error) {
	c, err := scanCode(r.DB.QueryRowContext(ctx, `
		SELECT `+codeColumns+`
		FROM redemption_codes
		WHERE attendee_id = ?
		ORDER BY used, created_at
		LIMIT 1
	`, attendeeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// MarkUsed is a single conditional statement; SQLite serializes writers, so only one
// caller observes used = 0.
func (r *redemptionCodeRepository) MarkUsed(ctx context.Context, value string, usedAt time.Time) (*domain.RedemptionCode, bool, error) {
	c, err := scanCode(r.DB.QueryRowContext(ctx, `
		UPDATE redemption_codes
		SET used = 1, used_at = ?
		WHERE code = ? AND used = 0
		RETURNING `+codeColumns, usedAt.UTC(), value))
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
	rows, err := r.DB.QueryContext(ctx, `
		SELECT DISTINCT attendee_id
		FROM redemption_codes
		WHERE meal_type = ? AND used = 1
		ORDER BY attendee_id
	`, mealType)
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
	var args []any
	if filter.MealType != "" {
		where = append(where, "meal_type = ?")
		args = append(args, filter.MealType)
	}
	if filter.Used != nil {
		where = append(where, "used = ?")
		args = append(args, *filter.Used)
	}
	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM redemption_codes `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, params.PageSize, params.Offset())
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+codeColumns+`
		FROM redemption_codes
		`+whereClause+`
		ORDER BY created_at, attendee_id, meal_type
		LIMIT ? OFFSET ?
	`, args...)
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
	rows, err := r.DB.QueryContext(ctx, `
		SELECT meal_type, COUNT(*), COALESCE(SUM(CASE WHEN used THEN 1 ELSE 0 END), 0)
		FROM redemption_codes
		GROUP BY meal_type
		ORDER BY meal_type
	`)
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
