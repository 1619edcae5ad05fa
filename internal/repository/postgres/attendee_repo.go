package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventpass/internal/domain"
)

type attendeeRepository struct {
	DB *sql.DB
}

// NewAttendeeRepository returns a domain.AttendeeRepository implemented with Postgres.
func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{DB: db}
}

const attendeeColumns = `id, full_name, email, phone, site, created_at`

func scanAttendee(row interface{ Scan(...any) error }) (*domain.Attendee, error) {
	a := &domain.Attendee{}
	var email, phone, site sql.NullString
	if err := row.Scan(&a.ID, &a.FullName, &email, &phone, &site, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Email = email.String
	a.Phone = phone.String
	a.Site = site.String
	return a, nil
}

func (r *attendeeRepository) List(ctx context.Context) ([]*domain.Attendee, error) {
	query := `
		SELECT ` + attendeeColumns + `
		FROM attendees
		ORDER BY full_name, id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendees := make([]*domain.Attendee, 0)
	for rows.Next() {
		a, err := scanAttendee(rows)
		if err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

func (r *attendeeRepository) GetByID(ctx context.Context, id string) (*domain.Attendee, error) {
	query := `
		SELECT ` + attendeeColumns + `
		FROM attendees
		WHERE id = $1
	`
	a, err := scanAttendee(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Upsert inserts or updates by identifier. xmax is zero only for rows inserted by this statement.
func (r *attendeeRepository) Upsert(ctx context.Context, a *domain.Attendee) (bool, error) {
	query := `
		INSERT INTO attendees (id, full_name, email, phone, site, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			site = EXCLUDED.site
		RETURNING (xmax = 0) AS inserted
	`
	var inserted bool
	err := r.DB.QueryRowContext(ctx, query,
		a.ID, a.FullName, nullString(a.Email), nullString(a.Phone), nullString(a.Site), a.CreatedAt,
	).Scan(&inserted)
	if err != nil {
		return false, err
	}
	return inserted, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
