package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventpass/internal/domain"
)

type attendeeRepository struct {
	DB *sql.DB
}

// NewAttendeeRepository returns a domain.AttendeeRepository backed by SQLite.
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
	a.Email, a.Phone, a.Site = email.String, phone.String, site.String
	return a, nil
}

func (r *attendeeRepository) List(ctx context.Context) ([]*domain.Attendee, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+attendeeColumns+` FROM attendees ORDER BY full_name, id`)
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
	a, err := scanAttendee(r.DB.QueryRowContext(ctx, `SELECT `+attendeeColumns+` FROM attendees WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *attendeeRepository) Upsert(ctx context.Context, a *domain.Attendee) (created bool, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin upsert: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var exists bool
	if err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM attendees WHERE id = ?)`, a.ID).Scan(&exists); err != nil {
		return false, err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO attendees (id, full_name, email, phone, site, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET full_name = excluded.full_name,
			email = excluded.email,
			phone = excluded.phone,
			site = excluded.site
	`, a.ID, a.FullName, nullString(a.Email), nullString(a.Phone), nullString(a.Site), a.CreatedAt)
	if err != nil {
		return false, err
	}
	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit upsert: %w", err)
	}
	return !exists, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
