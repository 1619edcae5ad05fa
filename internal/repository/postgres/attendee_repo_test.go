package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"eventpass/internal/domain"
)

var attendeeCols = []string{"id", "full_name", "email", "phone", "site", "created_at"}

func TestAttendeeRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Attendee
		errIs   error
		wantErr bool
	}{
		{
			name: "success with null optional fields",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, full_name, email, phone, site, created_at\s+FROM attendees\s+WHERE id = \$1`).
					WithArgs("1001").
					WillReturnRows(sqlmock.NewRows(attendeeCols).AddRow("1001", "Ana Gómez", "ana@example.com", nil, nil, created))
			},
			want: &domain.Attendee{ID: "1001", FullName: "Ana Gómez", Email: "ana@example.com", CreatedAt: created},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM attendees`).WithArgs("1001").WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM attendees`).WithArgs("1001").WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
			errIs:   sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewAttendeeRepository(db)
			got, err := repo.GetByID(ctx, "1001")
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAttendeeRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, full_name, email, phone, site, created_at\s+FROM attendees\s+ORDER BY full_name, id`).
		WillReturnRows(sqlmock.NewRows(attendeeCols).
			AddRow("1001", "Ana", "ana@example.com", "300", "Norte", created).
			AddRow("1002", "Beto", nil, nil, nil, created))

	got, err := NewAttendeeRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Norte", got[0].Site)
	require.Empty(t, got[1].Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendeeRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		attendee    *domain.Attendee
		mock        func(mock sqlmock.Sqlmock)
		wantCreated bool
		wantErr     bool
	}{
		{
			name:     "insert",
			attendee: &domain.Attendee{ID: "1001", FullName: "Ana", Email: "ana@example.com", CreatedAt: created},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO attendees \(id, full_name, email, phone, site, created_at\)`).
					WithArgs("1001", "Ana", "ana@example.com", nil, nil, created).
					WillReturnRows(sqlmock.NewRows([]string{"inserted"}).AddRow(true))
			},
			wantCreated: true,
		},
		{
			name:     "update existing",
			attendee: &domain.Attendee{ID: "1001", FullName: "Ana María", Site: "Sur", CreatedAt: created},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`ON CONFLICT \(id\) DO UPDATE`).
					WithArgs("1001", "Ana María", nil, nil, "Sur", created).
					WillReturnRows(sqlmock.NewRows([]string{"inserted"}).AddRow(false))
			},
			wantCreated: false,
		},
		{
			name:     "db error",
			attendee: &domain.Attendee{ID: "1001", FullName: "Ana", CreatedAt: created},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO attendees`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			created, err := NewAttendeeRepository(db).Upsert(ctx, tt.attendee)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantCreated, created)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
