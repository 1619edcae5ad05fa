package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"eventpass/internal/domain"
)

// Spreadsheet columns in comparison form.
const (
	colID       = "identificacion"
	colFullName = "nombre completo"
	colEmail    = "correo"
	colPhone    = "telefono"
	colSite     = "sede"
)

type importRow struct {
	ID       string `validate:"required,max=50"`
	FullName string `validate:"required,max=200"`
	Email    string `validate:"omitempty,email,max=254"`
	Phone    string `validate:"omitempty,max=30"`
	Site     string `validate:"omitempty,max=100"`
}

// rowFieldNames maps struct fields to the column names shown in row errors.
var rowFieldNames = map[string]string{
	"ID":       "Identificacion",
	"FullName": "Nombre completo",
	"Email":    "Correo",
	"Phone":    "Telefono",
	"Site":     "Sede",
}

type attendeeImportService struct {
	attendees domain.AttendeeRepository
	issuer    domain.CodeIssuer
	validate  *validator.Validate
	now       func() time.Time
	logger    *slog.Logger
}

// NewAttendeeImportService creates an AttendeeImportService. New attendees receive an entry code.
func NewAttendeeImportService(attendees domain.AttendeeRepository, issuer domain.CodeIssuer, logger *slog.Logger) domain.AttendeeImportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &attendeeImportService{
		attendees: attendees,
		issuer:    issuer,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		now:       time.Now,
		logger:    logger,
	}
}

func (s *attendeeImportService) Import(ctx context.Context, r io.Reader) (*domain.AttendeeImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: el archivo está vacío", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	columns := indexColumns(header)
	var missing []string
	if _, ok := columns[colFullName]; !ok {
		missing = append(missing, "Nombre completo")
	}
	if _, ok := columns[colID]; !ok {
		missing = append(missing, "Identificacion")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: faltan columnas requeridas: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}

	result := &domain.AttendeeImportResult{Errors: []string{}}
	// Spreadsheet row numbers: the header is row 1.
	for rowNum := 2; ; rowNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Fila %d: %v", rowNum, err))
			continue
		}
		if isBlank(record) {
			continue
		}
		if err := s.importRow(ctx, columns, record, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Fila %d: %v", rowNum, err))
		}
	}

	s.logger.Info("attendee import finished",
		"created", result.Created,
		"updated", result.Updated,
		"errors", len(result.Errors),
	)
	return result, nil
}

func (s *attendeeImportService) importRow(ctx context.Context, columns map[string]int, record []string, result *domain.AttendeeImportResult) error {
	row := importRow{
		ID:       cell(record, columns, colID),
		FullName: cell(record, columns, colFullName),
		Email:    cell(record, columns, colEmail),
		Phone:    cell(record, columns, colPhone),
		Site:     cell(record, columns, colSite),
	}
	if err := s.validate.Struct(row); err != nil {
		return describeValidation(err)
	}

	attendee := &domain.Attendee{
		ID:        row.ID,
		FullName:  row.FullName,
		Email:     row.Email,
		Phone:     row.Phone,
		Site:      row.Site,
		CreatedAt: s.now().UTC(),
	}
	created, err := s.attendees.Upsert(ctx, attendee)
	if err != nil {
		return fmt.Errorf("guardar asistente: %w", err)
	}
	if !created {
		result.Updated++
		return nil
	}
	result.Created++
	if _, err := s.issuer.IssueForAttendee(ctx, attendee.ID, []string{domain.EntryMealType}); err != nil {
		return fmt.Errorf("generar código de entrada: %w", err)
	}
	return nil
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := rowFieldNames[fe.Field()]
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s es obligatorio", name))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s no es un correo válido", name))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s supera %s caracteres", name, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s no es válido", name))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// indexColumns maps normalized header names to their position. First occurrence wins.
func indexColumns(header []string) map[string]int {
	out := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := out[key]; !dup {
			out[key] = i
		}
	}
	return out
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, h); err == nil {
		h = folded
	}
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}

func cell(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
