package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"eventpass/internal/domain"
)

type fakeAttendeeRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.Attendee
	listErr error
	getErr  error
}

func newFakeAttendeeRepo(attendees ...*domain.Attendee) *fakeAttendeeRepo {
	f := &fakeAttendeeRepo{byID: map[string]*domain.Attendee{}}
	for _, a := range attendees {
		f.byID[a.ID] = a
	}
	return f
}

func (f *fakeAttendeeRepo) List(ctx context.Context) ([]*domain.Attendee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.Attendee, 0, len(f.byID))
	for _, a := range f.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAttendeeRepo) GetByID(ctx context.Context, id string) (*domain.Attendee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (f *fakeAttendeeRepo) Upsert(ctx context.Context, a *domain.Attendee) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, exists := f.byID[a.ID]
	f.byID[a.ID] = a
	return !exists, nil
}

// fakeCodeRepo is an in-memory code store with the same conflict rules as the real tables.
type fakeCodeRepo struct {
	mu        sync.Mutex
	codes     []*domain.RedemptionCode
	nextID    int
	createErr map[string]error
	batchErr  error
	batches   int
}

func (f *fakeCodeRepo) add(attendeeID, mealType, value string) *domain.RedemptionCode {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c := domain.NewRedemptionCode(attendeeID, mealType, value, time.Date(2025, 3, 1, 8, 0, f.nextID, 0, time.UTC))
	c.ID = fmt.Sprintf("code-%d", f.nextID)
	f.codes = append(f.codes, c)
	return c
}

func (f *fakeCodeRepo) CreateIfAbsent(ctx context.Context, code *domain.RedemptionCode) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.createErr[code.AttendeeID]; err != nil {
		return false, err
	}
	for _, c := range f.codes {
		if c.AttendeeID == code.AttendeeID && c.MealType == code.MealType {
			return false, nil
		}
		if c.Value == code.Value {
			return false, errors.New("duplicate code value")
		}
	}
	f.nextID++
	code.ID = fmt.Sprintf("code-%d", f.nextID)
	cp := *code
	f.codes = append(f.codes, &cp)
	return true, nil
}

func (f *fakeCodeRepo) ListByAttendeeID(ctx context.Context, attendeeID string) ([]*domain.RedemptionCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.RedemptionCode{}
	for _, c := range f.codes {
		if c.AttendeeID == attendeeID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCodeRepo) ListByAttendeeIDs(ctx context.Context, attendeeIDs []string) (map[string][]*domain.RedemptionCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches++
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	want := map[string]bool{}
	for _, id := range attendeeIDs {
		want[id] = true
	}
	out := map[string][]*domain.RedemptionCode{}
	for _, c := range f.codes {
		if want[c.AttendeeID] {
			cp := *c
			out[c.AttendeeID] = append(out[c.AttendeeID], &cp)
		}
	}
	return out, nil
}

func (f *fakeCodeRepo) GetByValue(ctx context.Context, value string) (*domain.RedemptionCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.codes {
		if c.Value == value {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCodeRepo) FirstForAttendee(ctx context.Context, attendeeID string) (*domain.RedemptionCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *domain.RedemptionCode
	for _, c := range f.codes {
		if c.AttendeeID != attendeeID {
			continue
		}
		if best == nil || (best.Used && !c.Used) {
			best = c
		}
	}
	if best == nil {
		return nil, domain.ErrNotFound
	}
	cp := *best
	return &cp, nil
}

func (f *fakeCodeRepo) MarkUsed(ctx context.Context, value string, usedAt time.Time) (*domain.RedemptionCode, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.codes {
		if c.Value != value {
			continue
		}
		transitioned := false
		if !c.Used {
			c.Used = true
			t := usedAt
			c.UsedAt = &t
			transitioned = true
		}
		cp := *c
		return &cp, transitioned, nil
	}
	return nil, false, domain.ErrNotFound
}

func (f *fakeCodeRepo) ListRedeemedAttendeeIDs(ctx context.Context, mealType string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []string{}
	for _, c := range f.codes {
		if c.MealType == mealType && c.Used {
			out = append(out, c.AttendeeID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeCodeRepo) List(ctx context.Context, filter domain.CodeFilter, params domain.PaginationParams) ([]*domain.RedemptionCode, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*domain.RedemptionCode
	for _, c := range f.codes {
		if filter.MealType != "" && c.MealType != filter.MealType {
			continue
		}
		if filter.Used != nil && c.Used != *filter.Used {
			continue
		}
		matched = append(matched, c)
	}
	start := min(params.Offset(), len(matched))
	end := min(start+params.PageSize, len(matched))
	return matched[start:end], len(matched), nil
}

func (f *fakeCodeRepo) CountByMealType(ctx context.Context) ([]domain.MealTypeStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byType := map[string]*domain.MealTypeStats{}
	var order []string
	for _, c := range f.codes {
		s, ok := byType[c.MealType]
		if !ok {
			s = &domain.MealTypeStats{MealType: c.MealType}
			byType[c.MealType] = s
			order = append(order, c.MealType)
		}
		s.Total++
		if c.Used {
			s.Used++
		}
	}
	sort.Strings(order)
	out := make([]domain.MealTypeStats, 0, len(order))
	for _, t := range order {
		out = append(out, *byType[t])
	}
	return out, nil
}

type fakeEmailService struct {
	mu           sync.Mutex
	mealCodes    []*domain.MealCodesEmailData
	certificates []*domain.CertificateEmailData
	failFor      map[string]error
}

func (f *fakeEmailService) SendMealCodes(ctx context.Context, data *domain.MealCodesEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[data.Attendee.ID]; err != nil {
		return err
	}
	f.mealCodes = append(f.mealCodes, data)
	return nil
}

func (f *fakeEmailService) SendCertificate(ctx context.Context, data *domain.CertificateEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[data.Attendee.ID]; err != nil {
		return err
	}
	f.certificates = append(f.certificates, data)
	return nil
}

type fakeArtifactSource struct {
	files   map[string][]byte
	listErr error
}

func (f *fakeArtifactSource) List(ctx context.Context) ([]domain.CertificateArtifact, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	names := make([]string, 0, len(f.files))
	for name := range f.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return domain.ScanArtifacts("", names), nil
}

func (f *fakeArtifactSource) Read(ctx context.Context, artifact domain.CertificateArtifact) ([]byte, error) {
	data, ok := f.files[artifact.Path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

type renderCall struct {
	name       string
	identifier string
}

type fakeCertificateRenderer struct {
	mu    sync.Mutex
	calls []renderCall
	err   error
}

func (f *fakeCertificateRenderer) Render(ctx context.Context, template []byte, name, identifier string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, renderCall{name: name, identifier: identifier})
	return []byte("%PDF-" + identifier), nil
}

type fakeMailer struct {
	sent []*domain.EmailMessage
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg *domain.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeTemplateRenderer struct {
	names []string
	data  []any
	err   error
}

func (f *fakeTemplateRenderer) Render(name string, data any) (string, string, string, error) {
	if f.err != nil {
		return "", "", "", f.err
	}
	f.names = append(f.names, name)
	f.data = append(f.data, data)
	return "subject " + name, "<p>" + name + "</p>", name, nil
}

type fakeQREncoder struct {
	err error
}

func (f fakeQREncoder) EncodePNG(value string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("png:" + value), nil
}

func attendee(id, name, email, site string) *domain.Attendee {
	return &domain.Attendee{ID: id, FullName: name, Email: email, Site: site}
}
