package controllers

import (
	"context"
	"io"
	"log/slog"

	"eventpass/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeValidator struct {
	redemption *domain.Redemption
	err        error
	codes      []*domain.RedemptionCode
	total      int
	filter     domain.CodeFilter
	params     domain.PaginationParams
	stats      *domain.RedemptionStats
	lastValue  string
}

func (f *fakeValidator) Redeem(_ context.Context, value string) (*domain.Redemption, error) {
	f.lastValue = value
	return f.redemption, f.err
}

func (f *fakeValidator) ListCodes(_ context.Context, filter domain.CodeFilter, params domain.PaginationParams) ([]*domain.RedemptionCode, int, error) {
	f.filter, f.params = filter, params
	return f.codes, f.total, f.err
}

func (f *fakeValidator) Stats(context.Context) (*domain.RedemptionStats, error) {
	return f.stats, f.err
}

type fakeCodeDispatch struct {
	result    *domain.BulkIssueAndNotifyResult
	mealTypes []string
	ctxErr    error
	sentTo    string
	err       error
}

func (f *fakeCodeDispatch) BulkIssueAndNotify(ctx context.Context, mealTypes []string) (*domain.BulkIssueAndNotifyResult, error) {
	f.mealTypes = mealTypes
	f.ctxErr = ctx.Err()
	return f.result, f.err
}

func (f *fakeCodeDispatch) SendCodes(context.Context, string) (string, error) {
	return f.sentTo, f.err
}

type fakeIssuer struct {
	created   []*domain.RedemptionCode
	mealTypes []string
	err       error
}

func (f *fakeIssuer) IssueForAttendee(_ context.Context, _ string, mealTypes []string) ([]*domain.RedemptionCode, error) {
	f.mealTypes = mealTypes
	return f.created, f.err
}

func (f *fakeIssuer) IssueForAllPending(context.Context, []string) (*domain.BulkIssueResult, error) {
	return &domain.BulkIssueResult{}, nil
}

type fakeImporter struct {
	result *domain.AttendeeImportResult
	body   string
	err    error
}

func (f *fakeImporter) Import(_ context.Context, r io.Reader) (*domain.AttendeeImportResult, error) {
	b, _ := io.ReadAll(r)
	f.body = string(b)
	return f.result, f.err
}

type fakeCertificates struct {
	result       *domain.DispatchResult
	template     []byte
	fromTemplate bool
	preview      []byte
	err          error
}

func (f *fakeCertificates) DispatchFromArtifacts(context.Context) (*domain.DispatchResult, error) {
	return f.result, f.err
}

func (f *fakeCertificates) DispatchFromTemplate(_ context.Context, template []byte) (*domain.DispatchResult, error) {
	f.fromTemplate, f.template = true, template
	return f.result, f.err
}

func (f *fakeCertificates) Preview(_ context.Context, template []byte) ([]byte, error) {
	f.template = template
	return f.preview, f.err
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }
