package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventpass/internal/domain"
)

func newTestCertificateService(dir *fakeAttendeeRepo, codes *fakeCodeRepo, source *fakeArtifactSource, renderer *fakeCertificateRenderer, email *fakeEmailService) domain.CertificateService {
	return NewCertificateService(dir, codes, source, renderer, email, NewDispatcher(2, time.Second, nil), domain.EventDetails{Title: "Congreso"}, nil)
}

func TestCertificateService_DispatchFromArtifacts(t *testing.T) {
	ctx := context.Background()
	dir := newFakeAttendeeRepo(
		attendee("1001", "Ana", "ana@example.com", ""),
		attendee("1002", "Luis", "luis@example.com", ""),
		attendee("ab-3", "Eva", "eva@example.com", ""),
		attendee("1004", "Juan", "", ""),
	)
	source := &fakeArtifactSource{files: map[string][]byte{
		"1001.pdf": []byte("a"),
		"1002.pdf": []byte("b"),
		"AB-3.pdf": []byte("c"),
		"1004.pdf": []byte("d"),
		"9999.pdf": []byte("e"),
	}}
	email := &fakeEmailService{}
	svc := newTestCertificateService(dir, &fakeCodeRepo{}, source, &fakeCertificateRenderer{}, email)

	result, err := svc.DispatchFromArtifacts(ctx)
	require.NoError(t, err)
	assert.Len(t, result.Succeeded, 3)
	assert.Equal(t, []string{"9999.pdf"}, result.Unmatched)
	require.Len(t, result.MissingContact, 1)
	assert.Equal(t, "1004", result.MissingContact[0].Identifier)
	assert.Equal(t, "sin correo registrado", result.MissingContact[0].Reason)
	assert.Empty(t, result.Failed)
	assert.Equal(t, "Ana", result.Succeeded[0].Name)
	assert.Equal(t, "ana@example.com", result.Succeeded[0].Contact)
	assert.Len(t, email.certificates, 3)
}

func TestCertificateService_DispatchFromArtifactsFailures(t *testing.T) {
	ctx := context.Background()
	dir := newFakeAttendeeRepo(attendee("1001", "Ana", "ana@example.com", ""), attendee("1002", "Luis", "luis@example.com", ""))
	source := &fakeArtifactSource{files: map[string][]byte{"1001.pdf": []byte("a"), "1002.pdf": []byte("b")}}
	email := &fakeEmailService{failFor: map[string]error{"1002": errors.New("mailbox full")}}

	result, err := newTestCertificateService(dir, &fakeCodeRepo{}, source, &fakeCertificateRenderer{}, email).DispatchFromArtifacts(ctx)
	require.NoError(t, err)
	assert.Len(t, result.Succeeded, 1)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "1002", result.Failed[0].Key)
	assert.Contains(t, result.Failed[0].Error, "mailbox full")

	source.listErr = errors.New("permission denied")
	_, err = newTestCertificateService(dir, &fakeCodeRepo{}, source, &fakeCertificateRenderer{}, email).DispatchFromArtifacts(ctx)
	assert.ErrorContains(t, err, "permission denied")
}

func TestCertificateService_DispatchFromTemplate(t *testing.T) {
	ctx := context.Background()
	dir := newFakeAttendeeRepo(
		attendee("1", "Ana Gomez", "ana@example.com", ""),
		attendee("2", "Luis", "", ""),
		attendee("3", "Eva", "eva@example.com", ""),
	)
	codes := &fakeCodeRepo{}
	for _, id := range []string{"1", "2", "3"} {
		codes.add(id, domain.EntryMealType, "e-"+id)
	}
	for _, v := range []string{"e-1", "e-2"} {
		_, _, err := codes.MarkUsed(ctx, v, time.Now())
		require.NoError(t, err)
	}
	renderer := &fakeCertificateRenderer{}
	email := &fakeEmailService{}
	svc := newTestCertificateService(dir, codes, &fakeArtifactSource{}, renderer, email)

	result, err := svc.DispatchFromTemplate(ctx, []byte("%PDF-template"))
	require.NoError(t, err)
	require.Len(t, result.Succeeded, 1)
	assert.Equal(t, "1", result.Succeeded[0].Identifier)
	require.Len(t, result.MissingContact, 1)
	assert.Equal(t, "2", result.MissingContact[0].Identifier)
	assert.Equal(t, []renderCall{{name: "ANA GOMEZ", identifier: "1"}}, renderer.calls)
	require.Len(t, email.certificates, 1)
	assert.Equal(t, "certificado_1.pdf", email.certificates[0].FileName)

	_, err = svc.DispatchFromTemplate(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCertificateService_Preview(t *testing.T) {
	renderer := &fakeCertificateRenderer{}
	svc := newTestCertificateService(newFakeAttendeeRepo(), &fakeCodeRepo{}, &fakeArtifactSource{}, renderer, &fakeEmailService{})

	pdf, err := svc.Preview(context.Background(), []byte("%PDF-template"))
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, []renderCall{{name: "JUAN PEREZ (VISTA PREVIA)", identifier: "123456789"}}, renderer.calls)

	_, err = svc.Preview(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
