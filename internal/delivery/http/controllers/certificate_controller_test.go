package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventpass/internal/domain"
)

func sampleDispatchResult() *domain.DispatchResult {
	r := domain.NewDispatchResult()
	r.Succeeded = append(r.Succeeded, domain.DispatchReceipt{Name: "Ana", Identifier: "123", Contact: "ana@example.com"})
	r.Unmatched = append(r.Unmatched, "999.pdf")
	r.MissingContact = append(r.MissingContact, domain.MissingContactItem{Identifier: "456", Reason: "sin correo registrado"})
	r.Failed = append(r.Failed, domain.DispatchFailure{Key: "789", Error: "mailbox full"})
	return r
}

func TestCertificateController_Dispatch_FromArtifacts(t *testing.T) {
	svc := &fakeCertificates{result: sampleDispatchResult()}
	ctrl := NewCertificateController(discardLogger(), svc)

	w := httptest.NewRecorder()
	ctrl.Dispatch(w, httptest.NewRequest(http.MethodPost, "/certificates/dispatch", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, svc.fromTemplate)
	var resp CertificateDispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []SentItem{{Name: "Ana", Identifier: "123", Email: "ana@example.com"}}, resp.Sent)
	assert.Equal(t, []string{"999.pdf"}, resp.NotFound)
	assert.Equal(t, "Proceso finalizado. Certificados procesados: 4. Emails enviados: 1.", resp.Message)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.JSONEq(t, `["999.pdf"]`, string(raw["no_encontrados"]))
	assert.JSONEq(t, `["456"]`, string(raw["sin_correo"]))
	assert.JSONEq(t, `[{"identificacion":"789","error":"mailbox full"}]`, string(raw["errores"]))
	assert.JSONEq(t, `[{"nombre":"Ana","identificacion":"123","correo":"ana@example.com"}]`, string(raw["enviados"]))
}

func TestCertificateController_Dispatch_FromTemplate(t *testing.T) {
	svc := &fakeCertificates{result: domain.NewDispatchResult()}
	ctrl := NewCertificateController(discardLogger(), svc)

	w := httptest.NewRecorder()
	ctrl.Dispatch(w, multipartRequest(t, "/certificates/dispatch", "plantilla", "plantilla.pdf", []byte("%PDF-1.4")))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.fromTemplate)
	assert.Equal(t, []byte("%PDF-1.4"), svc.template)
}

func TestCertificateController_Dispatch_MultipartWithoutTemplate(t *testing.T) {
	svc := &fakeCertificates{result: domain.NewDispatchResult()}
	ctrl := NewCertificateController(discardLogger(), svc)

	w := httptest.NewRecorder()
	ctrl.Dispatch(w, multipartRequest(t, "/certificates/dispatch", "", "", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, svc.fromTemplate)
}

func TestCertificateController_Dispatch_SourceFailure(t *testing.T) {
	ctrl := NewCertificateController(discardLogger(), &fakeCertificates{err: errors.New("directory missing")})

	w := httptest.NewRecorder()
	ctrl.Dispatch(w, httptest.NewRequest(http.MethodPost, "/certificates/dispatch", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCertificateController_Preview(t *testing.T) {
	tests := []struct {
		name       string
		req        func(t *testing.T) *http.Request
		svc        *fakeCertificates
		wantStatus int
		wantType   string
	}{
		{
			name: "renders pdf",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/certificates/preview", "plantilla", "p.pdf", []byte("%PDF"))
			},
			svc:        &fakeCertificates{preview: []byte("%PDF-stamped")},
			wantStatus: http.StatusOK,
			wantType:   "application/pdf",
		},
		{
			name: "missing template",
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/certificates/preview", nil)
			},
			svc:        &fakeCertificates{},
			wantStatus: http.StatusBadRequest,
			wantType:   "application/json",
		},
		{
			name: "invalid pdf",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/certificates/preview", "plantilla", "p.pdf", []byte("nope"))
			},
			svc:        &fakeCertificates{err: errors.Join(domain.ErrInvalidInput, errors.New("not a pdf"))},
			wantStatus: http.StatusBadRequest,
			wantType:   "application/json",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewCertificateController(discardLogger(), tt.svc)
			w := httptest.NewRecorder()
			ctrl.Preview(w, tt.req(t))
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantType, w.Header().Get("Content-Type"))
		})
	}
}
