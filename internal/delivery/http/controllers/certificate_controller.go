package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"eventpass/internal/delivery/http/helpers"
	"eventpass/internal/domain"
)

type CertificateController struct {
	Logger  *slog.Logger
	Service domain.CertificateService
}

func NewCertificateController(logger *slog.Logger, svc domain.CertificateService) *CertificateController {
	return &CertificateController{
		Logger:  logger,
		Service: svc,
	}
}

// CertificateDispatchResponse reports every artifact or attendee in exactly one bucket.
type CertificateDispatchResponse struct {
	Message        string        `json:"mensaje"`
	Sent           []SentItem    `json:"enviados"`
	NotFound       []string      `json:"no_encontrados"`
	MissingContact []string      `json:"sin_correo"`
	Errors         []FailureItem `json:"errores"`
}

// Dispatch godoc
// @Summary Send certificates in bulk
// @Description Without a template, matches the PDFs in the certificates directory to attendees by file name. With a template, stamps a certificate for every attendee whose entry code was redeemed. Runs to completion even if the client disconnects.
// @Tags certificates
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param plantilla formData file false "PDF template"
// @Success 200 {object} controllers.CertificateDispatchResponse
// @Failure 400 {object} helpers.APIError "code: bad_request"
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 403 {object} helpers.APIError "code: forbidden"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /certificates/dispatch [post]
func (c *CertificateController) Dispatch(w http.ResponseWriter, r *http.Request) {
	template, ok := c.optionalTemplate(w, r)
	if !ok {
		return
	}
	ctx := context.WithoutCancel(r.Context())
	var (
		result *domain.DispatchResult
		err    error
	)
	if template != nil {
		result, err = c.Service.DispatchFromTemplate(ctx, template)
	} else {
		result, err = c.Service.DispatchFromArtifacts(ctx)
	}
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, CertificateDispatchResponse{
		Message: fmt.Sprintf("Proceso finalizado. Certificados procesados: %d. Emails enviados: %d.",
			result.Total(), len(result.Succeeded)),
		Sent:           sentItems(result.Succeeded),
		NotFound:       result.Unmatched,
		MissingContact: missingIdentifiers(result.MissingContact),
		Errors:         failureItems(result.Failed),
	})
}

// Preview godoc
// @Summary Preview a certificate template
// @Description Stamps sample data onto the template and returns the PDF.
// @Tags certificates
// @Accept multipart/form-data
// @Produce application/pdf
// @Security BearerAuth
// @Param plantilla formData file true "PDF template"
// @Success 200 {file} file
// @Failure 400 {object} helpers.APIError "code: bad_request"
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 403 {object} helpers.APIError "code: forbidden"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /certificates/preview [post]
func (c *CertificateController) Preview(w http.ResponseWriter, r *http.Request) {
	template, ok := c.optionalTemplate(w, r)
	if !ok {
		return
	}
	if template == nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "No se proporcionó ninguna plantilla")
		return
	}
	pdf, err := c.Service.Preview(r.Context(), template)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="vista_previa.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// optionalTemplate reads the "plantilla" upload. It returns nil when the request carries none.
func (c *CertificateController) optionalTemplate(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return nil, true
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("plantilla")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart body")
		return nil, false
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "could not read template")
		return nil, false
	}
	if len(data) == 0 {
		return nil, true
	}
	return data, true
}
