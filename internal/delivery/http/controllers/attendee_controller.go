package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"eventpass/internal/delivery/http/helpers"
	"eventpass/internal/domain"
)

// maxUploadBytes bounds multipart uploads (attendee spreadsheets and certificate templates).
const maxUploadBytes = 32 << 20

type AttendeeController struct {
	Logger   *slog.Logger
	Importer domain.AttendeeImportService
	Issuer   domain.CodeIssuer
	Dispatch domain.CodeDispatchService
}

func NewAttendeeController(logger *slog.Logger, importer domain.AttendeeImportService, issuer domain.CodeIssuer, dispatch domain.CodeDispatchService) *AttendeeController {
	return &AttendeeController{
		Logger:   logger,
		Importer: importer,
		Issuer:   issuer,
		Dispatch: dispatch,
	}
}

// ImportResponse is the body of POST /attendees/import.
type ImportResponse struct {
	Message string   `json:"mensaje"`
	Created int      `json:"creados"`
	Updated int      `json:"actualizados"`
	Errors  []string `json:"errores"`
}

// Import godoc
// @Summary Import attendees from a spreadsheet
// @Description Upserts attendees from a CSV export. Row problems are reported per row and do not abort the import. New attendees receive an entry code.
// @Tags attendees
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} controllers.ImportResponse
// @Failure 400 {object} helpers.APIError "code: bad_request"
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 403 {object} helpers.APIError "code: forbidden"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /attendees/import [post]
func (c *AttendeeController) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "No se proporcionó ningún archivo")
		return
	}
	defer file.Close()

	result, err := c.Importer.Import(r.Context(), file)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}
	helpers.WriteJSON(w, http.StatusOK, ImportResponse{
		Message: "Proceso completado",
		Created: result.Created,
		Updated: result.Updated,
		Errors:  errs,
	})
}

// IssueCodesRequest is the optional request body for POST /attendees/{attendeeID}/codes.
type IssueCodesRequest struct {
	MealTypes []string `json:"tipos_comida"`
}

// Validate implements helpers.Validator.
func (r *IssueCodesRequest) Validate() []string {
	for _, m := range r.MealTypes {
		if strings.TrimSpace(m) == "" {
			return []string{"tipos_comida must not contain empty values"}
		}
	}
	return nil
}

// IssueCodesResponse lists the codes created by this call.
type IssueCodesResponse struct {
	Message string                   `json:"mensaje"`
	Codes   []*domain.RedemptionCode `json:"codigos"`
}

// IssueCodes godoc
// @Summary Issue codes for one attendee
// @Description Creates the entry code and any missing meal codes. Idempotent: returns 201 when codes were created, 200 when the attendee already had them all.
// @Tags attendees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attendeeID path string true "Attendee identifier"
// @Param body body controllers.IssueCodesRequest false "Meal types"
// @Success 200 {object} controllers.IssueCodesResponse "Nothing new"
// @Success 201 {object} controllers.IssueCodesResponse "Codes created"
// @Failure 400 {object} helpers.APIError "code: bad_request"
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 403 {object} helpers.APIError "code: forbidden"
// @Failure 404 {object} helpers.APIError "code: not_found"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /attendees/{attendeeID}/codes [post]
func (c *AttendeeController) IssueCodes(w http.ResponseWriter, r *http.Request) {
	attendeeID := strings.TrimSpace(r.PathValue("attendeeID"))
	if attendeeID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing attendeeID")
		return
	}
	var req IssueCodesRequest
	if !helpers.DecodeAndValidate(w, r, &req, true) {
		return
	}
	mealTypes := append([]string{domain.EntryMealType}, req.MealTypes...)
	created, err := c.Issuer.IssueForAttendee(r.Context(), attendeeID, mealTypes)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if created == nil {
		created = []*domain.RedemptionCode{}
	}
	if len(created) > 0 {
		helpers.WriteJSON(w, http.StatusCreated, IssueCodesResponse{
			Message: fmt.Sprintf("Se generaron %d códigos", len(created)),
			Codes:   created,
		})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, IssueCodesResponse{Message: "El asistente ya tiene todos sus códigos", Codes: created})
}

// SendCodes godoc
// @Summary Email an attendee their codes
// @Description Re-sends every code the attendee holds, one QR image per code.
// @Tags attendees
// @Produce json
// @Security BearerAuth
// @Param attendeeID path string true "Attendee identifier"
// @Success 200 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.APIError "code: bad_request"
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 403 {object} helpers.APIError "code: forbidden"
// @Failure 404 {object} helpers.APIError "code: not_found"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /attendees/{attendeeID}/codes/email [post]
func (c *AttendeeController) SendCodes(w http.ResponseWriter, r *http.Request) {
	attendeeID := strings.TrimSpace(r.PathValue("attendeeID"))
	if attendeeID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing attendeeID")
		return
	}
	to, err := c.Dispatch.SendCodes(r.Context(), attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "El asistente no tiene códigos QR generados")
			return
		}
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, helpers.MessageResponse{Message: "Códigos QR enviados a " + to})
}
