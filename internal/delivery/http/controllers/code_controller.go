package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"eventpass/internal/delivery/http/helpers"
	"eventpass/internal/domain"
)

type CodeController struct {
	Logger    *slog.Logger
	Validator domain.RedemptionValidator
	Dispatch  domain.CodeDispatchService
}

func NewCodeController(logger *slog.Logger, validator domain.RedemptionValidator, dispatch domain.CodeDispatchService) *CodeController {
	return &CodeController{
		Logger:    logger,
		Validator: validator,
		Dispatch:  dispatch,
	}
}

// RedeemRequest is the request body for POST /codes/redeem.
type RedeemRequest struct {
	Code string `json:"codigo"`
}

// Validate implements helpers.Validator.
func (r *RedeemRequest) Validate() []string {
	r.Code = strings.TrimSpace(r.Code)
	if r.Code == "" {
		return []string{"Código requerido"}
	}
	return nil
}

// AttendeeSnapshot is the attendee as shown at a scanning station.
type AttendeeSnapshot struct {
	FullName   string `json:"nombre_completo"`
	Identifier string `json:"identificacion"`
	Site       string `json:"sede"`
	Phone      string `json:"telefono"`
}

// RedeemResponse is the 200 body of POST /codes/redeem.
type RedeemResponse struct {
	Message  string           `json:"mensaje"`
	Attendee AttendeeSnapshot `json:"asistente"`
	MealType string           `json:"tipo_comida"`
	UsedAt   time.Time        `json:"fecha_uso"`
}

// RedeemConflictResponse is the 409 body of POST /codes/redeem. It describes the first use.
type RedeemConflictResponse struct {
	Error    string           `json:"error"`
	Code     string           `json:"code"`
	Attendee AttendeeSnapshot `json:"asistente"`
	MealType string           `json:"tipo_comida"`
	UsedAt   time.Time        `json:"fecha_uso"`
}

func snapshotOf(a domain.Attendee) AttendeeSnapshot {
	return AttendeeSnapshot{FullName: a.FullName, Identifier: a.ID, Site: a.Site, Phone: a.Phone}
}

// Redeem godoc
// @Summary Redeem a code
// @Description Consumes a code exactly once. A value that is not a code is tried as an attendee identifier.
// @Tags codes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.RedeemRequest true "Code value"
// @Success 200 {object} controllers.RedeemResponse
// @Failure 400 {object} helpers.APIError "code: bad_request"
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 403 {object} helpers.APIError "code: forbidden"
// @Failure 404 {object} helpers.APIError "code: not_found"
// @Failure 409 {object} controllers.RedeemConflictResponse "code: conflict"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /codes/redeem [post]
func (c *CodeController) Redeem(w http.ResponseWriter, r *http.Request) {
	var req RedeemRequest
	if !helpers.DecodeAndValidate(w, r, &req, false) {
		return
	}
	redemption, err := c.Validator.Redeem(r.Context(), req.Code)
	if err != nil {
		var already *domain.AlreadyRedeemedError
		if errors.As(err, &already) && already.Original != nil {
			helpers.WriteJSON(w, http.StatusConflict, RedeemConflictResponse{
				Error:    fmt.Sprintf("Este código ya fue usado el %s", already.Original.UsedAt.Format("02/01/2006 15:04")),
				Code:     helpers.ErrCodeConflict,
				Attendee: snapshotOf(already.Original.Attendee),
				MealType: already.Original.MealType,
				UsedAt:   already.Original.UsedAt,
			})
			return
		}
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, RedeemResponse{
		Message:  "Código validado exitosamente",
		Attendee: snapshotOf(redemption.Attendee),
		MealType: redemption.MealType,
		UsedAt:   redemption.UsedAt,
	})
}

// BulkIssueRequest is the optional request body for POST /codes/bulk.
type BulkIssueRequest struct {
	MealTypes []string `json:"tipos_comida"`
}

// BulkIssueResponse summarizes mass issuance and the emails that followed.
type BulkIssueResponse struct {
	Message          string        `json:"mensaje"`
	CodesGenerated   int           `json:"total_codigos_generados"`
	Processed        []string      `json:"asistentes_procesados"`
	EmailsSent       int           `json:"emails_enviados"`
	EmailsFailed     int           `json:"emails_fallidos"`
	MissingContact   []string      `json:"sin_correo"`
	Errors           []FailureItem `json:"errores"`
	GenerationErrors []FailureItem `json:"errores_generacion"`
}

// BulkIssue godoc
// @Summary Issue pending codes and email them
// @Description Issues every missing code (entry first, then the requested or configured meal types) and emails each attendee that received new codes. Runs to completion even if the client disconnects.
// @Tags codes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.BulkIssueRequest false "Meal types"
// @Success 200 {object} controllers.BulkIssueResponse
// @Failure 400 {object} helpers.APIError "code: bad_request"
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 403 {object} helpers.APIError "code: forbidden"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /codes/bulk [post]
func (c *CodeController) BulkIssue(w http.ResponseWriter, r *http.Request) {
	var req BulkIssueRequest
	if !helpers.DecodeAndValidate(w, r, &req, true) {
		return
	}
	ctx := context.WithoutCancel(r.Context())
	result, err := c.Dispatch.BulkIssueAndNotify(ctx, req.MealTypes)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	processed := result.Issue.AttendeesProcessed
	if processed == nil {
		processed = []string{}
	}
	helpers.WriteJSON(w, http.StatusOK, BulkIssueResponse{
		Message: fmt.Sprintf("Proceso finalizado. Se generaron %d códigos nuevos. Emails enviados: %d. Errores: %d",
			result.Issue.TotalCodesGenerated, len(result.Emails.Succeeded), len(result.Emails.Failed)),
		CodesGenerated:   result.Issue.TotalCodesGenerated,
		Processed:        processed,
		EmailsSent:       len(result.Emails.Succeeded),
		EmailsFailed:     len(result.Emails.Failed),
		MissingContact:   missingIdentifiers(result.Emails.MissingContact),
		Errors:           failureItems(result.Emails.Failed),
		GenerationErrors: failureItems(result.Issue.PerAttendeeErrors),
	})
}

// ListCodesResponse is a page of codes.
type ListCodesResponse struct {
	Codes      []*domain.RedemptionCode `json:"codigos"`
	Pagination helpers.PaginationMeta   `json:"paginacion"`
}

// List godoc
// @Summary List codes
// @Tags codes
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Param page_size query int false "Page size (max 100)"
// @Param tipo_comida query string false "Meal type"
// @Param usado query bool false "Redeemed"
// @Success 200 {object} controllers.ListCodesResponse
// @Failure 400 {object} helpers.APIError "code: bad_request"
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 403 {object} helpers.APIError "code: forbidden"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /codes [get]
func (c *CodeController) List(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	filter := domain.CodeFilter{MealType: r.URL.Query().Get("tipo_comida")}
	if s := r.URL.Query().Get("usado"); s != "" {
		used, err := strconv.ParseBool(s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "usado must be true or false")
			return
		}
		filter.Used = &used
	}
	codes, total, err := c.Validator.ListCodes(r.Context(), filter, params)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ListCodesResponse{
		Codes:      codes,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Stats godoc
// @Summary Redemption statistics
// @Description Per meal type totals and attendance by site from redeemed entry codes.
// @Tags codes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.RedemptionStats
// @Failure 401 {object} helpers.APIError "code: unauthorized"
// @Failure 403 {object} helpers.APIError "code: forbidden"
// @Failure 500 {object} helpers.APIError "code: internal_error"
// @Router /codes/stats [get]
func (c *CodeController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Validator.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, stats)
}
