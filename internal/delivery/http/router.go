package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventpass/internal/delivery/http/controllers"
	"eventpass/internal/delivery/http/middleware"
	"eventpass/internal/domain"
)

// RouterDeps carries the controllers and the token verifier the routes are guarded with.
type RouterDeps struct {
	Logger       *slog.Logger
	Verifier     domain.TokenVerifier
	Codes        *controllers.CodeController
	Attendees    *controllers.AttendeeController
	Certificates *controllers.CertificateController
	Health       *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(d RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()
	guard := func(c domain.Capability, h http.HandlerFunc) http.HandlerFunc {
		return middleware.Guard(d.Verifier, c, d.Logger)(h)
	}

	mux.HandleFunc("GET /healthz", d.Health.Health)

	// Codes
	mux.HandleFunc("POST /codes/redeem", guard(domain.CapRedeemCodes, d.Codes.Redeem))
	mux.HandleFunc("POST /codes/bulk", guard(domain.CapIssueCodes, d.Codes.BulkIssue))
	mux.HandleFunc("GET /codes", guard(domain.CapViewStats, d.Codes.List))
	mux.HandleFunc("GET /codes/stats", guard(domain.CapViewStats, d.Codes.Stats))

	// Attendees
	mux.HandleFunc("POST /attendees/import", guard(domain.CapImportAttendees, d.Attendees.Import))
	mux.HandleFunc("POST /attendees/{attendeeID}/codes", guard(domain.CapIssueCodes, d.Attendees.IssueCodes))
	mux.HandleFunc("POST /attendees/{attendeeID}/codes/email", guard(domain.CapIssueCodes, d.Attendees.SendCodes))

	// Certificates
	mux.HandleFunc("POST /certificates/dispatch", guard(domain.CapDispatchCertificates, d.Certificates.Dispatch))
	mux.HandleFunc("POST /certificates/preview", guard(domain.CapDispatchCertificates, d.Certificates.Preview))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
