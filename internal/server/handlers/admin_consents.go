package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/api"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/consent"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/logger"
)

type ChecksumResponse struct {
	ConsentID     string `json:"consent_id"`
	ConsentStatus string `json:"consent_status"`
	Sealed        bool   `json:"sealed"`
	Version       string `json:"version,omitempty" example:"v2"`

	// Known is false when the stored version is not in the checksum registry (the checksum is then not verified)
	Known bool `json:"known"`
	Valid bool `json:"valid"`
}

type ExpireResponse struct {
	Expired int `json:"expired"`
}

// HandleVerifyConsentChecksum godoc
//
//	@Summary		Verify the checksum of a consent
//	@Description	Recalculates the checksum of a stored consent and compares it with the stored value.
//	@Description	Nothing is written.
//	@Tags			Admin
//	@Produce		json
//	@Param			consentId	path		string	true	"Consent id"
//	@Success		200			{object}	ChecksumResponse
//	@Failure		403			{object}	api.ErrorResponse	"Unknown consent"
//	@Router			/admin/consents/{consentId}/checksum [get]
func HandleVerifyConsentChecksum(consents *consent.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := consents.VerifyChecksum(r.Context(), chi.URLParam(r, "consentId"))
		if err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}

		if report.Sealed && report.Known && !report.Valid {
			logger.ContextRequestLogger(r.Context()).Warn("stored consent checksum does not match",
				slog.String("consent_id", report.ConsentID),
				slog.String("version", report.Version),
			)
		}

		api.RespondWithJSONPayload(w, http.StatusOK, ChecksumResponse{
			ConsentID:     report.ConsentID,
			ConsentStatus: string(report.Status),
			Sealed:        report.Sealed,
			Version:       report.Version,
			Known:         report.Known,
			Valid:         report.Valid,
		})
	}
}

// HandleExpireConsents godoc
//
//	@Summary		Expire consents
//	@Description	Runs one pass of the consent expiry job.
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	ExpireResponse
//	@Failure		500	{object}	api.ErrorResponse	"Some consents could not be expired"
//	@Router			/admin/consents/expire [post]
func HandleExpireConsents(consents *consent.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expired, err := consents.ExpireConsents(r.Context())
		if err != nil {
			api.RespondWithErrorResponse(w, r, api.WrapInternalError(err, "consent expiry failed"))
			return
		}
		api.RespondWithJSONPayload(w, http.StatusOK, ExpireResponse{Expired: expired})
	}
}
