package handlers

// consents.go implements the AIS and funds confirmation consent endpoints

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/api"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/consent"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// ConsentHandler handles the /v1/consents endpoints
type ConsentHandler struct {
	consents *consent.Service
}

func NewConsentHandler(consents *consent.Service) *ConsentHandler {
	return &ConsentHandler{consents: consents}
}

// consentTypes returns the consent types served under the routes of a business domain
func consentTypes(service xs2a.ServiceType) []consent.Type {
	if service == xs2a.ServiceTypePIIS {
		return []consent.Type{consent.TypePIISAspsp, consent.TypePIISTpp}
	}
	return []consent.Type{consent.TypeAIS}
}

func consentPath(service xs2a.ServiceType, consentID string) string {
	if service == xs2a.ServiceTypePIIS {
		return "/v1/consents/confirmation-of-funds/" + consentID
	}
	return "/v1/consents/" + consentID
}

// loadConsent returns the consent when it exists and belongs to the business domain of the route.
// A consent of another domain is reported as unknown.
func loadConsent(r *http.Request, consents *consent.Service, service xs2a.ServiceType) (*consent.Consent, error) {
	consentID := chi.URLParam(r, "consentId")
	c, err := consents.Get(r.Context(), consentID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(consentTypes(service), c.Type) {
		return nil, consent.NewNotFoundError(consentID)
	}
	return c, nil
}

// HandleCreateConsent godoc
//
//	@Summary		Create an account information consent
//	@Description	Creates an AIS consent in status received. The consent becomes valid once the PSU
//	@Description	has authorised it (see the consent authorisation endpoints).
//	@Tags			AIS
//	@Accept			json
//	@Produce		json
//	@Param			TPP-ID	header		string				false	"TPP identifier"
//	@Param			PSU-ID	header		string				false	"PSU identifier"
//	@Param			request	body		api.ConsentRequest	true	"Requested access"
//	@Success		201		{object}	api.ConsentCreatedResponse
//	@Failure		400		{object}	api.ErrorResponse	"Invalid request"
//	@Failure		500		{object}	api.ErrorResponse	"Internal error"
//	@Router			/v1/consents [post]
func (h *ConsentHandler) HandleCreateConsent(w http.ResponseWriter, r *http.Request) {
	var req api.ConsentRequest
	if err := decodeJSON(r, &req, false); err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}

	var validUntil time.Time
	if req.ValidUntil != "" {
		t, err := time.Parse(consent.DateLayout, req.ValidUntil)
		if err != nil {
			api.RespondWithErrorResponse(w, r, api.WrapMalformedRequestError(err, "validUntil must be a date (YYYY-MM-DD)"))
			return
		}
		validUntil = t
	}

	c, err := h.consents.Create(r.Context(), consent.CreateRequest{
		Type:                     consent.TypeAIS,
		TppID:                    tppID(r),
		PsuData:                  psuFromHeaders(r),
		Access:                   req.Access,
		RecurringIndicator:       req.RecurringIndicator,
		CombinedServiceIndicator: req.CombinedServiceIndicator,
		ValidUntil:               validUntil,
		FrequencyPerDay:          req.FrequencyPerDay,
	})
	if err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}

	api.RespondWithJSONPayload(w, http.StatusCreated, consentCreatedResponse(c, xs2a.ServiceTypeAIS))
}

// HandleCreateFundsConfirmationConsent godoc
//
//	@Summary		Create a funds confirmation consent
//	@Description	Creates a PIIS consent for a single account in status received.
//	@Tags			PIIS
//	@Accept			json
//	@Produce		json
//	@Param			TPP-ID	header		string									false	"TPP identifier"
//	@Param			request	body		api.FundsConfirmationConsentRequest	true	"Account"
//	@Success		201		{object}	api.ConsentCreatedResponse
//	@Failure		400		{object}	api.ErrorResponse	"Invalid request"
//	@Failure		500		{object}	api.ErrorResponse	"Internal error"
//	@Router			/v1/consents/confirmation-of-funds [post]
func (h *ConsentHandler) HandleCreateFundsConfirmationConsent(w http.ResponseWriter, r *http.Request) {
	var req api.FundsConfirmationConsentRequest
	if err := decodeJSON(r, &req, false); err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}
	if req.Account.ReferenceType() == "" {
		api.RespondWithErrorResponse(w, r, api.NewMalformedRequestError("account is required"))
		return
	}

	c, err := h.consents.Create(r.Context(), consent.CreateRequest{
		Type:    consent.TypePIISTpp,
		TppID:   tppID(r),
		PsuData: psuFromHeaders(r),
		Access: xs2a.AccountAccess{
			Accounts: []xs2a.AccountReference{req.Account},
		},
	})
	if err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}

	api.RespondWithJSONPayload(w, http.StatusCreated, consentCreatedResponse(c, xs2a.ServiceTypePIIS))
}

func consentCreatedResponse(c *consent.Consent, service xs2a.ServiceType) api.ConsentCreatedResponse {
	self := consentPath(service, c.ID)
	return api.ConsentCreatedResponse{
		ConsentStatus: c.Status,
		ConsentID:     c.ID,
		Links: api.Links{
			"self":               link(self),
			"status":             link(self + "/status"),
			"startAuthorisation": link(self + "/authorisations"),
			"startAuthorisationWithPsuAuthentication": link(self + "/authorisations"),
		},
	}
}

// HandleGetConsent godoc
//
//	@Summary		Read a consent
//	@Tags			AIS, PIIS
//	@Produce		json
//	@Param			consentId	path		string	true	"Consent id"
//	@Success		200			{object}	api.ConsentResponse
//	@Failure		403			{object}	api.ErrorResponse	"Unknown consent"
//	@Router			/v1/consents/{consentId} [get]
//	@Router			/v1/consents/confirmation-of-funds/{consentId} [get]
func (h *ConsentHandler) HandleGetConsent(service xs2a.ServiceType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := loadConsent(r, h.consents, service)
		if err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}

		self := consentPath(service, c.ID)
		api.RespondWithJSONPayload(w, http.StatusOK, api.ConsentResponse{
			ConsentID:                c.ID,
			ConsentType:              string(c.Type),
			ConsentStatus:            c.Status,
			Access:                   c.TppAccess,
			RecurringIndicator:       c.RecurringIndicator,
			ValidUntil:               c.ValidUntilDate(),
			FrequencyPerDay:          c.FrequencyPerDay,
			CombinedServiceIndicator: c.CombinedServiceIndicator,
			MultilevelScaRequired:    c.MultilevelScaRequired,
			LastActionDate:           c.StatusChangedAt.UTC().Format(consent.DateLayout),
			Links: api.Links{
				"self":   link(self),
				"status": link(self + "/status"),
			},
		})
	}
}

// HandleGetConsentStatus godoc
//
//	@Summary		Read the status of a consent
//	@Tags			AIS, PIIS
//	@Produce		json
//	@Param			consentId	path		string	true	"Consent id"
//	@Success		200			{object}	api.ConsentStatusResponse
//	@Failure		403			{object}	api.ErrorResponse	"Unknown consent"
//	@Router			/v1/consents/{consentId}/status [get]
//	@Router			/v1/consents/confirmation-of-funds/{consentId}/status [get]
func (h *ConsentHandler) HandleGetConsentStatus(service xs2a.ServiceType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := loadConsent(r, h.consents, service)
		if err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}
		api.RespondWithJSONPayload(w, http.StatusOK, api.ConsentStatusResponse{ConsentStatus: c.Status})
	}
}

// HandleDeleteConsent godoc
//
//	@Summary		Terminate a consent
//	@Description	The TPP terminates the consent. Its status becomes terminatedByTpp.
//	@Tags			AIS, PIIS
//	@Param			consentId	path	string	true	"Consent id"
//	@Success		204
//	@Failure		403	{object}	api.ErrorResponse	"Unknown consent"
//	@Failure		409	{object}	api.ErrorResponse	"Consent already finalised"
//	@Router			/v1/consents/{consentId} [delete]
//	@Router			/v1/consents/confirmation-of-funds/{consentId} [delete]
func (h *ConsentHandler) HandleDeleteConsent(service xs2a.ServiceType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := loadConsent(r, h.consents, service)
		if err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}
		if _, err := h.consents.Revoke(r.Context(), c.ID); err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}
		api.RespondWithStatusCodeOnly(w, http.StatusNoContent)
	}
}

// HandleListAccounts godoc
//
//	@Summary		List the accounts of a consent
//	@Description	Reads the accounts granted by a valid AIS consent. Each call uses one of the
//	@Description	daily accesses of the consent.
//	@Tags			AIS
//	@Produce		json
//	@Param			Consent-ID	header		string	true	"Consent id"
//	@Success		200			{object}	api.AccountListResponse
//	@Failure		401			{object}	api.ErrorResponse	"Consent not valid or expired"
//	@Failure		403			{object}	api.ErrorResponse	"Unknown consent"
//	@Failure		429			{object}	api.ErrorResponse	"Daily access frequency used up"
//	@Router			/v1/accounts [get]
func (h *ConsentHandler) HandleListAccounts(w http.ResponseWriter, r *http.Request) {
	consentID := r.Header.Get(headerConsentID)
	if consentID == "" {
		api.RespondWithErrorResponse(w, r, api.NewMalformedRequestError(fmt.Sprintf("%s header is required", headerConsentID)))
		return
	}

	c, err := h.consents.Get(r.Context(), consentID)
	if err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}
	if c.Type != consent.TypeAIS {
		api.RespondWithErrorResponse(w, r, consent.NewNotFoundError(consentID))
		return
	}

	remaining, err := h.consents.RegisterUsage(r.Context(), consentID)
	if err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}

	// accounts granted by the ASPSP take precedence over the requested ones
	accounts := c.AspspAccess.AllReferences()
	if len(accounts) == 0 {
		accounts = c.TppAccess.AllReferences()
	}
	if accounts == nil {
		accounts = []xs2a.AccountReference{}
	}

	api.RespondWithJSONPayload(w, http.StatusOK, api.AccountListResponse{
		Accounts:          accounts,
		AccessesLeftToday: remaining,
	})
}
