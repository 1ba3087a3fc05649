package handlers

// authorisations.go implements the authorisation endpoints of consents and payments.
//
// The four kinds of authorisation (AIS consent, PIIS consent, payment and payment cancellation)
// share the same handlers; they differ in how the parent resource is loaded from the path.

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/api"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/consent"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/payment"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/sca"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// AuthorisationHandler handles the authorisation sub resources of consents and payments
type AuthorisationHandler struct {
	authorisations *sca.AuthorisationService
	consents       *consent.Service
	payments       *payment.PaymentService
}

func NewAuthorisationHandler(authorisations *sca.AuthorisationService, consents *consent.Service, payments *payment.PaymentService) *AuthorisationHandler {
	return &AuthorisationHandler{
		authorisations: authorisations,
		consents:       consents,
		payments:       payments,
	}
}

// parentResource is the consent or payment named in the request path
type parentResource struct {
	id string

	// path is the path of the authorisation collection, e.g. /v1/consents/{id}/authorisations
	path string

	// payment is set for payment authorisations
	payment *payment.Payment
}

func (h *AuthorisationHandler) loadParent(r *http.Request, authType sca.AuthorisationType) (parentResource, error) {
	switch authType {
	case sca.AuthorisationTypeAISConsent, sca.AuthorisationTypePIISConsent:
		service := authType.ServiceType()
		c, err := loadConsent(r, h.consents, service)
		if err != nil {
			return parentResource{}, err
		}
		return parentResource{id: c.ID, path: consentPath(service, c.ID) + "/authorisations"}, nil
	case sca.AuthorisationTypePISCreation, sca.AuthorisationTypePISCancellation:
		p, err := loadPayment(r, h.payments)
		if err != nil {
			return parentResource{}, err
		}
		segment := "/authorisations"
		if authType == sca.AuthorisationTypePISCancellation {
			segment = "/cancellation-authorisations"
		}
		return parentResource{id: p.ID, path: paymentPath(p) + segment, payment: p}, nil
	}
	return parentResource{}, sca.NewValidationError("unknown authorisation type " + string(authType))
}

// loadAuthorisation returns the authorisation named in the path when it belongs to the parent
func (h *AuthorisationHandler) loadAuthorisation(r *http.Request, authType sca.AuthorisationType, parent parentResource) (sca.Authorisation, error) {
	authorisationID := chi.URLParam(r, "authorisationId")
	a, err := h.authorisations.Get(r.Context(), authorisationID)
	if err != nil {
		return sca.Authorisation{}, err
	}
	if a.ParentID != parent.id || a.Type != authType {
		return sca.Authorisation{}, sca.NewAuthorisationNotFoundError(authorisationID)
	}
	return a, nil
}

func evidenceFromRequest(r *http.Request, req api.AuthorisationRequest) sca.Evidence {
	e := sca.Evidence{
		PsuData:                psuFromHeaders(r),
		AuthenticationMethodID: req.AuthenticationMethodID,
		ScaAuthenticationData:  req.ScaAuthenticationData,
		ConfirmationCode:       req.ConfirmationCode,
	}
	if req.PsuData != nil {
		e.Password = req.PsuData.Password
	}
	return e
}

// respondWithResult writes the outcome of an authorisation step.
// Business rule failures are written as error responses; the authorisation status has been stored either way.
func (h *AuthorisationHandler) respondWithResult(w http.ResponseWriter, r *http.Request, parent parentResource, res sca.AuthorisationResult, statusCode int) {
	if res.Response.ErrorHolder != nil {
		api.RespondWithErrorHolder(w, r, res.Response.ErrorHolder)
		return
	}

	a := res.Authorisation
	self := parent.path + "/" + a.ID
	body := api.AuthorisationResponse{
		AuthorisationID:  a.ID,
		ScaStatus:        a.ScaStatus,
		ChallengeData:    res.Response.ChallengeData,
		PsuMessage:       res.Response.PsuMessage,
		ConfirmationCode: res.Response.ConfirmationCode,
		Links: api.Links{
			"scaStatus": link(self),
		},
	}

	switch a.ScaStatus {
	case xs2a.ScaStatusReceived:
		body.Links["updatePsuIdentification"] = link(self)
	case xs2a.ScaStatusPsuIdentified:
		body.Links["updatePsuAuthentication"] = link(self)
	case xs2a.ScaStatusPsuAuthenticated:
		body.ScaMethods = a.AvailableScaMethods
		body.Links["selectAuthenticationMethod"] = link(self)
	case xs2a.ScaStatusScaMethodSelected:
		body.ChosenScaMethod = a.ChosenScaMethod
		if a.ChosenScaMethod == nil || !a.ChosenScaMethod.Decoupled {
			body.Links["authoriseTransaction"] = link(self)
		}
	case xs2a.ScaStatusStarted:
		body.ChosenScaMethod = a.ChosenScaMethod
		body.Links["confirmation"] = link(self)
	}

	// the step may have executed or cancelled the payment
	if parent.payment != nil && a.ScaStatus.IsFinalised() {
		if p, err := h.payments.Get(r.Context(), parent.id); err == nil {
			body.TransactionStatus = p.TransactionStatus
		}
	}

	api.RespondWithJSONPayload(w, statusCode, body)
}

// HandleStartAuthorisation godoc
//
//	@Summary		Start an authorisation
//	@Description	Creates an authorisation in status received. When the PSU-ID header is sent the PSU is
//	@Description	identified straight away and the authorisation is returned in status psuIdentified.
//	@Tags			Authorisations
//	@Accept			json
//	@Produce		json
//	@Param			PSU-ID	header		string						false	"PSU identifier"
//	@Param			request	body		api.AuthorisationRequest	false	"Optional PSU data"
//	@Success		201		{object}	api.AuthorisationResponse
//	@Failure		400		{object}	api.ErrorResponse	"Invalid request"
//	@Failure		403		{object}	api.ErrorResponse	"Unknown consent"
//	@Failure		404		{object}	api.ErrorResponse	"Unknown payment"
//	@Failure		409		{object}	api.ErrorResponse	"Parent resource finalised"
//	@Router			/v1/consents/{consentId}/authorisations [post]
//	@Router			/v1/consents/confirmation-of-funds/{consentId}/authorisations [post]
//	@Router			/v1/{paymentService}/{paymentProduct}/{paymentId}/authorisations [post]
//	@Router			/v1/{paymentService}/{paymentProduct}/{paymentId}/cancellation-authorisations [post]
func (h *AuthorisationHandler) HandleStartAuthorisation(authType sca.AuthorisationType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parent, err := h.loadParent(r, authType)
		if err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}

		var req api.AuthorisationRequest
		if err := decodeJSON(r, &req, true); err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}

		res, err := h.authorisations.Start(r.Context(), parent.id, authType, evidenceFromRequest(r, req))
		if err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}
		h.respondWithResult(w, r, parent, res, http.StatusCreated)
	}
}

// HandleUpdateAuthorisation godoc
//
//	@Summary		Update an authorisation
//	@Description	Runs the next step of the authorisation. Depending on the current sca status the request
//	@Description	carries the PSU password, the chosen authentication method, the OTP or the confirmation code.
//	@Tags			Authorisations
//	@Accept			json
//	@Produce		json
//	@Param			authorisationId	path		string						true	"Authorisation id"
//	@Param			request			body		api.AuthorisationRequest	true	"Step data"
//	@Success		200				{object}	api.AuthorisationResponse
//	@Failure		400				{object}	api.ErrorResponse	"Invalid request or business rule failure"
//	@Failure		401				{object}	api.ErrorResponse	"PSU credentials or SCA data invalid"
//	@Failure		404				{object}	api.ErrorResponse	"Unknown authorisation"
//	@Failure		409				{object}	api.ErrorResponse	"Authorisation finalised or updated concurrently"
//	@Router			/v1/consents/{consentId}/authorisations/{authorisationId} [put]
//	@Router			/v1/consents/confirmation-of-funds/{consentId}/authorisations/{authorisationId} [put]
//	@Router			/v1/{paymentService}/{paymentProduct}/{paymentId}/authorisations/{authorisationId} [put]
//	@Router			/v1/{paymentService}/{paymentProduct}/{paymentId}/cancellation-authorisations/{authorisationId} [put]
func (h *AuthorisationHandler) HandleUpdateAuthorisation(authType sca.AuthorisationType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parent, err := h.loadParent(r, authType)
		if err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}
		a, err := h.loadAuthorisation(r, authType, parent)
		if err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}

		var req api.AuthorisationRequest
		if err := decodeJSON(r, &req, false); err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}

		res, err := h.authorisations.Advance(r.Context(), a.ID, authType.ServiceType(), evidenceFromRequest(r, req))
		if err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}
		h.respondWithResult(w, r, parent, res, http.StatusOK)
	}
}

// HandleGetScaStatus godoc
//
//	@Summary		Read the sca status of an authorisation
//	@Tags			Authorisations
//	@Produce		json
//	@Param			authorisationId	path		string	true	"Authorisation id"
//	@Success		200				{object}	api.ScaStatusResponse
//	@Failure		404				{object}	api.ErrorResponse	"Unknown authorisation"
//	@Router			/v1/consents/{consentId}/authorisations/{authorisationId} [get]
//	@Router			/v1/consents/confirmation-of-funds/{consentId}/authorisations/{authorisationId} [get]
//	@Router			/v1/{paymentService}/{paymentProduct}/{paymentId}/authorisations/{authorisationId} [get]
//	@Router			/v1/{paymentService}/{paymentProduct}/{paymentId}/cancellation-authorisations/{authorisationId} [get]
func (h *AuthorisationHandler) HandleGetScaStatus(authType sca.AuthorisationType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parent, err := h.loadParent(r, authType)
		if err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}
		a, err := h.loadAuthorisation(r, authType, parent)
		if err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}
		api.RespondWithJSONPayload(w, http.StatusOK, api.ScaStatusResponse{ScaStatus: a.ScaStatus})
	}
}

// HandleListAuthorisations godoc
//
//	@Summary		List the authorisations of a consent or payment
//	@Tags			Authorisations
//	@Produce		json
//	@Success		200	{object}	api.AuthorisationListResponse
//	@Failure		403	{object}	api.ErrorResponse	"Unknown consent"
//	@Failure		404	{object}	api.ErrorResponse	"Unknown payment"
//	@Router			/v1/consents/{consentId}/authorisations [get]
//	@Router			/v1/consents/confirmation-of-funds/{consentId}/authorisations [get]
//	@Router			/v1/{paymentService}/{paymentProduct}/{paymentId}/authorisations [get]
//	@Router			/v1/{paymentService}/{paymentProduct}/{paymentId}/cancellation-authorisations [get]
func (h *AuthorisationHandler) HandleListAuthorisations(authType sca.AuthorisationType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parent, err := h.loadParent(r, authType)
		if err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}
		list, err := h.authorisations.List(r.Context(), parent.id, authType)
		if err != nil {
			api.RespondWithErrorResponse(w, r, err)
			return
		}
		ids := make([]string, 0, len(list))
		for _, a := range list {
			ids = append(ids, a.ID)
		}
		api.RespondWithJSONPayload(w, http.StatusOK, api.AuthorisationListResponse{AuthorisationIDs: ids})
	}
}
