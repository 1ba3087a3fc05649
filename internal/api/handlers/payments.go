package handlers

// payments.go implements the payment initiation endpoints

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/api"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/payment"
)

// PaymentProducts are the payment products accepted in the request path
var PaymentProducts = []string{
	"sepa-credit-transfers",
	"instant-sepa-credit-transfers",
	"target-2-payments",
	"cross-border-credit-transfers",
}

// PaymentHandler handles the /v1/{payment-service}/{payment-product} endpoints
type PaymentHandler struct {
	payments *payment.PaymentService
}

func NewPaymentHandler(payments *payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// pathProduct checks the payment service and product named in the request path
func pathProduct(r *http.Request) (payment.Service, string, error) {
	service := payment.Service(chi.URLParam(r, "paymentService"))
	if err := service.Validate(); err != nil {
		return "", "", api.NewServiceInvalidError(err.Error())
	}
	product := chi.URLParam(r, "paymentProduct")
	if !slices.Contains(PaymentProducts, product) {
		return "", "", api.NewProductUnknownError(fmt.Sprintf("payment product %q is not supported", product))
	}
	return service, product, nil
}

func paymentPath(p *payment.Payment) string {
	return fmt.Sprintf("/v1/%s/%s/%s", p.PaymentService, p.PaymentProduct, p.ID)
}

// loadPayment returns the payment named in the path. A payment initiated under another
// service or product is reported as unknown.
func loadPayment(r *http.Request, payments *payment.PaymentService) (*payment.Payment, error) {
	service, product, err := pathProduct(r)
	if err != nil {
		return nil, err
	}
	paymentID := chi.URLParam(r, "paymentId")
	p, err := payments.Get(r.Context(), paymentID)
	if err != nil {
		return nil, err
	}
	if p.PaymentService != service || p.PaymentProduct != product {
		return nil, payment.NewNotFoundError(paymentID)
	}
	return p, nil
}

// HandleInitiatePayment godoc
//
//	@Summary		Initiate a payment
//	@Description	Creates a payment in status RCVD. The payment is executed once the PSU has authorised it.
//	@Tags			PIS
//	@Accept			json
//	@Produce		json
//	@Param			paymentService	path		string				true	"payments, bulk-payments or periodic-payments"
//	@Param			paymentProduct	path		string				true	"e.g. sepa-credit-transfers"
//	@Param			TPP-ID			header		string				false	"TPP identifier"
//	@Param			PSU-ID			header		string				false	"PSU identifier"
//	@Param			request			body		api.PaymentRequest	true	"Payment"
//	@Success		201				{object}	api.PaymentCreatedResponse
//	@Failure		400				{object}	api.ErrorResponse	"Invalid request"
//	@Failure		404				{object}	api.ErrorResponse	"Unknown payment product"
//	@Failure		405				{object}	api.ErrorResponse	"Unknown payment service"
//	@Router			/v1/{paymentService}/{paymentProduct} [post]
func (h *PaymentHandler) HandleInitiatePayment(w http.ResponseWriter, r *http.Request) {
	service, product, err := pathProduct(r)
	if err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}

	var req api.PaymentRequest
	if err := decodeJSON(r, &req, false); err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}

	p, err := h.payments.Initiate(r.Context(), payment.InitiateRequest{
		PaymentService:        service,
		PaymentProduct:        product,
		TppID:                 tppID(r),
		PsuData:               psuFromHeaders(r),
		DebtorAccount:         req.DebtorAccount,
		CreditorAccount:       req.CreditorAccount,
		CreditorName:          req.CreditorName,
		InstructedAmount:      req.InstructedAmount,
		RemittanceInformation: req.RemittanceInformationUnstructured,
	})
	if err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}

	self := paymentPath(p)
	api.RespondWithJSONPayload(w, http.StatusCreated, api.PaymentCreatedResponse{
		TransactionStatus: p.TransactionStatus,
		PaymentID:         p.ID,
		Links: api.Links{
			"self":               link(self),
			"status":             link(self + "/status"),
			"startAuthorisation": link(self + "/authorisations"),
		},
	})
}

// HandleGetPaymentStatus godoc
//
//	@Summary		Read the transaction status of a payment
//	@Tags			PIS
//	@Produce		json
//	@Param			paymentService	path		string	true	"payments, bulk-payments or periodic-payments"
//	@Param			paymentProduct	path		string	true	"e.g. sepa-credit-transfers"
//	@Param			paymentId		path		string	true	"Payment id"
//	@Success		200				{object}	api.PaymentStatusResponse
//	@Failure		404				{object}	api.ErrorResponse	"Unknown payment"
//	@Router			/v1/{paymentService}/{paymentProduct}/{paymentId}/status [get]
func (h *PaymentHandler) HandleGetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	p, err := loadPayment(r, h.payments)
	if err != nil {
		api.RespondWithErrorResponse(w, r, err)
		return
	}
	api.RespondWithJSONPayload(w, http.StatusOK, api.PaymentStatusResponse{TransactionStatus: p.TransactionStatus})
}
