package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/api"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/logger"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/services"
)

type PushApprovalResponse struct {
	AuthorisationID string `json:"authorisation_id"`

	// ConfirmationCode is what the banking app shows the PSU. The PSU hands it to the TPP.
	ConfirmationCode string `json:"confirmation_code"`
}

// HandleApproveSandboxPush godoc
//
//	@Summary		Approve a decoupled authorisation
//	@Description	Stands in for the PSU confirming a push in the banking app. Only available with the sandbox ASPSP.
//	@Tags			Admin
//	@Produce		json
//	@Param			authorisationId	path		string	true	"Authorisation id"
//	@Success		200				{object}	PushApprovalResponse
//	@Failure		404				{object}	api.ErrorResponse	"No push is pending for the authorisation"
//	@Router			/admin/sandbox/decoupled/{authorisationId}/approve [post]
func HandleApproveSandboxPush(sandbox *services.AspspConnectorSandbox) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "authorisationId")
		code, ok := sandbox.ApprovePush(id)
		if !ok {
			api.RespondWithErrorResponse(w, r, api.NewNotFoundError("no decoupled authorisation pending for "+id))
			return
		}

		logger.ContextRequestLogger(r.Context()).Info("sandbox push approved",
			slog.String("authorisation_id", id))

		api.RespondWithJSONPayload(w, http.StatusOK, PushApprovalResponse{
			AuthorisationID:  id,
			ConfirmationCode: code,
		})
	}
}
