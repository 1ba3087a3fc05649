package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/api"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// request headers
const (
	headerTppID              = "TPP-ID"
	headerConsentID          = "Consent-ID"
	headerPsuID              = "PSU-ID"
	headerPsuIDType          = "PSU-ID-Type"
	headerPsuCorporateID     = "PSU-Corporate-ID"
	headerPsuCorporateIDType = "PSU-Corporate-ID-Type"
	headerPsuIPAddress       = "PSU-IP-Address"
)

// psuFromHeaders reads the PSU identification headers. All of them are optional.
func psuFromHeaders(r *http.Request) xs2a.PsuIdData {
	return xs2a.PsuIdData{
		PsuID:              strings.TrimSpace(r.Header.Get(headerPsuID)),
		PsuIDType:          strings.TrimSpace(r.Header.Get(headerPsuIDType)),
		PsuCorporateID:     strings.TrimSpace(r.Header.Get(headerPsuCorporateID)),
		PsuCorporateIDType: strings.TrimSpace(r.Header.Get(headerPsuCorporateIDType)),
		PsuIPAddress:       strings.TrimSpace(r.Header.Get(headerPsuIPAddress)),
	}
}

func tppID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerTppID))
}

// decodeJSON decodes the request body into v. An empty body is accepted when allowEmpty is set.
func decodeJSON(r *http.Request, v any, allowEmpty bool) error {
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}
	if allowEmpty && errors.Is(err, io.EOF) {
		return nil
	}
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return api.NewRequestTooLargeError("request body too large")
	}
	return api.WrapMalformedRequestError(err, "failed to decode request JSON")
}

func link(href string) api.Href {
	return api.Href{Href: href}
}
