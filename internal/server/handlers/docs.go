package handlers

import (
	"net/http"

	"github.com/swaggo/swag"
)

// HandleSwaggerDoc godoc
//
//	@Summary		OpenAPI document
//	@Description	Returns the OpenAPI (swagger 2.0) document generated from the handler annotations.
//	@Tags			Common
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Router			/swagger/doc.json [get]
func HandleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, "API documentation not available", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}
