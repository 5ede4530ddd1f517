package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/wolfeidau/stockroom/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeStoreError maps store sentinel errors onto HTTP statuses. Anything
// unrecognized gets a server-side error record and a generic 500 body.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, store.ErrDuplicateSKU):
		writeError(w, http.StatusBadRequest, "sku already exists in organization")
	case errors.Is(err, store.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "email already registered")
	case errors.Is(err, store.ErrOrganizationNotFound):
		writeError(w, http.StatusNotFound, "organization not found")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("store operation failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
