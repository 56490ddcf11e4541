package v1alpha1

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmforge/initiative-api/internal/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

// decodeJSON parses the request body into dst. An empty body is allowed
// so verb-only endpoints can take no payload.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && err != io.EOF {
		return errors.InvalidArgument("invalid JSON body")
	}
	return nil
}
