package v1alpha1

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmforge/initiative-api/internal/auth"
	"github.com/dmforge/initiative-api/internal/errors"
)

type contextKey string

const ownerKey contextKey = "owner"

// requireAuth resolves the bearer token into an owner identity and puts
// it on the request context. Requests without a valid token get 401.
func requireAuth(authSvc *auth.Service, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			errors.WriteJSON(w, errors.Unauthenticated("missing bearer token"))
			return
		}

		ownerID, err := authSvc.VerifyToken(token)
		if err != nil {
			errors.WriteJSON(w, err)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), ownerKey, ownerID)))
	}
}

func ownerFromContext(ctx context.Context) string {
	owner, _ := ctx.Value(ownerKey).(string)
	return owner
}
