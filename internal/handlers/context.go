package handlers

import (
	"context"
	"net/http"

	"homeservBack/internal/models"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// ContextWithClaims stores the verified JWT claims for downstream handlers.
func ContextWithClaims(ctx context.Context, claims *models.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFrom returns the claims the auth middleware attached, or nil when the
// route is unauthenticated.
func ClaimsFrom(ctx context.Context) *models.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*models.Claims)
	return claims
}

// callerID extracts the authenticated user id, writing a 401 when missing.
func callerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	claims := ClaimsFrom(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return claims.UserID, true
}
