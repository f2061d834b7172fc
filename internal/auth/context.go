package auth

import "context"

// contextKey is a private type to prevent context key collisions.
type contextKey string

const claimsKey contextKey = "auth_claims"

// ContextWithClaims stores the decoded claims in the context.
// The request-authentication middleware is the only writer; handlers
// read the claims back to scope queries to the principal.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext retrieves the claims from the context.
// Returns nil if the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}
