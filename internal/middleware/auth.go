package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"studio-backend/internal/auth"
)

type contextKey string

const OwnerIDKey contextKey = "owner_id"
const EmailKey contextKey = "email"

// AuthMiddleware resolves the bearer credential to the owning identity. Every
// entry and ledger query downstream is scoped to the resolved owner; nothing
// in the core ever sees the raw token.
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
}

func NewAuthMiddleware(jwtManager *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager}
}

// Authenticate validates the Authorization header and stores the owner
// identity in the request context. Invalid or expired tokens get a 401 with
// auto_logout set so the client clears its stored session.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "Authorization header required", false)
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(w, "Invalid authorization format", false)
			return
		}

		claims, err := m.jwtManager.ValidateToken(parts[1])
		if err != nil {
			unauthorized(w, "Invalid or expired token", true)
			return
		}

		ctx := context.WithValue(r.Context(), OwnerIDKey, claims.UserID)
		ctx = context.WithValue(ctx, EmailKey, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, message string, autoLogout bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":     message,
		"auto_logout": autoLogout,
	})
}

// GetOwnerIDFromContext extracts the owner identity from request context
func GetOwnerIDFromContext(ctx context.Context) (int, bool) {
	ownerID, ok := ctx.Value(OwnerIDKey).(int)
	return ownerID, ok
}

// GetEmailFromContext extracts the owner's email from request context
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}
