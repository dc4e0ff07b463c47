package middleware

import (
	"context"
	"net/http"
	"strings"

	"clinica-salud-api/internal/utils"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// ClaimsFromContext returns the token claims attached by AuthMiddleware,
// or nil if the request never passed through it.
func ClaimsFromContext(ctx context.Context) *utils.Claims {
	c, _ := ctx.Value(claimsKey).(*utils.Claims)
	return c
}

// AuthMiddleware rejects requests without a valid bearer token and attaches
// the verified claims to the request context. It knows nothing about roles.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				utils.JSONError(w, http.StatusUnauthorized, "Token de autorización no proporcionado")
				return
			}

			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				utils.JSONError(w, http.StatusUnauthorized, "Token de autorización no proporcionado o inválido")
				return
			}

			claims, err := utils.VerifyToken(strings.TrimSpace(parts[1]), secret)
			if err != nil {
				utils.JSONError(w, http.StatusUnauthorized, "Token inválido o expirado")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles returns a middleware that only lets through requests whose
// token role is in the allowed set. Role sets are fixed at wiring time.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				// AuthMiddleware should have rejected this already
				utils.JSONError(w, http.StatusUnauthorized, "Usuario no autenticado o token inválido")
				return
			}

			if !allowed[claims.Role] {
				utils.JSONError(w, http.StatusForbidden, "Acceso denegado: No tienes los permisos necesarios")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
