package middleware

import (
	"net/http"
	"strings"

	"kanban-project/microservices/board-service/logging"
	"kanban-project/microservices/board-service/utils"
)

// JWTAuthMiddleware validates the bearer token and forwards the caller's
// identity to the handlers through the Role and User-ID headers, the same
// headers the gateway sets when it fronts this service.
func JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logging.Logger.Warnf("Event ID: JWT_AUTH_MISSING_HEADER, Description: Authorization header missing for request to %s %s", r.Method, r.URL.Path)
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenStr)
		if err != nil {
			logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Invalid token provided for request to %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		if claims.Role == "" {
			http.Error(w, "Missing role in token", http.StatusUnauthorized)
			return
		}

		r.Header.Set("Role", claims.Role)
		r.Header.Set("User-ID", claims.UserID)
		next.ServeHTTP(w, r)
	})
}
