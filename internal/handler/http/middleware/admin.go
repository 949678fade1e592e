package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/homecare-staffing/nursing-backend-go/internal/domain/auth"
	"github.com/homecare-staffing/nursing-backend-go/internal/handler/http/response"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/jwt"
)

// AdminOnly allows tokens carrying is_admin=true
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		admin, ok := claims[jwt.ClaimIsAdmin].(bool)
		if !admin || !ok {
			response.HandleError(w, auth.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
