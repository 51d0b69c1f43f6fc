package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/rs/zerolog"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// The "Authorization" header must be exactly "Bearer <token>". The token is
// resolved via [service.AuthService.Authenticate] and, on success, the
// caller's identity is stored in the request context under
// [utils.IdentityCtxKey] and its id is added to the request logger.
//
// The middleware rejects requests with HTTP 401 Unauthorized when:
//   - the header is absent or malformed ("token not found");
//   - the token has expired ("token expired");
//   - the token is otherwise invalid ("invalid token");
//   - the token's user no longer exists ("user not found").
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, r, errors.Join(service.ErrTokenNotFound, err))
			return
		}

		ctx := r.Context()
		identity, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		l := logger.FromContext(ctx).GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("user_id", identity.UserID.String())
		})
		ctx = l.WithContext(utils.WithIdentity(ctx, identity))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
