package http

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
)

// withRecovery turns a panicking handler into a 500 response. It mirrors
// chi's Recoverer but answers with the JSON error body of the API.
func (h *Handler) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromRequest(r).Error().
				Str("panic", fmt.Sprint(rec)).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			writeError(w, r, errPanicRecovered)
		}()

		next.ServeHTTP(w, r)
	})
}
