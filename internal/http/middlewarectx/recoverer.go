package middlewarectx

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/adaso/internal/http/response"
)

// Recoverer перехватывает панику обработчика, логирует ее со стеком и
// отвечает 500 INTERNAL_ERROR в JSON.
func Recoverer(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("panic", fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				response.Write(w, r, http.StatusInternalServerError,
					response.Error(response.CodeInternal, "internal server error"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
