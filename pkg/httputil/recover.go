package httputil

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recoverer как chi middleware.Recoverer, но отвечает JSON-ом и пишет в slog.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			L(r.Context()).Error("panic recovered",
				slog.Any("panic", rec), slog.String("stack", string(debug.Stack())))
			ErrorMsg(w, http.StatusInternalServerError, "Something went wrong!")
		}()
		next.ServeHTTP(w, r)
	})
}
