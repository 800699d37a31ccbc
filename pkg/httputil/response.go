package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/uniconnect/ama-service/pkg/errs"
)

type envelope map[string]any

// exposeDetails включает поле details у 5xx ответов (только dev).
var exposeDetails atomic.Bool

func ExposeErrorDetails(v bool) { exposeDetails.Store(v) }

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response failed", slog.Any("err", err))
	}
}

func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

// Error пишет {"error": msg}; статус и текст берутся из errs.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	status := errs.ToHTTP(err)
	payload := envelope{"error": errs.Message(err)}

	if status >= http.StatusInternalServerError {
		L(ctx).Error("request failed", slog.Int("status", status), slog.Any("err", err))
		if exposeDetails.Load() {
			payload["details"] = err.Error()
		}
	}
	JSON(w, status, payload)
}

// ErrorMsg отдаёт произвольный статус с готовым сообщением.
func ErrorMsg(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, envelope{"error": msg})
}
