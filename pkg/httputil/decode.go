package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/uniconnect/ama-service/pkg/errs"
)

const maxBodyBytes = 1 << 20

// Decode читает JSON тело в dst. Пустое тело и мусор дают ErrInvalidInput.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.New(errs.ErrInvalidInput, "request body is empty")
		}
		return errs.Wrap(errs.ErrInvalidInput, "invalid JSON body", err)
	}
	return nil
}
