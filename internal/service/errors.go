package service

import (
	"errors"

	"github.com/uniconnect/ama-service/pkg/errs"
)

// persistErr оставляет доменные ошибки как есть, а сырые ошибки хранилища
// заворачивает в ErrPersistence с публичным сообщением.
func persistErr(msg string, err error) error {
	var e *errs.Error
	if errors.As(err, &e) {
		return err
	}
	return errs.Wrap(errs.ErrPersistence, msg, err)
}
