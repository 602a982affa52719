package application

import (
	"errors"

	"github.com/oksasatya/devcamper-api/internal/domain/repository"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
)

const duplicateMessage = "Duplicate field value entered"

// fromRepo converts repository failures into typed application errors.
// notFound is the client message used for ErrNotFound.
func fromRepo(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, repository.ErrDuplicateEmail), errors.Is(err, repository.ErrDuplicate):
		return apperror.Validation(duplicateMessage, nil)
	}
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperror.Internal(err)
}
