package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/purchase_settlement_app/internal/apperrors"
	"github.com/SscSPs/purchase_settlement_app/internal/core/domain"
)

func dateOnlyPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := domain.DateOnly(*t)
	return &d
}

// notFoundAsValidation reports a dangling reference in a request as a validation error.
func notFoundAsValidation(err error, model, id string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: %s %s does not exist", apperrors.ErrValidation, model, id)
	}
	return err
}
