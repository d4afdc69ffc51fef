package dto

import (
	"github.com/go-playground/validator/v10"

	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

type CreateCheckoutSessionRequest struct {
	Plan types.PlanTier `json:"plan" validate:"required"`
	// Interval is "month" or "year".
	Interval string `json:"interval" validate:"required,oneof=month year"`
}

type CreateCheckoutSessionResponse struct {
	URL string `json:"url"`
}

func (r *CreateCheckoutSessionRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Please check the checkout fields").
			Mark(ierr.ErrValidation)
	}
	if err := r.Plan.Validate(); err != nil {
		return err
	}
	if r.Plan == types.PlanFree {
		return ierr.NewError("cannot check out the free plan").
			WithHint("Choose Pro or Business").
			Mark(ierr.ErrValidation)
	}
	return nil
}
