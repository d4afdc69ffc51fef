package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/quoteflow/quote-service/internal/domain/apikey"
	ierr "github.com/quoteflow/quote-service/internal/errors"
)

type CreateAPIKeyRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type APIKeyResponse struct {
	*apikey.APIKey
}

// CreateAPIKeyResponse carries the full key exactly once.
type CreateAPIKeyResponse struct {
	*apikey.APIKey
	Key string `json:"key"`
}

func (r *CreateAPIKeyRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Please provide a name for the key").
			Mark(ierr.ErrValidation)
	}
	return nil
}
