package dto

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/quoteflow/quote-service/internal/domain/client"
	"github.com/quoteflow/quote-service/internal/types"
)

type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Company string `json:"company" validate:"omitempty,max=200"`
	Notes   string `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=200"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Company *string `json:"company" validate:"omitempty,max=200"`
	Notes   *string `json:"notes" validate:"omitempty,max=2000"`
}

type ClientResponse struct {
	*client.Client
	// QuoteCount is how many quotes reference this client.
	QuoteCount int `json:"quote_count"`
}

func (r *CreateClientRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *CreateClientRequest) ToClient(ctx context.Context) *client.Client {
	return &client.Client{
		ID:        types.GenerateUUIDWithPrefix(types.PrefixClient),
		UserID:    types.GetUserID(ctx),
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Company:   r.Company,
		Notes:     r.Notes,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateClientRequest) Validate() error {
	return validator.New().Struct(r)
}

// Apply copies the set fields onto the client.
func (r *UpdateClientRequest) Apply(c *client.Client) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	if r.Company != nil {
		c.Company = *r.Company
	}
	if r.Notes != nil {
		c.Notes = *r.Notes
	}
	c.Touch()
}
