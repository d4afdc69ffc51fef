package client

import (
	"github.com/quoteflow/quote-service/internal/types"
)

// Client is a person or company a freelancer sends quotes to.
type Client struct {
	ID      string `db:"id" json:"id"`
	UserID  string `db:"user_id" json:"user_id"`
	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email"`
	Phone   string `db:"phone" json:"phone,omitempty"`
	Company string `db:"company" json:"company,omitempty"`
	Notes   string `db:"notes" json:"notes,omitempty"`

	types.BaseModel
}
