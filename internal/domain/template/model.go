package template

import (
	"github.com/quoteflow/quote-service/internal/types"
	"github.com/shopspring/decimal"
)

// Template is a reusable set of line items and terms the builder can apply in
// one step.
type Template struct {
	ID          string          `db:"id" json:"id"`
	UserID      string          `db:"user_id" json:"user_id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description,omitempty"`
	TaxRate     decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	Terms       string          `db:"terms" json:"terms,omitempty"`

	LineItems []*LineItem `db:"-" json:"line_items,omitempty"`

	types.BaseModel
}

// LineItem is one prefilled row in a template.
type LineItem struct {
	ID          string          `db:"id" json:"id"`
	TemplateID  string          `db:"template_id" json:"template_id"`
	Description string          `db:"description" json:"description"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	Position    int             `db:"position" json:"position"`
}
