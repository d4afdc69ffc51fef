package template

import "context"

// Repository defines the interface for template persistence.
type Repository interface {
	Create(ctx context.Context, t *Template) error
	Get(ctx context.Context, id string) (*Template, error)
	Update(ctx context.Context, t *Template) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, userID string) ([]*Template, error)

	ReplaceLineItems(ctx context.Context, templateID string, items []*LineItem) error
	ListLineItems(ctx context.Context, templateID string) ([]*LineItem, error)
}
