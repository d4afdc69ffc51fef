package client

import "context"

// Repository defines the interface for client persistence.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	Get(ctx context.Context, id string) (*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, userID string) ([]*Client, error)
	Count(ctx context.Context, userID string) (int, error)
}
