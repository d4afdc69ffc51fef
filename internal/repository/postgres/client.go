package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/quoteflow/quote-service/internal/domain/client"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/postgres"
)

type clientRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewClientRepository(db *postgres.DB, logger *logger.Logger) client.Repository {
	return &clientRepository{db: db, logger: logger}
}

func (r *clientRepository) Create(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (
			id, user_id, name, email, phone, company, notes, created_at, updated_at
		) VALUES (
			:id, :user_id, :name, :email, :phone, :company, :notes, :created_at, :updated_at
		)`

	r.logger.Debugw("creating client", "client_id", c.ID, "user_id", c.UserID)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create client").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *clientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	var c client.Client
	err := r.db.GetQuerier(ctx).GetContext(ctx, &c, `SELECT * FROM clients WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("client not found").
				WithHint("Client not found").
				WithReportableDetails(map[string]any{"client_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get client").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *clientRepository) Update(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients SET
			name = :name,
			email = :email,
			phone = :phone,
			company = :company,
			notes = :notes,
			updated_at = :updated_at
		WHERE id = :id`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update client").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete client").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context, userID string) ([]*client.Client, error) {
	var clients []*client.Client
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &clients,
		`SELECT * FROM clients WHERE user_id = $1 ORDER BY name ASC`, userID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list clients").
			Mark(ierr.ErrDatabase)
	}
	return clients, nil
}

func (r *clientRepository) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.GetQuerier(ctx).GetContext(ctx, &count,
		`SELECT COUNT(*) FROM clients WHERE user_id = $1`, userID)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count clients").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
