package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/quoteflow/quote-service/internal/domain/apikey"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/postgres"
)

type apiKeyRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewAPIKeyRepository(db *postgres.DB, logger *logger.Logger) apikey.Repository {
	return &apiKeyRepository{db: db, logger: logger}
}

func (r *apiKeyRepository) Create(ctx context.Context, k *apikey.APIKey) error {
	query := `
		INSERT INTO api_keys (
			id, user_id, name, prefix, hashed_key, created_at, updated_at
		) VALUES (
			:id, :user_id, :name, :prefix, :hashed_key, :created_at, :updated_at
		)`

	r.logger.Debugw("creating api key", "key_id", k.ID, "user_id", k.UserID)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, k)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create API key").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *apiKeyRepository) Get(ctx context.Context, id string) (*apikey.APIKey, error) {
	var k apikey.APIKey
	err := r.db.GetQuerier(ctx).GetContext(ctx, &k, `SELECT * FROM api_keys WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("api key not found").
				WithHint("API key not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get API key").
			Mark(ierr.ErrDatabase)
	}
	return &k, nil
}

func (r *apiKeyRepository) GetByHashedKey(ctx context.Context, hashedKey string) (*apikey.APIKey, error) {
	var k apikey.APIKey
	err := r.db.GetQuerier(ctx).GetContext(ctx, &k, `SELECT * FROM api_keys WHERE hashed_key = $1`, hashedKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("api key not found").
				WithHint("Invalid API key").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get API key").
			Mark(ierr.ErrDatabase)
	}
	return &k, nil
}

func (r *apiKeyRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM api_keys WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete API key").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *apiKeyRepository) List(ctx context.Context, userID string) ([]*apikey.APIKey, error) {
	var keys []*apikey.APIKey
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &keys,
		`SELECT * FROM api_keys WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list API keys").
			Mark(ierr.ErrDatabase)
	}
	return keys, nil
}

func (r *apiKeyRepository) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.GetQuerier(ctx).ExecContext(ctx,
		`UPDATE api_keys SET last_used_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update API key").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
