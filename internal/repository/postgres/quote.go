package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/quoteflow/quote-service/internal/domain/quote"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/postgres"
	"github.com/quoteflow/quote-service/internal/types"
)

type quoteRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewQuoteRepository(db *postgres.DB, logger *logger.Logger) quote.Repository {
	return &quoteRepository{db: db, logger: logger}
}

func (r *quoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	query := `
		INSERT INTO quotes (
			id, user_id, client_id, quote_number, title, status, currency,
			tax_rate, tax_exempt, subtotal, tax_amount, total, validity_days,
			expires_at, share_token, terms, deposit, payment_method,
			delivery_timeline, revisions, require_signature, track_views,
			send_reminder, paid, view_count, created_at, updated_at
		) VALUES (
			:id, :user_id, :client_id, :quote_number, :title, :status, :currency,
			:tax_rate, :tax_exempt, :subtotal, :tax_amount, :total, :validity_days,
			:expires_at, :share_token, :terms, :deposit, :payment_method,
			:delivery_timeline, :revisions, :require_signature, :track_views,
			:send_reminder, :paid, :view_count, :created_at, :updated_at
		)`

	r.logger.Debugw("creating quote", "quote_id", q.ID, "user_id", q.UserID)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, q)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create quote").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *quoteRepository) Get(ctx context.Context, id string) (*quote.Quote, error) {
	var q quote.Quote
	err := r.db.GetQuerier(ctx).GetContext(ctx, &q, `SELECT * FROM quotes WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("quote not found").
				WithHint("Quote not found").
				WithReportableDetails(map[string]any{"quote_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get quote").
			Mark(ierr.ErrDatabase)
	}
	return &q, nil
}

func (r *quoteRepository) GetByShareToken(ctx context.Context, token string) (*quote.Quote, error) {
	var q quote.Quote
	err := r.db.GetQuerier(ctx).GetContext(ctx, &q, `SELECT * FROM quotes WHERE share_token = $1`, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("quote not found").
				WithHint("This quote link is invalid or no longer available").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get quote").
			Mark(ierr.ErrDatabase)
	}
	return &q, nil
}

func (r *quoteRepository) Update(ctx context.Context, q *quote.Quote) error {
	query := `
		UPDATE quotes SET
			client_id = :client_id,
			title = :title,
			status = :status,
			currency = :currency,
			tax_rate = :tax_rate,
			tax_exempt = :tax_exempt,
			subtotal = :subtotal,
			tax_amount = :tax_amount,
			total = :total,
			validity_days = :validity_days,
			expires_at = :expires_at,
			share_token = :share_token,
			terms = :terms,
			deposit = :deposit,
			payment_method = :payment_method,
			delivery_timeline = :delivery_timeline,
			revisions = :revisions,
			require_signature = :require_signature,
			track_views = :track_views,
			send_reminder = :send_reminder,
			paid = :paid,
			paid_at = :paid_at,
			sent_at = :sent_at,
			accepted_at = :accepted_at,
			accepted_name = :accepted_name,
			updated_at = :updated_at
		WHERE id = :id`

	r.logger.Debugw("updating quote", "quote_id", q.ID)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, q)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update quote").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *quoteRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting quote", "quote_id", id)

	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete quote").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *quoteRepository) List(ctx context.Context, userID string, filter *types.QuoteFilter) ([]*quote.Quote, error) {
	query := `SELECT * FROM quotes WHERE user_id = $1`
	args := []interface{}{userID}

	if filter != nil {
		if s := filter.StatusOrEmpty(); s != "" {
			args = append(args, s)
			query += fmt.Sprintf(` AND status = $%d`, len(args))
		}
		if filter.Currency != "" {
			args = append(args, filter.Currency)
			query += fmt.Sprintf(` AND currency = $%d`, len(args))
		}
	}
	query += ` ORDER BY created_at DESC`

	var quotes []*quote.Quote
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &quotes, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list quotes").
			Mark(ierr.ErrDatabase)
	}
	return quotes, nil
}

func (r *quoteRepository) Count(ctx context.Context, userID string, filter *types.QuoteFilter) (int, error) {
	query := `SELECT COUNT(*) FROM quotes WHERE user_id = $1`
	args := []interface{}{userID}

	if filter != nil {
		if s := filter.StatusOrEmpty(); s != "" {
			args = append(args, s)
			query += ` AND status = $2`
		}
	}

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count quotes").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *quoteRepository) CountCreatedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := r.db.GetQuerier(ctx).GetContext(ctx, &count,
		`SELECT COUNT(*) FROM quotes WHERE user_id = $1 AND created_at >= $2`, userID, since)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count quotes").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *quoteRepository) CountByClient(ctx context.Context, clientID string) (int, error) {
	var count int
	err := r.db.GetQuerier(ctx).GetContext(ctx, &count,
		`SELECT COUNT(*) FROM quotes WHERE client_id = $1`, clientID)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count quotes").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *quoteRepository) UpdateStatusIfCurrent(ctx context.Context, id string, from, to types.QuoteStatus, at time.Time) (bool, error) {
	res, err := r.db.GetQuerier(ctx).ExecContext(ctx,
		`UPDATE quotes SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, at, id, from)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to update quote status").
			Mark(ierr.ErrDatabase)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return n == 1, nil
}

func (r *quoteRepository) Accept(ctx context.Context, id string, acceptedName string, at time.Time) (bool, error) {
	res, err := r.db.GetQuerier(ctx).ExecContext(ctx,
		`UPDATE quotes
		 SET status = $1, accepted_at = $2, accepted_name = $3, updated_at = $2
		 WHERE id = $4 AND status = $5`,
		types.QuoteStatusAccepted, at, acceptedName, id, types.QuoteStatusSent)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to accept quote").
			Mark(ierr.ErrDatabase)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return n == 1, nil
}

func (r *quoteRepository) RecordView(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.GetQuerier(ctx).ExecContext(ctx,
		`UPDATE quotes
		 SET view_count = view_count + 1,
		     viewed_at = COALESCE(viewed_at, $1),
		     updated_at = $1
		 WHERE id = $2`,
		at, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record view").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *quoteRepository) ReplaceLineItems(ctx context.Context, quoteID string, items []*quote.LineItem) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		q := r.db.GetQuerier(ctx)
		if _, err := q.ExecContext(ctx, `DELETE FROM quote_line_items WHERE quote_id = $1`, quoteID); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to replace line items").
				Mark(ierr.ErrDatabase)
		}
		for _, item := range items {
			_, err := q.NamedExecContext(ctx, `
				INSERT INTO quote_line_items (id, quote_id, description, quantity, unit_price, position)
				VALUES (:id, :quote_id, :description, :quantity, :unit_price, :position)`, item)
			if err != nil {
				return ierr.WithError(err).
					WithHint("Failed to replace line items").
					Mark(ierr.ErrDatabase)
			}
		}
		return nil
	})
}

func (r *quoteRepository) ListLineItems(ctx context.Context, quoteID string) ([]*quote.LineItem, error) {
	var items []*quote.LineItem
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &items,
		`SELECT * FROM quote_line_items WHERE quote_id = $1 ORDER BY position ASC`, quoteID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list line items").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}
