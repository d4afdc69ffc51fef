package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/quoteflow/quote-service/internal/domain/template"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/postgres"
)

type templateRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewTemplateRepository(db *postgres.DB, logger *logger.Logger) template.Repository {
	return &templateRepository{db: db, logger: logger}
}

func (r *templateRepository) Create(ctx context.Context, t *template.Template) error {
	query := `
		INSERT INTO quote_templates (
			id, user_id, name, description, tax_rate, terms, created_at, updated_at
		) VALUES (
			:id, :user_id, :name, :description, :tax_rate, :terms, :created_at, :updated_at
		)`

	r.logger.Debugw("creating template", "template_id", t.ID, "user_id", t.UserID)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, t)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create template").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *templateRepository) Get(ctx context.Context, id string) (*template.Template, error) {
	var t template.Template
	err := r.db.GetQuerier(ctx).GetContext(ctx, &t, `SELECT * FROM quote_templates WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("template not found").
				WithHint("Template not found").
				WithReportableDetails(map[string]any{"template_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get template").
			Mark(ierr.ErrDatabase)
	}
	return &t, nil
}

func (r *templateRepository) Update(ctx context.Context, t *template.Template) error {
	query := `
		UPDATE quote_templates SET
			name = :name,
			description = :description,
			tax_rate = :tax_rate,
			terms = :terms,
			updated_at = :updated_at
		WHERE id = :id`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, t)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update template").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *templateRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM quote_templates WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete template").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *templateRepository) List(ctx context.Context, userID string) ([]*template.Template, error) {
	var templates []*template.Template
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &templates,
		`SELECT * FROM quote_templates WHERE user_id = $1 ORDER BY name ASC`, userID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list templates").
			Mark(ierr.ErrDatabase)
	}
	return templates, nil
}

func (r *templateRepository) ReplaceLineItems(ctx context.Context, templateID string, items []*template.LineItem) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		q := r.db.GetQuerier(ctx)
		if _, err := q.ExecContext(ctx, `DELETE FROM template_line_items WHERE template_id = $1`, templateID); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to replace line items").
				Mark(ierr.ErrDatabase)
		}
		for _, item := range items {
			_, err := q.NamedExecContext(ctx, `
				INSERT INTO template_line_items (id, template_id, description, quantity, unit_price, position)
				VALUES (:id, :template_id, :description, :quantity, :unit_price, :position)`, item)
			if err != nil {
				return ierr.WithError(err).
					WithHint("Failed to replace line items").
					Mark(ierr.ErrDatabase)
			}
		}
		return nil
	})
}

func (r *templateRepository) ListLineItems(ctx context.Context, templateID string) ([]*template.LineItem, error) {
	var items []*template.LineItem
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &items,
		`SELECT * FROM template_line_items WHERE template_id = $1 ORDER BY position ASC`, templateID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list line items").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}
