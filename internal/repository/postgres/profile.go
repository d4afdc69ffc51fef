package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/quoteflow/quote-service/internal/domain/profile"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/postgres"
	"github.com/quoteflow/quote-service/internal/types"
)

type profileRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewProfileRepository(db *postgres.DB, logger *logger.Logger) profile.Repository {
	return &profileRepository{db: db, logger: logger}
}

func (r *profileRepository) Create(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO profiles (
			id, email, full_name, business_name, phone, plan,
			default_currency, default_tax_rate, default_validity_days, default_terms,
			require_signature, track_views, brand_color, logo_url,
			stripe_customer_id, stripe_subscription_id, plan_renews_at,
			created_at, updated_at
		) VALUES (
			:id, :email, :full_name, :business_name, :phone, :plan,
			:default_currency, :default_tax_rate, :default_validity_days, :default_terms,
			:require_signature, :track_views, :brand_color, :logo_url,
			:stripe_customer_id, :stripe_subscription_id, :plan_renews_at,
			:created_at, :updated_at
		)`

	r.logger.Debugw("creating profile", "user_id", p.ID)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create profile").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *profileRepository) Get(ctx context.Context, id string) (*profile.Profile, error) {
	var p profile.Profile
	err := r.db.GetQuerier(ctx).GetContext(ctx, &p, `SELECT * FROM profiles WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("profile not found").
				WithHint("Profile not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get profile").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	var p profile.Profile
	err := r.db.GetQuerier(ctx).GetContext(ctx, &p, `SELECT * FROM profiles WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("profile not found").
				WithHint("Profile not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get profile").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *profile.Profile) error {
	query := `
		UPDATE profiles SET
			full_name = :full_name,
			business_name = :business_name,
			phone = :phone,
			default_currency = :default_currency,
			default_tax_rate = :default_tax_rate,
			default_validity_days = :default_validity_days,
			default_terms = :default_terms,
			require_signature = :require_signature,
			track_views = :track_views,
			brand_color = :brand_color,
			logo_url = :logo_url,
			updated_at = :updated_at
		WHERE id = :id`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update profile").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete profile").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *profileRepository) UpdatePlan(ctx context.Context, id string, plan types.PlanTier, stripeSubscriptionID string) error {
	r.logger.Infow("updating plan", "user_id", id, "plan", plan)

	_, err := r.db.GetQuerier(ctx).ExecContext(ctx,
		`UPDATE profiles SET plan = $1, stripe_subscription_id = $2, updated_at = $3 WHERE id = $4`,
		plan, stripeSubscriptionID, time.Now().UTC(), id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update plan").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
