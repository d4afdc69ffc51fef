package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/quoteflow/quote-service/internal/domain/team"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/postgres"
)

type teamRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewTeamRepository(db *postgres.DB, logger *logger.Logger) team.Repository {
	return &teamRepository{db: db, logger: logger}
}

func (r *teamRepository) Create(ctx context.Context, t *team.Team) error {
	query := `
		INSERT INTO teams (id, owner_id, name, created_at, updated_at)
		VALUES (:id, :owner_id, :name, :created_at, :updated_at)`

	r.logger.Debugw("creating team", "team_id", t.ID, "owner_id", t.OwnerID)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, t)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create team").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *teamRepository) Get(ctx context.Context, id string) (*team.Team, error) {
	var t team.Team
	err := r.db.GetQuerier(ctx).GetContext(ctx, &t, `SELECT * FROM teams WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("team not found").
				WithHint("Team not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get team").
			Mark(ierr.ErrDatabase)
	}
	return &t, nil
}

func (r *teamRepository) GetByOwner(ctx context.Context, ownerID string) (*team.Team, error) {
	var t team.Team
	err := r.db.GetQuerier(ctx).GetContext(ctx, &t, `SELECT * FROM teams WHERE owner_id = $1`, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("team not found").
				WithHint("Team not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get team").
			Mark(ierr.ErrDatabase)
	}
	return &t, nil
}

func (r *teamRepository) Update(ctx context.Context, t *team.Team) error {
	query := `UPDATE teams SET name = :name, updated_at = :updated_at WHERE id = :id`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, t)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update team").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *teamRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete team").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *teamRepository) AddMember(ctx context.Context, m *team.Member) error {
	query := `
		INSERT INTO team_members (
			id, team_id, user_id, email, role, status, joined_at, created_at, updated_at
		) VALUES (
			:id, :team_id, :user_id, :email, :role, :status, :joined_at, :created_at, :updated_at
		)`

	r.logger.Debugw("adding team member", "team_id", m.TeamID, "email", m.Email)

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, m)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to add team member").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *teamRepository) UpdateMember(ctx context.Context, m *team.Member) error {
	query := `
		UPDATE team_members SET
			user_id = :user_id,
			role = :role,
			status = :status,
			joined_at = :joined_at,
			updated_at = :updated_at
		WHERE id = :id`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, m)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update team member").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *teamRepository) RemoveMember(ctx context.Context, id string) error {
	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to remove team member").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *teamRepository) ListMembers(ctx context.Context, teamID string) ([]*team.Member, error) {
	var members []*team.Member
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &members,
		`SELECT * FROM team_members WHERE team_id = $1 ORDER BY created_at ASC`, teamID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list team members").
			Mark(ierr.ErrDatabase)
	}
	return members, nil
}

func (r *teamRepository) CountMembers(ctx context.Context, teamID string) (int, error) {
	var count int
	err := r.db.GetQuerier(ctx).GetContext(ctx, &count,
		`SELECT COUNT(*) FROM team_members WHERE team_id = $1`, teamID)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count team members").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
