package service

import (
	"context"

	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

type UserService interface {
	// DeleteAccount removes everything the caller owns and then the auth-side
	// account. Database rows go first so a failed provider call can be
	// retried.
	DeleteAccount(ctx context.Context) error
}

type userService struct {
	ServiceParams
}

func NewUserService(params ServiceParams) UserService {
	return &userService{ServiceParams: params}
}

func (s *userService) DeleteAccount(ctx context.Context) error {
	userID := types.GetUserID(ctx)
	if userID == "" {
		return ierr.NewError("no authenticated user").
			Mark(ierr.ErrUnauthorized)
	}

	s.Logger.Infow("deleting account", "user_id", userID)

	if err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		quotes, err := s.QuoteRepo.List(ctx, userID, nil)
		if err != nil {
			return err
		}
		// quote deletion cascades to line items and notes
		for _, q := range quotes {
			if err := s.QuoteRepo.Delete(ctx, q.ID); err != nil {
				return err
			}
		}

		clients, err := s.ClientRepo.List(ctx, userID)
		if err != nil {
			return err
		}
		for _, c := range clients {
			if err := s.ClientRepo.Delete(ctx, c.ID); err != nil {
				return err
			}
		}

		templates, err := s.TemplateRepo.List(ctx, userID)
		if err != nil {
			return err
		}
		for _, t := range templates {
			if err := s.TemplateRepo.Delete(ctx, t.ID); err != nil {
				return err
			}
		}

		keys, err := s.APIKeyRepo.List(ctx, userID)
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := s.APIKeyRepo.Delete(ctx, k.ID); err != nil {
				return err
			}
		}

		if t, err := s.TeamRepo.GetByOwner(ctx, userID); err == nil {
			if err := s.TeamRepo.Delete(ctx, t.ID); err != nil {
				return err
			}
		} else if !ierr.IsNotFound(err) {
			return err
		}

		if err := s.ProfileRepo.Delete(ctx, userID); err != nil && !ierr.IsNotFound(err) {
			return err
		}
		return nil
	}); err != nil {
		return err
	}

	if err := s.Auth.DeleteUser(ctx, userID); err != nil {
		s.Logger.Errorw("auth-side deletion failed", "user_id", userID, "error", err)
		return err
	}

	s.Cache.Flush(ctx)
	return nil
}
