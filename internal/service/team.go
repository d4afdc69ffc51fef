package service

import (
	"context"
	"time"

	"github.com/quoteflow/quote-service/internal/api/dto"
	"github.com/quoteflow/quote-service/internal/domain/team"
	"github.com/quoteflow/quote-service/internal/email"
	"github.com/quoteflow/quote-service/internal/entitlement"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/types"
)

type TeamService interface {
	// GetTeam returns the caller's team, creating an empty one on first access.
	GetTeam(ctx context.Context) (*dto.TeamResponse, error)
	InviteMember(ctx context.Context, teamID string, req dto.InviteMemberRequest) (*dto.TeamResponse, error)
	RemoveMember(ctx context.Context, teamID, memberID string) error
	ListMembers(ctx context.Context, teamID string) ([]*team.Member, error)
}

type teamService struct {
	ServiceParams
}

func NewTeamService(params ServiceParams) TeamService {
	return &teamService{ServiceParams: params}
}

func (s *teamService) GetTeam(ctx context.Context) (*dto.TeamResponse, error) {
	if err := s.checkPlan(ctx); err != nil {
		return nil, err
	}

	userID := types.GetUserID(ctx)
	t, err := s.TeamRepo.GetByOwner(ctx, userID)
	if err != nil {
		if !ierr.IsNotFound(err) {
			return nil, err
		}
		t, err = s.provision(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	members, err := s.TeamRepo.ListMembers(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Members = members
	return dto.NewTeamResponse(t), nil
}

func (s *teamService) provision(ctx context.Context, ownerID string) (*team.Team, error) {
	prof, err := NewProfileService(s.ServiceParams).GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	name := prof.BusinessName
	if name == "" {
		name = "My Team"
	}
	t := &team.Team{
		ID:        types.GenerateUUIDWithPrefix(types.PrefixTeam),
		OwnerID:   ownerID,
		Name:      name,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}

	now := time.Now().UTC()
	owner := &team.Member{
		ID:        types.GenerateUUID(),
		TeamID:    t.ID,
		UserID:    ownerID,
		Email:     prof.Email,
		Role:      team.RoleOwner,
		Status:    team.MemberActive,
		JoinedAt:  &now,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}

	if err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.TeamRepo.Create(ctx, t); err != nil {
			return err
		}
		return s.TeamRepo.AddMember(ctx, owner)
	}); err != nil {
		return nil, err
	}

	s.Logger.Infow("team provisioned", "team_id", t.ID, "owner_id", ownerID)
	return t, nil
}

func (s *teamService) InviteMember(ctx context.Context, teamID string, req dto.InviteMemberRequest) (*dto.TeamResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkPlan(ctx); err != nil {
		return nil, err
	}

	t, err := s.getOwned(ctx, teamID)
	if err != nil {
		return nil, err
	}

	members, err := s.TeamRepo.ListMembers(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	if len(members) >= team.MaxMembers {
		return nil, ierr.NewError("team is full").
			WithHint("Teams can have at most 5 members").
			WithReportableDetails(map[string]any{"max_members": team.MaxMembers}).
			Mark(ierr.ErrInvalidOperation)
	}
	for _, m := range members {
		if m.Email == req.Email {
			return nil, ierr.NewError("member already invited").
				WithHint("This email address is already on the team").
				Mark(ierr.ErrAlreadyExists)
		}
	}

	invite := &team.Member{
		ID:        types.GenerateUUID(),
		TeamID:    t.ID,
		Email:     req.Email,
		Role:      team.RoleMember,
		Status:    team.MemberInvited,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	if err := s.TeamRepo.AddMember(ctx, invite); err != nil {
		return nil, err
	}

	prof, err := NewProfileService(s.ServiceParams).GetProfile(ctx)
	if err == nil {
		subject, html := email.TeamInviteEmail(t.Name, prof.FullName)
		if sendErr := s.Email.Send(ctx, req.Email, subject, html); sendErr != nil {
			s.Logger.Warnw("failed to send invite email", "email", req.Email, "error", sendErr)
		}
	}

	t.Members = append(members, invite)
	return dto.NewTeamResponse(t), nil
}

func (s *teamService) RemoveMember(ctx context.Context, teamID, memberID string) error {
	t, err := s.getOwned(ctx, teamID)
	if err != nil {
		return err
	}

	members, err := s.TeamRepo.ListMembers(ctx, t.ID)
	if err != nil {
		return err
	}
	for _, m := range members {
		if m.ID == memberID {
			if m.Role == team.RoleOwner {
				return ierr.NewError("cannot remove the team owner").
					WithHint("The owner cannot be removed from the team").
					Mark(ierr.ErrInvalidOperation)
			}
			return s.TeamRepo.RemoveMember(ctx, memberID)
		}
	}
	return ierr.NewError("member not found").
		WithHint("Team member not found").
		Mark(ierr.ErrNotFound)
}

func (s *teamService) ListMembers(ctx context.Context, teamID string) ([]*team.Member, error) {
	t, err := s.getOwned(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return s.TeamRepo.ListMembers(ctx, t.ID)
}

func (s *teamService) getOwned(ctx context.Context, teamID string) (*team.Team, error) {
	t, err := s.TeamRepo.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != types.GetUserID(ctx) {
		return nil, ierr.NewError("team not found").
			WithHint("Team not found").
			Mark(ierr.ErrNotFound)
	}
	return t, nil
}

func (s *teamService) checkPlan(ctx context.Context) error {
	prof, err := NewProfileService(s.ServiceParams).GetProfile(ctx)
	if err != nil {
		return err
	}
	return entitlement.CheckFeature(prof.Plan, types.FeatureTeamMembers)
}
