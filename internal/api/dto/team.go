package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/quoteflow/quote-service/internal/domain/team"
	ierr "github.com/quoteflow/quote-service/internal/errors"
)

type InviteMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type TeamResponse struct {
	*team.Team
	MemberCount int `json:"member_count"`
	// SeatsLeft is how many more members fit under the cap.
	SeatsLeft int `json:"seats_left"`
}

func NewTeamResponse(t *team.Team) *TeamResponse {
	return &TeamResponse{
		Team:        t,
		MemberCount: len(t.Members),
		SeatsLeft:   team.MaxMembers - len(t.Members),
	}
}

func (r *InviteMemberRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return ierr.WithError(err).
			WithHint("Please provide a valid email address").
			Mark(ierr.ErrValidation)
	}
	return nil
}
