package team

import (
	"time"

	"github.com/quoteflow/quote-service/internal/types"
)

// MaxMembers caps a team's size, owner included.
const MaxMembers = 5

// Team groups up to MaxMembers accounts under one business-plan owner.
type Team struct {
	ID      string `db:"id" json:"id"`
	OwnerID string `db:"owner_id" json:"owner_id"`
	Name    string `db:"name" json:"name"`

	Members []*Member `db:"-" json:"members,omitempty"`

	types.BaseModel
}

// MemberRole is what a member may do inside the team.
type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleMember MemberRole = "member"
)

// MemberStatus tracks an invitation through acceptance.
type MemberStatus string

const (
	MemberInvited MemberStatus = "invited"
	MemberActive  MemberStatus = "active"
)

// Member is one seat on a team. Invited members have no UserID until they
// accept.
type Member struct {
	ID       string       `db:"id" json:"id"`
	TeamID   string       `db:"team_id" json:"team_id"`
	UserID   string       `db:"user_id" json:"user_id,omitempty"`
	Email    string       `db:"email" json:"email"`
	Role     MemberRole   `db:"role" json:"role"`
	Status   MemberStatus `db:"status" json:"status"`
	JoinedAt *time.Time   `db:"joined_at" json:"joined_at,omitempty"`

	types.BaseModel
}

// HasSeatFor reports whether another member fits under the size cap.
func (t *Team) HasSeatFor() bool {
	return len(t.Members) < MaxMembers
}
