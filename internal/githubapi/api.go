package githubapi

import (
	"context"

	"github.com/kurihiro0119/org-invite/internal/domain"
)

// API defines the GitHub operations the invitation flow needs
type API interface {
	// CheckMembership reports whether username belongs to org
	CheckMembership(ctx context.Context, org, username string) domain.MembershipResult

	// GetUser looks up a user by login
	GetUser(ctx context.Context, username string) (*domain.User, error)

	// CreateInvitation invites a user to org and the given teams
	CreateInvitation(ctx context.Context, org, role string, inviteeID int64, teamIDs []int64) error

	// CreateComment posts a comment on an issue
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
}
