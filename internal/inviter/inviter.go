package inviter

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kurihiro0119/org-invite/internal/actions"
	"github.com/kurihiro0119/org-invite/internal/config"
	"github.com/kurihiro0119/org-invite/internal/domain"
	apperrors "github.com/kurihiro0119/org-invite/internal/errors"
	"github.com/kurihiro0119/org-invite/internal/githubapi"
)

// Inviter checks a user's organization membership and invites them if needed
type Inviter struct {
	api    githubapi.API
	cfg    *config.Config
	logger actions.Logger
}

// New creates a new Inviter
func New(api githubapi.API, cfg *config.Config, logger actions.Logger) *Inviter {
	return &Inviter{
		api:    api,
		cfg:    cfg,
		logger: logger,
	}
}

// Run performs one membership check and posts exactly one comment with the result.
// Re-running after a successful invitation invites the user again.
func (i *Inviter) Run(ctx context.Context) *domain.Outcome {
	org := i.cfg.Org
	username := i.cfg.Username()

	outcome := &domain.Outcome{
		RunID:    uuid.New().String(),
		Org:      org,
		Username: username,
	}

	i.logger.Infof("Checking if user %s is a member of %s", username, org)
	result := i.api.CheckMembership(ctx, org, username)

	switch result.Status {
	case domain.MembershipMember:
		i.logger.Infof("User %s is already member of %s", username, org)
		outcome.Kind = domain.OutcomeAlreadyMember
		outcome.Comment = domain.AlreadyMemberComment(username, org)

	case domain.MembershipUnauthorized:
		i.fail(outcome, domain.ErrorKindUnauthorized, "Requestor not authorized to perform this action")
		outcome.Comment = domain.UnauthorizedComment()

	case domain.MembershipUnknown:
		i.fail(outcome, domain.ErrorKindUnknownStatus, "Unknown response from GitHub API: %d", result.StatusCode)
		outcome.Comment = domain.UnknownStatusComment(username)

	case domain.MembershipNotMember:
		i.logger.Infof("User %s is not a member of %s", username, org)
		i.invite(ctx, outcome)

	default:
		message := apperrors.Message(result.Err)
		outcome.Kind = domain.OutcomeError
		outcome.ErrorKind = domain.ErrorKindTransient
		outcome.Message = message
		outcome.Comment = domain.CheckFailedComment(message)
	}

	i.sendComment(ctx, outcome)

	// A failed membership check is reported after the comment attempt.
	if outcome.ErrorKind == domain.ErrorKindTransient {
		i.logger.Errorf("%s", outcome.Message)
	}
	return outcome
}

func (i *Inviter) invite(ctx context.Context, outcome *domain.Outcome) {
	org, username := outcome.Org, outcome.Username
	i.logger.Infof("Inviting user %s to %s", username, org)

	err := i.createInvitation(ctx, org, username)
	if err != nil {
		message := apperrors.Message(err)
		i.fail(outcome, domain.ErrorKindInviteFailed, "%s", message)
		outcome.Comment = domain.InviteFailedComment(username, org, message)
		return
	}

	outcome.Kind = domain.OutcomeInvited
	outcome.Comment = domain.InvitedComment(username, org)
}

// createInvitation looks the user up and invites them. Lookup and
// invitation failures are reported the same way.
func (i *Inviter) createInvitation(ctx context.Context, org, username string) error {
	user, err := i.api.GetUser(ctx, username)
	if err != nil {
		return err
	}
	return i.api.CreateInvitation(ctx, org, domain.InvitationRole, user.ID, []int64{i.cfg.TeamID})
}

func (i *Inviter) fail(outcome *domain.Outcome, kind domain.ErrorKind, format string, args ...any) {
	outcome.Kind = domain.OutcomeError
	outcome.ErrorKind = kind
	outcome.Message = fmt.Sprintf(format, args...)
	i.logger.Errorf("%s", outcome.Message)
}

// sendComment posts the outcome comment once. Failures are logged only.
func (i *Inviter) sendComment(ctx context.Context, outcome *domain.Outcome) {
	i.logger.Infof("Sending response: %s", outcome.Comment)
	err := i.api.CreateComment(ctx, i.cfg.Org, i.cfg.Repo, i.cfg.IssueNumber, outcome.Comment)
	if err != nil {
		i.logger.Errorf("%s", apperrors.Message(err))
		return
	}
	outcome.CommentPosted = true
}
