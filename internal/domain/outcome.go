package domain

import "fmt"

// InvitationRole is the organization role given to invited users
const InvitationRole = "direct_member"

// OutcomeKind is the terminal state of a run
type OutcomeKind string

const (
	OutcomeAlreadyMember OutcomeKind = "already_member"
	OutcomeInvited       OutcomeKind = "invited"
	OutcomeError         OutcomeKind = "error"
)

// ErrorKind refines OutcomeError
type ErrorKind string

const (
	ErrorKindNone          ErrorKind = ""
	ErrorKindUnauthorized  ErrorKind = "unauthorized"
	ErrorKindUnknownStatus ErrorKind = "unknown_status"
	ErrorKindInviteFailed  ErrorKind = "invite_failed"
	ErrorKindTransient     ErrorKind = "transient"
)

// Outcome describes how a run ended. It is never persisted.
type Outcome struct {
	RunID     string
	Kind      OutcomeKind
	ErrorKind ErrorKind
	Org       string
	Username  string
	// Message holds the failure text reported to the Actions log, if any.
	Message string
	// Comment is the body posted to the issue.
	Comment       string
	CommentPosted bool
}

// ExitCode is 0 only when the user was already a member. A successful
// invitation still exits non-zero so somebody looks at the issue.
func (o *Outcome) ExitCode() int {
	if o.Kind == OutcomeAlreadyMember {
		return 0
	}
	return 1
}

// Failed reports whether the run should be marked as failed
func (o *Outcome) Failed() bool {
	return o.ExitCode() != 0
}

// AlreadyMemberComment is posted when the user already belongs to org
func AlreadyMemberComment(username, org string) string {
	return fmt.Sprintf("%s is already member of the %s organization", username, org)
}

// UnauthorizedComment is posted when GitHub hides the membership from the requester
func UnauthorizedComment() string {
	return "You are not authorized to make this request"
}

// UnknownStatusComment is posted for an unexpected successful status
func UnknownStatusComment(username string) string {
	return fmt.Sprintf("Unable to determine membership for %s", username)
}

// InvitedComment is posted after an invitation was created
func InvitedComment(username, org string) string {
	return fmt.Sprintf("%s is not a member of the %s organization", username, org)
}

// InviteFailedComment is posted when the user lookup or the invitation fails
func InviteFailedComment(username, org, message string) string {
	return fmt.Sprintf("Failed to invite %s to %s: %s", username, org, message)
}

// CheckFailedComment is posted when the membership check itself fails
func CheckFailedComment(message string) string {
	return fmt.Sprintf("An error occurred while checking membership: %s", message)
}
