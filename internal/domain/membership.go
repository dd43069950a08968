package domain

// MembershipStatus is the result of asking GitHub whether a user belongs to an organization
type MembershipStatus string

const (
	// MembershipMember means GitHub answered 204: the user is a member
	MembershipMember MembershipStatus = "member"
	// MembershipNotMember means GitHub answered 404: no membership record exists
	MembershipNotMember MembershipStatus = "not_member"
	// MembershipUnauthorized means GitHub answered 302: the requester may not see the membership
	MembershipUnauthorized MembershipStatus = "unauthorized"
	// MembershipUnknown covers any other successful status
	MembershipUnknown MembershipStatus = "unknown"
	// MembershipTransientError covers request failures other than 404
	MembershipTransientError MembershipStatus = "error"
)

// MembershipResult is returned by a membership check instead of overloading errors
type MembershipResult struct {
	Status     MembershipStatus
	StatusCode int
	Err        error
}

// User is the subset of a GitHub user the invitation flow needs
type User struct {
	Login string
	ID    int64
}
