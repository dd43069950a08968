package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v55/github"
	"golang.org/x/oauth2"

	"github.com/kurihiro0119/org-invite/internal/actions"
	"github.com/kurihiro0119/org-invite/internal/domain"
	apperrors "github.com/kurihiro0119/org-invite/internal/errors"
)

// Options configures the GitHub client
type Options struct {
	// BaseURL overrides https://api.github.com/, e.g. for GitHub Enterprise Server
	BaseURL    string
	MaxRetries int
	MaxWait    time.Duration
	Logger     actions.Logger
}

// githubAPI implements API using the GitHub REST API
type githubAPI struct {
	client *github.Client
	retry  *RetryPolicy
}

// New creates a GitHub API client authenticated with token
func New(ctx context.Context, token string, opts Options) (API, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	// The membership endpoint answers 302 when the requester may not see
	// the membership; following it would hide that signal.
	tc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	client := github.NewClient(tc)

	if opts.BaseURL != "" {
		baseURL := opts.BaseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", opts.BaseURL, err)
		}
		client.BaseURL = u
	}

	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.MaxWait <= 0 {
		opts.MaxWait = DefaultMaxWait
	}
	if opts.Logger == nil {
		opts.Logger = actions.New(nil, nil)
	}

	return &githubAPI{
		client: client,
		retry: &RetryPolicy{
			MaxRetries: opts.MaxRetries,
			MaxWait:    opts.MaxWait,
			Logger:     opts.Logger,
		},
	}, nil
}

// CheckMembership checks org membership via GET /orgs/{org}/members/{username}
func (c *githubAPI) CheckMembership(ctx context.Context, org, username string) domain.MembershipResult {
	path := fmt.Sprintf("orgs/%v/members/%v", org, username)

	var resp *github.Response
	err := c.retry.Do(ctx, http.MethodGet, "/"+path, func() error {
		req, err := c.client.NewRequest(http.MethodGet, path, nil)
		if err != nil {
			return err
		}
		resp, err = c.client.BareDo(ctx, req)
		if err == nil {
			resp.Body.Close()
		}
		return err
	})

	if resp != nil {
		code := resp.StatusCode
		switch {
		case code == http.StatusNoContent:
			return domain.MembershipResult{Status: domain.MembershipMember, StatusCode: code}
		case code == http.StatusFound:
			return domain.MembershipResult{Status: domain.MembershipUnauthorized, StatusCode: code}
		case code == http.StatusNotFound:
			return domain.MembershipResult{
				Status:     domain.MembershipNotMember,
				StatusCode: code,
				Err:        apperrors.NewNotFoundError(fmt.Sprintf("membership of %s in %s", username, org), err),
			}
		case code >= 200 && code < 400 && code != http.StatusNotModified:
			return domain.MembershipResult{
				Status:     domain.MembershipUnknown,
				StatusCode: code,
				Err:        apperrors.NewUnknownStatusError(code),
			}
		}
	}

	if err == nil {
		err = errors.New("no response from GitHub")
	}
	result := domain.MembershipResult{
		Status: domain.MembershipTransientError,
		Err:    classify("check membership", err),
	}
	if resp != nil {
		result.StatusCode = resp.StatusCode
	}
	return result
}

// GetUser retrieves a user by login
func (c *githubAPI) GetUser(ctx context.Context, username string) (*domain.User, error) {
	var user *github.User
	err := c.retry.Do(ctx, http.MethodGet, "/users/"+username, func() error {
		var err error
		user, _, err = c.client.Users.Get(ctx, username)
		return err
	})
	if err != nil {
		return nil, classify("user "+username, err)
	}

	return &domain.User{
		Login: user.GetLogin(),
		ID:    user.GetID(),
	}, nil
}

// CreateInvitation invites a user to an organization
func (c *githubAPI) CreateInvitation(ctx context.Context, org, role string, inviteeID int64, teamIDs []int64) error {
	opts := &github.CreateOrgInvitationOptions{
		InviteeID: github.Int64(inviteeID),
		Role:      github.String(role),
		TeamID:    teamIDs,
	}

	err := c.retry.Do(ctx, http.MethodPost, "/orgs/"+org+"/invitations", func() error {
		_, _, err := c.client.Organizations.CreateOrgInvitation(ctx, org, opts)
		return err
	})
	if err != nil {
		return classify("invitation to "+org, err)
	}
	return nil
}

// CreateComment posts a comment on an issue
func (c *githubAPI) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{Body: github.String(body)}

	path := fmt.Sprintf("/repos/%s/%s/issues/%d/comments", owner, repo, number)
	err := c.retry.Do(ctx, http.MethodPost, path, func() error {
		_, _, err := c.client.Issues.CreateComment(ctx, owner, repo, number, comment)
		return err
	})
	if err != nil {
		return classify(fmt.Sprintf("comment on %s/%s#%d", owner, repo, number), err)
	}
	return nil
}

// classify maps go-github errors onto application error codes
func classify(resource string, err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return apperrors.NewRateLimitedError(rateErr.Message, err)
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return apperrors.NewAbuseLimitedError(abuseErr.Message, err)
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return apperrors.NewNotFoundError(resource, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperrors.NewUnauthorizedError(resource, err)
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return apperrors.NewBadRequestError(resource, err)
		}
	}

	return apperrors.NewInternalError(resource, err)
}
