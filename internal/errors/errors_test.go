package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/go-github/v55/github"
	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("GET https://api.github.com/users/ghost: 404 Not Found []")
	err := NewNotFoundError("user ghost", cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, "NOT_FOUND: user ghost not found ("+cause.Error()+")", err.Error())
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("checking membership: %w", NewRateLimitedError("quota exhausted", nil))

	assert.True(t, IsRateLimited(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.False(t, IsAbuseLimited(wrapped))
	assert.Equal(t, ErrCodeRateLimited, CodeOf(wrapped))
	assert.Equal(t, ErrCode(""), CodeOf(stderrors.New("plain")))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: stderrors.New("boom"), want: "boom"},
		{name: "app error with cause", err: NewInternalError("create invitation", stderrors.New("422 Validation Failed")), want: "422 Validation Failed"},
		{name: "app error without cause", err: NewUnknownStatusError(200), want: "unexpected status 200"},
		{
			name: "github error response",
			err: NewBadRequestError("invitation to acme", &github.ErrorResponse{
				Response: &http.Response{StatusCode: http.StatusUnprocessableEntity, Request: &http.Request{Method: http.MethodPost, URL: &url.URL{Path: "/orgs/acme/invitations"}}},
				Message:  "Validation Failed",
			}),
			want: "Validation Failed",
		},
		{
			name: "rate limit",
			err:  NewRateLimitedError("quota", &github.RateLimitError{Message: "API rate limit exceeded for 127.0.0.1."}),
			want: "API rate limit exceeded for 127.0.0.1.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}
