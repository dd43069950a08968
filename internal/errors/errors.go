package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/google/go-github/v55/github"
)

// ErrCode classifies failures coming back from the GitHub API
type ErrCode string

const (
	ErrCodeNotFound      ErrCode = "NOT_FOUND"
	ErrCodeUnauthorized  ErrCode = "UNAUTHORIZED"
	ErrCodeRateLimited   ErrCode = "RATE_LIMITED"
	ErrCodeAbuseLimited  ErrCode = "ABUSE_LIMITED"
	ErrCodeUnknownStatus ErrCode = "UNKNOWN_STATUS"
	ErrCodeInternal      ErrCode = "INTERNAL_ERROR"
	ErrCodeBadRequest    ErrCode = "BAD_REQUEST"
)

// AppError represents an application error
type AppError struct {
	Code    ErrCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Detail returns the message that should be shown to people reading the
// issue: the underlying API error when there is one.
func (e *AppError) Detail() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Err:     err,
	}
}

// NewRateLimitedError creates a new rate limited error
func NewRateLimitedError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeRateLimited,
		Message: message,
		Err:     err,
	}
}

// NewAbuseLimitedError creates an error for secondary rate limit responses
func NewAbuseLimitedError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeAbuseLimited,
		Message: message,
		Err:     err,
	}
}

// NewUnknownStatusError creates an error for a status code the caller does not handle
func NewUnknownStatusError(status int) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownStatus,
		Message: fmt.Sprintf("unexpected status %d", status),
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// NewBadRequestError creates an error for requests GitHub rejected as invalid
func NewBadRequestError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or "" if there is none.
func CodeOf(err error) ErrCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Message returns the text to report for err: the message GitHub sent when
// there is one, otherwise the underlying cause of an AppError.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var respErr *github.ErrorResponse
	if stderrors.As(err, &respErr) && respErr.Message != "" {
		return respErr.Message
	}
	var rateErr *github.RateLimitError
	if stderrors.As(err, &rateErr) && rateErr.Message != "" {
		return rateErr.Message
	}
	var abuseErr *github.AbuseRateLimitError
	if stderrors.As(err, &abuseErr) && abuseErr.Message != "" {
		return abuseErr.Message
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Detail()
	}
	return err.Error()
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

// IsRateLimited checks if the error is a rate limited error
func IsRateLimited(err error) bool {
	return CodeOf(err) == ErrCodeRateLimited
}

// IsAbuseLimited checks if the error is a secondary rate limit error
func IsAbuseLimited(err error) bool {
	return CodeOf(err) == ErrCodeAbuseLimited
}
