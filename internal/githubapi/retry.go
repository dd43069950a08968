package githubapi

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/go-github/v55/github"

	"github.com/kurihiro0119/org-invite/internal/actions"
)

const (
	// DefaultMaxRetries is the number of retries after a rate-limited response
	DefaultMaxRetries = 2
	// DefaultMaxWait caps how long a single retry may sleep
	DefaultMaxWait = 2 * time.Minute
)

// RetryPolicy retries requests that hit the primary rate limit. Secondary
// (abuse) limits are logged and returned immediately.
type RetryPolicy struct {
	MaxRetries int
	MaxWait    time.Duration
	Logger     actions.Logger
}

// Do runs op, retrying it while GitHub reports an exhausted quota
func (p *RetryPolicy) Do(ctx context.Context, method, path string, op func() error) error {
	b := &rateLimitBackOff{
		fallback: backoff.NewExponentialBackOff(),
		maxWait:  p.MaxWait,
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := op()
		if err == nil {
			return struct{}{}, nil
		}

		var rateErr *github.RateLimitError
		if errors.As(err, &rateErr) {
			p.Logger.Warningf("Request quota exhausted for request %s %s", method, path)
			b.reset = rateErr.Rate.Reset.Time
			return struct{}{}, err
		}

		var abuseErr *github.AbuseRateLimitError
		if errors.As(err, &abuseErr) {
			p.Logger.Warningf("Abuse detected for request %s %s", method, path)
		}
		return struct{}{}, backoff.Permanent(err)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(p.MaxRetries+1)),
		backoff.WithNotify(func(_ error, d time.Duration) {
			p.Logger.Infof("Retrying after %d seconds!", int(d.Round(time.Second)/time.Second))
		}),
	)
	return err
}

// rateLimitBackOff waits until the reported quota reset, falling back to
// exponential backoff when GitHub did not send one.
type rateLimitBackOff struct {
	fallback *backoff.ExponentialBackOff
	maxWait  time.Duration
	reset    time.Time
}

func (b *rateLimitBackOff) NextBackOff() time.Duration {
	var d time.Duration
	if !b.reset.IsZero() {
		d = time.Until(b.reset)
		b.reset = time.Time{}
	} else {
		d = b.fallback.NextBackOff()
	}

	if d < 0 {
		d = 0
	}
	if b.maxWait > 0 && d > b.maxWait {
		d = b.maxWait
	}
	return d
}

func (b *rateLimitBackOff) Reset() {
	b.fallback.Reset()
	b.reset = time.Time{}
}
