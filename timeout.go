package dispatch

import (
	"context"
	"time"
)

// DefaultTimeout applies when --timeout is absent.
const DefaultTimeout = time.Hour

// TimeoutOptions adds --timeout to a command and scopes a deadline to the
// single handler invocation. The value is a number of seconds, a duration
// such as 90s or 1h30m, or hh:mm:ss, and must be positive.
type TimeoutOptions struct {
	Timeout time.Duration
}

func (t *TimeoutOptions) Declare(d *BundleDeclaration) {
	d.Option(&t.Timeout, "timeout",
		WithDefault("1h"),
		WithDescription("maximum run time of the command"))
}

// Scope derives a context that expires after the timeout.
func (t *TimeoutOptions) Scope(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return context.WithTimeout(ctx, timeout)
}
