package mock

import (
	"context"

	"github.com/ukmetdata/midas"
)

var _ midas.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of midas.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
