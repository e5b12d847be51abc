package fastfuels

import (
	"context"
	"fmt"
	"time"

	"github.com/fastfuels-io/fastfuels-client/internal/constants"
)

// Waitable is implemented by resources that are processed asynchronously and
// report a polling status.
type Waitable interface {
	// PollStatus returns the current processing status of the resource.
	PollStatus() Status

	// FailureDetail returns the failure detail reported by the API, or an
	// empty string when none is available.
	FailureDetail() string
}

// ProgressEvent describes one status check performed by Wait.
type ProgressEvent struct {
	// Status observed on this poll.
	Status Status

	// Elapsed time since polling started.
	Elapsed time.Duration

	// Polls is the number of status checks performed so far, including
	// this one.
	Polls int
}

// ProgressFunc receives a ProgressEvent after each status check. It is called
// synchronously from the polling goroutine.
type ProgressFunc func(ProgressEvent)

// WaitOptions configures a polling wait.
type WaitOptions struct {
	// Interval is the delay between status checks. Must be greater than
	// zero.
	Interval time.Duration

	// Timeout is the deadline for the resource to reach a terminal status,
	// measured from the first status check. A zero Timeout performs exactly
	// one status check. A negative Timeout is invalid.
	Timeout time.Duration

	// Progress, if set, is invoked once per status check.
	Progress ProgressFunc
}

// DefaultWaitOptions returns wait options with a 5 second interval and a
// 10 minute timeout.
func DefaultWaitOptions() *WaitOptions {
	return &WaitOptions{
		Interval: constants.DefaultPollInterval,
		Timeout:  constants.DefaultWaitTimeout,
	}
}

// Wait polls a resource until it reaches a terminal status, the timeout
// elapses, or the context is cancelled. The refresh function fetches a fresh
// snapshot of the resource on every poll; its errors propagate unchanged and
// are never reported as timeouts.
//
// A resource that completes returns its final snapshot. A resource that
// reaches a failed terminal status returns the snapshot alongside an
// *OperationFailedError. A resource still in flight at the deadline returns
// the last snapshot alongside a *WaitTimeoutError. Wait holds no shared
// state: concurrent waits on independent resources are safe.
func Wait[T Waitable](ctx context.Context, refresh func(context.Context) (T, error), opts *WaitOptions) (T, error) {
	var zero T

	if opts == nil {
		opts = DefaultWaitOptions()
	}

	if opts.Interval <= 0 {
		return zero, fmt.Errorf("%w: %s", ErrInvalidPollInterval, opts.Interval)
	}

	if opts.Timeout < 0 {
		return zero, fmt.Errorf("%w: %s", ErrInvalidWaitTimeout, opts.Timeout)
	}

	start := time.Now()
	polls := 0

	timer := time.NewTimer(opts.Interval)
	defer timer.Stop()

	for {
		snapshot, err := refresh(ctx)
		if err != nil {
			return zero, fmt.Errorf("refreshing resource status: %w", err)
		}

		polls++
		status := snapshot.PollStatus()
		elapsed := time.Since(start)

		if opts.Progress != nil {
			opts.Progress(ProgressEvent{Status: status, Elapsed: elapsed, Polls: polls})
		}

		if status.Terminal() {
			if !status.Succeeded() {
				return snapshot, &OperationFailedError{
					Status:   status,
					Detail:   snapshot.FailureDetail(),
					Snapshot: snapshot,
				}
			}

			return snapshot, nil
		}

		if elapsed >= opts.Timeout {
			return snapshot, &WaitTimeoutError{
				LastStatus: status,
				Elapsed:    elapsed,
				Polls:      polls,
				Snapshot:   snapshot,
			}
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}

		timer.Reset(opts.Interval)

		select {
		case <-ctx.Done():
			return snapshot, fmt.Errorf("waiting for resource to complete: %w", ctx.Err())
		case <-timer.C:
		}
	}
}

// WaitInPlace behaves like Wait but additionally assigns the final snapshot
// through handle on success, so existing references observe the completed
// resource. Callers that prefer immutable snapshots should use Wait and keep
// their original handle untouched.
func WaitInPlace[T Waitable](ctx context.Context, refresh func(context.Context) (T, error), opts *WaitOptions, handle *T) (T, error) {
	final, err := Wait(ctx, refresh, opts)
	if err != nil {
		return final, err
	}

	if handle != nil {
		*handle = final
	}

	return final, nil
}
