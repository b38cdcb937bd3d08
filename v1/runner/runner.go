package runner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mirkobrombin/go-exclusive/v1/lock"
	"github.com/mirkobrombin/go-exclusive/v1/metrics"
)

var tracer = otel.Tracer("github.com/mirkobrombin/go-exclusive/v1/runner")

// Runner executes task bodies under the mutual-exclusion protocol.
type Runner struct {
	mutex        *lock.Mutex
	now          func() time.Time
	traceEnabled bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithTracing enables OpenTelemetry spans around each run.
func WithTracing() Option {
	return func(r *Runner) {
		r.traceEnabled = true
	}
}

// WithClock sets the time source used for the release decision. Intended
// for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// New returns a Runner executing under the provided mutex.
func New(m *lock.Mutex, opts ...Option) *Runner {
	r := &Runner{mutex: m, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run acquires the task's lock, executes body exactly once, and settles the
// lock afterwards. A denied acquisition invokes the task's OnLockFailed
// callback and returns nil without running body; contention is not a fault.
//
// When the acquisition carried a lease, the deadline is re-checked after
// body returns: a lapsed lease means another worker may already hold the
// key, so the lock is left alone and OnExpiredBeforeRelease is invoked
// instead. Errors from body propagate unchanged; the release decision runs
// first on every exit path.
func (r *Runner) Run(ctx context.Context, task lock.Task, args []string, body func(context.Context) error) (err error) {
	key := task.Key(args)

	var span trace.Span
	if r.traceEnabled {
		ctx, span = tracer.Start(ctx, "Runner.Run", trace.WithAttributes(
			attribute.String("task.name", task.Name),
			attribute.String("lock.key", key),
			attribute.String("run.id", uuid.NewString()),
		))
		defer span.End()
	}

	acq, ok, err := r.mutex.Acquire(ctx, key, task.Timeout)
	if err != nil {
		return err
	}
	if !ok {
		if span != nil {
			span.SetAttributes(attribute.Bool("lock.acquired", false))
		}
		if task.OnLockFailed != nil {
			task.OnLockFailed(args)
		}
		return nil
	}
	if span != nil {
		span.SetAttributes(attribute.Bool("lock.acquired", true))
	}

	metrics.RunCounter.Inc()
	defer func() {
		if !acq.NoExpiry && r.now().After(acq.Until) {
			// the lease lapsed mid-run; deleting the key now could free a
			// lock legitimately stolen by another worker
			metrics.ExpiredCounter.Inc()
			if task.OnExpiredBeforeRelease != nil {
				task.OnExpiredBeforeRelease(args)
			}
			return
		}
		if rerr := r.mutex.Release(ctx, key); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return body(ctx)
}
