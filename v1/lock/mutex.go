package lock

import (
	"context"
	"os"
	"time"

	"github.com/mirkobrombin/go-exclusive/v1/metrics"
	"github.com/mirkobrombin/go-exclusive/v1/store"
)

// Acquisition describes a successful lock acquisition. Either NoExpiry is
// set, meaning the lock holds until released, or Until carries the lease
// deadline the holder must respect.
type Acquisition struct {
	Until    time.Time
	NoExpiry bool
}

// Mutex coordinates exclusive task execution across processes through a
// shared store. It keeps no state of its own between attempts; every
// acquisition is decided from the stored record and the clock.
type Mutex struct {
	store store.Store
	probe Probe
	codec Codec
	now   func() time.Time
	pid   func() int
}

// Option configures a Mutex.
type Option func(*Mutex)

// WithProbe sets the liveness probe used for stale-owner detection.
func WithProbe(p Probe) Option {
	return func(m *Mutex) {
		m.probe = p
	}
}

// WithCodec sets the codec used to serialize lock records.
func WithCodec(c Codec) Option {
	return func(m *Mutex) {
		m.codec = c
	}
}

// WithClock sets the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Mutex) {
		m.now = now
	}
}

// WithPID sets the owner pid source. Intended for tests.
func WithPID(pid func() int) Option {
	return func(m *Mutex) {
		m.pid = pid
	}
}

// New returns a new Mutex backed by the provided store.
func New(s store.Store, opts ...Option) *Mutex {
	m := &Mutex{
		store: s,
		probe: ProcessProbe{},
		codec: JSONCodec{},
		now:   time.Now,
		pid:   os.Getpid,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Acquire attempts to take the lock for key with the given lease. The boolean
// return reports whether the lock was acquired; a denial is an expected
// outcome of contention, not an error. Acquire never blocks waiting for a
// holder and never retries on its own.
//
// A lock whose lease has lapsed is stolen only when the recorded owner
// process is dead. The steal is a read-then-swap sequence, not a single
// atomic step, so two stealers racing through it leave a narrow window in
// which both observe an expired previous record; the loser of the swap is
// denied, but its record may briefly overwrite the winner's.
func (m *Mutex) Acquire(ctx context.Context, key string, timeout time.Duration) (Acquisition, bool, error) {
	now := m.now()
	candidate := Record{PID: m.pid()}
	if timeout > 0 {
		candidate.LockUntil = now.Add(timeout).Unix()
	}
	data, err := m.codec.Marshal(candidate)
	if err != nil {
		return Acquisition{}, false, err
	}

	created, err := m.store.SetIfAbsent(ctx, key, data)
	if err != nil {
		return Acquisition{}, false, err
	}
	if created {
		metrics.AcquiredCounter.Inc()
		if timeout <= 0 {
			return Acquisition{NoExpiry: true}, true, nil
		}
		return Acquisition{Until: time.Unix(candidate.LockUntil, 0)}, true, nil
	}
	if timeout <= 0 {
		// a never-expiring lock is only ever freed by release
		metrics.DeniedCounter.Inc()
		return Acquisition{}, false, nil
	}

	existingData, found, err := m.store.Get(ctx, key)
	if err != nil {
		return Acquisition{}, false, err
	}
	if !found {
		// released between the create attempt and the read; the caller may retry
		metrics.DeniedCounter.Inc()
		return Acquisition{}, false, nil
	}
	existing, err := decodeRecord(m.codec, existingData)
	if err != nil {
		return Acquisition{}, false, err
	}

	if existing.LockUntil != 0 && existing.LockUntil < now.Unix() {
		alive, perr := m.probe.Alive(existing.PID)
		// a failed probe counts as a live owner, stealing on a guess is worse
		if perr == nil && !alive {
			return m.steal(ctx, key, data, candidate, now)
		}
	}

	// held, unexpired, or owner still alive; one last create in case the
	// key vanished while we were deciding
	created, err = m.store.SetIfAbsent(ctx, key, data)
	if err != nil {
		return Acquisition{}, false, err
	}
	if created {
		metrics.AcquiredCounter.Inc()
		return Acquisition{Until: time.Unix(candidate.LockUntil, 0)}, true, nil
	}
	metrics.DeniedCounter.Inc()
	return Acquisition{}, false, nil
}

// steal overwrites an expired dead-owner record and accepts the result only
// if the value it displaced was itself absent or expired. Losing the swap to
// a concurrent acquirer is a denial.
func (m *Mutex) steal(ctx context.Context, key string, data []byte, candidate Record, now time.Time) (Acquisition, bool, error) {
	prevData, prevFound, err := m.store.GetSet(ctx, key, data)
	if err != nil {
		return Acquisition{}, false, err
	}
	if prevFound {
		prev, err := decodeRecord(m.codec, prevData)
		if err != nil {
			return Acquisition{}, false, err
		}
		if prev.LockUntil >= now.Unix() {
			metrics.DeniedCounter.Inc()
			return Acquisition{}, false, nil
		}
	}
	metrics.AcquiredCounter.Inc()
	metrics.StolenCounter.Inc()
	return Acquisition{Until: time.Unix(candidate.LockUntil, 0)}, true, nil
}

// Release frees the lock unconditionally. There is no ownership check: the
// execution wrapper is expected to be the only caller, and it releases only
// while it still believes it holds an unexpired lock.
func (m *Mutex) Release(ctx context.Context, key string) error {
	return m.store.Delete(ctx, key)
}
