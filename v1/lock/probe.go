package lock

import (
	"errors"
	"syscall"
)

// Probe decides whether the process that recorded a lock is still running.
type Probe interface {
	// Alive reports whether the pid belongs to a running process. An error
	// means the probe itself failed; callers must not treat that as "dead".
	Alive(pid int) (bool, error)
}

// ProcessProbe checks liveness by sending signal 0 to the pid. It is only
// meaningful when all workers share one host's pid space, and it reports a
// false "alive" when the pid has been reused by an unrelated process.
type ProcessProbe struct{}

// Alive implements Probe.Alive.
func (ProcessProbe) Alive(pid int) (bool, error) {
	err := syscall.Kill(pid, 0)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, syscall.ESRCH):
		return false, nil
	case errors.Is(err, syscall.EPERM):
		// the process exists, we just may not signal it
		return true, nil
	default:
		return false, err
	}
}
