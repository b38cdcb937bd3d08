package lock

import (
	"strings"
	"time"
)

// keyDelimiter separates the components of a lock key and of the default
// argument identifier.
const keyDelimiter = ":"

// keyPrefix namespaces every lock key in the store.
const keyPrefix = "lock"

// Task describes one task type to the locking layer. Its zero values are
// usable: an empty Timeout means the lock is held until released, a nil
// Identifier falls back to joining the arguments, and nil callbacks are
// simply skipped.
type Task struct {
	// Name identifies the task type. Two tasks with different names never
	// share a lock key.
	Name string

	// Timeout is the lease duration. Zero or negative means the lock never
	// expires and is held until explicitly released.
	Timeout time.Duration

	// Identifier overrides how an argument list is fingerprinted into the
	// lock key, for tasks whose arguments are large or not string-friendly.
	Identifier func(args []string) string

	// OnLockFailed runs when an acquisition is denied. Contention is an
	// expected outcome, not an error.
	OnLockFailed func(args []string)

	// OnExpiredBeforeRelease runs when the lease lapsed while the task body
	// was executing and the lock was therefore left in place.
	OnExpiredBeforeRelease func(args []string)
}

func (t Task) identifier(args []string) string {
	if t.Identifier != nil {
		return t.Identifier(args)
	}
	return strings.Join(args, keyDelimiter)
}

// Key derives the store key for one logical task instance. It is pure:
// identical name and arguments always produce the same key, and empty
// components are dropped.
func (t Task) Key(args []string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{keyPrefix, t.Name, t.identifier(args)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, keyDelimiter)
}
