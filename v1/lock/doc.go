// Package lock implements cross-process mutual exclusion over a shared
// key-value store. A Mutex turns the store's five atomic primitives into an
// acquire/release protocol with lazy expiry: a lock holds either until
// released or until its lease lapses, and a lapsed lock whose owner process
// is dead can be stolen by the next acquirer. There is no waiter queue and no
// renewal; a denied acquisition is terminal for that attempt.
package lock
