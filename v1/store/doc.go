// Package store abstracts the shared key-value store used as the lock
// coordination medium. It exposes the five atomic primitives the lock
// algorithm relies on (create-if-absent, get, get-and-set, delete, exists)
// with in-memory, Redis and NATS JetStream implementations.
package store
