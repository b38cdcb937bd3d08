// Package runner wraps task execution in the acquire-run-release protocol.
// It is the single integration surface for task frameworks: hand it a task
// descriptor, the argument list and a body, and at most one process runs
// that body at a time. The release decision runs on every exit path of the
// body, including errors and panics, and a lease that lapsed while the body
// ran is deliberately left in place for its next holder.
package runner
