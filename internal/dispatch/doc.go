// Package dispatch runs a single request operation and turns its outcome into
// a response envelope.
//
// The dispatcher negotiates the response representation and computes the
// conversation header before the operation runs, so every envelope (success
// or failure) honours the caller's representation and carries the same
// correlation id.
//
// Outcomes:
//   - Operation returns a result → status from the result (200 by default), payload unchanged
//   - failure.KindNotFound → 404 with the resource not-found message
//   - failure.KindContainerNotFound → 404 with the container not-found message
//   - anything else (including a panic) → 500, logged at error level with a stack trace
//
// The dispatcher holds no mutable state and is safe for concurrent use.
package dispatch
