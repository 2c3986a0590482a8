// Package retry provides exponential backoff for operations that fail or
// have not yet converged.
//
// [WithExponentialBackoff] retries an operation until it succeeds and
// [Until] polls a condition until it holds; both stop early on errors
// marked with [Fatal]. They are used for EC2 calls and volume state waits.
package retry
