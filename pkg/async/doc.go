// Package async provides future-based helpers for bounding the wall-clock
// time of blocking operations.
//
// The external calls this service orchestrates do not support cooperative
// cancellation, so AwaitWithTimeout and RunWithTimeout only abandon the
// result: the goroutine runs to completion and a timed-out operation must be
// treated as "outcome unknown".
package async
