// Package client implements the HTTP client used to reach the Vaults backend.
//
// Every call goes through Do, which sets the JSON and User-Agent headers,
// attaches the function key on authenticated routes, retries transient
// failures with capped exponential backoff and classifies every failure
// into an *Error whose Kind can be tested with errors.Is against the
// package sentinels.
//
// Only Server, Timeout and Network failures are retried. Authentication,
// RateLimit and API failures are returned after the first attempt.
package client
