// Package backend is the HTTP client for the content pipeline service. It
// wraps every request with a per-attempt timeout and a bounded
// exponential-backoff retry for transient failures (HTTP 429/502/503/504 and
// network timeouts), exposes typed methods for each production endpoint, and
// converts long-running render jobs into awaitable results via a polling loop
// with a hard wall-clock ceiling.
//
// Retry timing is deterministic under test: the sleeper, jitter source, and
// clock are all injectable through Options.
package backend
