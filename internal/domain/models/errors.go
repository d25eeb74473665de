package models

import "fmt"

// InsufficientDataError reports a price series too short for an indicator.
type InsufficientDataError struct {
	Indicator string
	Need      int
	Got       int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: need %d prices, got %d", e.Indicator, e.Need, e.Got)
}

// SourceFetchError reports a failed or timed-out sentiment source fetch.
type SourceFetchError struct {
	Source  SourceType
	Timeout bool
	Err     error
}

func (e *SourceFetchError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("source %s: fetch timed out", e.Source)
	}
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceFetchError) Unwrap() error { return e.Err }

// ValidationError reports a prediction or intermediate result that failed
// schema conformance. Never auto-corrected, always surfaced to the caller.
type ValidationError struct {
	Subject string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s failed validation: %v", e.Subject, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// CacheError reports a durable cache tier failure. Non-fatal by policy:
// callers degrade to the fast tier or a direct fetch and log it.
type CacheError struct {
	Op  string
	Key string
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }
