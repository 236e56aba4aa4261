// Package failure defines the closed set of error kinds produced by the
// manifest pipeline.
//
// Every component reports problems as *Error values tagged with a Kind, so the
// CLI can print a categorised one-line message and callers can match with
// errors.Is against the exported sentinels.
package failure
