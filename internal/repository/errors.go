// Package repository translates the row-oriented sheets into typed
// domain records.  Sentinel values defined here let callers distinguish
// business "not found" outcomes from store-level failures, which are
// returned wrapped and must be rendered as a graceful message further
// up.
package repository

import "errors"

// ErrBookingNotFound is returned when a targeted update or status
// change matches no booking row.  The write is a no-op in that case.
var ErrBookingNotFound = errors.New("booking not found")
