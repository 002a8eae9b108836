// Package aggregate derives dashboard figures from stored records.
//
// Every function is pure: no I/O, no clock reads (callers pass "now"), and
// missing or empty input yields a zero value rather than an error.
package aggregate
