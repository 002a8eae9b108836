// Package content caches AI-generated dashboard content.
//
// Each content kind (academic trends, financial tips, wellness tips, career
// insights, news per topic) holds a list of items with a fixed set of string
// fields. A kind is served from cache for one refresh interval after a
// successful live fetch. Every failure path (no API key, transport error,
// unparseable or invalid output) answers with built-in content chosen by the
// student's field of study, so callers always receive a non-empty list.
package content
