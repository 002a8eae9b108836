// Package recommend derives prioritized suggestions from a student's records.
//
// Each domain (academic, financial, wellness, career) applies a fixed set of
// rules to a snapshot of its records. A failing domain contributes nothing;
// the others are unaffected. Results are ordered by priority, keeping domain
// order for equal priorities, and cached per student for a short time.
package recommend
