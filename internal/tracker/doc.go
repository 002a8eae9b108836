// Package tracker implements the per-domain record services of a student:
// profile, academics, finances, wellness, career and resources.
//
// A Student binds every service to one document store and one student id.
// There is no ambient "current student"; callers pass the session around.
package tracker
