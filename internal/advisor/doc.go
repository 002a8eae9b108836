// Package advisor answers free-form student questions in one of four advice
// domains, falling back to static guidance whenever the completion service
// cannot produce an answer.
package advisor
