// Package llm provides chat-completion clients for the advice and content
// features. It supports Groq (the default), OpenAI and Anthropic, with a
// per-request timeout and client-side rate limiting. Requests are never
// retried; callers degrade to static content instead.
package llm
