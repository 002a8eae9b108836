// Package service defines the interfaces shared between application layers.
package service

import (
	"context"
)

// Document namespaces.
const (
	NamespaceProfile   = "profile"
	NamespaceAcademic  = "academic"
	NamespaceFinancial = "financial"
	NamespaceWellness  = "wellness"
	NamespaceCareer    = "career"
	NamespaceResources = "resources"
)

// Namespaces lists every namespace a subject can own documents in.
var Namespaces = []string{
	NamespaceProfile,
	NamespaceAcademic,
	NamespaceFinancial,
	NamespaceWellness,
	NamespaceCareer,
	NamespaceResources,
}

// DocumentStore persists whole JSON documents keyed by subject, namespace and
// key. Writes overwrite the previous document; the last write wins.
type DocumentStore interface {
	// Get decodes the document into dest. A missing document reports false
	// with a nil error.
	Get(ctx context.Context, subject, namespace, key string, dest any) (bool, error)
	Put(ctx context.Context, subject, namespace, key string, doc any) error
	// Subjects lists the subjects that own the given document, sorted.
	Subjects(ctx context.Context, namespace, key string) ([]string, error)
	DeleteSubject(ctx context.Context, subject string) error
	Close() error
}

// CompletionRequest is a single chat-completion call. Zero fields and a nil
// Temperature take the client's defaults.
type CompletionRequest struct {
	Temperature  *float64
	SystemPrompt string
	UserPrompt   string
	Model        string
	MaxTokens    int
}

// Temperature returns a sampling temperature for CompletionRequest.
func Temperature(v float64) *float64 {
	return &v
}

// CompletionService turns a prompt into free-form text.
type CompletionService interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
