package testutil

import (
	"context"
	"sync"

	"github.com/Veraticus/harmony/internal/service"
)

// Reply is one scripted completion result.
type Reply struct {
	Err  error
	Text string
}

// FakeCompleter is a CompletionService that answers from a script. When the
// script runs out the last reply repeats.
type FakeCompleter struct {
	replies  []Reply
	requests []service.CompletionRequest
	mu       sync.Mutex
}

// NewFakeCompleter creates a completer that answers with replies in order.
func NewFakeCompleter(replies ...Reply) *FakeCompleter {
	return &FakeCompleter{replies: replies}
}

// Complete records the request and returns the next scripted reply.
func (f *FakeCompleter) Complete(_ context.Context, req service.CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if len(f.replies) == 0 {
		return "", nil
	}
	idx := len(f.requests) - 1
	if idx >= len(f.replies) {
		idx = len(f.replies) - 1
	}
	r := f.replies[idx]
	return r.Text, r.Err
}

// Calls returns how many completions were requested.
func (f *FakeCompleter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// Requests returns a copy of every request received.
func (f *FakeCompleter) Requests() []service.CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.CompletionRequest(nil), f.requests...)
}
