package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain asks until the session ends and returns every question asked.
func drain(t *testing.T, q *Questions) []string {
	t.Helper()
	var asked []string
	for {
		question, ok, err := q.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			return asked
		}
		asked = append(asked, question)
	}
}

func TestQuestionsSession(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		prompts int
	}{
		{
			name:    "empty line ends the chat",
			input:   "How do I prepare for end-sems?\n  Any tips for a hostel budget?  \n\nnever asked\n",
			want:    []string{"How do I prepare for end-sems?", "Any tips for a hostel budget?"},
			prompts: 3,
		},
		{
			name:    "end of input without newline",
			input:   "Should I take the internship offer?",
			want:    []string{"Should I take the internship offer?"},
			prompts: 2,
		},
		{
			name:    "no input",
			input:   "",
			prompts: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			q := NewQuestions(strings.NewReader(tt.input), &out, "You")
			defer q.Close()

			assert.Equal(t, tt.want, drain(t, q))
			assert.Equal(t, tt.prompts, strings.Count(out.String(), "You"))
		})
	}
}

func TestQuestionsEndOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	q := NewQuestions(pr, &out, "You")
	defer q.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	question, ok, err := q.Next(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, question)
	assert.Less(t, time.Since(start), time.Second)
}

func TestQuestionsReportReadErrors(t *testing.T) {
	var out bytes.Buffer
	q := NewQuestions(iotest.ErrReader(errors.New("terminal closed")), &out, "You")
	defer q.Close()

	_, ok, err := q.Next(context.Background())
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "terminal closed")
}

func TestQuestionsCloseStopsReading(t *testing.T) {
	var out bytes.Buffer
	q := NewQuestions(strings.NewReader("first\nsecond\nthird\n"), &out, "You")

	question, ok, err := q.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", question)

	q.Close()
	q.Close()

	// the scanner exits and closes the line channel
	require.Eventually(t, func() bool {
		select {
		case _, open := <-q.lines:
			return !open
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
