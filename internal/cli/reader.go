package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

type inputLine struct {
	err  error
	text string
}

// Questions reads an interactive session one question per line. The session
// ends on an empty line, at end of input, or when the context is done.
type Questions struct {
	out     io.Writer
	scanner *bufio.Scanner
	lines   chan inputLine
	done    chan struct{}
	prompt  string
	start   sync.Once
	stop    sync.Once
}

// NewQuestions starts a session reading from in and prompting on out with
// the asker's label.
func NewQuestions(in io.Reader, out io.Writer, asker string) *Questions {
	return &Questions{
		out:     out,
		scanner: bufio.NewScanner(in),
		lines:   make(chan inputLine),
		done:    make(chan struct{}),
		prompt:  FormatPrompt(asker),
	}
}

// Next prompts for the next question. ok is false once the session is over;
// err reports only failures reading the input.
func (q *Questions) Next(ctx context.Context) (question string, ok bool, err error) {
	fmt.Fprint(q.out, q.prompt)
	q.start.Do(func() { go q.scan() })

	select {
	case <-ctx.Done():
		fmt.Fprintln(q.out)
		return "", false, nil
	case line, open := <-q.lines:
		if !open {
			fmt.Fprintln(q.out)
			return "", false, nil
		}
		if line.err != nil {
			return "", false, fmt.Errorf("failed to read question: %w", line.err)
		}
		question = strings.TrimSpace(line.text)
		return question, question != "", nil
	}
}

// Close stops reading input. Lines not yet asked are dropped.
func (q *Questions) Close() {
	q.stop.Do(func() { close(q.done) })
}

// scan feeds lines to Next. A blocked read only ends when input arrives, so
// the goroutine may outlive Close until then.
func (q *Questions) scan() {
	defer close(q.lines)
	for q.scanner.Scan() {
		select {
		case q.lines <- inputLine{text: q.scanner.Text()}:
		case <-q.done:
			return
		}
	}
	if err := q.scanner.Err(); err != nil {
		select {
		case q.lines <- inputLine{err: err}:
		case <-q.done:
		}
	}
}
