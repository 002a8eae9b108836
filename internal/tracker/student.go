package tracker

import (
	"fmt"
	"time"

	"github.com/Veraticus/harmony/internal/common"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/service"
	"github.com/Veraticus/harmony/internal/storage"
)

// Option configures a Student or Profiles service.
type Option func(*options)

type options struct {
	now      func() time.Time
	onChange func(studentID string)
}

// WithClock replaces the clock used for timestamps and "today".
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithChangeHook registers fn to run after every successful write.
func WithChangeHook(fn func(studentID string)) Option {
	return func(o *options) { o.onChange = fn }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// session is the state shared by one student's services.
type session struct {
	store service.DocumentStore
	opts  options
	id    string
}

func (s *session) now() time.Time { return s.opts.now() }

func (s *session) today() model.Date { return model.NewDate(s.opts.now()) }

// changed runs the change hook when err is nil and returns err.
func (s *session) changed(err error) error {
	if err == nil && s.opts.onChange != nil {
		s.opts.onChange(s.id)
	}
	return err
}

func newCollection[T any, PT interface {
	*T
	model.Record
}](s *session, namespace, key string) *storage.Collection[T, PT] {
	return storage.NewCollection[T, PT](s.store, s.id, namespace, key).WithClock(s.opts.now)
}

// Student is the explicit session object for one student.
type Student struct {
	Academic  *Academic
	Finance   *Finance
	Wellness  *Wellness
	Career    *Career
	Resources *Resources
	ID        string
}

// New binds the record services to studentID.
func New(store service.DocumentStore, studentID string, opts ...Option) (*Student, error) {
	if !model.ValidSubjectID(studentID) {
		return nil, common.NewUserError(
			"student id may contain only letters, digits, '.', '_' and '-'",
			fmt.Errorf("%w: student id %q", common.ErrInvalidInput, studentID),
		)
	}
	s := &session{store: store, id: studentID, opts: buildOptions(opts)}
	return &Student{
		ID:        studentID,
		Academic:  newAcademic(s),
		Finance:   newFinance(s),
		Wellness:  newWellness(s),
		Career:    newCareer(s),
		Resources: newResources(s),
	}, nil
}
