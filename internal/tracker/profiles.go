package tracker

import (
	"context"
	"fmt"

	"github.com/Veraticus/harmony/internal/common"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/service"
	"github.com/Veraticus/harmony/internal/storage"
)

// Profiles manages student profiles across the store.
type Profiles struct {
	store service.DocumentStore
	opts  options
}

// NewProfiles creates a profile service.
func NewProfiles(store service.DocumentStore, opts ...Option) *Profiles {
	return &Profiles{store: store, opts: buildOptions(opts)}
}

func (p *Profiles) document(studentID string) *storage.Document[model.Profile] {
	return storage.NewDocument(p.store, studentID, service.NamespaceProfile, keyProfile, func() model.Profile {
		return model.DefaultProfile(studentID)
	})
}

func (p *Profiles) changed(studentID string, err error) error {
	if err == nil && p.opts.onChange != nil {
		p.opts.onChange(studentID)
	}
	return err
}

// Save creates or replaces a profile. Empty fields take their defaults and
// created_at is kept from an existing profile.
func (p *Profiles) Save(ctx context.Context, profile model.Profile) (model.Profile, error) {
	if !model.ValidSubjectID(profile.StudentID) {
		return model.Profile{}, fmt.Errorf("%w: student id %q", common.ErrInvalidInput, profile.StudentID)
	}
	profile.ApplyDefaults()
	if err := model.Validate(profile); err != nil {
		return model.Profile{}, err
	}

	saved, err := p.document(profile.StudentID).Update(ctx, func(current *model.Profile) error {
		createdAt := current.CreatedAt
		*current = profile
		if !createdAt.IsZero() {
			current.CreatedAt = createdAt
		}
		if current.CreatedAt.IsZero() {
			current.CreatedAt = p.opts.now()
		}
		return nil
	})
	return saved, p.changed(profile.StudentID, err)
}

// Load returns a profile with defaults applied. A missing profile reports false.
func (p *Profiles) Load(ctx context.Context, studentID string) (model.Profile, bool, error) {
	profile, found, err := p.document(studentID).Load(ctx)
	if err != nil {
		return model.Profile{}, false, err
	}
	profile.ApplyDefaults()
	if profile.StudentID == "" {
		profile.StudentID = studentID
	}
	return profile, found, nil
}

// List returns the ids of every stored profile, sorted.
func (p *Profiles) List(ctx context.Context) ([]string, error) {
	return p.store.Subjects(ctx, service.NamespaceProfile, keyProfile)
}

// DisplayName returns the full name of a student, or the id when the
// profile is missing or unreadable.
func (p *Profiles) DisplayName(ctx context.Context, studentID string) string {
	profile, found, err := p.Load(ctx, studentID)
	if err != nil || !found {
		return studentID
	}
	return profile.FullName
}

// Touch records a login.
func (p *Profiles) Touch(ctx context.Context, studentID string) error {
	_, err := p.document(studentID).Update(ctx, func(current *model.Profile) error {
		current.LastLogin = p.opts.now()
		return nil
	})
	return err
}

// UpdatePreferences applies fn to the stored preferences.
func (p *Profiles) UpdatePreferences(ctx context.Context, studentID string, fn func(*model.Preferences)) (model.Profile, error) {
	updated, err := p.document(studentID).Update(ctx, func(current *model.Profile) error {
		current.ApplyDefaults()
		fn(&current.Preferences)
		return nil
	})
	return updated, p.changed(studentID, err)
}

// Delete removes the profile and every document the student owns.
func (p *Profiles) Delete(ctx context.Context, studentID string) error {
	return p.changed(studentID, p.store.DeleteSubject(ctx, studentID))
}
