package tracker

import (
	"context"

	"github.com/Veraticus/harmony/internal/content"
	"github.com/Veraticus/harmony/internal/model"
	"github.com/Veraticus/harmony/internal/service"
	"github.com/Veraticus/harmony/internal/storage"
)

// SavedResource joins a bookmark with the resource it points at.
type SavedResource struct {
	Resource model.Resource `json:"resource"`
	Bookmark model.Bookmark `json:"bookmark"`
}

// Resources manages the resource directory, bookmarks and usage history.
type Resources struct {
	s         *session
	directory *storage.Collection[model.Resource, *model.Resource]
	bookmarks *storage.Collection[model.Bookmark, *model.Bookmark]
	usage     *storage.Collection[model.UsageLog, *model.UsageLog]
}

func newResources(s *session) *Resources {
	ns := service.NamespaceResources
	return &Resources{
		s:         s,
		directory: newCollection[model.Resource](s, ns, keyDir),
		bookmarks: newCollection[model.Bookmark](s, ns, keyBookmark),
		usage:     newCollection[model.UsageLog](s, ns, keyUsage),
	}
}

// AddResource stores a resource in the student's directory.
func (r *Resources) AddResource(ctx context.Context, res model.Resource) (model.Resource, error) {
	added, err := r.directory.Add(ctx, res)
	return added, r.s.changed(err)
}

// Directory lists the student's own resources.
func (r *Resources) Directory(ctx context.Context) ([]model.Resource, error) {
	return r.directory.List(ctx)
}

// Campus lists campus resources: the student's own when any exist, the
// built-in ones otherwise. A non-empty category filters the result.
func (r *Resources) Campus(ctx context.Context, category string) ([]model.Resource, error) {
	return r.byType(ctx, ResourceTypeCampus, campusResources, category)
}

// External lists external resources the same way Campus does.
func (r *Resources) External(ctx context.Context, category string) ([]model.Resource, error) {
	return r.byType(ctx, ResourceTypeExternal, externalResources, category)
}

func (r *Resources) byType(ctx context.Context, kind string, defaults []model.Resource, category string) ([]model.Resource, error) {
	own, err := r.directory.List(ctx)
	if err != nil {
		return nil, err
	}
	matches := filter(own, func(res model.Resource) bool { return res.Type == kind })
	if len(matches) == 0 {
		matches = append([]model.Resource(nil), defaults...)
	}
	if category == "" {
		return matches, nil
	}
	return filter(matches, func(res model.Resource) bool { return res.Category == category }), nil
}

// Bookmark pins a resource, replacing the notes of an existing bookmark.
func (r *Resources) Bookmark(ctx context.Context, resourceID, notes string) (model.Bookmark, error) {
	var saved model.Bookmark
	now := r.s.now()
	_, err := r.bookmarks.Edit(ctx, func(existing []model.Bookmark) ([]model.Bookmark, error) {
		for i := range existing {
			if existing[i].ResourceID == resourceID {
				existing[i].Notes = notes
				existing[i].UpdatedAt = now
				saved = existing[i]
				return existing, nil
			}
		}
		saved = model.Bookmark{
			Base:       model.Base{ID: model.NewID(), CreatedAt: now},
			ResourceID: resourceID,
			Notes:      notes,
		}
		return append(existing, saved), nil
	})
	if err != nil {
		return model.Bookmark{}, err
	}
	return saved, r.s.changed(nil)
}

// RemoveBookmark unpins a resource. A missing bookmark reports false.
func (r *Resources) RemoveBookmark(ctx context.Context, resourceID string) (bool, error) {
	removed := false
	_, err := r.bookmarks.Edit(ctx, func(existing []model.Bookmark) ([]model.Bookmark, error) {
		kept := existing[:0]
		for _, b := range existing {
			if b.ResourceID == resourceID {
				removed = true
				continue
			}
			kept = append(kept, b)
		}
		return kept, nil
	})
	if err != nil || !removed {
		return false, err
	}
	return true, r.s.changed(nil)
}

// Bookmarks returns bookmarks joined with their resources. Bookmarks whose
// resource no longer exists are skipped.
func (r *Resources) Bookmarks(ctx context.Context) ([]SavedResource, error) {
	marks, err := r.bookmarks.List(ctx)
	if err != nil {
		return nil, err
	}
	own, err := r.directory.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.Resource, len(own)+len(campusResources)+len(externalResources))
	for _, res := range append(append([]model.Resource(nil), campusResources...), externalResources...) {
		byID[res.ID] = res
	}
	for _, res := range own {
		byID[res.ID] = res
	}

	out := make([]SavedResource, 0, len(marks))
	for _, b := range marks {
		if res, ok := byID[b.ResourceID]; ok {
			out = append(out, SavedResource{Resource: res, Bookmark: b})
		}
	}
	return out, nil
}

// LogUsage records an interaction with a resource; action defaults to "viewed".
func (r *Resources) LogUsage(ctx context.Context, resourceID, action string) (model.UsageLog, error) {
	if action == "" {
		action = "viewed"
	}
	added, err := r.usage.Add(ctx, model.UsageLog{At: r.s.now(), ResourceID: resourceID, Action: action})
	return added, r.s.changed(err)
}

// Usage lists the usage history.
func (r *Resources) Usage(ctx context.Context) ([]model.UsageLog, error) {
	return r.usage.List(ctx)
}

// Scholarships returns the built-in scholarship catalog.
func (r *Resources) Scholarships() []model.Scholarship {
	return append([]model.Scholarship(nil), scholarships...)
}

// ForSubject returns built-in learning resources for a subject.
func (r *Resources) ForSubject(subject string) []model.Item {
	return content.SubjectResources(subject)
}
