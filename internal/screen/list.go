package screen

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"hrdesk/internal/collection"
	"hrdesk/internal/domain"
	"hrdesk/internal/port"
	"hrdesk/internal/visibility"
)

// ListScreen owns one CollectionView for one (actor, resource kind) pair and
// glues it to the remote backend and the visibility filter. A fetch failure
// keeps the previous collection visible (stale-but-present) behind an error
// banner; a write failure commits no local mutation.
type ListScreen struct {
	profile Profile
	remote  port.RemoteDirectory
	vis     *visibility.Filter
	actor   domain.ActingUser
	view    *collection.View

	mu     sync.Mutex
	banner string
}

// NewListScreen builds the screen and its view, restoring persisted search
// text. The collection is empty until the first Refresh.
func NewListScreen(
	ctx context.Context,
	profile Profile,
	remote port.RemoteDirectory,
	vis *visibility.Filter,
	store port.KeyValue,
	actor domain.ActingUser,
	now func() time.Time,
) *ListScreen {
	if now == nil {
		now = time.Now
	}
	view := collection.New(ctx, collection.Config{
		ScreenKey:    fmt.Sprintf("%s:%s", actor.IdentityKey, profile.Kind),
		Store:        store,
		SearchFields: profile.SearchFields,
		DateFields:   profile.DateFields,
		Filters:      profile.BuildFilters(now),
		DefaultSort:  profile.DefaultSort,
	})
	return &ListScreen{
		profile: profile,
		remote:  remote,
		vis:     vis,
		actor:   actor,
		view:    view,
	}
}

// Refresh fetches the collection from the remote backend. Concurrent
// refreshes are last-initiated-wins: a slow stale response never overwrites a
// newer one. On failure the previous collection stays visible and the banner
// carries the reason.
func (s *ListScreen) Refresh(ctx context.Context) error {
	token := s.view.StartLoad()

	records, err := s.remote.FetchAll(ctx, s.profile.Kind)
	if err != nil {
		f := domain.FailureOf(err)
		log.Printf("ListScreen.Refresh: fetching %s: %v", s.profile.Kind, err)
		// A stale failure must not overwrite the banner of a newer refresh.
		if s.view.CurrentLoad(token) {
			s.setBanner(f.Reason)
		}
		return f
	}

	if s.profile.OwnerScoped && s.vis != nil {
		records = s.vis.Visible(records, s.actor)
	}
	if s.view.CompleteLoad(token, records) {
		s.setBanner("")
	}
	return nil
}

// CreateRecord validates locally, creates remotely, then mirrors the stored
// record into the view. Validation failures never reach the backend.
func (s *ListScreen) CreateRecord(ctx context.Context, rec domain.Record) (domain.Record, error) {
	if s.profile.ValidateCreate != nil {
		if err := s.profile.ValidateCreate(rec); err != nil {
			return nil, err
		}
	}
	created, err := s.remote.Create(ctx, s.profile.Kind, rec)
	if err != nil {
		return nil, domain.FailureOf(err)
	}
	s.view.Upsert(created)
	return created, nil
}

// UpdateRecord patches remotely and mirrors the stored record into the view.
func (s *ListScreen) UpdateRecord(ctx context.Context, id string, partial domain.Record) (domain.Record, error) {
	updated, err := s.remote.Update(ctx, s.profile.Kind, id, partial)
	if err != nil {
		return nil, domain.FailureOf(err)
	}
	s.view.Upsert(updated)
	return updated, nil
}

// DeleteRecord deletes remotely, then removes locally. The local state is
// untouched when the remote delete fails.
func (s *ListScreen) DeleteRecord(ctx context.Context, id string) error {
	if err := s.remote.Delete(ctx, s.profile.Kind, id); err != nil {
		return domain.FailureOf(err)
	}
	s.view.Remove(id)
	return nil
}

// SetSearchText forwards to the view (which persists the text).
func (s *ListScreen) SetSearchText(ctx context.Context, text string) {
	s.view.SetSearchText(ctx, text)
}

// SetFilterKey forwards to the view.
func (s *ListScreen) SetFilterKey(key string) {
	s.view.SetFilterKey(key)
}

// SetSort forwards to the view.
func (s *ListScreen) SetSort(field string) {
	s.view.SetSort(field)
}

// Visible returns the derived collection and its filter state.
func (s *ListScreen) Visible() ([]domain.Record, collection.FilterState) {
	return s.view.Visible()
}

// ExportFields returns the ordered columns for CSV/XLSX export.
func (s *ListScreen) ExportFields() []string {
	return s.profile.ExportFields
}

// Banner returns the current error banner, or "".
func (s *ListScreen) Banner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.banner
}

func (s *ListScreen) setBanner(msg string) {
	s.mu.Lock()
	s.banner = msg
	s.mu.Unlock()
}
