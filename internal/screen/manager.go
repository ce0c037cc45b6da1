package screen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hrdesk/internal/domain"
	"hrdesk/internal/port"
	"hrdesk/internal/visibility"
)

// Manager owns the live screens, one per (actor, resource kind). A screen is
// created on first access (the "mount": it restores search text and performs
// the initial fetch) and released on unmount. No screen is shared between
// actors.
type Manager struct {
	remote   port.RemoteDirectory
	vis      *visibility.Filter
	store    port.KeyValue
	now      func() time.Time
	profiles map[domain.ResourceKind]Profile

	mu      sync.Mutex
	screens map[string]*ListScreen
}

// NewManager creates a Manager over the fixed screen profiles.
func NewManager(remote port.RemoteDirectory, vis *visibility.Filter, store port.KeyValue) *Manager {
	return &Manager{
		remote:   remote,
		vis:      vis,
		store:    store,
		now:      time.Now,
		profiles: Profiles(),
		screens:  make(map[string]*ListScreen),
	}
}

// WithClock overrides the clock used by time-based filter predicates.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

func screenKey(actor domain.ActingUser, kind domain.ResourceKind) string {
	return fmt.Sprintf("%s:%s", actor.IdentityKey, kind)
}

// Screen returns the actor's screen for kind, mounting it on first access.
// The initial fetch failure is not fatal: the screen comes up empty with its
// banner set and a retry available through Refresh.
func (m *Manager) Screen(ctx context.Context, actor domain.ActingUser, kind domain.ResourceKind) (*ListScreen, error) {
	profile, ok := m.profiles[kind]
	if !ok {
		return nil, domain.ErrUnknownResource
	}

	key := screenKey(actor, kind)
	m.mu.Lock()
	s, ok := m.screens[key]
	if !ok {
		s = NewListScreen(ctx, profile, m.remote, m.vis, m.store, actor, m.now)
		m.screens[key] = s
	}
	m.mu.Unlock()

	if !ok {
		_ = s.Refresh(ctx)
	}
	return s, nil
}

// Release drops the actor's screen for kind, mirroring component unmount.
func (m *Manager) Release(actor domain.ActingUser, kind domain.ResourceKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.screens, screenKey(actor, kind))
}

// AttendanceSummary fetches the attendance collection and derives the
// per-day chart series.
func (m *Manager) AttendanceSummary(ctx context.Context) ([]DaySummary, error) {
	records, err := m.remote.FetchAll(ctx, domain.KindAttendance)
	if err != nil {
		return nil, domain.FailureOf(err)
	}
	return SummarizeAttendance(records), nil
}
