package collection

import (
	"context"
	"log"
	"sync"

	"hrdesk/internal/domain"
	"hrdesk/internal/port"
)

// Config wires a View to its screen.
type Config struct {
	// ScreenKey namespaces the persisted search text for this screen.
	ScreenKey string
	// Store persists the search text across reloads. Optional.
	Store port.KeyValue

	SearchFields []string
	DateFields   map[string]bool
	Filters      *Registry
	DefaultSort  string
}

// View holds the full in-memory record set for one screen and keeps a derived
// (filtered, searched, sorted) projection consistent with it. It never returns
// errors and never performs I/O beyond mirroring the search text to the
// injected store.
type View struct {
	mu      sync.Mutex
	cfg     Config
	records []domain.Record
	state   FilterState
	visible []domain.Record

	// loadSeq tags each initiated load; only the most recently initiated
	// load may complete, so a slow stale fetch cannot overwrite a newer one.
	loadSeq    uint64
	appliedSeq uint64
}

// New creates a View, restoring any persisted search text for the screen.
func New(ctx context.Context, cfg Config) *View {
	v := &View{
		cfg: cfg,
		state: FilterState{
			SortField: cfg.DefaultSort,
			SortDir:   domain.SortAsc,
		},
	}
	if cfg.Store != nil && cfg.ScreenKey != "" {
		text, err := cfg.Store.Get(ctx, searchKey(cfg.ScreenKey))
		if err != nil {
			log.Printf("collection.New: restoring search text for %s: %v", cfg.ScreenKey, err)
		} else {
			v.state.SearchText = text
		}
	}
	v.rederive()
	return v
}

func searchKey(screenKey string) string {
	return "search:" + screenKey
}

// StartLoad registers the start of a fetch and returns its token. The token
// must be passed to CompleteLoad when the fetch resolves.
func (v *View) StartLoad() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loadSeq++
	return v.loadSeq
}

// CompleteLoad replaces the backing collection if token belongs to the most
// recently initiated load. Stale resolutions are discarded and false is
// returned. Filter state is untouched either way.
func (v *View) CompleteLoad(token uint64, records []domain.Record) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if token != v.loadSeq || token <= v.appliedSeq {
		return false
	}
	v.appliedSeq = token
	v.records = append([]domain.Record(nil), records...)
	v.rederive()
	return true
}

// CurrentLoad reports whether token still belongs to the most recently
// initiated load. Lets callers discard side effects of a superseded fetch,
// not just its records.
func (v *View) CurrentLoad(token uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return token == v.loadSeq
}

// Load synchronously replaces the backing collection.
func (v *View) Load(records []domain.Record) {
	v.CompleteLoad(v.StartLoad(), records)
}

// SetSearchText updates the search text, re-derives, and mirrors the text to
// the durable store. Store errors are logged, never surfaced: search must keep
// working when the store is down.
func (v *View) SetSearchText(ctx context.Context, text string) {
	v.mu.Lock()
	v.state.SearchText = text
	v.rederive()
	cfg := v.cfg
	v.mu.Unlock()

	if cfg.Store != nil && cfg.ScreenKey != "" {
		if err := cfg.Store.Set(ctx, searchKey(cfg.ScreenKey), text); err != nil {
			log.Printf("collection.SetSearchText: persisting search text for %s: %v", cfg.ScreenKey, err)
		}
	}
}

// SetFilterKey activates a categorical filter. Unregistered keys behave as
// "all".
func (v *View) SetFilterKey(key string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.FilterKey = key
	v.rederive()
}

// SetSort sorts by field ascending, or toggles the direction when field is
// already the sort field.
func (v *View) SetSort(field string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state.SortField == field {
		v.state.SortDir = v.state.SortDir.Toggle()
	} else {
		v.state.SortField = field
		v.state.SortDir = domain.SortAsc
	}
	v.rederive()
}

// Remove drops the record with the given id, mirroring a successful remote
// delete. Removing an absent id is a no-op.
func (v *View) Remove(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, rec := range v.records {
		if rec.ID() == id {
			v.records = append(v.records[:i], v.records[i+1:]...)
			v.rederive()
			return
		}
	}
}

// Upsert replaces the record at its id, or appends it when new, mirroring a
// successful remote create or update.
func (v *View) Upsert(rec domain.Record) {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := rec.ID()
	for i, existing := range v.records {
		if id != "" && existing.ID() == id {
			v.records[i] = rec
			v.rederive()
			return
		}
	}
	v.records = append(v.records, rec)
	v.rederive()
}

// Visible returns the current derived collection and the filter state driving
// it. The returned slice is a copy safe for the caller to hold.
func (v *View) Visible() ([]domain.Record, FilterState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := append([]domain.Record(nil), v.visible...)
	return out, v.state
}

// Len returns the size of the backing (unfiltered) collection.
func (v *View) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.records)
}

func (v *View) rederive() {
	v.visible = Derive(v.records, v.state, DeriveOptions{
		SearchFields: v.cfg.SearchFields,
		DateFields:   v.cfg.DateFields,
		Filters:      v.cfg.Filters,
	})
}
