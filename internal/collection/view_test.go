package collection_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hrdesk/internal/collection"
	"hrdesk/internal/domain"
	"hrdesk/mocks"
)

func candidateFilters() *collection.Registry {
	r := collection.NewRegistry()
	r.Register("with-pdf", func(rec domain.Record) bool {
		return rec.Str("cv_url") != ""
	})
	return r
}

func newTestView(records ...domain.Record) *collection.View {
	v := collection.New(context.Background(), collection.Config{
		SearchFields: []string{"name", "position", "email", "phone"},
		DateFields:   map[string]bool{"created_at": true},
		Filters:      candidateFilters(),
	})
	v.Load(records)
	return v
}

func ids(records []domain.Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ID())
	}
	return out
}

// --- Search ---

func TestSearch_MatchesAnyFieldCaseInsensitive(t *testing.T) {
	v := newTestView(
		domain.Record{"id": "1", "name": "Alice", "position": "Engineer"},
		domain.Record{"id": "2", "name": "Bob", "position": "Acme Liaison"},
	)

	for _, query := range []string{"ALICE", "alice", "lic"} {
		v.SetSearchText(context.Background(), query)
		visible, _ := v.Visible()
		assert.Contains(t, ids(visible), "1", "query %q should match Alice", query)
	}

	// "acme" lives only in Bob's position; Alice must not match.
	v.SetSearchText(context.Background(), "acme")
	visible, _ := v.Visible()
	assert.Equal(t, []string{"2"}, ids(visible))
}

func TestSearch_MissingFieldStillChecksOthers(t *testing.T) {
	v := newTestView(
		domain.Record{"id": "1", "email": "alice@example.com"}, // no name field
	)
	v.SetSearchText(context.Background(), "alice")
	visible, _ := v.Visible()
	assert.Equal(t, []string{"1"}, ids(visible))
}

// --- Sort ---

func TestSort_StablePreservesTieOrder(t *testing.T) {
	v := newTestView(
		domain.Record{"id": "1", "name": "B"},
		domain.Record{"id": "2", "name": "A"},
		domain.Record{"id": "3", "name": "A"},
	)
	v.SetSort("name")
	visible, state := v.Visible()

	assert.Equal(t, []string{"2", "3", "1"}, ids(visible))
	assert.Equal(t, domain.SortAsc, state.SortDir)
}

func TestSort_SecondCallTogglesDirection(t *testing.T) {
	v := newTestView(
		domain.Record{"id": "1", "name": "B"},
		domain.Record{"id": "2", "name": "A"},
		domain.Record{"id": "3", "name": "A"},
	)
	v.SetSort("name")
	v.SetSort("name")
	visible, state := v.Visible()

	assert.Equal(t, "name", state.SortField)
	assert.Equal(t, domain.SortDesc, state.SortDir)
	// Descending reverses the comparison only; the A/A tie keeps original order.
	assert.Equal(t, []string{"1", "2", "3"}, ids(visible))
}

func TestSort_DateFieldComparesAsDate(t *testing.T) {
	// As strings "05/01/2026" sorts before "2025-12-30"; as dates it is later.
	v := newTestView(
		domain.Record{"id": "1", "name": "x", "created_at": "05/01/2026"},
		domain.Record{"id": "2", "name": "y", "created_at": "2025-12-30"},
	)
	v.SetSort("created_at")
	visible, _ := v.Visible()
	assert.Equal(t, []string{"2", "1"}, ids(visible))
}

func TestSort_MissingFieldSortsFirstAscending(t *testing.T) {
	v := newTestView(
		domain.Record{"id": "1", "name": "Zed"},
		domain.Record{"id": "2"},
	)
	v.SetSort("name")
	visible, _ := v.Visible()
	assert.Equal(t, []string{"2", "1"}, ids(visible))
}

// --- Filter composition ---

func TestFilter_ComposesWithSearchViaAnd(t *testing.T) {
	v := newTestView(
		domain.Record{"id": "1", "name": "Acme Applicant", "cv_url": "cv/1.pdf"},
		domain.Record{"id": "2", "name": "Acme Other"},
		domain.Record{"id": "3", "name": "Unrelated", "cv_url": "cv/3.pdf"},
	)
	v.SetFilterKey("with-pdf")
	v.SetSearchText(context.Background(), "acme")
	visible, _ := v.Visible()
	assert.Equal(t, []string{"1"}, ids(visible))
}

func TestFilter_UnknownKeyMeansAll(t *testing.T) {
	v := newTestView(
		domain.Record{"id": "1", "name": "a"},
		domain.Record{"id": "2", "name": "b"},
	)
	v.SetFilterKey("no-such-filter")
	visible, _ := v.Visible()
	assert.Len(t, visible, 2)
}

// --- Loading ---

func TestLoad_StaleResolutionDiscarded(t *testing.T) {
	v := newTestView()

	first := v.StartLoad()
	second := v.StartLoad()

	// The later-initiated fetch resolves first and wins.
	require.True(t, v.CompleteLoad(second, []domain.Record{{"id": "new"}}))
	require.False(t, v.CompleteLoad(first, []domain.Record{{"id": "old"}}))

	visible, _ := v.Visible()
	assert.Equal(t, []string{"new"}, ids(visible))
}

func TestLoad_KeepsFilterState(t *testing.T) {
	v := newTestView(domain.Record{"id": "1", "name": "Alice"})
	v.SetSearchText(context.Background(), "ali")

	v.Load([]domain.Record{
		{"id": "1", "name": "Alice"},
		{"id": "2", "name": "Bob"},
	})
	visible, state := v.Visible()
	assert.Equal(t, "ali", state.SearchText)
	assert.Equal(t, []string{"1"}, ids(visible))
}

// --- Local mutation ---

func TestRemove_MissingIDIsNoOp(t *testing.T) {
	v := newTestView(domain.Record{"id": "1", "name": "Alice"})
	v.Remove("does-not-exist")
	visible, _ := v.Visible()
	assert.Equal(t, []string{"1"}, ids(visible))
}

func TestUpsert_ReplacesAtID(t *testing.T) {
	v := newTestView(domain.Record{"id": "1", "name": "Alice"})

	v.Upsert(domain.Record{"id": "1", "name": "Alicia"})
	assert.Equal(t, 1, v.Len())

	v.Upsert(domain.Record{"id": "2", "name": "Bob"})
	assert.Equal(t, 2, v.Len())
}

// --- Search persistence ---

func TestSearchText_RestoredFromStore(t *testing.T) {
	store := new(mocks.MockKeyValue)
	store.On("Get", mock.Anything, "search:u1:candidates").Return("ali", nil)
	store.On("Set", mock.Anything, "search:u1:candidates", "bob").Return(nil)

	v := collection.New(context.Background(), collection.Config{
		ScreenKey:    "u1:candidates",
		Store:        store,
		SearchFields: []string{"name"},
	})
	_, state := v.Visible()
	assert.Equal(t, "ali", state.SearchText)

	v.SetSearchText(context.Background(), "bob")
	store.AssertExpectations(t)
}
