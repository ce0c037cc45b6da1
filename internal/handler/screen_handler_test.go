package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hrdesk/internal/domain"
	"hrdesk/internal/screen"
	"hrdesk/internal/storage/memstore"
	"hrdesk/mocks"
)

const sessionToken = "valid-session"

func newScreenRouter(t *testing.T) (*gin.Engine, *mocks.MockRemoteDirectory) {
	t.Helper()
	auth := new(mocks.MockAuthService)
	auth.On("ValidateToken", sessionToken).
		Return(&domain.ActingUser{IdentityKey: "shafiq", EmployeeID: "E001"}, nil).Maybe()
	auth.On("ValidateToken", mock.Anything).
		Return(nil, domain.ErrUnauthorized).Maybe()

	remote := new(mocks.MockRemoteDirectory)
	mgr := screen.NewManager(remote, nil, memstore.New())
	return newTestRouter(auth, mgr), remote
}

// --- Authentication ---

func TestScreens_RequireSessionToken(t *testing.T) {
	r, _ := newScreenRouter(t)

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/screens/candidates", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/screens/candidates", nil, "bogus")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestScreens_UnknownKind(t *testing.T) {
	r, _ := newScreenRouter(t)

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/screens/payroll", nil, sessionToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNKNOWN_RESOURCE", resp.Error.Code)
}

// --- Projection and list controls ---

func TestScreens_GetMountsAndReturnsProjection(t *testing.T) {
	r, remote := newScreenRouter(t)
	remote.On("FetchAll", mock.Anything, domain.KindCandidates).
		Return([]domain.Record{
			{"id": "1", "name": "Alice", "position": "Engineer"},
			{"id": "2", "name": "Bob", "position": "Designer"},
		}, nil).Once()

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/screens/candidates", nil, sessionToken)
	require.Equal(t, http.StatusOK, w.Code)
	view := dataMap(t, resp)
	assert.Equal(t, "candidates", view["kind"])
	records, _ := view["records"].([]any)
	assert.Len(t, records, 2)

	// The screen stays mounted: a second GET does not refetch.
	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/screens/candidates", nil, sessionToken)
	assert.Equal(t, http.StatusOK, w.Code)
	remote.AssertExpectations(t)
}

func TestScreens_SearchNarrowsProjection(t *testing.T) {
	r, remote := newScreenRouter(t)
	remote.On("FetchAll", mock.Anything, domain.KindCandidates).
		Return([]domain.Record{
			{"id": "1", "name": "Alice", "position": "Engineer"},
			{"id": "2", "name": "Bob", "position": "Designer"},
		}, nil).Once()

	w, resp := doJSON(t, r, http.MethodPut, "/api/v1/screens/candidates/search",
		gin.H{"text": "ali"}, sessionToken)
	require.Equal(t, http.StatusOK, w.Code)
	view := dataMap(t, resp)
	records, _ := view["records"].([]any)
	require.Len(t, records, 1)
	state, _ := view["state"].(map[string]any)
	assert.Equal(t, "ali", state["search_text"])
}

func TestScreens_SortRequiresField(t *testing.T) {
	r, remote := newScreenRouter(t)
	remote.On("FetchAll", mock.Anything, domain.KindCandidates).
		Return([]domain.Record{}, nil).Once()

	w, resp := doJSON(t, r, http.MethodPut, "/api/v1/screens/candidates/sort",
		gin.H{}, sessionToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestScreens_RefreshFailureReturnsStaleRecordsWithBanner(t *testing.T) {
	r, remote := newScreenRouter(t)
	remote.On("FetchAll", mock.Anything, domain.KindCandidates).
		Return([]domain.Record{{"id": "1", "name": "Alice"}}, nil).Once()
	remote.On("FetchAll", mock.Anything, domain.KindCandidates).
		Return(nil, domain.NewFailure(domain.FailureNetwork, "remote backend unreachable")).Once()

	w, _ := doJSON(t, r, http.MethodGet, "/api/v1/screens/candidates", nil, sessionToken)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/screens/candidates/refresh", nil, sessionToken)
	require.Equal(t, http.StatusOK, w.Code, "stale projection still renders")
	view := dataMap(t, resp)
	records, _ := view["records"].([]any)
	assert.Len(t, records, 1)
	assert.Equal(t, "remote backend unreachable", view["banner"])
}

// --- Writes ---

func TestScreens_CreateValidationFailure(t *testing.T) {
	r, remote := newScreenRouter(t)
	remote.On("FetchAll", mock.Anything, domain.KindLeaves).
		Return([]domain.Record{}, nil).Once()

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/screens/leaves/records",
		gin.H{"employee_code": "E001"}, sessionToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
	assert.Equal(t, "leave type is required", resp.Error.Message)
	remote.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestScreens_DeleteRemoteNotFound(t *testing.T) {
	r, remote := newScreenRouter(t)
	remote.On("FetchAll", mock.Anything, domain.KindCandidates).
		Return([]domain.Record{}, nil).Once()
	remote.On("Delete", mock.Anything, domain.KindCandidates, "42").
		Return(domain.NewFailure(domain.FailureNotFound, "no such candidate"))

	w, resp := doJSON(t, r, http.MethodDelete, "/api/v1/screens/candidates/records/42", nil, sessionToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "no such candidate", resp.Error.Message)
}

// --- Export ---

func TestScreens_ExportCSV(t *testing.T) {
	r, remote := newScreenRouter(t)
	remote.On("FetchAll", mock.Anything, domain.KindCandidates).
		Return([]domain.Record{{"id": "1", "name": "Alice"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/screens/candidates/export?format=csv", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "candidates.csv")
	assert.True(t, strings.Contains(w.Body.String(), "Alice"))
}

func TestScreens_ExportRejectsUnknownFormat(t *testing.T) {
	r, remote := newScreenRouter(t)
	remote.On("FetchAll", mock.Anything, domain.KindCandidates).
		Return([]domain.Record{}, nil).Once()

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/screens/candidates/export?format=pdf", nil, sessionToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_FORMAT", resp.Error.Code)
}

// --- Release ---

func TestScreens_ReleaseRemountsOnNextGet(t *testing.T) {
	r, remote := newScreenRouter(t)
	remote.On("FetchAll", mock.Anything, domain.KindCandidates).
		Return([]domain.Record{}, nil).Twice()

	w, _ := doJSON(t, r, http.MethodGet, "/api/v1/screens/candidates", nil, sessionToken)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, "/api/v1/screens/candidates", nil, sessionToken)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/screens/candidates", nil, sessionToken)
	require.Equal(t, http.StatusOK, w.Code)
	remote.AssertExpectations(t)
}
