package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hrdesk/internal/collection"
	"hrdesk/internal/domain"
	"hrdesk/internal/export"
	"hrdesk/internal/middleware"
	"hrdesk/internal/screen"
)

// ScreenHandler serves the list screens: visible projection, list controls,
// record writes, and export.
type ScreenHandler struct {
	mgr *screen.Manager
}

// NewScreenHandler creates a ScreenHandler.
func NewScreenHandler(mgr *screen.Manager) *ScreenHandler {
	return &ScreenHandler{mgr: mgr}
}

// screenView is the rendered state of one list screen.
type screenView struct {
	Kind    domain.ResourceKind    `json:"kind"`
	Records []domain.Record        `json:"records"`
	State   collection.FilterState `json:"state"`
	Banner  string                 `json:"banner,omitempty"`
}

func (h *ScreenHandler) screenFor(c *gin.Context) (*screen.ListScreen, bool) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	s, err := h.mgr.Screen(c.Request.Context(), actor, domain.ResourceKind(c.Param("kind")))
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	return s, true
}

func renderScreen(c *gin.Context, kind domain.ResourceKind, s *screen.ListScreen) {
	records, state := s.Visible()
	RespondOK(c, screenView{Kind: kind, Records: records, State: state, Banner: s.Banner()})
}

// Get returns the screen's current visible projection and filter state.
func (h *ScreenHandler) Get(c *gin.Context) {
	s, ok := h.screenFor(c)
	if !ok {
		return
	}
	renderScreen(c, domain.ResourceKind(c.Param("kind")), s)
}

// Refresh re-fetches the collection. The previous records stay visible on
// failure; the response then carries the error banner alongside them.
func (h *ScreenHandler) Refresh(c *gin.Context) {
	s, ok := h.screenFor(c)
	if !ok {
		return
	}
	_ = s.Refresh(c.Request.Context())
	renderScreen(c, domain.ResourceKind(c.Param("kind")), s)
}

type searchRequest struct {
	Text string `json:"text"`
}

// Search updates the screen's search text.
func (h *ScreenHandler) Search(c *gin.Context) {
	s, ok := h.screenFor(c)
	if !ok {
		return
	}
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	s.SetSearchText(c.Request.Context(), req.Text)
	renderScreen(c, domain.ResourceKind(c.Param("kind")), s)
}

type filterRequest struct {
	Key string `json:"key"`
}

// Filter activates a categorical filter.
func (h *ScreenHandler) Filter(c *gin.Context) {
	s, ok := h.screenFor(c)
	if !ok {
		return
	}
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	s.SetFilterKey(req.Key)
	renderScreen(c, domain.ResourceKind(c.Param("kind")), s)
}

type sortRequest struct {
	Field string `json:"field"`
}

// Sort sorts by a field, toggling direction on repeat.
func (h *ScreenHandler) Sort(c *gin.Context) {
	s, ok := h.screenFor(c)
	if !ok {
		return
	}
	var req sortRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Field == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "sort field is required")
		return
	}
	s.SetSort(req.Field)
	renderScreen(c, domain.ResourceKind(c.Param("kind")), s)
}

// CreateRecord creates a record remotely and mirrors it locally.
func (h *ScreenHandler) CreateRecord(c *gin.Context) {
	s, ok := h.screenFor(c)
	if !ok {
		return
	}
	var rec domain.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid record body")
		return
	}
	created, err := s.CreateRecord(c.Request.Context(), rec)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, created)
}

// UpdateRecord patches a record remotely and mirrors it locally.
func (h *ScreenHandler) UpdateRecord(c *gin.Context) {
	s, ok := h.screenFor(c)
	if !ok {
		return
	}
	var partial domain.Record
	if err := c.ShouldBindJSON(&partial); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid record body")
		return
	}
	updated, err := s.UpdateRecord(c.Request.Context(), c.Param("id"), partial)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, updated)
}

// DeleteRecord deletes a record remotely, then locally.
func (h *ScreenHandler) DeleteRecord(c *gin.Context) {
	s, ok := h.screenFor(c)
	if !ok {
		return
	}
	if err := s.DeleteRecord(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

// Release unmounts the screen, discarding its collection.
func (h *ScreenHandler) Release(c *gin.Context) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	h.mgr.Release(actor, domain.ResourceKind(c.Param("kind")))
	RespondOK(c, gin.H{"released": true})
}

// Export streams the visible projection as CSV or XLSX.
func (h *ScreenHandler) Export(c *gin.Context) {
	s, ok := h.screenFor(c)
	if !ok {
		return
	}
	kind := c.Param("kind")
	records, _ := s.Visible()

	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", kind))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := export.WriteXLSX(c.Writer, kind, s.ExportFields(), records); err != nil {
			HandleError(c, err)
		}
	case "csv":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", kind))
		c.Header("Content-Type", "text/csv; charset=utf-8")
		if err := export.WriteCSV(c.Writer, s.ExportFields(), records); err != nil {
			HandleError(c, err)
		}
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
	}
}

// AttendanceSummary returns the per-day chart series for the dashboard.
func (h *ScreenHandler) AttendanceSummary(c *gin.Context) {
	summary, err := h.mgr.AttendanceSummary(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, summary)
}
