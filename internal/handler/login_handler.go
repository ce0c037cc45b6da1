package handler

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hrdesk/internal/screen"
	"hrdesk/internal/service"
	"hrdesk/internal/wizard"
)

// LoginHandler drives per-session login wizards. Each browser session gets
// its own wizard, created by Start and destroyed on successful submit.
type LoginHandler struct {
	auth service.AuthService

	mu      sync.Mutex
	wizards map[string]*screen.LoginScreen
}

// NewLoginHandler creates a LoginHandler.
func NewLoginHandler(auth service.AuthService) *LoginHandler {
	return &LoginHandler{
		auth:    auth,
		wizards: make(map[string]*screen.LoginScreen),
	}
}

// wizardState is the rendered wizard state returned by every login call.
type wizardState struct {
	WizardID     string        `json:"wizard_id"`
	StepIndex    int           `json:"step_index"`
	Step         wizard.Step   `json:"step"`
	Steps        []wizard.Step `json:"steps"`
	Busy         bool          `json:"busy"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Submitted    bool          `json:"submitted"`
}

func renderWizard(id string, s *screen.LoginScreen) wizardState {
	w := s.Wizard()
	idx, step := w.CurrentStep()
	return wizardState{
		WizardID:     id,
		StepIndex:    idx,
		Step:         step,
		Steps:        w.Steps(),
		Busy:         w.Busy(),
		ErrorMessage: w.ErrorMessage(),
		Submitted:    w.Submitted(),
	}
}

func (h *LoginHandler) lookup(c *gin.Context, id string) (*screen.LoginScreen, bool) {
	h.mu.Lock()
	s, ok := h.wizards[id]
	h.mu.Unlock()
	if !ok {
		RespondError(c, http.StatusNotFound, "WIZARD_NOT_FOUND", "login wizard not found; start again")
		return nil, false
	}
	return s, true
}

// Start creates a fresh login wizard and returns its id and first step.
func (h *LoginHandler) Start(c *gin.Context) {
	id := uuid.New().String()
	s := screen.NewLoginScreen(h.auth)

	h.mu.Lock()
	h.wizards[id] = s
	h.mu.Unlock()

	RespondCreated(c, renderWizard(id, s))
}

type wizardFieldRequest struct {
	WizardID string `json:"wizard_id" binding:"required"`
	Key      string `json:"key" binding:"required"`
	Value    string `json:"value"`
}

// SetField records a field value on the wizard.
func (h *LoginHandler) SetField(c *gin.Context) {
	var req wizardFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "wizard_id and key are required")
		return
	}
	s, ok := h.lookup(c, req.WizardID)
	if !ok {
		return
	}
	s.Wizard().SetField(req.Key, req.Value)
	RespondOK(c, renderWizard(req.WizardID, s))
}

type wizardStepRequest struct {
	WizardID string `json:"wizard_id" binding:"required"`
}

// Next advances the wizard one step; a missing required field blocks the
// transition with an inline message.
func (h *LoginHandler) Next(c *gin.Context) {
	var req wizardStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "wizard_id is required")
		return
	}
	s, ok := h.lookup(c, req.WizardID)
	if !ok {
		return
	}
	s.Wizard().Next()
	RespondOK(c, renderWizard(req.WizardID, s))
}

// Prev retreats the wizard one step.
func (h *LoginHandler) Prev(c *gin.Context) {
	var req wizardStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "wizard_id is required")
		return
	}
	s, ok := h.lookup(c, req.WizardID)
	if !ok {
		return
	}
	s.Wizard().Prev()
	RespondOK(c, renderWizard(req.WizardID, s))
}

// Submit runs the final submission. On success the session token and acting
// user come back and the wizard is destroyed; on failure the wizard stays at
// the final step with its error message set.
func (h *LoginHandler) Submit(c *gin.Context) {
	var req wizardStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "wizard_id is required")
		return
	}
	s, ok := h.lookup(c, req.WizardID)
	if !ok {
		return
	}

	if s.Wizard().Busy() {
		RespondError(c, http.StatusConflict, "SUBMIT_IN_FLIGHT", "a submission is already in progress")
		return
	}

	if !s.Wizard().Submit(c.Request.Context()) {
		RespondOK(c, renderWizard(req.WizardID, s))
		return
	}

	token, actor := s.Session()
	h.mu.Lock()
	delete(h.wizards, req.WizardID)
	h.mu.Unlock()

	RespondOK(c, gin.H{
		"token": token,
		"actor": actor,
		"state": renderWizard(req.WizardID, s),
	})
}
