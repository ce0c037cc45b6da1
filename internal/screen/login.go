package screen

import (
	"context"
	"sync"

	"hrdesk/internal/domain"
	"hrdesk/internal/service"
	"hrdesk/internal/wizard"
)

// LoginScreen drives the multi-step login form. The wizard validates the
// username and password steps; the submit collaborator is the auth service,
// which verifies credentials remotely and mints the session token.
type LoginScreen struct {
	wiz *wizard.Wizard

	mu    sync.Mutex
	token string
	actor *domain.ActingUser
}

// NewLoginScreen creates a fresh login wizard at the username step.
func NewLoginScreen(auth service.AuthService) *LoginScreen {
	s := &LoginScreen{}
	s.wiz = wizard.New([]wizard.Step{
		{Key: "username", Label: "Username", Required: true, Kind: wizard.KindText},
		{Key: "password", Label: "Password", Required: true, Kind: wizard.KindPassword},
	}, func(ctx context.Context, values map[string]string) error {
		token, actor, err := auth.Login(ctx, values["username"], values["password"])
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.token = token
		s.actor = actor
		s.mu.Unlock()
		return nil
	})
	return s
}

// Wizard exposes the underlying state machine to the handler layer.
func (s *LoginScreen) Wizard() *wizard.Wizard {
	return s.wiz
}

// Session returns the minted token and acting user after a successful submit.
func (s *LoginScreen) Session() (string, *domain.ActingUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.actor
}
