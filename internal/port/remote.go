package port

import (
	"context"

	"hrdesk/internal/domain"
)

// RemoteDirectory is the remote HR collection service every screen reads from
// and writes to. Implementations classify failures as *domain.Failure.
type RemoteDirectory interface {
	FetchAll(ctx context.Context, kind domain.ResourceKind) ([]domain.Record, error)
	Create(ctx context.Context, kind domain.ResourceKind, record domain.Record) (domain.Record, error)
	Update(ctx context.Context, kind domain.ResourceKind, id string, partial domain.Record) (domain.Record, error)
	Delete(ctx context.Context, kind domain.ResourceKind, id string) error
}

// CredentialVerifier checks login credentials against the remote backend and
// resolves the acting user on success.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, username, password string) (*domain.ActingUser, error)
}
