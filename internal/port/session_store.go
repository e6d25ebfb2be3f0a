package port

import (
	"context"

	"github.com/google/uuid"

	"gstflow/internal/domain"
)

// SessionStore owns validation sessions keyed by opaque identifier.
// Update runs the mutator while holding the session, giving callers the
// single-writer guarantee the sessions need.
type SessionStore interface {
	Create(ctx context.Context, session *domain.ValidationSession) error
	Get(ctx context.Context, id uuid.UUID) (*domain.ValidationSession, error)
	Update(ctx context.Context, id uuid.UUID, fn func(*domain.ValidationSession) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}
