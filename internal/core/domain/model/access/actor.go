package access

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// Actor is the authenticated identity behind a request.
type Actor struct {
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor builds an Actor from verified token claims.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (a Actor) ID() kernel.UUID { return a.id }

func (a Actor) Role() Role { return a.role }

// IsAuthenticated is false for the zero Actor, which stands for a request
// without a verified identity.
func (a Actor) IsAuthenticated() bool {
	return a.guard.Validate(nil) == nil
}
