package ports

import (
	"context"

	"github.com/provisio/provisio/pkg/domain"
)

// Provisioner defines how confirmed configurations are turned into resources.
// The engine emits a snapshot of the confirmed session, and the host implements
// this interface to execute the actual creation (cloud SDK, simulator, dry-run).
//
// Create returns an error only for infrastructure faults (store unreachable,
// context canceled). A creation that fails on the provider side is reported
// through CreatedResource.Success=false with the provider's message in
// CreatedResource.Error, so the conversation can finish normally.
type Provisioner interface {
	Create(ctx context.Context, snap domain.Snapshot) (*domain.CreatedResource, error)
}
