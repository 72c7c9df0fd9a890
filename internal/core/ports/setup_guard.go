package ports

import "context"

// SetupGuard makes the admin bootstrap a one-time operation across replicas.
type SetupGuard interface {
	// Claim returns true for exactly one caller until Release is called.
	Claim(ctx context.Context) (bool, error)
	// Release gives the claim back after a failed bootstrap.
	Release(ctx context.Context) error
}
