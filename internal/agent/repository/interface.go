package repository

import (
	"context"

	"business-agent-service/internal/model"
)

// Repository resolves business profiles (agent config + FAQ list) for the
// delivery layer.
type Repository interface {
	// GetBusiness returns the profile for the given business ID.
	GetBusiness(ctx context.Context, businessID string) (model.BusinessProfile, error)
}
