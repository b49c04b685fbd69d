package resource

import "context"

type Repository interface {
	Create(ctx context.Context, r *Resource) error
	// List returns every stock count, latest lastUpdated first.
	List(ctx context.Context) ([]*Resource, error)
}
