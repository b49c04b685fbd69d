package hospital

import "context"

type Repository interface {
	Create(ctx context.Context, h *Hospital) error
	// List returns every snapshot, most recently updated first.
	List(ctx context.Context) ([]*Hospital, error)
}
