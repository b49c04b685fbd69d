package patient

import "context"

type Repository interface {
	// Create persists a classified record. The record must already carry its ID.
	Create(ctx context.Context, r *IntakeRecord) error

	// List returns records newest arrival first.
	List(ctx context.Context, q ListQuery) ([]*IntakeRecord, error)

	// CountBySeverity returns how many records sit in each tier. Tiers with no
	// records may be absent from the map.
	CountBySeverity(ctx context.Context) (map[Severity]int64, error)
}
