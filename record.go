package vinyasa

import "time"

// ExistingRecord is the identity and bookkeeping a record gets once stored.
// Timestamps have second precision to match what the store keeps.
type ExistingRecord[T ~string] struct {
	ID        T
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewExistingRecord[T ~string](id string) ExistingRecord[T] {
	now := time.Now().Truncate(time.Second)
	return ExistingRecord[T]{
		ID:        T(id),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch marks the record as modified now.
func (r *ExistingRecord[T]) Touch() {
	r.UpdatedAt = time.Now().Truncate(time.Second)
}

func (r ExistingRecord[T]) IsStored() bool {
	return r.ID != ""
}
