package database

import "context"

// Repository is a per-model convenience layer over EntityManager.
type Repository[T any] struct {
	em *EntityManager
}

// NewRepository creates a repository for model T on the given manager.
func NewRepository[T any](em *EntityManager) *Repository[T] {
	return &Repository[T]{em: em}
}

// Save inserts or updates entity by primary key.
func (r *Repository[T]) Save(ctx context.Context, entity *T) error {
	return r.em.Save(ctx, entity)
}

// Insert creates a new row for entity.
func (r *Repository[T]) Insert(ctx context.Context, entity *T) error {
	return r.em.Insert(ctx, entity)
}

// GetByID loads the entity with the given primary key, or nil when absent.
func (r *Repository[T]) GetByID(ctx context.Context, id any) (*T, error) {
	return GetByID[T](ctx, r.em, id)
}

// List loads all entities matching the optional conditions.
func (r *Repository[T]) List(ctx context.Context, conds ...any) ([]T, error) {
	return List[T](ctx, r.em, conds...)
}

// Count returns the number of entities matching the optional conditions.
func (r *Repository[T]) Count(ctx context.Context, conds ...any) (int64, error) {
	return Count[T](ctx, r.em, conds...)
}

// Exists reports whether any entity matches the conditions.
func (r *Repository[T]) Exists(ctx context.Context, conds ...any) (bool, error) {
	n, err := r.Count(ctx, conds...)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes entity by primary key.
func (r *Repository[T]) Delete(ctx context.Context, entity *T) error {
	return r.em.Delete(ctx, entity)
}

// InsertMany bulk-inserts entities in batches of batchSize.
func (r *Repository[T]) InsertMany(ctx context.Context, entities []T, batchSize int) error {
	return InsertMany(ctx, r.em, entities, batchSize)
}
