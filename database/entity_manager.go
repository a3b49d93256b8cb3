package database

import (
	"context"

	"gorm.io/gorm"
)

// EntityManager executes typed CRUD operations against one GORM handle,
// which may be a shared pool or an open transaction. Every mutating
// operation either commits fully or leaves no partial state behind; failures
// surface as *PersistenceError with the cause attached.
type EntityManager struct {
	db *gorm.DB
}

// NewEntityManager wraps a GORM handle.
func NewEntityManager(db *gorm.DB) *EntityManager {
	return &EntityManager{db: db}
}

// Handle exposes the underlying GORM handle for queries the helpers do not
// cover.
func (em *EntityManager) Handle() *gorm.DB { return em.db }

// Save inserts or updates entity by primary key.
func (em *EntityManager) Save(ctx context.Context, entity any) error {
	if err := em.db.WithContext(ctx).Save(entity).Error; err != nil {
		return &PersistenceError{Op: "save", Cause: err}
	}
	return nil
}

// Insert creates a new row for entity.
func (em *EntityManager) Insert(ctx context.Context, entity any) error {
	if err := em.db.WithContext(ctx).Create(entity).Error; err != nil {
		return &PersistenceError{Op: "insert", Cause: err}
	}
	return nil
}

// Delete removes entity by primary key.
func (em *EntityManager) Delete(ctx context.Context, entity any) error {
	if err := em.db.WithContext(ctx).Delete(entity).Error; err != nil {
		return &PersistenceError{Op: "delete", Cause: err}
	}
	return nil
}

// GetByID loads the T with the given primary key, or nil when absent.
func GetByID[T any](ctx context.Context, em *EntityManager, id any) (*T, error) {
	var entity T
	err := em.db.WithContext(ctx).First(&entity, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "get", Cause: err}
	}
	return &entity, nil
}

// List loads all rows of T matching the optional conditions.
func List[T any](ctx context.Context, em *EntityManager, conds ...any) ([]T, error) {
	var entities []T
	if err := em.db.WithContext(ctx).Find(&entities, conds...).Error; err != nil {
		return nil, &PersistenceError{Op: "list", Cause: err}
	}
	return entities, nil
}

// Count returns the number of rows of T matching the optional conditions.
func Count[T any](ctx context.Context, em *EntityManager, conds ...any) (int64, error) {
	var model T
	var n int64
	q := em.db.WithContext(ctx).Model(&model)
	if len(conds) > 0 {
		q = q.Where(conds[0], conds[1:]...)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, &PersistenceError{Op: "count", Cause: err}
	}
	return n, nil
}

// InsertMany bulk-inserts entities in batches of batchSize.
func InsertMany[T any](ctx context.Context, em *EntityManager, entities []T, batchSize int) error {
	if len(entities) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	if err := em.db.WithContext(ctx).CreateInBatches(entities, batchSize).Error; err != nil {
		return &PersistenceError{Op: "insert_many", Cause: err}
	}
	return nil
}
