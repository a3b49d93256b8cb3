// Package database provides GORM-backed persistence helpers for skry
// applications.
//
// The EntityManager wraps a GORM handle with typed CRUD operations whose
// failures roll back cleanly, and Repository adds a generic per-model
// convenience layer on top of it. ScopedSessionFactory bridges persistence
// into the DI container: it produces one transactional Session per open
// scope, rolled back automatically when the scope closes unless the unit of
// work committed it.
package database
