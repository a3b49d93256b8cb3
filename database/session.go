package database

import (
	"context"
	"sync"

	"github.com/skrylabs/skry/di"
	"github.com/skrylabs/skry/logger"
)

// Session is a transactional unit of work. It carries an open transaction
// exposed through an EntityManager; the owner either commits it or lets the
// enclosing DI scope roll it back on disposal. Close rolls back unless the
// session was committed and is safe to call more than once, so a session
// registered as a scoped dependency never leaks its transaction.
type Session struct {
	em  *EntityManager
	log *logger.Logger

	mu       sync.Mutex
	finished bool
}

// Begin starts a new transaction on db.
func (db *DB) Begin(ctx context.Context) (*Session, error) {
	tx := db.Gorm.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, &PersistenceError{Op: "begin", Cause: tx.Error}
	}
	return &Session{em: NewEntityManager(tx), log: db.log}, nil
}

// Manager returns the EntityManager bound to this session's transaction.
func (s *Session) Manager() *EntityManager { return s.em }

// Commit commits the transaction.
func (s *Session) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return nil
	}
	s.finished = true
	if err := s.em.db.Commit().Error; err != nil {
		return &PersistenceError{Op: "commit", Cause: err}
	}
	return nil
}

// Rollback discards the transaction.
func (s *Session) Rollback() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return nil
	}
	s.finished = true
	if err := s.em.db.Rollback().Error; err != nil {
		return &PersistenceError{Op: "rollback", Cause: err}
	}
	return nil
}

// Close releases the session, rolling back any uncommitted work.
func (s *Session) Close() error {
	return s.Rollback()
}

// ScopedSessionFactory returns a di.Factory producing one transactional
// Session per open scope. Because Session implements Close, the scope
// disposes it automatically when the unit of work ends: uncommitted
// transactions roll back even when the request fails or is cancelled.
//
// Register it under the Scoped lifetime:
//
//	c.Register(di.For[*database.Session](), database.ScopedSessionFactory(db), di.Scoped)
func ScopedSessionFactory(db *DB) di.Factory {
	return func(ctx context.Context, _ di.Resolver) (any, error) {
		return db.Begin(ctx)
	}
}
