package di

import (
	"fmt"
	"strings"
)

// DuplicateRegistrationError is returned by Register when a token already has
// a provider and the registration was not marked with Override.
type DuplicateRegistrationError struct {
	Token Token
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("di: provider already registered for token %s", e.Token)
}

// ProviderNotFoundError is returned when a token is resolved without a
// registered provider.
type ProviderNotFoundError struct {
	Token Token
}

func (e *ProviderNotFoundError) Error() string {
	return fmt.Sprintf("di: no provider registered for token %s", e.Token)
}

// CyclicDependencyError is returned when a token is reachable from itself
// through its factory dependencies. Path holds the in-progress resolution
// chain ending at the repeated token.
type CyclicDependencyError struct {
	Token Token
	Path  []Token
}

func (e *CyclicDependencyError) Error() string {
	parts := make([]string, 0, len(e.Path))
	for _, tok := range e.Path {
		parts = append(parts, tok.String())
	}
	return fmt.Sprintf("di: cyclic dependency on token %s (path: %s)", e.Token, strings.Join(parts, " -> "))
}

// ScopeNotActiveError is returned when a scoped token is resolved on a
// context that carries no active scope.
type ScopeNotActiveError struct {
	Token Token
}

func (e *ScopeNotActiveError) Error() string {
	return fmt.Sprintf("di: no active scope while resolving scoped token %s (open one with Container.EnterScope)", e.Token)
}

// ProviderConstructionError wraps a factory failure. No instance is cached
// for any lifetime when construction fails.
type ProviderConstructionError struct {
	Token Token
	Cause error
}

func (e *ProviderConstructionError) Error() string {
	return fmt.Sprintf("di: provider for token %s failed: %v", e.Token, e.Cause)
}

func (e *ProviderConstructionError) Unwrap() error { return e.Cause }

// ScopeDisposalError aggregates the failures of one or more disposal hooks
// that ran while a scope was closed. Every hook runs even when earlier hooks
// fail.
type ScopeDisposalError struct {
	ScopeID string
	Errors  []error
}

func (e *ScopeDisposalError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		parts = append(parts, err.Error())
	}
	return fmt.Sprintf("di: %d disposal hook(s) failed for scope %s: %s", len(e.Errors), e.ScopeID, strings.Join(parts, "; "))
}

func (e *ScopeDisposalError) Unwrap() []error { return e.Errors }
