package errors

import (
	stderrors "errors"

	"github.com/skrylabs/skry/di"
)

// FromDI translates a dependency-injection engine error into an AppError
// suitable for a client-facing response. Registration-shape problems
// (unregistered tokens, cycles, missing scopes) map to MISCONFIGURED since
// they indicate broken wiring rather than a transient fault; factory failures
// map to DEPENDENCY_FAILURE and keep the cause chain intact.
func FromDI(err error) *AppError {
	var notFound *di.ProviderNotFoundError
	if stderrors.As(err, &notFound) {
		return Misconfigured("No provider is registered for the requested capability.", err).
			WithDetail("token", notFound.Token.String())
	}

	var cyclic *di.CyclicDependencyError
	if stderrors.As(err, &cyclic) {
		return Misconfigured("The provider graph contains a cycle.", err).
			WithDetail("token", cyclic.Token.String())
	}

	var noScope *di.ScopeNotActiveError
	if stderrors.As(err, &noScope) {
		return Misconfigured("A scoped capability was requested outside of a request scope.", err).
			WithDetail("token", noScope.Token.String())
	}

	var construction *di.ProviderConstructionError
	if stderrors.As(err, &construction) {
		return DependencyFailure(err).WithDetail("token", construction.Token.String())
	}

	return Internal(err)
}
