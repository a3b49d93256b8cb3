package di

import (
	"fmt"
	"reflect"
)

// Token identifies a registered capability by its Go type plus an optional
// discriminating name. Tokens are immutable comparable values: two tokens
// address the same registration exactly when both the type and the name match.
type Token struct {
	typ  reflect.Type
	name string
}

// For returns the token for type T.
func For[T any]() Token {
	return Token{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// Named returns the token for type T discriminated by name. Named tokens let
// several providers of the same type coexist (e.g. two database handles).
func Named[T any](name string) Token {
	return Token{typ: reflect.TypeOf((*T)(nil)).Elem(), name: name}
}

// Type returns the capability type the token was created for.
func (t Token) Type() reflect.Type { return t.typ }

// Name returns the discriminating name, or "" for an unnamed token.
func (t Token) Name() string { return t.name }

// IsZero reports whether the token was never initialized via For or Named.
func (t Token) IsZero() bool { return t.typ == nil }

func (t Token) String() string {
	if t.typ == nil {
		return "<zero token>"
	}
	if t.name == "" {
		return t.typ.String()
	}
	return fmt.Sprintf("%s[%s]", t.typ, t.name)
}
