// Package shop resolves the store that owns the forms. Stores are keyed by the
// commerce platform's shop identifier.
package shop

import (
	"context"
	"errors"
	"strings"
)

// ErrUnresolved is returned when no store could be determined.
var ErrUnresolved = errors.New("shop: store could not be resolved")

// Info identifies a store.
type Info struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// Resolver returns the store for the current installation.
type Resolver interface {
	Resolve(ctx context.Context) (Info, error)
}

// Static always resolves to the same store.
type Static Info

// Resolve implements Resolver.
func (s Static) Resolve(context.Context) (Info, error) {
	if strings.TrimSpace(s.ID) == "" {
		return Info{}, ErrUnresolved
	}
	return Info(s), nil
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context) (Info, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context) (Info, error) { return f(ctx) }
