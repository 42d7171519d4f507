// Package contenttype lets a notification point at rows in arbitrary
// tables without a foreign key per type. An entity is addressed by a
// (type tag, identifier) pair; a registry maps each tag to a lookup
// function that can dereference the pair back into the row.
package contenttype

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Resolve when the referenced row no
	// longer exists.
	ErrNotFound = errors.New("contenttype: referenced entity not found")

	// ErrUnregistered is returned when a type tag has no registered
	// lookup, or an object does not implement Entity.
	ErrUnregistered = errors.New("contenttype: unregistered entity type")
)

// Entity is implemented by any domain object that can be referenced by
// a notification.
type Entity interface {
	EntityType() string
	EntityID() string
}

// Ref is a stable pointer to one row of one registered entity type.
type Ref struct {
	Type string
	ID   string
}

func (r Ref) IsZero() bool {
	return r.Type == "" && r.ID == ""
}

// LookupFunc dereferences an identifier into the entity it names.
// Implementations return ErrNotFound (possibly wrapped) for ids that no
// longer exist.
type LookupFunc func(ctx context.Context, id string) (any, error)

// Registry maps type tags to lookup functions. Registration happens at
// wiring time, before any resolution, so no locking is needed.
type Registry struct {
	lookups map[string]LookupFunc
}

func NewRegistry() *Registry {
	return &Registry{lookups: make(map[string]LookupFunc)}
}

func (r *Registry) Register(typeTag string, lookup LookupFunc) {
	r.lookups[typeTag] = lookup
}

// RefFor produces the (type, id) pair for any registered entity.
func RefFor(v any) (Ref, error) {
	e, ok := v.(Entity)
	if !ok {
		return Ref{}, fmt.Errorf("%w: %T", ErrUnregistered, v)
	}
	return Ref{Type: e.EntityType(), ID: e.EntityID()}, nil
}

// Resolve dereferences a Ref into the entity it points at.
func (r *Registry) Resolve(ctx context.Context, ref Ref) (any, error) {
	lookup, ok := r.lookups[ref.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnregistered, ref.Type)
	}
	return lookup(ctx, ref.ID)
}

// Known reports whether a type tag has a registered lookup.
func (r *Registry) Known(typeTag string) bool {
	_, ok := r.lookups[typeTag]
	return ok
}
