// Package registry holds the application's state fragments keyed by their Go type.
//
// Each type has at most one value. The registry is populated up front, before the
// first event is dispatched, and every lookup after that is expected to succeed:
// asking for a type that was never inserted is a programming error and panics with
// a *MissingError.
package registry

import (
	"fmt"
	"reflect"
)

// MissingError is the panic payload for a lookup of a type that was never inserted.
type MissingError struct {
	Type reflect.Type
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("registry: no value registered for %v", e.Type)
}

// Reader is implemented by *Registry and View. The unexported method keeps
// other packages from supplying their own readers.
type Reader interface {
	lookup(t reflect.Type) (any, bool)
}

// Registry maps a type to the single value of that type.
type Registry struct {
	entries map[reflect.Type]any // reflect.Type of T -> *T
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[reflect.Type]any)}
}

func (r *Registry) lookup(t reflect.Type) (any, bool) {
	v, ok := r.entries[t]
	return v, ok
}

// ReadOnly returns a view that can read but not modify the registry.
func (r *Registry) ReadOnly() View {
	return View{r: r}
}

// View is a read-only handle on a Registry.
type View struct {
	r *Registry
}

func (v View) lookup(t reflect.Type) (any, bool) {
	if v.r == nil {
		return nil, false
	}
	return v.r.lookup(t)
}

// Insert stores v, replacing any value previously stored for exactly T.
func Insert[T any](r *Registry, v T) {
	p := new(T)
	*p = v
	r.entries[reflect.TypeFor[T]()] = p
}

// Get returns a copy of the value stored for T.
func Get[T any](r Reader) T {
	return *mustLookup[T](r)
}

// GetMut returns a pointer to the value stored for T. Writes through the
// pointer are visible to every later Get.
func GetMut[T any](r *Registry) *T {
	return mustLookup[T](r)
}

// Lookup is Get without the panic, for readers that treat an entry as optional.
func Lookup[T any](r Reader) (T, bool) {
	v, ok := r.lookup(reflect.TypeFor[T]())
	if !ok {
		var zero T
		return zero, false
	}
	return *v.(*T), true
}

func mustLookup[T any](r Reader) *T {
	t := reflect.TypeFor[T]()
	v, ok := r.lookup(t)
	if !ok {
		panic(&MissingError{Type: t})
	}
	return v.(*T)
}
