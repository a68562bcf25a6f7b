package runtime

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"gor/interpreter-go/pkg/ast"
)

// ErrUndefined is returned (wrapped) when a name has no binding.
var ErrUndefined = errors.New("undefined variable")

// Environment is the shared evaluation context. Reads may run concurrently;
// writers are serialised, and every lookup is a single lock acquisition so a
// reader never sees a half-published binding.
type Environment struct {
	values map[ast.Name]Value
	parent *Environment
	mu     sync.RWMutex
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[ast.Name]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	e.mu.RLock()
	parent := e.parent
	e.mu.RUnlock()
	return parent
}

// Define inserts or shadows a binding in the current scope.
func (e *Environment) Define(name ast.Name, value Value) {
	e.mu.Lock()
	e.values[name] = value
	e.mu.Unlock()
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name ast.Name) (Value, error) {
	e.mu.RLock()
	if v, ok := e.values[name]; ok {
		e.mu.RUnlock()
		return v, nil
	}
	parent := e.parent
	e.mu.RUnlock()
	if parent != nil {
		return parent.Get(name)
	}
	return nil, fmt.Errorf("%w '%s'", ErrUndefined, name)
}

// Resolve satisfies the evaluator's resolver contract. Lookups never block,
// so the context is only consulted for cancellation before the read.
func (e *Environment) Resolve(ctx context.Context, name ast.Name) (Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.Get(name)
}

// Keys returns the current scope's binding names in sorted order.
func (e *Environment) Keys() []string {
	e.mu.RLock()
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k.String())
	}
	e.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Extend creates a child scope of the current environment.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}

// Has reports whether the binding exists anywhere in the scope chain.
func (e *Environment) Has(name ast.Name) bool {
	e.mu.RLock()
	if _, ok := e.values[name]; ok {
		e.mu.RUnlock()
		return true
	}
	parent := e.parent
	e.mu.RUnlock()
	if parent != nil {
		return parent.Has(name)
	}
	return false
}

// HasInCurrentScope reports whether the binding exists in the current scope.
func (e *Environment) HasInCurrentScope(name ast.Name) bool {
	e.mu.RLock()
	_, ok := e.values[name]
	e.mu.RUnlock()
	return ok
}
