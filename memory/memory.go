// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

// Package memory provides an in-process, in-memory implementation of
// a resource repository.  There is no persistence; the entire store
// is behind a single global semaphore to protect against concurrent
// updates, which in some cases can limit performance in the name of
// correctness.
//
// This is mostly intended as a simple reference implementation that
// can be used for testing, including in-process testing of
// higher-level components.  It is generally tuned for correctness,
// not performance or scalability.
package memory

import (
	"sync"

	"github.com/cenix/go-everest/resource"
	"github.com/cenix/go-everest/schema"
)

// New creates a new resource.Repository that operates purely in
// memory, serving one collection per provided schema.
func New(schemas ...*schema.Resource) resource.Repository {
	r := &memRepository{
		schemas:     schemas,
		collections: make(map[string]*collection),
	}
	for _, s := range schemas {
		r.collections[s.Name] = &collection{
			repository: r,
			schema:     s,
			entities:   make(map[string]schema.Entity),
		}
	}
	return r
}

// repositable is a common interface for objects that need to take
// the global lock on the repository state.
type repositable interface {
	// Repository returns a pointer to the repository object at
	// the root of this object tree.
	Repository() *memRepository
}

// globalLock locks the repository object at the root of the object
// tree.  Pair this with globalUnlock, as
//
//	globalLock(self)
//	defer globalUnlock(self)
func globalLock(r repositable) {
	r.Repository().sem.Lock()
}

// globalUnlock unlocks the repository object at the root of the
// object tree.
func globalUnlock(r repositable) {
	r.Repository().sem.Unlock()
}

// Repository wrapper type:

type memRepository struct {
	schemas     []*schema.Resource
	collections map[string]*collection
	sem         sync.Mutex
}

func (r *memRepository) Collection(name string) (resource.Collection, error) {
	globalLock(r)
	defer globalUnlock(r)

	c := r.collections[name]
	if c == nil {
		return nil, resource.ErrNoSuchCollection{Name: name}
	}
	return c, nil
}

func (r *memRepository) Collections() []*schema.Resource {
	return r.schemas
}

func (r *memRepository) Repository() *memRepository {
	return r
}

// Load retrieves a referenced entity for nested attribute
// traversal.  It is called with the global lock already held, from
// inside collection.List().
func (r *memRepository) Load(s *schema.Resource, id string) (schema.Entity, bool) {
	c := r.collections[s.Name]
	if c == nil {
		return nil, false
	}
	e, present := c.entities[id]
	return e, present
}
