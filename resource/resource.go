// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

// Package resource defines an abstract API to resource collection
// repositories.
//
// In most cases, applications will know of specific implementations
// of this API and will get a Repository from that implementation:
// the memory package holds everything in process, the postgres
// package stores entities in PostgreSQL.  Whatever the backend, all
// collections are filtered, ordered, and sliced through the same
// Query structure built from CQL strings by the cql and spec
// packages.
package resource

import (
	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/schema"
	"github.com/cenix/go-everest/spec"
)

// Repository is the principal interface to a resource storage
// backend.  A repository serves a fixed set of collections,
// registered at construction time from schema declarations.
type Repository interface {
	// Collection retrieves a collection by its resource name.
	// If no collection was registered under that name, returns
	// an instance of ErrNoSuchCollection as an error.
	Collection(name string) (Collection, error)

	// Collections returns the resource schemas of every
	// registered collection, in registration order.
	Collections() []*schema.Resource
}

// A Query selects some subset of the entities in a collection.  Its
// zero value selects all entities in their natural order.
type Query struct {
	// Filter, if non-nil, restricts the result to entities the
	// specification matches.
	Filter spec.Specification

	// Order sorts the result before slicing.  Entities the
	// backend considers equal keep their natural relative order.
	Order cql.SortOrder

	// Start skips that many entities from the front of the
	// filtered, ordered result.  Values less than zero read as
	// zero.
	Start int

	// Size limits the number of entities returned.  Zero or less
	// means no limit.
	Size int
}

// Collection is a single REST collection within a repository: the
// set of entities of one resource type.
type Collection interface {
	// Schema returns the resource type this collection serves.
	Schema() *schema.Resource

	// List returns the entities selected by a query, filtered,
	// ordered, and sliced in that order.
	List(q Query) ([]schema.Entity, error)

	// Count returns the number of entities a query's filter
	// selects, ignoring the query's slice.
	Count(q Query) (int, error)

	// Get retrieves a single entity by its identity.  If no
	// entity exists with that identity, returns an instance of
	// ErrNoSuchEntity as an error.
	Get(id string) (schema.Entity, error)

	// Add stores a new entity and returns its identity.  If the
	// entity carries an "id" key that identity is used; otherwise
	// the backend assigns one.  Adding an identity that already
	// exists returns an instance of ErrDuplicateEntity.
	Add(e schema.Entity) (string, error)

	// Update replaces the stored state of an existing entity.
	// The entity's "id" key, if present, must agree with id.
	Update(id string, e schema.Entity) error

	// Remove deletes a single entity by its identity.
	Remove(id string) error
}
