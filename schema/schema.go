// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

// Package schema declares resource types: the mapping from
// resource-facing attribute names to entity storage locations.  A
// Resource is built once when an application registers its resource
// types, and is then consulted by the spec package to resolve the
// dotted attribute paths appearing in queries and by the storage
// backends to find table columns.
//
// Entities themselves are plain string-keyed maps.  A terminal
// attribute holds a string, float64, bool, or time.Time; a member
// attribute holds a nested Entity (or an identity string in flat
// storage); a collection attribute holds a slice of nested entities.
package schema

import "github.com/cenix/go-everest/cql"

// Entity is the stored value state of a single domain object.  The
// "id" key holds the entity's identity within its collection.
type Entity map[string]interface{}

// ID returns the identity of an entity, or the empty string if it
// has none.
func (e Entity) ID() string {
	id, _ := e["id"].(string)
	return id
}

// Kind describes what an attribute refers to.
type Kind int

const (
	// Terminal attributes hold a plain value.
	Terminal Kind = iota

	// Member attributes hold a single nested entity.
	Member

	// Collection attributes hold any number of nested entities.
	Collection
)

// A Field maps one resource-facing attribute name onto entity
// storage.
type Field struct {
	// Key is the entity map key (and, for backends that need it,
	// the basis of the column name) where this attribute is
	// stored.  For Member fields this is the foreign-key column
	// in the parent table; for Collection fields it is the
	// foreign-key column in the child table pointing back at the
	// parent.
	Key string

	// Kind says whether this is a terminal value, a nested
	// member, or a nested collection.
	Kind Kind

	// Type is the literal kind a terminal attribute compares
	// against.  Member and Collection fields leave this unset;
	// they compare by identity against resource references.
	Type cql.Kind

	// Column overrides the SQL column name for this field.  If
	// empty, Key is used.
	Column string

	// Ref names the resource type a Member or Collection field
	// points at.
	Ref *Resource

	// Get overrides reading this attribute from an entity.  If
	// nil, the attribute is read from the entity map at Key.
	Get func(Entity) (interface{}, bool)
}

// ColumnName returns the SQL column a field is stored in.
func (f Field) ColumnName() string {
	if f.Column != "" {
		return f.Column
	}
	return f.Key
}

// Value reads this attribute from an entity.  The second return is
// false if the entity has no value for the attribute.
func (f Field) Value(e Entity) (interface{}, bool) {
	if f.Get != nil {
		return f.Get(e)
	}
	v, ok := e[f.Key]
	if v == nil {
		return nil, false
	}
	return v, ok
}

// A Resource describes one resource type: its name (which is also
// its URL path segment), its backing table, and its attributes.
type Resource struct {
	// Name is the collection name, e.g. "people".
	Name string

	// Table is the SQL table entities of this type are stored in.
	Table string

	// Fields maps attribute names to their storage declarations.
	Fields map[string]Field
}

// Field looks up a single attribute by its resource-facing name.
func (r *Resource) Field(name string) (Field, bool) {
	f, ok := r.Fields[name]
	return f, ok
}

// Resolve walks a dotted attribute path through nested member and
// collection attributes, returning the field at every step.  The
// final field may be terminal (compared by value) or a member
// (compared by identity).  Returns ErrNoSuchAttribute if any segment
// is missing, or if a segment other than the last is terminal.
func (r *Resource) Resolve(path []string) ([]Field, error) {
	fields := make([]Field, 0, len(path))
	current := r
	for i, segment := range path {
		if current == nil {
			return nil, ErrNoSuchAttribute{Resource: r.Name, Path: path}
		}
		f, ok := current.Field(segment)
		if !ok {
			return nil, ErrNoSuchAttribute{Resource: r.Name, Path: path}
		}
		fields = append(fields, f)
		if i < len(path)-1 {
			if f.Kind == Terminal {
				return nil, ErrNoSuchAttribute{Resource: r.Name, Path: path}
			}
			current = f.Ref
		}
	}
	return fields, nil
}
