// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package spec

import (
	"sort"

	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/schema"
)

// A Sorter orders entities in memory by an already-resolved CQL sort
// order.  Earlier keys are more significant; entities missing a
// value for a key sort before entities that have one.
type Sorter struct {
	keys []sorterKey
}

type sorterKey struct {
	fields     []schema.Field
	descending bool
}

// NewSorter resolves a sort order against a resource type.  Unknown
// attributes produce a schema.ErrNoSuchAttribute.  Only top-level
// terminal attributes can be sorted on; nested paths produce an
// ErrUnsortableAttribute so that the memory and postgres backends
// stay in agreement about what they can order by.
func NewSorter(order cql.SortOrder, r *schema.Resource) (*Sorter, error) {
	s := &Sorter{keys: make([]sorterKey, 0, len(order))}
	for _, key := range order {
		fields, err := r.Resolve(key.Attribute)
		if err != nil {
			return nil, err
		}
		if len(fields) > 1 || fields[0].Kind != schema.Terminal {
			return nil, ErrUnsortableAttribute{Path: key.Attribute}
		}
		s.keys = append(s.keys, sorterKey{fields: fields,
			descending: key.Descending})
	}
	return s, nil
}

// Less orders two entities.
func (s *Sorter) Less(a, b schema.Entity) bool {
	for _, key := range s.keys {
		c := compareAttr(first(attrValues(key.fields, a, nil)),
			first(attrValues(key.fields, b, nil)))
		if key.descending {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
	}
	return false
}

// Sort stably sorts a slice of entities in place.  A Sorter with no
// keys leaves the slice in its natural order.
func (s *Sorter) Sort(entities []schema.Entity) {
	if len(s.keys) == 0 {
		return
	}
	sort.SliceStable(entities, func(i, j int) bool {
		return s.Less(entities[i], entities[j])
	})
}

func first(values []interface{}) interface{} {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}

// compareAttr orders two raw attribute values of the same dynamic
// type.  nil sorts first; incomparable pairs count as equal.
func compareAttr(a, b interface{}) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		}
		return 1
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			switch {
			case as < bs:
				return -1
			case as > bs:
				return 1
			}
			return 0
		}
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}
	if at, ok := toTime(a); ok {
		if bt, ok := toTime(b); ok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			}
			return 0
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case !ab && bb:
				return -1
			case ab && !bb:
				return 1
			}
			return 0
		}
	}
	return 0
}
