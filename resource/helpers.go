// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package resource

import "github.com/cenix/go-everest/schema"

// EntityID extracts the optional "id" key from an entity.  Returns
// the empty string if the entity has no identity yet, or
// ErrBadEntityID if the key is present but not a string.
func EntityID(e schema.Entity) (string, error) {
	raw, present := e["id"]
	if !present {
		return "", nil
	}
	id, ok := raw.(string)
	if !ok {
		return "", ErrBadEntityID
	}
	return id, nil
}

// CopyEntity makes a shallow copy of an entity, so callers and
// storage never alias the same map.
func CopyEntity(e schema.Entity) schema.Entity {
	out := make(schema.Entity, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
