// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package resource

import (
	"errors"
	"fmt"
)

// ErrIDMismatch is returned from Collection.Update() if the entity
// carries an "id" key that disagrees with the identity being
// updated.
var ErrIDMismatch = errors.New("Entity 'id' does not match identity")

// ErrBadEntityID is returned from functions that store an entity
// whose "id" key is present but not a string.
var ErrBadEntityID = errors.New("Entity 'id' must be a string")

// ErrNoSuchCollection is returned by Repository.Collection() when no
// collection was registered under the requested name.
type ErrNoSuchCollection struct {
	Name string
}

func (err ErrNoSuchCollection) Error() string {
	return fmt.Sprintf("No such collection %v", err.Name)
}

// ErrNoSuchEntity is returned by Collection.Get() and similar
// functions that want to look up an entity, but cannot find it.
type ErrNoSuchEntity struct {
	ID string
}

func (err ErrNoSuchEntity) Error() string {
	return fmt.Sprintf("No such entity %v", err.ID)
}

// ErrDuplicateEntity is returned by Collection.Add() when an entity
// with the same identity is already stored.
type ErrDuplicateEntity struct {
	ID string
}

func (err ErrDuplicateEntity) Error() string {
	return fmt.Sprintf("Entity %v already exists", err.ID)
}
