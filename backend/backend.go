// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

// Package backend provides a standard way to construct a resource
// repository based on command-line flags.
package backend

import (
	"errors"
	"strings"

	"github.com/cenix/go-everest/memory"
	"github.com/cenix/go-everest/postgres"
	"github.com/cenix/go-everest/resource"
	"github.com/cenix/go-everest/schema"
)

// Backend describes user-visible parameters to store resource data.
// This implements the flag.Value interface, and so a typical use is
//
//	func main() {
//	        backend := backend.Backend{Implementation: "memory"}
//	        flag.Var(&backend, "backend", "impl:address of entity storage")
//	        flag.Parse()
//	        repository, err := backend.Repository(schemas...)
//	}
type Backend struct {
	// Implementation holds the name of the implementation; for
	// instance, "memory" or "postgres".
	Implementation string

	// Address holds some backend-specific address, such as a
	// database connect string.
	Address string
}

// Repository creates a new resource repository serving the provided
// schemas.  This generally should be only called once.  If the
// backend has in-process state, such as a database connection pool
// or an in-memory store, calling this multiple times will create
// multiple copies of that state.  In particular, if b.Implementation
// is "memory", multiple calls to this will create multiple
// independent stores.
func (b *Backend) Repository(schemas ...*schema.Resource) (resource.Repository, error) {
	switch b.Implementation {
	case "memory":
		return memory.New(schemas...), nil
	case "postgres":
		return postgres.New(b.Address, schemas...)
	}
	return nil, errors.New("unknown backend " + b.Implementation)
}

// String renders a backend description as a string.
func (b *Backend) String() string {
	if b.Address == "" {
		return b.Implementation
	}
	return b.Implementation + ":" + b.Address
}

// Set parses a string into an existing backend description.  The
// string should be of the form "implementation:address", where
// address can be any string.  Set checks to see if the provided
// implementation is any of the known implementations, and returns an
// appropriate error if not.
//
// This is part of the flag.Value interface.  Note that this does not
// attempt to validate the b.Address part of the string or attempt to
// actually make a connection.
func (b *Backend) Set(param string) error {
	parts := strings.SplitN(param, ":", 2)
	b.Implementation = parts[0]
	b.Address = ""
	if len(parts) == 2 {
		b.Address = parts[1]
	}
	switch b.Implementation {
	case "memory", "postgres":
		return nil
	}
	return errors.New("unknown backend " + b.Implementation)
}
