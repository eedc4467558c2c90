// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package schema

import (
	"fmt"
	"strings"
)

// ErrNoSuchAttribute is returned by Resource.Resolve() when a dotted
// attribute path does not exist on the resource type.  This is
// distinct from a cql.ParseError: the query is syntactically fine,
// it just names an attribute the target schema does not have.
type ErrNoSuchAttribute struct {
	Resource string
	Path     []string
}

func (err ErrNoSuchAttribute) Error() string {
	return fmt.Sprintf("resource %v has no attribute %v",
		err.Resource, strings.Join(err.Path, "."))
}
