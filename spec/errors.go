// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package spec

import (
	"fmt"
	"strings"
)

// ErrUnresolvableRef is returned from Build() when a resource
// reference URL in a query cannot be resolved to an entity identity.
type ErrUnresolvableRef struct {
	URL string
	Err error
}

func (err ErrUnresolvableRef) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("cannot resolve resource %v: %v",
			err.URL, err.Err)
	}
	return fmt.Sprintf("cannot resolve resource %v", err.URL)
}

// ErrUnsortableAttribute is returned from NewSorter() for sort keys
// that name nested or non-terminal attributes.
type ErrUnsortableAttribute struct {
	Path []string
}

func (err ErrUnsortableAttribute) Error() string {
	return fmt.Sprintf("cannot sort on attribute %v",
		strings.Join(err.Path, "."))
}
