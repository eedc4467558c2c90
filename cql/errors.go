// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package cql

import "fmt"

// ParseError is returned from Parse() and ParseOrder() for any
// malformed query string.  Input holds the offending substring: the
// whole criterion for structural problems, or the specific operator
// name or literal that could not be understood.
type ParseError struct {
	Input  string
	Reason string
}

func (err ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %v", err.Input, err.Reason)
}
