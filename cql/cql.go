// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

// Package cql parses the Collection Query Language, a small filter
// language that is embeddable in URL query parameters.  A CQL query
// is a sequence of criteria separated by "~", where each criterion
// has an attribute path, an operator, and one or more literal values
// separated by ",":
//
//	name:starts-with:"J"~age:in-range:18,65
//
// Multiple values on a single criterion mean "any of these" (a
// logical OR); multiple criteria always combine with a logical AND.
// Criteria can also be combined with explicit "and" and "or"
// junctions and parentheses; see ParseExpression.
//
// Parsing is a pure transformation of the input string; resolving
// attribute paths against an actual resource type happens later, in
// the spec package.
package cql

import "strings"

// A Criterion is a single attribute/operator/values triple parsed
// from a CQL query string.  Attribute holds the dotted attribute path
// split into its segments.  Values always holds at least one literal.
type Criterion struct {
	Attribute []string
	Operator  Operator
	Values    []Value
}

// String renders a criterion in canonical CQL form.  Parsing the
// result yields an equal Criterion.
func (c Criterion) String() string {
	literals := make([]string, len(c.Values))
	for i, v := range c.Values {
		literals[i] = v.String()
	}
	return strings.Join(c.Attribute, ".") + ":" + c.Operator.String() +
		":" + strings.Join(literals, ",")
}

// A Query is an ordered sequence of criteria.  The empty query
// selects every entity in a collection.
type Query []Criterion

// String renders a query in canonical CQL form.
func (q Query) String() string {
	criteria := make([]string, len(q))
	for i, c := range q {
		criteria[i] = c.String()
	}
	return strings.Join(criteria, "~")
}

// A SortKey is one attribute in an ordering expression, as parsed
// from a CQL order string such as "age:desc~name:asc".
type SortKey struct {
	Attribute  []string
	Descending bool
}

// String renders a sort key in canonical CQL order form.
func (k SortKey) String() string {
	dir := "asc"
	if k.Descending {
		dir = "desc"
	}
	return strings.Join(k.Attribute, ".") + ":" + dir
}

// A SortOrder is an ordered list of sort keys.  Earlier keys are more
// significant.
type SortOrder []SortKey

// String renders a sort order in canonical CQL order form.
func (o SortOrder) String() string {
	keys := make([]string, len(o))
	for i, k := range o {
		keys[i] = k.String()
	}
	return strings.Join(keys, "~")
}
