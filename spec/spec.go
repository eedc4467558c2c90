// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

// Package spec turns parsed CQL queries into specifications:
// composable predicate trees over resource attributes.  A
// specification is independent of any particular storage: the memory
// backend evaluates it directly against entities with Matches(),
// while the postgres backend translates the same tree into SQL.
//
// See http://en.wikipedia.org/wiki/Specification_pattern for the
// lineage of the idea.
package spec

import (
	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/schema"
)

// A Specification is a node in a predicate tree: either a Condition
// leaf or an And, Or, or Not combinator.
type Specification interface {
	isSpecification()
}

// A Condition is a leaf specification testing one resolved attribute
// against an operator and its values.  Op is always a positive
// operator; negation is expressed by a wrapping Not node.  Values
// holds one value for simple comparisons, exactly two for InRange,
// and any number for Contained.
type Condition struct {
	// Path is the attribute path as written in the query.
	Path []string

	// Fields is the resolved field chain for Path, one entry per
	// path segment.
	Fields []schema.Field

	Op     cql.Operator
	Values []cql.Value
}

// And matches when every child specification matches.  An empty And
// matches everything; it is what an empty query builds to.
type And struct {
	Specs []Specification
}

// Or matches when at least one child specification matches.
type Or struct {
	Specs []Specification
}

// Not matches when the wrapped specification does not.  In
// particular a Not over a condition on a missing attribute matches:
// absence trivially satisfies any negated test.
type Not struct {
	Spec Specification
}

func (*Condition) isSpecification() {}
func (And) isSpecification()        {}
func (Or) isSpecification()         {}
func (Not) isSpecification()        {}

// Conjoin combines specifications with a logical AND, flattening
// nested And nodes.  Conjoin() with no arguments yields the
// match-everything specification.
func Conjoin(specs ...Specification) Specification {
	flat := make([]Specification, 0, len(specs))
	for _, s := range specs {
		if and, ok := s.(And); ok {
			flat = append(flat, and.Specs...)
		} else {
			flat = append(flat, s)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return And{Specs: flat}
}

// Disjoin combines specifications with a logical OR, flattening
// nested Or nodes.
func Disjoin(specs ...Specification) Specification {
	flat := make([]Specification, 0, len(specs))
	for _, s := range specs {
		if or, ok := s.(Or); ok {
			flat = append(flat, or.Specs...)
		} else {
			flat = append(flat, s)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Or{Specs: flat}
}

// Negate wraps a specification in a logical NOT, collapsing double
// negation.
func Negate(s Specification) Specification {
	if not, ok := s.(Not); ok {
		return not.Spec
	}
	return Not{Spec: s}
}
