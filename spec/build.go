// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package spec

import (
	"fmt"

	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/schema"
)

// A RefResolver resolves a resource reference URL from a query into
// the identity of the referenced entity.  The restserver package
// provides one that understands the URLs it mints itself; tests can
// supply a map-backed one.
type RefResolver interface {
	Resolve(url string) (string, error)
}

// Build converts a parsed query into a single specification over the
// given resource type.  Each criterion becomes a condition (or a
// disjunction of per-value conditions), and all criteria combine
// with AND, in query order.  Criteria naming the same attribute also
// combine with AND.
//
// Resource reference values are resolved through refs at build time;
// refs may be nil if the query is known not to contain references.
// Attribute paths that do not exist on the resource produce a
// schema.ErrNoSuchAttribute.
func Build(q cql.Query, r *schema.Resource, refs RefResolver) (Specification, error) {
	specs := make([]Specification, 0, len(q))
	for _, criterion := range q {
		s, err := buildCriterion(criterion, r, refs)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return Conjoin(specs...), nil
}

// BuildExpression converts a parsed filter expression into a single
// specification over the given resource type, mapping "and" and "or"
// junctions onto conjunctions and disjunctions.  It otherwise
// behaves like Build.
func BuildExpression(e cql.Expression, r *schema.Resource, refs RefResolver) (Specification, error) {
	switch x := e.(type) {
	case cql.Criterion:
		return buildCriterion(x, r, refs)
	case cql.AndExpression:
		specs, err := buildTerms(x, r, refs)
		if err != nil {
			return nil, err
		}
		return Conjoin(specs...), nil
	case cql.OrExpression:
		specs, err := buildTerms(x, r, refs)
		if err != nil {
			return nil, err
		}
		return Disjoin(specs...), nil
	}
	return nil, fmt.Errorf("unknown expression type %T", e)
}

func buildTerms(terms []cql.Expression, r *schema.Resource, refs RefResolver) ([]Specification, error) {
	specs := make([]Specification, 0, len(terms))
	for _, term := range terms {
		s, err := BuildExpression(term, r, refs)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, nil
}

func buildCriterion(c cql.Criterion, r *schema.Resource, refs RefResolver) (Specification, error) {
	fields, err := r.Resolve(c.Attribute)
	if err != nil {
		return nil, err
	}

	values, err := resolveRefs(c.Values, refs)
	if err != nil {
		return nil, err
	}

	op := c.Operator.Positive()
	var s Specification
	switch op {
	case cql.Contained, cql.InRange:
		// These operators consume their whole value list as a
		// single test.
		s = &Condition{Path: c.Attribute, Fields: fields,
			Op: op, Values: values}
	default:
		// Everything else tests each value separately and
		// accepts any match.
		conditions := make([]Specification, len(values))
		for i, v := range values {
			conditions[i] = &Condition{Path: c.Attribute,
				Fields: fields, Op: op,
				Values: []cql.Value{v}}
		}
		s = Disjoin(conditions...)
	}

	// A negated criterion negates the whole membership test:
	// not-equal-to:"a","b" excludes both values.
	if c.Operator.Negated() {
		s = Negate(s)
	}
	return s, nil
}

// resolveRefs replaces resource reference values with the string
// identity of the referenced entity, so that backends only ever
// compare identities.
func resolveRefs(values []cql.Value, refs RefResolver) ([]cql.Value, error) {
	resolved := make([]cql.Value, len(values))
	for i, v := range values {
		if v.Kind != cql.KindRef {
			resolved[i] = v
			continue
		}
		if refs == nil {
			return nil, ErrUnresolvableRef{URL: v.Str}
		}
		id, err := refs.Resolve(v.Str)
		if err != nil {
			return nil, ErrUnresolvableRef{URL: v.Str, Err: err}
		}
		resolved[i] = cql.Value{Kind: cql.KindRef, Str: id}
	}
	return resolved, nil
}
