// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package cql

import "fmt"

// Operator identifies one of the fixed CQL comparison operators.
type Operator int

const (
	// InvalidOperator is the zero value; no parsed criterion has it.
	InvalidOperator Operator = iota

	// StartsWith matches string attributes with a given prefix.
	StartsWith

	// NotStartsWith is the negation of StartsWith.  Like all
	// negated operators it also matches entities that have no
	// value at all for the attribute.
	NotStartsWith

	// EndsWith matches string attributes with a given suffix.
	EndsWith

	// NotEndsWith is the negation of EndsWith.
	NotEndsWith

	// Contains matches string attributes containing a given
	// substring.
	Contains

	// NotContains is the negation of Contains.
	NotContains

	// Contained matches string attributes whose value is one of
	// the given values.
	Contained

	// NotContained is the negation of Contained.
	NotContained

	// EqualTo matches attributes of any type equal to a given
	// value.
	EqualTo

	// NotEqualTo is the negation of EqualTo.
	NotEqualTo

	// LessThan matches number or date/time attributes strictly
	// less than a given value.
	LessThan

	// LessOrEqual matches number or date/time attributes less
	// than or equal to a given value.
	LessOrEqual

	// GreaterThan matches number or date/time attributes strictly
	// greater than a given value.
	GreaterThan

	// GreaterOrEqual matches number or date/time attributes
	// greater than or equal to a given value.
	GreaterOrEqual

	// InRange matches number or date/time attributes between two
	// given values, inclusive on both bounds.
	InRange
)

// operatorSlugs maps each operator to its CQL wire name.
var operatorSlugs = map[Operator]string{
	StartsWith:     "starts-with",
	NotStartsWith:  "not-starts-with",
	EndsWith:       "ends-with",
	NotEndsWith:    "not-ends-with",
	Contains:       "contains",
	NotContains:    "not-contains",
	Contained:      "contained",
	NotContained:   "not-contained",
	EqualTo:        "equal-to",
	NotEqualTo:     "not-equal-to",
	LessThan:       "less-than",
	LessOrEqual:    "less-than-or-equal-to",
	GreaterThan:    "greater-than",
	GreaterOrEqual: "greater-than-or-equal-to",
	InRange:        "in-range",
}

var operatorsBySlug = make(map[string]Operator)

func init() {
	for op, slug := range operatorSlugs {
		operatorsBySlug[slug] = op
	}
}

// OperatorBySlug resolves a CQL operator name such as "starts-with"
// or "not-equal-to".  The second return is false if the name is not
// in the operator table.
func OperatorBySlug(slug string) (Operator, bool) {
	op, ok := operatorsBySlug[slug]
	return op, ok
}

// String returns the CQL wire name of an operator.
func (op Operator) String() string {
	if slug, ok := operatorSlugs[op]; ok {
		return slug
	}
	return fmt.Sprintf("operator(%d)", int(op))
}

// Negated reports whether this is one of the "not-" operators.
func (op Operator) Negated() bool {
	switch op {
	case NotStartsWith, NotEndsWith, NotContains, NotContained, NotEqualTo:
		return true
	}
	return false
}

// Positive returns the non-negated counterpart of a "not-" operator,
// or the operator itself if it is already positive.  Negated
// criteria are evaluated as the logical negation of their positive
// counterpart, so an absent attribute value satisfies any "not-"
// test.
func (op Operator) Positive() Operator {
	switch op {
	case NotStartsWith:
		return StartsWith
	case NotEndsWith:
		return EndsWith
	case NotContains:
		return Contains
	case NotContained:
		return Contained
	case NotEqualTo:
		return EqualTo
	}
	return op
}

// AppliesTo reports whether an operator can be used with values of
// the given kind.  String matching operators take only strings;
// ordering operators take numbers and date/times; equality takes any
// kind.
func (op Operator) AppliesTo(kind Kind) bool {
	switch op.Positive() {
	case StartsWith, EndsWith, Contains, Contained:
		return kind == KindString
	case EqualTo:
		return kind != KindInvalid
	case LessThan, LessOrEqual, GreaterThan, GreaterOrEqual, InRange:
		return kind == KindNumber || kind == KindTime
	}
	return false
}

// MarshalText returns the CQL wire name of an operator.
func (op Operator) MarshalText() ([]byte, error) {
	if slug, ok := operatorSlugs[op]; ok {
		return []byte(slug), nil
	}
	return nil, fmt.Errorf("invalid operator (marshal, %+v)", int(op))
}

// UnmarshalText populates an operator from its CQL wire name.
func (op *Operator) UnmarshalText(text []byte) error {
	parsed, ok := operatorsBySlug[string(text)]
	if !ok {
		return fmt.Errorf("invalid operator (unmarshal, %+v)", string(text))
	}
	*op = parsed
	return nil
}
