// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package cql

import (
	"strings"
)

// Parse parses a CQL filter string into a Query.  The empty string
// parses to an empty Query, which selects everything.  Any malformed
// criterion makes the whole parse fail with a ParseError; there is no
// partial recovery.
func Parse(query string) (Query, error) {
	if query == "" {
		return Query{}, nil
	}
	var q Query
	for _, raw := range splitOutsideQuotes(query, '~') {
		criterion, err := parseCriterion(raw)
		if err != nil {
			return nil, err
		}
		q = append(q, criterion)
	}
	return q, nil
}

// parseCriterion parses a single attribute:operator:values triple.
func parseCriterion(raw string) (Criterion, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 3 {
		return Criterion{}, ParseError{Input: raw,
			Reason: "criterion needs attribute, operator, and values"}
	}

	attribute, err := parseAttribute(parts[0])
	if err != nil {
		return Criterion{}, err
	}

	op, ok := OperatorBySlug(parts[1])
	if !ok {
		return Criterion{}, ParseError{Input: parts[1],
			Reason: "unknown operator"}
	}

	values, err := parseValues(parts[2])
	if err != nil {
		return Criterion{}, err
	}

	for _, v := range values {
		if !op.AppliesTo(v.Kind) {
			return Criterion{}, ParseError{Input: raw,
				Reason: "operator " + op.String() +
					" cannot be used with " +
					v.Kind.String() + " values"}
		}
	}
	if op == InRange {
		if err = checkRange(raw, values); err != nil {
			return Criterion{}, err
		}
	}

	return Criterion{Attribute: attribute, Operator: op, Values: values}, nil
}

// parseAttribute splits a dotted attribute path and validates each
// segment as a name token: a letter followed by letters, digits, or
// hyphens.
func parseAttribute(path string) ([]string, error) {
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if !validName(segment) {
			return nil, ParseError{Input: path,
				Reason: "invalid attribute name"}
		}
	}
	return segments, nil
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			continue
		case i > 0 && (c == '-' || c >= '0' && c <= '9'):
			continue
		default:
			return false
		}
	}
	return true
}

// parseValues splits a literal list on commas outside double quotes
// and parses each literal.
func parseValues(list string) ([]Value, error) {
	var values []Value
	for _, literal := range splitOutsideQuotes(list, ',') {
		v, err := parseLiteral(strings.TrimSpace(literal))
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// checkRange enforces the in-range contract: exactly two values of
// the same kind, low before high.  Reversed bounds are rejected here
// rather than silently matching nothing.
func checkRange(raw string, values []Value) error {
	if len(values) != 2 {
		return ParseError{Input: raw,
			Reason: "in-range takes exactly two values"}
	}
	low, high := values[0], values[1]
	if low.Kind != high.Kind {
		return ParseError{Input: raw,
			Reason: "in-range bounds must have the same type"}
	}
	switch low.Kind {
	case KindNumber:
		if low.Num > high.Num {
			return ParseError{Input: raw,
				Reason: "in-range bounds are reversed"}
		}
	case KindTime:
		if low.Time.After(high.Time) {
			return ParseError{Input: raw,
				Reason: "in-range bounds are reversed"}
		}
	}
	return nil
}

// ParseOrder parses a CQL ordering string such as
// "age:desc~name:asc".  The empty string parses to an empty order,
// which leaves the collection in its natural order.
func ParseOrder(order string) (SortOrder, error) {
	if order == "" {
		return SortOrder{}, nil
	}
	var keys SortOrder
	for _, raw := range strings.Split(order, "~") {
		parts := strings.SplitN(raw, ":", 2)
		if len(parts) < 2 {
			return nil, ParseError{Input: raw,
				Reason: "sort key needs attribute and direction"}
		}
		attribute, err := parseAttribute(parts[0])
		if err != nil {
			return nil, err
		}
		var descending bool
		switch parts[1] {
		case "asc":
			descending = false
		case "desc":
			descending = true
		default:
			return nil, ParseError{Input: parts[1],
				Reason: "sort direction must be asc or desc"}
		}
		keys = append(keys, SortKey{Attribute: attribute,
			Descending: descending})
	}
	return keys, nil
}

// splitOutsideQuotes splits s on sep, ignoring separators that appear
// inside double-quoted sections.  Backslash escapes inside quotes are
// honored so an escaped quote does not end the section.
func splitOutsideQuotes(s string, sep byte) []string {
	var parts []string
	var start int
	inQuotes := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inQuotes:
			escaped = true
		case c == '"':
			inQuotes = !inQuotes
		case c == sep && !inQuotes:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
