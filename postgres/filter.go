// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package postgres

// This file translates specification trees into SQL WHERE clauses.
// Every comparison works on a possibly-NULL column, so a condition
// on an absent attribute evaluates to NULL rather than FALSE; the
// NOT case wraps its operand in COALESCE so that negated tests
// match entities that lack the attribute, the same answer the
// in-memory evaluator gives.

import (
	"fmt"
	"strings"

	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/schema"
	"github.com/cenix/go-everest/spec"
)

// whereSpec translates a specification into a SQL boolean
// expression, accumulating parameter values in qp.
func whereSpec(s spec.Specification, qp *queryParams) (string, error) {
	switch t := s.(type) {
	case *spec.Condition:
		return whereCondition(t.Fields, t.Op, t.Values, qp)
	case spec.And:
		if len(t.Specs) == 0 {
			return "TRUE", nil
		}
		return whereJoin(t.Specs, " AND ", qp)
	case spec.Or:
		if len(t.Specs) == 0 {
			return "FALSE", nil
		}
		return whereJoin(t.Specs, " OR ", qp)
	case spec.Not:
		inner, err := whereSpec(t.Spec, qp)
		if err != nil {
			return "", err
		}
		return "(NOT COALESCE(" + inner + ", FALSE))", nil
	}
	return "", fmt.Errorf("unexpected specification %T", s)
}

func whereJoin(specs []spec.Specification, conjunction string, qp *queryParams) (string, error) {
	parts := make([]string, len(specs))
	for i, child := range specs {
		part, err := whereSpec(child, qp)
		if err != nil {
			return "", err
		}
		parts[i] = part
	}
	return "(" + strings.Join(parts, conjunction) + ")", nil
}

// whereCondition translates a single condition.  A condition whose
// attribute path traverses nested resources becomes a chain of IN
// subqueries, one level per path segment, ending in a plain
// comparison on the innermost table's column.
func whereCondition(fields []schema.Field, op cql.Operator, values []cql.Value, qp *queryParams) (string, error) {
	f := fields[0]
	if len(fields) > 1 {
		rest, err := whereCondition(fields[1:], op, values, qp)
		if err != nil {
			return "", err
		}
		switch f.Kind {
		case schema.Member:
			return f.ColumnName() + " IN (SELECT id FROM " +
				f.Ref.Table + " WHERE " + rest + ")", nil
		case schema.Collection:
			return "id IN (SELECT " + f.ColumnName() + " FROM " +
				f.Ref.Table + " WHERE " + rest + ")", nil
		}
		return "", fmt.Errorf("cannot traverse terminal attribute %v", f.Key)
	}

	column := f.ColumnName()
	if column == "" {
		return "", fmt.Errorf("attribute %v is not stored in a column", f.Key)
	}

	switch op {
	case cql.StartsWith:
		return column + " LIKE " + qp.Param(escapeLike(values[0].Str)+"%"), nil
	case cql.EndsWith:
		return column + " LIKE " + qp.Param("%"+escapeLike(values[0].Str)), nil
	case cql.Contains:
		return column + " LIKE " + qp.Param("%"+escapeLike(values[0].Str)+"%"), nil
	case cql.Contained:
		params := make([]string, len(values))
		for i, v := range values {
			params[i] = qp.Param(sqlValue(v))
		}
		return column + " IN (" + strings.Join(params, ", ") + ")", nil
	case cql.EqualTo:
		return column + " = " + qp.Param(sqlValue(values[0])), nil
	case cql.LessThan:
		return column + " < " + qp.Param(sqlValue(values[0])), nil
	case cql.LessOrEqual:
		return column + " <= " + qp.Param(sqlValue(values[0])), nil
	case cql.GreaterThan:
		return column + " > " + qp.Param(sqlValue(values[0])), nil
	case cql.GreaterOrEqual:
		return column + " >= " + qp.Param(sqlValue(values[0])), nil
	case cql.InRange:
		return column + " BETWEEN " + qp.Param(sqlValue(values[0])) +
			" AND " + qp.Param(sqlValue(values[1])), nil
	}
	return "", fmt.Errorf("unexpected operator %v", op)
}

// escapeLike escapes a string for inclusion in a LIKE pattern, so
// that wildcard characters in query values match only themselves.
func escapeLike(s string) string {
	s = strings.Replace(s, "\\", "\\\\", -1)
	s = strings.Replace(s, "%", "\\%", -1)
	s = strings.Replace(s, "_", "\\_", -1)
	return s
}

// sqlValue converts a query literal to a database/sql parameter.
func sqlValue(v cql.Value) interface{} {
	switch v.Kind {
	case cql.KindNumber:
		return v.Num
	case cql.KindBool:
		return v.Bool
	case cql.KindTime:
		return v.Time
	}
	// strings and resource identities
	return v.Str
}
