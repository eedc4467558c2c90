// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package cql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cenix/go-everest/cql"
)

func criterion(attr string, op cql.Operator, values ...cql.Value) cql.Criterion {
	return cql.Criterion{
		Attribute: []string{attr},
		Operator:  op,
		Values:    values,
	}
}

func TestExpressionEmpty(t *testing.T) {
	e, err := cql.ParseExpression("")
	if assert.NoError(t, err) {
		assert.Equal(t, cql.AndExpression{}, e)
	}
}

func TestExpressionSingleCriterion(t *testing.T) {
	e, err := cql.ParseExpression(`name:starts-with:"J"`)
	if assert.NoError(t, err) {
		assert.Equal(t,
			criterion("name", cql.StartsWith, cql.String("J")), e)
	}
}

func TestExpressionAnd(t *testing.T) {
	e, err := cql.ParseExpression(
		`name:starts-with:"J" and age:greater-than:18`)
	if assert.NoError(t, err) {
		assert.Equal(t, cql.AndExpression{
			criterion("name", cql.StartsWith, cql.String("J")),
			criterion("age", cql.GreaterThan, cql.Number(18)),
		}, e)
	}
}

func TestExpressionOrPrecedence(t *testing.T) {
	// "and" binds tighter than "or"
	e, err := cql.ParseExpression(`a:equal-to:1 and b:equal-to:2` +
		` or c:equal-to:3`)
	if assert.NoError(t, err) {
		assert.Equal(t, cql.OrExpression{
			cql.AndExpression{
				criterion("a", cql.EqualTo, cql.Number(1)),
				criterion("b", cql.EqualTo, cql.Number(2)),
			},
			criterion("c", cql.EqualTo, cql.Number(3)),
		}, e)
	}
}

func TestExpressionParentheses(t *testing.T) {
	e, err := cql.ParseExpression(`a:equal-to:1 and` +
		` (b:equal-to:2 or c:equal-to:3)`)
	if assert.NoError(t, err) {
		assert.Equal(t, cql.AndExpression{
			criterion("a", cql.EqualTo, cql.Number(1)),
			cql.OrExpression{
				criterion("b", cql.EqualTo, cql.Number(2)),
				criterion("c", cql.EqualTo, cql.Number(3)),
			},
		}, e)
	}
}

func TestExpressionTilde(t *testing.T) {
	// the plain "~" form parses as a conjunction
	e, err := cql.ParseExpression(`a:equal-to:1~b:equal-to:2`)
	if assert.NoError(t, err) {
		assert.Equal(t, cql.AndExpression{
			criterion("a", cql.EqualTo, cql.Number(1)),
			criterion("b", cql.EqualTo, cql.Number(2)),
		}, e)
	}
}

func TestExpressionTildeMixed(t *testing.T) {
	// "~" binds tighter than "and" and "or"
	e, err := cql.ParseExpression(`a:equal-to:1~b:equal-to:2` +
		` or c:equal-to:3`)
	if assert.NoError(t, err) {
		assert.Equal(t, cql.OrExpression{
			cql.AndExpression{
				criterion("a", cql.EqualTo, cql.Number(1)),
				criterion("b", cql.EqualTo, cql.Number(2)),
			},
			criterion("c", cql.EqualTo, cql.Number(3)),
		}, e)
	}
}

func TestExpressionCaselessKeywords(t *testing.T) {
	e, err := cql.ParseExpression(`a:equal-to:1 AND b:equal-to:2`)
	if assert.NoError(t, err) {
		assert.IsType(t, cql.AndExpression{}, e)
	}
}

func TestExpressionSpacedValueList(t *testing.T) {
	e, err := cql.ParseExpression(`name:contained:"a", "b"` +
		` and age:greater-than:2`)
	if assert.NoError(t, err) {
		assert.Equal(t, cql.AndExpression{
			criterion("name", cql.Contained,
				cql.String("a"), cql.String("b")),
			criterion("age", cql.GreaterThan, cql.Number(2)),
		}, e)
	}
}

func TestExpressionKeywordInString(t *testing.T) {
	e, err := cql.ParseExpression(`name:equal-to:"rock and roll"`)
	if assert.NoError(t, err) {
		assert.Equal(t, criterion("name", cql.EqualTo,
			cql.String("rock and roll")), e)
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []string{
		`(a:equal-to:1`,
		`a:equal-to:1)`,
		`a:equal-to:1 and`,
		`and a:equal-to:1`,
		`()`,
		`a:equal-to:1 or (and b:equal-to:2)`,
		`a:equal-to:1 b:equal-to:2`,
		`a:equal-to:"unterminated`,
	}
	for _, query := range tests {
		_, err := cql.ParseExpression(query)
		if assert.Error(t, err, "query %q", query) {
			assert.IsType(t, cql.ParseError{}, err, "query %q", query)
		}
	}
}

func TestExpressionRoundTrip(t *testing.T) {
	tests := []string{
		`name:starts-with:"J"`,
		`a:equal-to:1 and b:equal-to:2`,
		`a:equal-to:1 and b:equal-to:2 or c:equal-to:3`,
		`a:equal-to:1 and (b:equal-to:2 or c:equal-to:3)`,
		`(a:equal-to:1 or b:equal-to:2) and c:equal-to:3`,
	}
	for _, query := range tests {
		e, err := cql.ParseExpression(query)
		if !assert.NoError(t, err, "query %q", query) {
			continue
		}
		again, err := cql.ParseExpression(e.String())
		if assert.NoError(t, err, "rendered %q", e.String()) {
			assert.Equal(t, e, again, "query %q", query)
		}
	}
}
