// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package cql_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cenix/go-everest/cql"
)

func TestParseEmpty(t *testing.T) {
	q, err := cql.Parse("")
	if assert.NoError(t, err) {
		assert.Empty(t, q)
	}
}

func TestParseSingleCriterion(t *testing.T) {
	q, err := cql.Parse(`name:starts-with:"J"`)
	if assert.NoError(t, err) && assert.Len(t, q, 1) {
		assert.Equal(t, []string{"name"}, q[0].Attribute)
		assert.Equal(t, cql.StartsWith, q[0].Operator)
		assert.Equal(t, []cql.Value{cql.String("J")}, q[0].Values)
	}
}

func TestParseMultiValue(t *testing.T) {
	q, err := cql.Parse(`name:equal-to:"Jones","Smith"`)
	if assert.NoError(t, err) && assert.Len(t, q, 1) {
		assert.Equal(t, []cql.Value{
			cql.String("Jones"),
			cql.String("Smith"),
		}, q[0].Values)
	}
}

func TestParseMultipleCriteria(t *testing.T) {
	q, err := cql.Parse(`name:starts-with:"J"~age:greater-than:18`)
	if assert.NoError(t, err) && assert.Len(t, q, 2) {
		assert.Equal(t, []string{"name"}, q[0].Attribute)
		assert.Equal(t, cql.StartsWith, q[0].Operator)
		assert.Equal(t, []string{"age"}, q[1].Attribute)
		assert.Equal(t, cql.GreaterThan, q[1].Operator)
		assert.Equal(t, []cql.Value{cql.Number(18)}, q[1].Values)
	}
}

func TestParseDottedAttribute(t *testing.T) {
	q, err := cql.Parse(`incidence.species.name:equal-to:"rose"`)
	if assert.NoError(t, err) && assert.Len(t, q, 1) {
		assert.Equal(t, []string{"incidence", "species", "name"},
			q[0].Attribute)
	}
}

func TestParseLiteralKinds(t *testing.T) {
	q, err := cql.Parse(`age:equal-to:30` +
		`~active:equal-to:true` +
		`~name:equal-to:"Jones"` +
		`~born:equal-to:"1970-01-02T03:04:05Z"` +
		`~species:equal-to:http://plantscribe.org/species/1`)
	if assert.NoError(t, err) && assert.Len(t, q, 5) {
		assert.Equal(t, cql.Number(30), q[0].Values[0])
		assert.Equal(t, cql.Bool(true), q[1].Values[0])
		assert.Equal(t, cql.String("Jones"), q[2].Values[0])
		expected := time.Date(1970, 1, 2, 3, 4, 5, 0, time.UTC)
		assert.True(t, expected.Equal(q[3].Values[0].Time))
		assert.Equal(t,
			cql.Ref("http://plantscribe.org/species/1"),
			q[4].Values[0])
	}
}

func TestParseNumberShapes(t *testing.T) {
	tests := []struct {
		literal  string
		expected float64
	}{
		{"0", 0},
		{"-17", -17},
		{"3.14", 3.14},
		{"1e3", 1000},
		{"-2.5e-1", -0.25},
	}
	for _, test := range tests {
		t.Run(test.literal, func(tt *testing.T) {
			q, err := cql.Parse("age:equal-to:" + test.literal)
			if assert.NoError(tt, err) {
				assert.Equal(tt, test.expected,
					q[0].Values[0].Num)
			}
		})
	}
}

func TestParseQuotedSeparators(t *testing.T) {
	q, err := cql.Parse(`name:equal-to:"a~b","c,d","e:f"`)
	if assert.NoError(t, err) && assert.Len(t, q, 1) {
		assert.Equal(t, []cql.Value{
			cql.String("a~b"),
			cql.String("c,d"),
			cql.String("e:f"),
		}, q[0].Values)
	}
}

func TestParseEscapedQuote(t *testing.T) {
	q, err := cql.Parse(`name:equal-to:"say \"hi\""`)
	if assert.NoError(t, err) && assert.Len(t, q, 1) {
		assert.Equal(t, cql.String(`say "hi"`), q[0].Values[0])
	}
}

func TestParseTimestampWithoutZone(t *testing.T) {
	q, err := cql.Parse(`born:less-than:"2012-06-13 11:06:47"`)
	if assert.NoError(t, err) && assert.Len(t, q, 1) {
		expected := time.Date(2012, 6, 13, 11, 6, 47, 0, time.UTC)
		assert.True(t, expected.Equal(q[0].Values[0].Time))
	}
}

func TestParseInRange(t *testing.T) {
	q, err := cql.Parse("age:in-range:18,65")
	if assert.NoError(t, err) && assert.Len(t, q, 1) {
		assert.Equal(t, cql.InRange, q[0].Operator)
		assert.Equal(t, []cql.Value{
			cql.Number(18),
			cql.Number(65),
		}, q[0].Values)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		input  string
		reason string
	}{
		{"unknown operator", `name:bogus-op:"J"`,
			"bogus-op", "unknown operator"},
		{"missing parts", "name:equal-to",
			"name:equal-to",
			"criterion needs attribute, operator, and values"},
		{"empty attribute", `:equal-to:"J"`,
			"", "invalid attribute name"},
		{"empty path segment", `name..first:equal-to:"J"`,
			"name..first", "invalid attribute name"},
		{"numeric attribute", `9lives:equal-to:"J"`,
			"9lives", "invalid attribute name"},
		{"missing value", "name:equal-to:",
			"", "criterion does not define a value"},
		{"bad literal", "name:equal-to:jones",
			"jones", "malformed literal"},
		{"unterminated string", `name:equal-to:"J`,
			`"J`, "unterminated string literal"},
		{"starts-with number", "age:starts-with:18",
			"age:starts-with:18",
			"operator starts-with cannot be used with number values"},
		{"less-than string", `name:less-than:"J"`,
			`name:less-than:"J"`,
			"operator less-than cannot be used with string values"},
		{"range arity", "age:in-range:18",
			"age:in-range:18", "in-range takes exactly two values"},
		{"range reversed", "age:in-range:65,18",
			"age:in-range:65,18", "in-range bounds are reversed"},
		{"range bound type", `age:in-range:18,"J"`,
			`age:in-range:18,"J"`,
			"operator in-range cannot be used with string values"},
		{"range mixed types",
			`age:in-range:18,"2012-06-13T11:06:47Z"`,
			`age:in-range:18,"2012-06-13T11:06:47Z"`,
			"in-range bounds must have the same type"},
	}
	for _, test := range tests {
		t.Run(test.name, func(tt *testing.T) {
			_, err := cql.Parse(test.query)
			assert.Equal(tt, cql.ParseError{
				Input:  test.input,
				Reason: test.reason,
			}, err)
		})
	}
}

func TestParseOrder(t *testing.T) {
	order, err := cql.ParseOrder("age:desc~name:asc")
	if assert.NoError(t, err) && assert.Len(t, order, 2) {
		assert.Equal(t, []string{"age"}, order[0].Attribute)
		assert.True(t, order[0].Descending)
		assert.Equal(t, []string{"name"}, order[1].Attribute)
		assert.False(t, order[1].Descending)
	}
}

func TestParseOrderEmpty(t *testing.T) {
	order, err := cql.ParseOrder("")
	if assert.NoError(t, err) {
		assert.Empty(t, order)
	}
}

func TestParseOrderErrors(t *testing.T) {
	_, err := cql.ParseOrder("age:upward")
	assert.Equal(t, cql.ParseError{
		Input:  "upward",
		Reason: "sort direction must be asc or desc",
	}, err)

	_, err = cql.ParseOrder("age")
	assert.Equal(t, cql.ParseError{
		Input:  "age",
		Reason: "sort key needs attribute and direction",
	}, err)
}

func TestRoundTrip(t *testing.T) {
	queries := []string{
		`name:starts-with:"J"`,
		`name:equal-to:"Jones","Smith"`,
		"age:in-range:18,65",
		`name:not-starts-with:"J"~age:greater-than:18`,
		`born:less-than-or-equal-to:"2012-06-13T11:06:47Z"`,
		`species:equal-to:http://plantscribe.org/species/1`,
		`name:equal-to:"say \"hi\""`,
		"active:equal-to:false",
	}
	for _, query := range queries {
		t.Run(query, func(tt *testing.T) {
			q, err := cql.Parse(query)
			if !assert.NoError(tt, err) {
				return
			}
			assert.Equal(tt, query, q.String())
			again, err := cql.Parse(q.String())
			if assert.NoError(tt, err) {
				assert.Equal(tt, q, again)
			}
		})
	}
}

func TestOrderRoundTrip(t *testing.T) {
	order, err := cql.ParseOrder("age:desc~name:asc")
	if assert.NoError(t, err) {
		assert.Equal(t, "age:desc~name:asc", order.String())
	}
}
