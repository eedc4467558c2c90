// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

// Unit tests for operator text marshaling.
//
// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package cql_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cenix/go-everest/cql"
)

type OperatorMatrix struct {
	Operator    cql.Operator
	Text        string
	EncodeError string
	DecodeError string
}

var operators = []OperatorMatrix{
	{cql.StartsWith, "starts-with", "", ""},
	{cql.NotStartsWith, "not-starts-with", "", ""},
	{cql.EndsWith, "ends-with", "", ""},
	{cql.NotEndsWith, "not-ends-with", "", ""},
	{cql.Contains, "contains", "", ""},
	{cql.NotContains, "not-contains", "", ""},
	{cql.Contained, "contained", "", ""},
	{cql.NotContained, "not-contained", "", ""},
	{cql.EqualTo, "equal-to", "", ""},
	{cql.NotEqualTo, "not-equal-to", "", ""},
	{cql.LessThan, "less-than", "", ""},
	{cql.LessOrEqual, "less-than-or-equal-to", "", ""},
	{cql.GreaterThan, "greater-than", "", ""},
	{cql.GreaterOrEqual, "greater-than-or-equal-to", "", ""},
	{cql.InRange, "in-range", "", ""},
	{cql.Operator(99), "ninety-nine",
		"invalid operator (marshal, 99)",
		"invalid operator (unmarshal, ninety-nine)"},
}

func TestOperatorToJSON(t *testing.T) {
	for _, o := range operators {
		t.Run(o.Text, func(tt *testing.T) {
			actual, err := json.Marshal(o.Operator)
			if o.EncodeError == "" {
				if assert.NoError(tt, err) {
					assert.Equal(tt, "\""+o.Text+"\"",
						string(actual))
				}
			} else {
				assert.EqualError(tt, err,
					"json: error calling MarshalText for type cql.Operator: "+o.EncodeError)
			}
		})
	}
}

func TestOperatorFromJSON(t *testing.T) {
	for _, o := range operators {
		t.Run(o.Text, func(tt *testing.T) {
			var actual cql.Operator
			err := json.Unmarshal([]byte("\""+o.Text+"\""), &actual)
			if o.DecodeError == "" {
				if assert.NoError(tt, err) {
					assert.Equal(tt, o.Operator, actual)
				}
			} else {
				assert.EqualError(tt, err, o.DecodeError)
			}
		})
	}
}

func TestOperatorNegation(t *testing.T) {
	assert.True(t, cql.NotEqualTo.Negated())
	assert.False(t, cql.EqualTo.Negated())
	assert.Equal(t, cql.EqualTo, cql.NotEqualTo.Positive())
	assert.Equal(t, cql.StartsWith, cql.NotStartsWith.Positive())
	assert.Equal(t, cql.LessThan, cql.LessThan.Positive())
}

func TestOperatorApplicability(t *testing.T) {
	assert.True(t, cql.StartsWith.AppliesTo(cql.KindString))
	assert.False(t, cql.StartsWith.AppliesTo(cql.KindNumber))
	assert.True(t, cql.EqualTo.AppliesTo(cql.KindRef))
	assert.True(t, cql.LessThan.AppliesTo(cql.KindTime))
	assert.False(t, cql.LessThan.AppliesTo(cql.KindBool))
	assert.True(t, cql.InRange.AppliesTo(cql.KindNumber))
	assert.False(t, cql.Contained.AppliesTo(cql.KindBool))
}
