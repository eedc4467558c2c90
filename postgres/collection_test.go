// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/resource"
	"github.com/cenix/go-everest/schema"
)

// Schemas declared through the everestd configuration file never
// spell out an "id" field; the identity column must still appear in
// generated statements.
func TestColumnsWithoutExplicitID(t *testing.T) {
	people := &schema.Resource{
		Name:  "people",
		Table: "people",
		Fields: map[string]schema.Field{
			"name": {Key: "name", Type: cql.KindString},
			"age":  {Key: "age", Type: cql.KindNumber},
		},
	}
	c := &pgCollection{schema: people, columns: columnFields(people)}

	qp := queryParams{}
	query, err := c.buildList(resource.Query{}, &qp)
	if assert.NoError(t, err) {
		assert.Equal(t, "SELECT id, age, name FROM people", query)
	}
}

func TestColumnsWithExplicitID(t *testing.T) {
	people := &schema.Resource{
		Name:  "people",
		Table: "people",
		Fields: map[string]schema.Field{
			"id":   {Key: "id", Type: cql.KindString},
			"name": {Key: "name", Type: cql.KindString},
		},
	}
	c := &pgCollection{schema: people, columns: columnFields(people)}

	qp := queryParams{}
	query, err := c.buildList(resource.Query{}, &qp)
	if assert.NoError(t, err) {
		assert.Equal(t, "SELECT id, name FROM people", query)
	}
}
