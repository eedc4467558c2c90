// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"

	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/schema"
)

const configText = `
resources:
  - name: sites
    fields:
      label: {type: string}
  - name: people
    table: person
    fields:
      name: {type: string}
      age: {type: number, column: age_years}
      site: {member: sites}
  - name: visits
    fields:
      person: {member: people}
      when: {type: time}
`

func decodeConfig(t *testing.T, text string) map[string]interface{} {
	var gConfig map[string]interface{}
	err := yaml.Unmarshal([]byte(text), &gConfig)
	assert.NoError(t, err)
	return gConfig
}

func TestLoadSchemas(t *testing.T) {
	schemas, err := loadSchemas(decodeConfig(t, configText))
	if !assert.NoError(t, err) {
		return
	}
	if !assert.Len(t, schemas, 3) {
		return
	}

	people := schemas[1]
	assert.Equal(t, "people", people.Name)
	assert.Equal(t, "person", people.Table)

	age, ok := people.Field("age")
	if assert.True(t, ok) {
		assert.Equal(t, schema.Terminal, age.Kind)
		assert.Equal(t, cql.KindNumber, age.Type)
		assert.Equal(t, "age_years", age.ColumnName())
	}

	site, ok := people.Field("site")
	if assert.True(t, ok) {
		assert.Equal(t, schema.Member, site.Kind)
		assert.Equal(t, schemas[0], site.Ref)
	}

	// forward reference from visits back to people resolves even
	// though people is declared later in the file than sites
	person, ok := schemas[2].Field("person")
	if assert.True(t, ok) {
		assert.Equal(t, people, person.Ref)
	}
}

func TestLoadSchemasEmpty(t *testing.T) {
	schemas, err := loadSchemas(nil)
	assert.NoError(t, err)
	assert.Empty(t, schemas)
}

func TestLoadSchemasBadType(t *testing.T) {
	_, err := loadSchemas(decodeConfig(t, `
resources:
  - name: things
    fields:
      weight: {type: kilograms}
`))
	assert.Error(t, err)
}

func TestLoadSchemasUnknownRef(t *testing.T) {
	_, err := loadSchemas(decodeConfig(t, `
resources:
  - name: things
    fields:
      owner: {member: nobody}
`))
	assert.Error(t, err)
}
