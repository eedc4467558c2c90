// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/schema"
)

var people = &schema.Resource{
	Name:  "people",
	Table: "people",
	Fields: map[string]schema.Field{
		"id":   {Key: "id", Type: cql.KindString},
		"name": {Key: "name", Type: cql.KindString},
		"age":  {Key: "age", Type: cql.KindNumber},
		"born": {Key: "born", Type: cql.KindTime},
	},
}

func TestEntityDataTyping(t *testing.T) {
	d := EntityData{
		"id":   "jones",
		"name": "Jones",
		"age":  int64(30),
		"born": "1986-03-14T00:00:00Z",
	}
	e, err := d.Entity(people)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "jones", e["id"])
	assert.Equal(t, float64(30), e["age"])
	assert.Equal(t,
		time.Date(1986, 3, 14, 0, 0, 0, 0, time.UTC), e["born"])

	back := FromEntity(e)
	assert.Equal(t, "1986-03-14T00:00:00Z", back["born"])
	assert.Equal(t, float64(30), back["age"])
}

func TestEntityDataBadTimestamp(t *testing.T) {
	d := EntityData{"born": "yesterday"}
	_, err := d.Entity(people)
	assert.Error(t, err)

	d = EntityData{"born": 42}
	_, err = d.Entity(people)
	assert.Error(t, err)
}

func TestEntityDataNilDropped(t *testing.T) {
	d := EntityData{"name": "Jones", "age": nil}
	e, err := d.Entity(people)
	if assert.NoError(t, err) {
		_, present := e["age"]
		assert.False(t, present)
	}
}

func TestDecodeMediaTypes(t *testing.T) {
	for _, contentType := range []string{
		"application/json",
		"text/json",
		JSONMediaType,
		V1JSONMediaType,
		V1JSONMediaType + "; charset=utf-8",
	} {
		var out map[string]interface{}
		err := Decode(contentType,
			strings.NewReader(`{"key":"value"}`), &out)
		if assert.NoError(t, err, contentType) {
			assert.Equal(t, "value", out["key"])
		}
	}

	var out map[string]interface{}
	err := Decode("text/plain", strings.NewReader("hello"), &out)
	assert.Equal(t, ErrUnsupportedMediaType{Type: "text/plain"}, err)
}
