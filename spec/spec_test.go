// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package spec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/schema"
	"github.com/cenix/go-everest/spec"
)

var siteResource = &schema.Resource{
	Name:  "sites",
	Table: "sites",
	Fields: map[string]schema.Field{
		"id":   {Key: "id", Type: cql.KindString},
		"name": {Key: "name", Type: cql.KindString},
	},
}

var projectResource = &schema.Resource{
	Name:  "projects",
	Table: "projects",
	Fields: map[string]schema.Field{
		"id":   {Key: "id", Type: cql.KindString},
		"name": {Key: "name", Type: cql.KindString},
	},
}

var personResource = &schema.Resource{
	Name:  "people",
	Table: "people",
	Fields: map[string]schema.Field{
		"id":     {Key: "id", Type: cql.KindString},
		"name":   {Key: "name", Type: cql.KindString},
		"age":    {Key: "age", Type: cql.KindNumber},
		"active": {Key: "active", Type: cql.KindBool},
		"born":   {Key: "born", Type: cql.KindTime},
		"site": {Key: "site_id", Kind: schema.Member,
			Ref: siteResource},
		"projects": {Key: "person_id", Kind: schema.Collection,
			Ref: projectResource},
	},
}

// mapResolver is a trivial RefResolver for tests.
type mapResolver map[string]string

func (m mapResolver) Resolve(url string) (string, error) {
	if id, ok := m[url]; ok {
		return id, nil
	}
	return "", assert.AnError
}

func person(name string, age float64) schema.Entity {
	return schema.Entity{"id": name, "name": name, "age": age}
}

func build(t *testing.T, query string) spec.Specification {
	q, err := cql.Parse(query)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	s, err := spec.Build(q, personResource, nil)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	return s
}

func buildExpr(t *testing.T, query string) spec.Specification {
	e, err := cql.ParseExpression(query)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	s, err := spec.BuildExpression(e, personResource, nil)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	return s
}

func TestJunctionOr(t *testing.T) {
	s := buildExpr(t, `name:equal-to:"Jones" or age:greater-than:60`)
	assert.True(t, spec.Matches(s, person("Jones", 30)))
	assert.True(t, spec.Matches(s, person("Smith", 65)))
	assert.False(t, spec.Matches(s, person("Miller", 30)))
}

func TestJunctionGrouping(t *testing.T) {
	s := buildExpr(t, `age:less-than:40 and`+
		` (name:starts-with:"J" or name:starts-with:"S")`)
	assert.True(t, spec.Matches(s, person("Jones", 30)))
	assert.True(t, spec.Matches(s, person("Smith", 30)))
	assert.False(t, spec.Matches(s, person("Smith", 65)))
	assert.False(t, spec.Matches(s, person("Adams", 30)))
}

func TestJunctionUnknownAttribute(t *testing.T) {
	e, err := cql.ParseExpression(`name:equal-to:"J" or bogus:equal-to:1`)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	_, err = spec.BuildExpression(e, personResource, nil)
	assert.IsType(t, schema.ErrNoSuchAttribute{}, err)
}

func TestBuildEmptyMatchesEverything(t *testing.T) {
	s := build(t, "")
	assert.True(t, spec.Matches(s, person("Jones", 30)))
	assert.True(t, spec.Matches(s, schema.Entity{}))
}

func TestStartsWith(t *testing.T) {
	s := build(t, `name:starts-with:"J"`)
	assert.True(t, spec.Matches(s, person("Jones", 30)))
	assert.False(t, spec.Matches(s, person("Smith", 30)))
	assert.False(t, spec.Matches(s, schema.Entity{}))
}

func TestStringOperators(t *testing.T) {
	jones := person("Jones", 30)
	tests := []struct {
		query   string
		matches bool
	}{
		{`name:ends-with:"s"`, true},
		{`name:ends-with:"J"`, false},
		{`name:contains:"one"`, true},
		{`name:contains:"xyz"`, false},
		{`name:not-contains:"xyz"`, true},
		{`name:contained:"Jones","Smith"`, true},
		{`name:contained:"Miller","Smith"`, false},
		{`name:not-contained:"Miller","Smith"`, true},
	}
	for _, test := range tests {
		t.Run(test.query, func(tt *testing.T) {
			s := build(tt, test.query)
			assert.Equal(tt, test.matches,
				spec.Matches(s, jones))
		})
	}
}

func TestMultiValueOr(t *testing.T) {
	s := build(t, `name:equal-to:"Jones","Smith"`)
	assert.True(t, spec.Matches(s, person("Jones", 30)))
	assert.True(t, spec.Matches(s, person("Smith", 30)))
	assert.False(t, spec.Matches(s, person("Miller", 30)))
}

func TestMultiValueStartsWith(t *testing.T) {
	s := build(t, `name:starts-with:"J","S"`)
	assert.True(t, spec.Matches(s, person("Jones", 30)))
	assert.True(t, spec.Matches(s, person("Smith", 30)))
	assert.False(t, spec.Matches(s, person("Miller", 30)))
}

func TestNotEqualTo(t *testing.T) {
	s := build(t, "age:not-equal-to:30")
	assert.False(t, spec.Matches(s, person("Jones", 30)))
	assert.True(t, spec.Matches(s, person("Smith", 40)))
	// An entity with no age at all satisfies the negated test.
	assert.True(t, spec.Matches(s, schema.Entity{"name": "Nobody"}))
}

func TestNotEqualToMultiValue(t *testing.T) {
	// Negation applies to the whole membership test: neither
	// value may match.
	s := build(t, `name:not-equal-to:"Jones","Smith"`)
	assert.False(t, spec.Matches(s, person("Jones", 30)))
	assert.False(t, spec.Matches(s, person("Smith", 30)))
	assert.True(t, spec.Matches(s, person("Miller", 30)))
}

func TestInRangeInclusive(t *testing.T) {
	s := build(t, "age:in-range:18,65")
	assert.True(t, spec.Matches(s, person("low", 18)))
	assert.True(t, spec.Matches(s, person("mid", 40)))
	assert.True(t, spec.Matches(s, person("high", 65)))
	assert.False(t, spec.Matches(s, person("young", 17)))
	assert.False(t, spec.Matches(s, person("old", 66)))
}

func TestTimeComparison(t *testing.T) {
	s := build(t, `born:less-than:"1990-01-01T00:00:00Z"`)
	early := schema.Entity{"born": time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)}
	late := schema.Entity{"born": time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}
	assert.True(t, spec.Matches(s, early))
	assert.False(t, spec.Matches(s, late))
}

func TestConjunction(t *testing.T) {
	s := build(t, `name:starts-with:"J"~age:greater-than:18`)
	assert.True(t, spec.Matches(s, person("Jones", 30)))
	assert.False(t, spec.Matches(s, person("Jones", 17)))
	assert.False(t, spec.Matches(s, person("Smith", 30)))
}

func TestSameAttributeConjunction(t *testing.T) {
	s := build(t, "age:greater-than:18~age:less-than:30")
	assert.True(t, spec.Matches(s, person("mid", 25)))
	assert.False(t, spec.Matches(s, person("low", 17)))
	assert.False(t, spec.Matches(s, person("high", 40)))
}

func TestNestedMemberAttribute(t *testing.T) {
	s := build(t, `site.name:equal-to:"dresden"`)
	here := schema.Entity{"name": "Jones",
		"site_id": schema.Entity{"id": "s1", "name": "dresden"}}
	there := schema.Entity{"name": "Smith",
		"site_id": schema.Entity{"id": "s2", "name": "boston"}}
	assert.True(t, spec.Matches(s, here))
	assert.False(t, spec.Matches(s, there))
	assert.False(t, spec.Matches(s, person("Nowhere", 1)))
}

func TestCollectionAnySemantics(t *testing.T) {
	s := build(t, `projects.name:equal-to:"everest"`)
	climber := schema.Entity{"name": "Jones",
		"person_id": []interface{}{
			map[string]interface{}{"id": "p1", "name": "everest"},
			map[string]interface{}{"id": "p2", "name": "k2"},
		}}
	other := schema.Entity{"name": "Smith",
		"person_id": []interface{}{
			map[string]interface{}{"id": "p3", "name": "k2"},
		}}
	assert.True(t, spec.Matches(s, climber))
	assert.False(t, spec.Matches(s, other))
}

func TestResourceReference(t *testing.T) {
	q, err := cql.Parse("site:equal-to:http://example.com/sites/s1")
	if !assert.NoError(t, err) {
		return
	}
	refs := mapResolver{"http://example.com/sites/s1": "s1"}
	s, err := spec.Build(q, personResource, refs)
	if !assert.NoError(t, err) {
		return
	}
	here := schema.Entity{"site_id": schema.Entity{"id": "s1"}}
	there := schema.Entity{"site_id": schema.Entity{"id": "s2"}}
	flat := schema.Entity{"site_id": "s1"}
	assert.True(t, spec.Matches(s, here))
	assert.False(t, spec.Matches(s, there))
	assert.True(t, spec.Matches(s, flat))
}

func TestResourceReferenceUnresolvable(t *testing.T) {
	q, err := cql.Parse("site:equal-to:http://example.com/sites/s9")
	if !assert.NoError(t, err) {
		return
	}
	_, err = spec.Build(q, personResource, mapResolver{})
	if assert.Error(t, err) {
		unresolvable, ok := err.(spec.ErrUnresolvableRef)
		if assert.True(t, ok) {
			assert.Equal(t, "http://example.com/sites/s9",
				unresolvable.URL)
		}
	}

	_, err = spec.Build(q, personResource, nil)
	assert.Error(t, err)
}

func TestNoSuchAttribute(t *testing.T) {
	q, err := cql.Parse(`shoe-size:equal-to:47`)
	if !assert.NoError(t, err) {
		return
	}
	_, err = spec.Build(q, personResource, nil)
	assert.Equal(t, schema.ErrNoSuchAttribute{
		Resource: "people",
		Path:     []string{"shoe-size"},
	}, err)

	q, err = cql.Parse(`name.first:equal-to:"J"`)
	if !assert.NoError(t, err) {
		return
	}
	_, err = spec.Build(q, personResource, nil)
	assert.Equal(t, schema.ErrNoSuchAttribute{
		Resource: "people",
		Path:     []string{"name", "first"},
	}, err)
}

func TestSorter(t *testing.T) {
	order, err := cql.ParseOrder("age:desc~name:asc")
	if !assert.NoError(t, err) {
		return
	}
	sorter, err := spec.NewSorter(order, personResource)
	if !assert.NoError(t, err) {
		return
	}
	entities := []schema.Entity{
		person("Smith", 30),
		person("Jones", 40),
		person("Adams", 30),
	}
	sorter.Sort(entities)
	assert.Equal(t, "Jones", entities[0].ID())
	assert.Equal(t, "Adams", entities[1].ID())
	assert.Equal(t, "Smith", entities[2].ID())
}

func TestSorterMissingValuesFirst(t *testing.T) {
	order, err := cql.ParseOrder("age:asc")
	if !assert.NoError(t, err) {
		return
	}
	sorter, err := spec.NewSorter(order, personResource)
	if !assert.NoError(t, err) {
		return
	}
	entities := []schema.Entity{
		person("Jones", 40),
		{"id": "Nobody", "name": "Nobody"},
	}
	sorter.Sort(entities)
	assert.Equal(t, "Nobody", entities[0].ID())
	assert.Equal(t, "Jones", entities[1].ID())
}

func TestSorterUnknownAttribute(t *testing.T) {
	order, err := cql.ParseOrder("shoe-size:asc")
	if !assert.NoError(t, err) {
		return
	}
	_, err = spec.NewSorter(order, personResource)
	assert.Error(t, err)
}

func TestSorterNestedAttribute(t *testing.T) {
	order, err := cql.ParseOrder("site.name:asc")
	if !assert.NoError(t, err) {
		return
	}
	_, err = spec.NewSorter(order, personResource)
	assert.Equal(t, spec.ErrUnsortableAttribute{
		Path: []string{"site", "name"},
	}, err)
}
