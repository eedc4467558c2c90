// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

// Package resourcetest provides generic functional tests for the
// resource Repository interface.  A typical backend test module
// needs to wrap Suite to create its backend:
//
//	package mybackend
//
//	import (
//	        "testing"
//	        "github.com/cenix/go-everest/resource/resourcetest"
//	        "github.com/stretchr/testify/suite"
//	)
//
//	// Suite is the per-backend generic test suite.
//	type Suite struct {
//	        resourcetest.Suite
//	}
//
//	// SetupSuite does global setup for the test suite.
//	func (s *Suite) SetupSuite() {
//	        s.Suite.SetupSuite()
//	        s.New = func() resource.Repository {
//	                return NewWithSchemas(resourcetest.Schemas()...)
//	        }
//	}
//
//	// TestRepository runs the generic repository tests.
//	func TestRepository(t *testing.T) {
//	        suite.Run(t, &Suite{})
//	}
package resourcetest

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"

	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/resource"
	"github.com/cenix/go-everest/schema"
)

// Sites is the test resource referenced by People's "site" member
// attribute.
var Sites = &schema.Resource{
	Name:  "sites",
	Table: "sites",
	Fields: map[string]schema.Field{
		"id":   {Key: "id", Type: cql.KindString},
		"name": {Key: "name", Type: cql.KindString},
	},
}

// People is the primary test resource.
var People = &schema.Resource{
	Name:  "people",
	Table: "people",
	Fields: map[string]schema.Field{
		"id":     {Key: "id", Type: cql.KindString},
		"name":   {Key: "name", Type: cql.KindString},
		"age":    {Key: "age", Type: cql.KindNumber},
		"active": {Key: "active", Type: cql.KindBool},
		"born":   {Key: "born", Type: cql.KindTime},
		"site": {Key: "site", Kind: schema.Member,
			Column: "site_id", Ref: Sites},
	},
}

// Schemas returns the resource types every backend under test must
// register, in registration order.
func Schemas() []*schema.Resource {
	return []*schema.Resource{Sites, People}
}

// Suite is the generic repository test suite.
type Suite struct {
	suite.Suite

	// Clock contains the alternate time source to be used in
	// tests.  It is pre-initialized to a mock clock.
	Clock *clock.Mock

	// New creates a fresh, empty repository serving Schemas().
	// It is set by importing packages.
	New func() resource.Repository

	// Repository is the repository under test, recreated and
	// reseeded for every test.
	Repository resource.Repository

	people resource.Collection
	sites  resource.Collection
}

// SetupSuite does one-time initialization for the test suite.
func (s *Suite) SetupSuite() {
	s.Clock = clock.NewMock()
}

// SetupTest creates a fresh repository and seeds the standard test
// entities.
func (s *Suite) SetupTest() {
	s.Repository = s.New()

	var err error
	s.sites, err = s.Repository.Collection("sites")
	s.Require().NoError(err)
	s.people, err = s.Repository.Collection("people")
	s.Require().NoError(err)

	for _, site := range []schema.Entity{
		{"id": "s1", "name": "dresden"},
		{"id": "s2", "name": "boston"},
	} {
		_, err = s.sites.Add(site)
		s.Require().NoError(err)
	}

	for _, person := range []schema.Entity{
		{"id": "jones", "name": "Jones", "age": float64(30),
			"active": true, "site": "s1",
			"born": date(1986, 3, 14)},
		{"id": "jackson", "name": "Jackson", "age": float64(18),
			"active": true, "site": "s1",
			"born": date(1998, 7, 1)},
		{"id": "smith", "name": "Smith", "age": float64(44),
			"active": false, "site": "s2",
			"born": date(1972, 11, 30)},
		{"id": "adams", "name": "Adams", "age": float64(65),
			"active": false, "site": "s2",
			"born": date(1951, 1, 8)},
		{"id": "nobody", "name": "Nobody"},
	} {
		_, err = s.people.Add(person)
		s.Require().NoError(err)
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
