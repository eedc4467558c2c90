// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package postgres_test

import (
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cenix/go-everest/postgres"
	"github.com/cenix/go-everest/resource"
	"github.com/cenix/go-everest/resource/resourcetest"
)

// Suite runs the generic repository tests against a PostgreSQL
// backend created with an empty connection string.  This means that,
// to run these tests, you must set environment variables as
// described in
// http://www.postgresql.org/docs/current/static/libpq-envars.html.
// The tests drop and recreate the resource tables in the target
// database; do not point them at a database you care about.
type Suite struct {
	resourcetest.Suite
}

// SetupSuite does one-time setup for the test suite.
func (s *Suite) SetupSuite() {
	s.Suite.SetupSuite()
	s.New = func() resource.Repository {
		// Start every test from empty tables.
		db, err := sql.Open("postgres", "")
		s.Require().NoError(err)
		err = postgres.Drop(db, resourcetest.Schemas()...)
		s.Require().NoError(err)
		s.Require().NoError(db.Close())

		r, err := postgres.New("", resourcetest.Schemas()...)
		s.Require().NoError(err)
		return r
	}
}

// TestRepository runs the generic repository tests.
func TestRepository(t *testing.T) {
	if os.Getenv("PGHOST") == "" && os.Getenv("PGDATABASE") == "" {
		t.Skip("set PG* environment variables to run PostgreSQL tests")
	}
	suite.Run(t, &Suite{})
}
