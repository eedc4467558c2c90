// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/cenix/go-everest/resource"
	"github.com/cenix/go-everest/resource/resourcetest"
)

// Suite is the per-backend generic test suite.
type Suite struct {
	resourcetest.Suite
}

// SetupSuite does global setup for the test suite.
func (s *Suite) SetupSuite() {
	s.Suite.SetupSuite()
	s.New = func() resource.Repository {
		return New(resourcetest.Schemas()...)
	}
}

// TestRepository runs the generic repository tests against the
// memory backend.
func TestRepository(t *testing.T) {
	suite.Run(t, &Suite{})
}
