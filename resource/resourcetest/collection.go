// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package resourcetest

import (
	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/resource"
	"github.com/cenix/go-everest/schema"
	"github.com/cenix/go-everest/spec"
)

// testRefs resolves the resource URLs used in the generic tests.
type testRefs struct{}

func (testRefs) Resolve(url string) (string, error) {
	switch url {
	case "http://example.com/sites/s1":
		return "s1", nil
	case "http://example.com/sites/s2":
		return "s2", nil
	}
	return "", resource.ErrNoSuchEntity{ID: url}
}

// filter parses a CQL string and builds it against the People
// schema.
func (s *Suite) filter(query string) spec.Specification {
	q, err := cql.Parse(query)
	s.Require().NoError(err)
	built, err := spec.Build(q, People, testRefs{})
	s.Require().NoError(err)
	return built
}

// order parses a CQL ordering string.
func (s *Suite) order(order string) cql.SortOrder {
	o, err := cql.ParseOrder(order)
	s.Require().NoError(err)
	return o
}

// listIDs runs a query and returns the selected entity identities.
func (s *Suite) listIDs(q resource.Query) []string {
	entities, err := s.people.List(q)
	s.Require().NoError(err)
	ids := make([]string, len(entities))
	for i, e := range entities {
		ids[i] = e.ID()
	}
	return ids
}

// TestEmptyQuery checks that the zero query selects every entity.
func (s *Suite) TestEmptyQuery() {
	ids := s.listIDs(resource.Query{})
	s.Len(ids, 5)
	s.ElementsMatch(ids,
		[]string{"jones", "jackson", "smith", "adams", "nobody"})
}

// TestStartsWith checks a basic prefix filter.
func (s *Suite) TestStartsWith() {
	ids := s.listIDs(resource.Query{
		Filter: s.filter(`name:starts-with:"J"`)})
	s.ElementsMatch(ids, []string{"jones", "jackson"})
}

// TestEndsWith checks a basic suffix filter.
func (s *Suite) TestEndsWith() {
	ids := s.listIDs(resource.Query{
		Filter: s.filter(`name:ends-with:"s"`)})
	s.ElementsMatch(ids, []string{"jones", "adams"})
}

// TestContains checks a substring filter.
func (s *Suite) TestContains() {
	ids := s.listIDs(resource.Query{
		Filter: s.filter(`name:contains:"mit"`)})
	s.ElementsMatch(ids, []string{"smith"})
}

// TestMultiValueOr checks that several values on one criterion
// select any of them.
func (s *Suite) TestMultiValueOr() {
	ids := s.listIDs(resource.Query{
		Filter: s.filter(`name:equal-to:"Jones","Smith"`)})
	s.ElementsMatch(ids, []string{"jones", "smith"})
}

// TestContained checks list membership.
func (s *Suite) TestContained() {
	ids := s.listIDs(resource.Query{
		Filter: s.filter(`name:contained:"Jones","Adams","Zeta"`)})
	s.ElementsMatch(ids, []string{"jones", "adams"})
}

// TestConjunction checks that tilde-joined criteria must all hold.
func (s *Suite) TestConjunction() {
	ids := s.listIDs(resource.Query{
		Filter: s.filter(`name:starts-with:"J"~age:greater-than:18`)})
	s.ElementsMatch(ids, []string{"jones"})
}

// TestInRange checks both bounds are inclusive.
func (s *Suite) TestInRange() {
	ids := s.listIDs(resource.Query{
		Filter: s.filter("age:in-range:18,44")})
	s.ElementsMatch(ids, []string{"jones", "jackson", "smith"})
}

// TestNotEqual checks that negation also selects entities with no
// value for the attribute.
func (s *Suite) TestNotEqual() {
	ids := s.listIDs(resource.Query{
		Filter: s.filter("age:not-equal-to:30")})
	s.ElementsMatch(ids, []string{"jackson", "smith", "adams", "nobody"})
}

// TestNotStartsWith checks string negation.
func (s *Suite) TestNotStartsWith() {
	ids := s.listIDs(resource.Query{
		Filter: s.filter(`name:not-starts-with:"J"`)})
	s.ElementsMatch(ids, []string{"smith", "adams", "nobody"})
}

// TestBoolFilter checks boolean equality.
func (s *Suite) TestBoolFilter() {
	ids := s.listIDs(resource.Query{
		Filter: s.filter("active:equal-to:true")})
	s.ElementsMatch(ids, []string{"jones", "jackson"})
}

// TestTimeFilter checks date/time comparison.
func (s *Suite) TestTimeFilter() {
	ids := s.listIDs(resource.Query{
		Filter: s.filter(`born:less-than:"1980-01-01T00:00:00Z"`)})
	s.ElementsMatch(ids, []string{"smith", "adams"})
}

// TestNestedMemberFilter follows a dotted path through a member
// attribute.
func (s *Suite) TestNestedMemberFilter() {
	ids := s.listIDs(resource.Query{
		Filter: s.filter(`site.name:equal-to:"dresden"`)})
	s.ElementsMatch(ids, []string{"jones", "jackson"})
}

// TestMemberIdentityFilter compares a member attribute against a
// resource reference URL.
func (s *Suite) TestMemberIdentityFilter() {
	ids := s.listIDs(resource.Query{
		Filter: s.filter("site:equal-to:http://example.com/sites/s2")})
	s.ElementsMatch(ids, []string{"smith", "adams"})
}

// TestOrder checks sorting, including the tie-break on a secondary
// key.
func (s *Suite) TestOrder() {
	ids := s.listIDs(resource.Query{
		Filter: s.filter("age:greater-than-or-equal-to:18"),
		Order:  s.order("age:desc~name:asc")})
	s.Equal([]string{"adams", "smith", "jones", "jackson"}, ids)
}

// TestSlice checks Start/Size slicing of an ordered result.
func (s *Suite) TestSlice() {
	q := resource.Query{Order: s.order("name:asc")}
	s.Equal([]string{"adams", "jackson", "jones", "nobody", "smith"},
		s.listIDs(q))

	q.Start = 1
	q.Size = 2
	s.Equal([]string{"jackson", "jones"}, s.listIDs(q))

	q.Start = 4
	q.Size = 10
	s.Equal([]string{"smith"}, s.listIDs(q))

	q.Start = 10
	s.Empty(s.listIDs(q))

	// negative window parameters read as zero
	q.Start = -1
	q.Size = -1
	s.Equal([]string{"adams", "jackson", "jones", "nobody", "smith"},
		s.listIDs(q))
}

// TestCount checks that Count ignores the slice but honors the
// filter.
func (s *Suite) TestCount() {
	count, err := s.people.Count(resource.Query{})
	if s.NoError(err) {
		s.Equal(5, count)
	}

	count, err = s.people.Count(resource.Query{
		Filter: s.filter(`name:starts-with:"J"`),
		Start:  1, Size: 1})
	if s.NoError(err) {
		s.Equal(2, count)
	}
}

// TestGet retrieves a single entity by identity.
func (s *Suite) TestGet() {
	e, err := s.people.Get("jones")
	if s.NoError(err) {
		s.Equal("Jones", e["name"])
		s.Equal(float64(30), e["age"])
	}

	_, err = s.people.Get("zeta")
	s.Equal(resource.ErrNoSuchEntity{ID: "zeta"}, err)
}

// TestAdd covers identity assignment and duplicate detection.
func (s *Suite) TestAdd() {
	id, err := s.people.Add(schema.Entity{"name": "Zeta"})
	if s.NoError(err) {
		s.NotEmpty(id)
		e, err := s.people.Get(id)
		if s.NoError(err) {
			s.Equal("Zeta", e["name"])
		}
	}

	_, err = s.people.Add(schema.Entity{"id": "jones"})
	s.Equal(resource.ErrDuplicateEntity{ID: "jones"}, err)
}

// TestUpdate replaces entity state.
func (s *Suite) TestUpdate() {
	err := s.people.Update("jones", schema.Entity{
		"id": "jones", "name": "Jones", "age": float64(31)})
	if s.NoError(err) {
		e, err := s.people.Get("jones")
		if s.NoError(err) {
			s.Equal(float64(31), e["age"])
		}
	}

	err = s.people.Update("jones", schema.Entity{"id": "smith"})
	s.Equal(resource.ErrIDMismatch, err)

	err = s.people.Update("zeta", schema.Entity{"name": "Zeta"})
	s.Equal(resource.ErrNoSuchEntity{ID: "zeta"}, err)
}

// TestRemove deletes entities.
func (s *Suite) TestRemove() {
	err := s.people.Remove("jones")
	s.NoError(err)

	_, err = s.people.Get("jones")
	s.Equal(resource.ErrNoSuchEntity{ID: "jones"}, err)

	err = s.people.Remove("jones")
	s.Equal(resource.ErrNoSuchEntity{ID: "jones"}, err)
}

// TestNoSuchCollection checks the repository-level lookup error.
func (s *Suite) TestNoSuchCollection() {
	_, err := s.Repository.Collection("unicorns")
	s.Equal(resource.ErrNoSuchCollection{Name: "unicorns"}, err)
}

// TestCollections checks schema registration order.
func (s *Suite) TestCollections() {
	schemas := s.Repository.Collections()
	if s.Len(schemas, 2) {
		s.Equal("sites", schemas[0].Name)
		s.Equal("people", schemas[1].Name)
	}
}
