// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package spec

import (
	"strings"
	"time"

	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/schema"
)

// A Loader fetches a referenced entity by identity.  Backends that
// store member attributes as bare identity strings (rather than
// nested maps) provide one so that dotted attribute paths can still
// be followed.
type Loader interface {
	Load(r *schema.Resource, id string) (schema.Entity, bool)
}

// Matches evaluates a specification directly against an in-memory
// entity.  Member attributes must hold nested entity maps; see
// MatchesIn for flat storage.
//
// A condition on an attribute the entity has no value for evaluates
// to false; wrapped in Not it therefore evaluates to true, which
// gives negated operators their "absent satisfies not-" semantics.
func Matches(s Specification, e schema.Entity) bool {
	return MatchesIn(s, e, nil)
}

// MatchesIn evaluates a specification against an entity, following
// member attributes stored as identity strings through the loader.
// This is what the memory backend uses to filter collections.
func MatchesIn(s Specification, e schema.Entity, loader Loader) bool {
	switch s := s.(type) {
	case And:
		for _, child := range s.Specs {
			if !MatchesIn(child, e, loader) {
				return false
			}
		}
		return true
	case Or:
		for _, child := range s.Specs {
			if MatchesIn(child, e, loader) {
				return true
			}
		}
		return false
	case Not:
		return !MatchesIn(s.Spec, e, loader)
	case *Condition:
		for _, attr := range attrValues(s.Fields, e, loader) {
			if testValue(s.Op, attr, s.Values) {
				return true
			}
		}
		return false
	}
	return false
}

// attrValues walks a resolved field chain through an entity and
// returns every candidate value at the end of the path.  Collection
// attributes fan out ("any" semantics); member attributes at the end
// of a path contribute their identity.
func attrValues(fields []schema.Field, e schema.Entity, loader Loader) []interface{} {
	raw, ok := fields[0].Value(e)
	if !ok {
		return nil
	}
	last := len(fields) == 1

	switch fields[0].Kind {
	case schema.Terminal:
		if last {
			return []interface{}{raw}
		}
		return nil
	case schema.Member:
		nested, ok := asEntity(raw)
		if !ok {
			// Flat storage holds a bare identity.  That
			// answers identity tests directly, and the
			// loader can turn it back into an entity for
			// deeper paths.
			id, isString := raw.(string)
			if !isString {
				return nil
			}
			if last {
				return []interface{}{id}
			}
			if loader == nil {
				return nil
			}
			nested, ok = loader.Load(fields[0].Ref, id)
			if !ok {
				return nil
			}
		}
		if last {
			return []interface{}{nested.ID()}
		}
		return attrValues(fields[1:], nested, loader)
	case schema.Collection:
		elements, ok := asEntitySlice(raw)
		if !ok {
			return nil
		}
		var out []interface{}
		for _, nested := range elements {
			if last {
				out = append(out, nested.ID())
			} else {
				out = append(out,
					attrValues(fields[1:], nested, loader)...)
			}
		}
		return out
	}
	return nil
}

func asEntity(v interface{}) (schema.Entity, bool) {
	switch v := v.(type) {
	case schema.Entity:
		return v, true
	case map[string]interface{}:
		return schema.Entity(v), true
	}
	return nil, false
}

func asEntitySlice(v interface{}) ([]schema.Entity, bool) {
	switch v := v.(type) {
	case []schema.Entity:
		return v, true
	case []interface{}:
		out := make([]schema.Entity, 0, len(v))
		for _, item := range v {
			e, ok := asEntity(item)
			if !ok {
				return nil, false
			}
			out = append(out, e)
		}
		return out, true
	}
	return nil, false
}

// testValue applies one positive operator to one candidate attribute
// value.
func testValue(op cql.Operator, attr interface{}, values []cql.Value) bool {
	switch op {
	case cql.Contained:
		for _, v := range values {
			if equalValue(attr, v) {
				return true
			}
		}
		return false
	case cql.InRange:
		low, lowOK := compareValue(attr, values[0])
		high, highOK := compareValue(attr, values[1])
		return lowOK && highOK && low >= 0 && high <= 0
	case cql.EqualTo:
		return equalValue(attr, values[0])
	case cql.StartsWith:
		s, ok := attr.(string)
		return ok && strings.HasPrefix(s, values[0].Str)
	case cql.EndsWith:
		s, ok := attr.(string)
		return ok && strings.HasSuffix(s, values[0].Str)
	case cql.Contains:
		s, ok := attr.(string)
		return ok && strings.Contains(s, values[0].Str)
	case cql.LessThan:
		c, ok := compareValue(attr, values[0])
		return ok && c < 0
	case cql.LessOrEqual:
		c, ok := compareValue(attr, values[0])
		return ok && c <= 0
	case cql.GreaterThan:
		c, ok := compareValue(attr, values[0])
		return ok && c > 0
	case cql.GreaterOrEqual:
		c, ok := compareValue(attr, values[0])
		return ok && c >= 0
	}
	return false
}

func equalValue(attr interface{}, v cql.Value) bool {
	switch v.Kind {
	case cql.KindString:
		s, ok := attr.(string)
		return ok && s == v.Str
	case cql.KindNumber:
		n, ok := toFloat(attr)
		return ok && n == v.Num
	case cql.KindBool:
		b, ok := attr.(bool)
		return ok && b == v.Bool
	case cql.KindTime:
		t, ok := toTime(attr)
		return ok && t.Equal(v.Time)
	case cql.KindRef:
		// Build() has already replaced the URL with the
		// entity identity.
		id, ok := attr.(string)
		return ok && id == v.Str
	}
	return false
}

// compareValue orders an attribute value against a literal: -1, 0,
// or 1 in the usual way.  The second return is false when the two
// are not comparable.
func compareValue(attr interface{}, v cql.Value) (int, bool) {
	switch v.Kind {
	case cql.KindNumber:
		n, ok := toFloat(attr)
		if !ok {
			return 0, false
		}
		switch {
		case n < v.Num:
			return -1, true
		case n > v.Num:
			return 1, true
		}
		return 0, true
	case cql.KindTime:
		t, ok := toTime(attr)
		if !ok {
			return 0, false
		}
		switch {
		case t.Before(v.Time):
			return -1, true
		case t.After(v.Time):
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toFloat(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func toTime(v interface{}) (time.Time, bool) {
	switch v := v.(type) {
	case time.Time:
		return v, true
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
