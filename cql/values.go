// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package cql

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the type of a CQL literal.
type Kind int

const (
	// KindInvalid is the zero value; no parsed literal has it.
	KindInvalid Kind = iota

	// KindString is a double-quoted string literal.
	KindString

	// KindNumber is a bare numeric literal, possibly with a
	// fraction or exponent.
	KindNumber

	// KindBool is a bare "true" or "false" literal, case
	// insensitive.
	KindBool

	// KindTime is a double-quoted ISO-8601 timestamp literal.
	KindTime

	// KindRef is a resource reference: an http or https URL
	// naming another resource.  The URL is kept opaque here and
	// resolved to an entity identity when the specification is
	// built.
	KindRef
)

// String returns a human-readable name for a literal kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindTime:
		return "datetime"
	case KindRef:
		return "resource"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// A Value is one typed literal from a CQL criterion.  Exactly one of
// the value fields is meaningful, selected by Kind.  Str doubles as
// the URL for KindRef values.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
	Time time.Time
}

// Convenience constructors, mostly for building queries and
// expected test values in code.

// String makes a string literal value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number makes a numeric literal value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Bool makes a boolean literal value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Time makes a date/time literal value.
func Time(t time.Time) Value { return Value{Kind: KindTime, Time: t} }

// Ref makes a resource reference literal value from a URL.
func Ref(url string) Value { return Value{Kind: KindRef, Str: url} }

// Equal reports whether two values have the same kind and the same
// literal content.  Times compare by instant, not by location.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindString, KindRef:
		return v.Str == other.Str
	case KindNumber:
		return v.Num == other.Num
	case KindBool:
		return v.Bool == other.Bool
	case KindTime:
		return v.Time.Equal(other.Time)
	}
	return true
}

// String renders a value as a canonical CQL literal.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return `"` + escapeString(v.Str) + `"`
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindTime:
		return `"` + v.Time.Format(time.RFC3339Nano) + `"`
	case KindRef:
		return v.Str
	}
	return fmt.Sprintf("value(%d)", int(v.Kind))
}

// Requires at least a full yyyy-mm-ddThh:mm:ss timestamp so that
// ordinary strings with leading digits do not get mistaken for dates.
var iso8601RE = regexp.MustCompile(
	`^[0-9]{4}-[0-9]{1,2}-[0-9]{1,2}[T ][0-9]{2}:[0-9]{2}:[0-9]{2}` +
		`(\.[0-9]+)?(Z|[-+][0-9]{2}:[0-9]{2})?$`)

var numberRE = regexp.MustCompile(
	`^[-+]?[0-9]+(\.[0-9]+)?([eE][-+]?[0-9]+)?$`)

var refRE = regexp.MustCompile(`^https?://\S+$`)

// parseLiteral converts one literal substring into a typed value.
// The shape of the literal picks its type: double quotes make a
// string (or a date/time if the content is an ISO-8601 timestamp, or
// a resource reference if it is an http URL), bare digits make a
// number, true/false make a boolean, and a bare http URL makes a
// resource reference.
func parseLiteral(literal string) (Value, error) {
	if literal == "" {
		return Value{}, ParseError{Input: literal,
			Reason: "criterion does not define a value"}
	}
	if literal[0] == '"' {
		if len(literal) < 2 || literal[len(literal)-1] != '"' {
			return Value{}, ParseError{Input: literal,
				Reason: "unterminated string literal"}
		}
		content, err := unescapeString(literal[1 : len(literal)-1])
		if err != nil {
			return Value{}, ParseError{Input: literal,
				Reason: err.Error()}
		}
		if iso8601RE.MatchString(content) {
			t, err := parseTimestamp(content)
			if err != nil {
				return Value{}, ParseError{Input: literal,
					Reason: "malformed timestamp"}
			}
			return Time(t), nil
		}
		if refRE.MatchString(content) {
			return Ref(content), nil
		}
		return String(content), nil
	}
	if strings.EqualFold(literal, "true") {
		return Bool(true), nil
	}
	if strings.EqualFold(literal, "false") {
		return Bool(false), nil
	}
	if numberRE.MatchString(literal) {
		n, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return Value{}, ParseError{Input: literal,
				Reason: "malformed number"}
		}
		return Number(n), nil
	}
	if refRE.MatchString(literal) {
		return Ref(literal), nil
	}
	return Value{}, ParseError{Input: literal, Reason: "malformed literal"}
}

// parseTimestamp parses an ISO-8601 timestamp.  A missing timezone
// means UTC.  A space separator between date and time is accepted as
// an alias for "T".
func parseTimestamp(s string) (time.Time, error) {
	s = strings.Replace(s, " ", "T", 1)
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05.999999999",
	}
	var err error
	var t time.Time
	for _, layout := range layouts {
		t, err = time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func escapeString(s string) string {
	s = strings.Replace(s, `\`, `\\`, -1)
	return strings.Replace(s, `"`, `\"`, -1)
}

func unescapeString(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		if strings.ContainsRune(s, '"') {
			return "", fmt.Errorf("unescaped quote in string literal")
		}
		return s, nil
	}
	var b strings.Builder
	escaped := false
	for _, c := range s {
		switch {
		case escaped:
			if c != '"' && c != '\\' {
				return "", fmt.Errorf("invalid escape \\%c", c)
			}
			b.WriteRune(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			return "", fmt.Errorf("unescaped quote in string literal")
		default:
			b.WriteRune(c)
		}
	}
	if escaped {
		return "", fmt.Errorf("trailing backslash in string literal")
	}
	return b.String(), nil
}
