// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"fmt"
	"io"
	"mime"
	"time"

	"github.com/ugorji/go/codec"

	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/schema"
)

// Decode tries to decode a restdata object from a reader, such as an
// HTTP request or response.  out must be a pointer type.
func Decode(contentType string, r io.Reader, out interface{}) error {
	if contentType == "" {
		// RFC 7231 section 3.1.1.5
		// We could also consider http.DetectContentType()
		contentType = "application/octet-stream"
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return err
	}

	// Promote to more specific types
	switch mediaType {
	case "text/json", "application/json", JSONMediaType, V1JSONMediaType:
		mediaType = V1JSONMediaType
	default:
		return ErrUnsupportedMediaType{Type: mediaType}
	}

	switch mediaType {
	case V1JSONMediaType:
		json := &codec.JsonHandle{}
		decoder := codec.NewDecoder(r, json)
		err = decoder.Decode(out)
	default:
		err = ErrUnsupportedMediaType{Type: mediaType}
	}
	return err
}

// Entity converts wire-form entity data to the schema-typed
// in-process form.  Number attributes are widened to float64, and
// timestamp attributes are parsed from their RFC 3339 strings; other
// values pass through unchanged.  Returns an error for a timestamp
// attribute whose value is not a parseable timestamp.
func (d EntityData) Entity(r *schema.Resource) (schema.Entity, error) {
	e := make(schema.Entity, len(d))
	for key, value := range d {
		if value == nil {
			continue
		}
		f, known := r.Field(key)
		if known {
			var err error
			value, err = fieldValue(f, value)
			if err != nil {
				return nil, fmt.Errorf("attribute %v: %v", key, err)
			}
		}
		e[key] = value
	}
	return e, nil
}

func fieldValue(f schema.Field, value interface{}) (interface{}, error) {
	if f.Kind != schema.Terminal {
		return value, nil
	}
	switch f.Type {
	case cql.KindNumber:
		switch n := value.(type) {
		case int64:
			return float64(n), nil
		case uint64:
			return float64(n), nil
		case float32:
			return float64(n), nil
		}
	case cql.KindTime:
		s, isString := value.(string)
		if !isString {
			return nil, fmt.Errorf("timestamp is not a string")
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, err
		}
		return t.UTC(), nil
	}
	return value, nil
}

// FromEntity converts a schema-typed entity to its wire form,
// rendering timestamps as RFC 3339 strings.
func FromEntity(e schema.Entity) EntityData {
	d := make(EntityData, len(e))
	for key, value := range e {
		if t, isTime := value.(time.Time); isTime {
			value = t.UTC().Format(time.RFC3339Nano)
		}
		d[key] = value
	}
	return d
}
