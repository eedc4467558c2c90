// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package main

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/schema"
)

// config is the typed shape of the YAML configuration file.
//
//	resources:
//	  - name: people
//	    fields:
//	      name: {type: string}
//	      age: {type: number}
//	      site: {member: sites}
//	      visits: {collection: visits, key: person}
type config struct {
	Resources []resourceConfig `mapstructure:"resources"`
}

type resourceConfig struct {
	Name   string                 `mapstructure:"name"`
	Table  string                 `mapstructure:"table"`
	Fields map[string]fieldConfig `mapstructure:"fields"`
}

type fieldConfig struct {
	// Type declares a terminal attribute: one of "string",
	// "number", "bool", or "time".
	Type string `mapstructure:"type"`

	// Member declares a to-one reference to the named resource.
	Member string `mapstructure:"member"`

	// Collection declares a to-many reference to the named
	// resource.  Key then names the field on the referenced
	// resource that points back at this one.
	Collection string `mapstructure:"collection"`

	// Key overrides the entity map key the attribute is stored
	// under; it defaults to the attribute name.
	Key string `mapstructure:"key"`

	// Column overrides the SQL column name.
	Column string `mapstructure:"column"`
}

var terminalTypes = map[string]cql.Kind{
	"string": cql.KindString,
	"number": cql.KindNumber,
	"bool":   cql.KindBool,
	"time":   cql.KindTime,
}

// loadSchemas converts a decoded YAML configuration map into
// registered resource schemas.  References between resources are
// resolved by name in a second pass, so the declaration order does
// not matter.
func loadSchemas(gConfig map[string]interface{}) ([]*schema.Resource, error) {
	var cfg config
	if gConfig != nil {
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &cfg,
			ErrorUnused: true,
		})
		if err != nil {
			return nil, err
		}
		if err = decoder.Decode(gConfig); err != nil {
			return nil, err
		}
	}

	byName := make(map[string]*schema.Resource)
	schemas := make([]*schema.Resource, 0, len(cfg.Resources))
	for _, rc := range cfg.Resources {
		if rc.Name == "" {
			return nil, fmt.Errorf("resource declared without a name")
		}
		if _, dup := byName[rc.Name]; dup {
			return nil, fmt.Errorf("resource %v declared twice", rc.Name)
		}
		table := rc.Table
		if table == "" {
			table = rc.Name
		}
		r := &schema.Resource{
			Name:   rc.Name,
			Table:  table,
			Fields: make(map[string]schema.Field),
		}
		byName[rc.Name] = r
		schemas = append(schemas, r)
	}

	for _, rc := range cfg.Resources {
		r := byName[rc.Name]
		for attr, fc := range rc.Fields {
			f, err := buildField(rc.Name, attr, fc, byName)
			if err != nil {
				return nil, err
			}
			r.Fields[attr] = f
		}
	}
	return schemas, nil
}

func buildField(resource, attr string, fc fieldConfig, byName map[string]*schema.Resource) (schema.Field, error) {
	f := schema.Field{Key: attr, Column: fc.Column}
	if fc.Key != "" {
		f.Key = fc.Key
	}
	switch {
	case fc.Type != "":
		if fc.Member != "" || fc.Collection != "" {
			return f, fmt.Errorf("%v.%v declares both a type and a reference", resource, attr)
		}
		kind, ok := terminalTypes[fc.Type]
		if !ok {
			return f, fmt.Errorf("%v.%v has unknown type %v", resource, attr, fc.Type)
		}
		f.Kind = schema.Terminal
		f.Type = kind
	case fc.Member != "":
		if fc.Collection != "" {
			return f, fmt.Errorf("%v.%v declares both member and collection", resource, attr)
		}
		ref, ok := byName[fc.Member]
		if !ok {
			return f, fmt.Errorf("%v.%v references unknown resource %v", resource, attr, fc.Member)
		}
		f.Kind = schema.Member
		f.Ref = ref
	case fc.Collection != "":
		ref, ok := byName[fc.Collection]
		if !ok {
			return f, fmt.Errorf("%v.%v references unknown resource %v", resource, attr, fc.Collection)
		}
		if fc.Key == "" {
			return f, fmt.Errorf("%v.%v must name the back-reference key", resource, attr)
		}
		f.Kind = schema.Collection
		f.Ref = ref
	default:
		return f, fmt.Errorf("%v.%v declares neither a type nor a reference", resource, attr)
	}
	return f, nil
}
