// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"database/sql"

	"github.com/rubenv/sql-migrate"

	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/schema"
)

// This file maintains the database migration code.  See
// https://github.com/rubenv/sql-migrate for details of what goes in
// here.  Unlike an application with a fixed data model, the tables
// here are derived from the registered resource schemas, so the
// migration source is generated rather than checked in.

// migrationSource builds the migrations creating one table per
// registered resource schema.  Tables are created in registration
// order, so a schema must be registered after the schemas its member
// attributes reference; they are dropped in the reverse order.
func migrationSource(schemas []*schema.Resource) *migrate.MemoryMigrationSource {
	up := make([]string, len(schemas))
	down := make([]string, len(schemas))
	for i, s := range schemas {
		up[i] = createTableSQL(s)
		down[len(schemas)-1-i] = "DROP TABLE IF EXISTS " + s.Table + ";"
	}
	return &migrate.MemoryMigrationSource{
		Migrations: []*migrate.Migration{
			{
				Id:   "1-create-resource-tables",
				Up:   up,
				Down: down,
			},
		},
	}
}

func createTableSQL(s *schema.Resource) string {
	query := "CREATE TABLE IF NOT EXISTS " + s.Table +
		" (id TEXT PRIMARY KEY"
	for _, col := range columnFields(s) {
		if col.attr == "id" {
			continue
		}
		query += ", " + col.field.ColumnName() + " " + columnType(col.field)
	}
	return query + ");"
}

func columnType(f schema.Field) string {
	if f.Kind == schema.Member {
		return "TEXT REFERENCES " + f.Ref.Table + "(id)"
	}
	switch f.Type {
	case cql.KindNumber:
		return "DOUBLE PRECISION"
	case cql.KindBool:
		return "BOOLEAN"
	case cql.KindTime:
		return "TIMESTAMP WITH TIME ZONE"
	}
	return "TEXT"
}

// Upgrade brings a database up to date with the table set the
// provided schemas need.  New() calls this on every connection; it
// is exported for external administrative tools.
func Upgrade(db *sql.DB, schemas ...*schema.Resource) error {
	_, err := migrate.Exec(db, "postgres", migrationSource(schemas), migrate.Up)
	return err
}

// Drop clears a database by running all of the migrations in
// reverse, ultimately resulting in dropping all of the tables.
func Drop(db *sql.DB, schemas ...*schema.Resource) error {
	_, err := migrate.Exec(db, "postgres", migrationSource(schemas), migrate.Down)
	return err
}
