// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"database/sql"
	"sort"
	"time"

	"github.com/lib/pq"
	"github.com/satori/go.uuid"

	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/resource"
	"github.com/cenix/go-everest/schema"
	"github.com/cenix/go-everest/spec"
)

type pgCollection struct {
	repository *pgRepository
	schema     *schema.Resource
	columns    []tableColumn
}

// tableColumn is one attribute of a resource that is stored in a
// column of its table.
type tableColumn struct {
	attr  string
	field schema.Field
}

// columnFields lists the attributes of a resource that own a column
// in its table, identity first and then in attribute name order so
// generated statements are deterministic.  Collection attributes are
// excluded; their foreign key lives in the child table.
func columnFields(r *schema.Resource) []tableColumn {
	columns := []tableColumn{}
	for attr, f := range r.Fields {
		if attr == "id" || f.Kind == schema.Collection ||
			f.ColumnName() == "" {
			continue
		}
		columns = append(columns, tableColumn{attr: attr, field: f})
	}
	sort.Slice(columns, func(i, j int) bool {
		return columns[i].attr < columns[j].attr
	})
	// Schemas are not required to declare "id" explicitly; every
	// table has an identity column regardless.
	id, ok := r.Field("id")
	if !ok || id.ColumnName() == "" {
		id = schema.Field{Key: "id", Type: cql.KindString}
	}
	return append([]tableColumn{{attr: "id", field: id}}, columns...)
}

func (c *pgCollection) Repository() *pgRepository {
	return c.repository
}

func (c *pgCollection) Schema() *schema.Resource {
	return c.schema
}

func (c *pgCollection) List(q resource.Query) ([]schema.Entity, error) {
	qp := queryParams{}
	query, err := c.buildList(q, &qp)
	if err != nil {
		return nil, err
	}

	var selected []schema.Entity
	err = queryAndScan(c, query, qp, func(rows *sql.Rows) error {
		e, err := c.scanEntity(rows)
		if err != nil {
			return err
		}
		selected = append(selected, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return selected, nil
}

func (c *pgCollection) Count(q resource.Query) (int, error) {
	qp := queryParams{}
	conditions, err := c.buildFilter(q, &qp)
	if err != nil {
		return 0, err
	}
	query := buildSelect([]string{"COUNT(*)"},
		[]string{c.schema.Table}, conditions)

	count := 0
	err = queryAndScan(c, query, qp, func(rows *sql.Rows) error {
		return rows.Scan(&count)
	})
	return count, err
}

// buildFilter translates a query's filter, if any, into a condition
// list for buildSelect.
func (c *pgCollection) buildFilter(q resource.Query, qp *queryParams) ([]string, error) {
	if q.Filter == nil {
		return nil, nil
	}
	clause, err := whereSpec(q.Filter, qp)
	if err != nil {
		return nil, err
	}
	return []string{clause}, nil
}

// buildList constructs the complete SELECT statement for a query,
// including its sort order and result window.
func (c *pgCollection) buildList(q resource.Query, qp *queryParams) (string, error) {
	conditions, err := c.buildFilter(q, qp)
	if err != nil {
		return "", err
	}

	outputs := make([]string, len(c.columns))
	for i, col := range c.columns {
		outputs[i] = col.field.ColumnName()
	}
	query := buildSelect(outputs, []string{c.schema.Table}, conditions)

	for i, key := range q.Order {
		fields, err := c.schema.Resolve(key.Attribute)
		if err != nil {
			return "", err
		}
		if len(fields) > 1 || fields[0].Kind != schema.Terminal {
			return "", spec.ErrUnsortableAttribute{Path: key.Attribute}
		}
		if i == 0 {
			query += " ORDER BY "
		} else {
			query += ", "
		}
		query += fields[0].ColumnName()
		// entities missing the sort attribute come first in
		// an ascending sort, matching the in-memory backend
		if key.Descending {
			query += " DESC NULLS LAST"
		} else {
			query += " ASC NULLS FIRST"
		}
	}

	if q.Size > 0 {
		query += " LIMIT " + qp.Param(q.Size)
	}
	if q.Start > 0 {
		query += " OFFSET " + qp.Param(q.Start)
	}
	return query, nil
}

// scanEntity reads one row of a full-width SELECT back into an
// entity, dropping NULL columns.
func (c *pgCollection) scanEntity(rows *sql.Rows) (schema.Entity, error) {
	values := make([]interface{}, len(c.columns))
	dest := make([]interface{}, len(c.columns))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}

	e := make(schema.Entity, len(c.columns))
	for i, col := range c.columns {
		switch v := values[i].(type) {
		case nil:
			// absent attribute
		case []byte:
			e[col.field.Key] = string(v)
		case time.Time:
			e[col.field.Key] = v.UTC()
		case int64:
			e[col.field.Key] = float64(v)
		default:
			e[col.field.Key] = v
		}
	}
	return e, nil
}

func (c *pgCollection) Get(id string) (schema.Entity, error) {
	qp := queryParams{}
	outputs := make([]string, len(c.columns))
	for i, col := range c.columns {
		outputs[i] = col.field.ColumnName()
	}
	query := buildSelect(outputs, []string{c.schema.Table},
		[]string{"id=" + qp.Param(id)})

	var e schema.Entity
	err := queryAndScan(c, query, qp, func(rows *sql.Rows) error {
		var err error
		e, err = c.scanEntity(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, resource.ErrNoSuchEntity{ID: id}
	}
	return e, nil
}

func (c *pgCollection) Add(e schema.Entity) (string, error) {
	id, err := resource.EntityID(e)
	if err != nil {
		return "", err
	}
	if id == "" {
		id = uuid.NewV4().String()
	}
	stored := resource.CopyEntity(e)
	stored["id"] = id

	qp := queryParams{}
	fields := fieldList{}
	for _, col := range c.columns {
		if v, ok := col.field.Value(stored); ok {
			fields.Add(&qp, col.field.ColumnName(), driverValue(v))
		}
	}

	err = execInTx(c, fields.InsertStatement(c.schema.Table), qp)
	if pqerr, ok := err.(*pq.Error); ok && pqerr.Code == "23505" {
		return "", resource.ErrDuplicateEntity{ID: id}
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (c *pgCollection) Update(id string, e schema.Entity) error {
	own, err := resource.EntityID(e)
	if err != nil {
		return err
	}
	if own != "" && own != id {
		return resource.ErrIDMismatch
	}

	// A replaced entity loses the attributes the new state does
	// not carry, so absent columns are explicitly set to NULL.
	qp := queryParams{}
	fields := fieldList{}
	for _, col := range c.columns {
		if col.attr == "id" {
			continue
		}
		if v, ok := col.field.Value(e); ok {
			fields.Add(&qp, col.field.ColumnName(), driverValue(v))
		} else {
			fields.AddDirect(col.field.ColumnName(), "NULL")
		}
	}
	query := fields.UpdateStatement(c.schema.Table,
		[]string{"id=" + qp.Param(id)})

	return withTx(c, false, func(tx *sql.Tx) error {
		result, err := tx.Exec(query, qp...)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return resource.ErrNoSuchEntity{ID: id}
		}
		return nil
	})
}

func (c *pgCollection) Remove(id string) error {
	qp := queryParams{}
	query := "DELETE FROM " + c.schema.Table + " WHERE id=" + qp.Param(id)

	return withTx(c, false, func(tx *sql.Tx) error {
		result, err := tx.Exec(query, qp...)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return resource.ErrNoSuchEntity{ID: id}
		}
		return nil
	})
}

// driverValue converts an entity attribute value to a database/sql
// parameter.  Numbers are widened to float64 to match the double
// precision columns they are stored in.
func driverValue(v interface{}) interface{} {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	}
	return v
}
