// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"github.com/satori/go.uuid"

	"github.com/cenix/go-everest/resource"
	"github.com/cenix/go-everest/schema"
	"github.com/cenix/go-everest/spec"
)

type collection struct {
	repository *memRepository
	schema     *schema.Resource
	entities   map[string]schema.Entity
	// order keeps insertion order so unordered queries are
	// deterministic.
	order []string
}

func (c *collection) Repository() *memRepository {
	return c.repository
}

func (c *collection) Schema() *schema.Resource {
	return c.schema
}

func (c *collection) List(q resource.Query) ([]schema.Entity, error) {
	globalLock(c)
	defer globalUnlock(c)

	selected, err := c.selectEntities(q)
	if err != nil {
		return nil, err
	}

	sorter, err := spec.NewSorter(q.Order, c.schema)
	if err != nil {
		return nil, err
	}
	sorter.Sort(selected)

	return sliceEntities(selected, q.Start, q.Size), nil
}

func (c *collection) Count(q resource.Query) (int, error) {
	globalLock(c)
	defer globalUnlock(c)

	selected, err := c.selectEntities(q)
	if err != nil {
		return 0, err
	}
	return len(selected), nil
}

// selectEntities applies a query's filter under the global lock.
func (c *collection) selectEntities(q resource.Query) ([]schema.Entity, error) {
	selected := make([]schema.Entity, 0, len(c.order))
	for _, id := range c.order {
		e := c.entities[id]
		if q.Filter == nil ||
			spec.MatchesIn(q.Filter, e, c.repository) {
			selected = append(selected, resource.CopyEntity(e))
		}
	}
	return selected, nil
}

func sliceEntities(entities []schema.Entity, start, size int) []schema.Entity {
	// Negative window parameters read as zero, like the postgres
	// backend treats them.
	if start < 0 {
		start = 0
	}
	if start > len(entities) {
		start = len(entities)
	}
	entities = entities[start:]
	if size > 0 && size < len(entities) {
		entities = entities[:size]
	}
	return entities
}

func (c *collection) Get(id string) (schema.Entity, error) {
	globalLock(c)
	defer globalUnlock(c)

	e, present := c.entities[id]
	if !present {
		return nil, resource.ErrNoSuchEntity{ID: id}
	}
	return resource.CopyEntity(e), nil
}

func (c *collection) Add(e schema.Entity) (string, error) {
	globalLock(c)
	defer globalUnlock(c)

	id, err := resource.EntityID(e)
	if err != nil {
		return "", err
	}
	if id == "" {
		id = uuid.NewV4().String()
	}
	if _, present := c.entities[id]; present {
		return "", resource.ErrDuplicateEntity{ID: id}
	}

	stored := resource.CopyEntity(e)
	stored["id"] = id
	c.entities[id] = stored
	c.order = append(c.order, id)
	return id, nil
}

func (c *collection) Update(id string, e schema.Entity) error {
	globalLock(c)
	defer globalUnlock(c)

	own, err := resource.EntityID(e)
	if err != nil {
		return err
	}
	if own != "" && own != id {
		return resource.ErrIDMismatch
	}
	if _, present := c.entities[id]; !present {
		return resource.ErrNoSuchEntity{ID: id}
	}

	stored := resource.CopyEntity(e)
	stored["id"] = id
	c.entities[id] = stored
	return nil
}

func (c *collection) Remove(id string) error {
	globalLock(c)
	defer globalUnlock(c)

	if _, present := c.entities[id]; !present {
		return resource.ErrNoSuchEntity{ID: id}
	}
	delete(c.entities, id)
	for i, other := range c.order {
		if other == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}
