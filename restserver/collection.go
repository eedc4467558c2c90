// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/cenix/go-everest/resource"
	"github.com/cenix/go-everest/restdata"
	"github.com/cenix/go-everest/schema"
)

// translateError maps well-known resource errors onto errors
// carrying HTTP statuses.
func translateError(err error) error {
	switch err.(type) {
	case resource.ErrNoSuchCollection, resource.ErrNoSuchEntity:
		return restdata.ErrNotFound{Err: err}
	case resource.ErrDuplicateEntity:
		return restdata.ErrConflict{Err: err}
	}
	switch err {
	case resource.ErrIDMismatch, resource.ErrBadEntityID:
		return restdata.ErrBadRequest{Err: err}
	}
	return err
}

func (api *restAPI) fillEntity(c resource.Collection, e schema.Entity, result *restdata.Entity) error {
	result.ID = e.ID()
	result.Data = restdata.FromEntity(e)
	return buildURLs(api.Router,
		"collection", c.Schema().Name,
		"entity", result.ID).
		URL(&result.URL, "entity").
		Error
}

// CollectionList returns one page of a collection listing, filtered,
// ordered, and sliced by the request's URL parameters.
func (api *restAPI) CollectionList(ctx *context) (interface{}, error) {
	q, err := ctx.Query(api.Refs)
	if err != nil {
		return nil, err
	}

	total, err := ctx.Collection.Count(q)
	if err != nil {
		return nil, translateError(err)
	}
	entities, err := ctx.Collection.List(q)
	if err != nil {
		return nil, translateError(err)
	}

	page := restdata.Page{
		Total:    total,
		Start:    q.Start,
		Size:     q.Size,
		Entities: []restdata.Entity{},
	}
	for _, e := range entities {
		entity := restdata.Entity{}
		err = api.fillEntity(ctx.Collection, e, &entity)
		if err != nil {
			return nil, err
		}
		page.Entities = append(page.Entities, entity)
	}
	err = buildURLs(api.Router,
		"collection", ctx.Collection.Schema().Name).
		URL(&page.URL, "collection").
		Error
	return page, err
}

// CollectionPost creates a new entity in a collection.
func (api *restAPI) CollectionPost(ctx *context, in interface{}) (interface{}, error) {
	req, valid := in.(restdata.Entity)
	if !valid {
		return nil, errUnmarshal
	}
	e, err := req.Data.Entity(ctx.Collection.Schema())
	if err != nil {
		return nil, restdata.ErrBadRequest{Err: err}
	}
	if req.ID != "" {
		e["id"] = req.ID
	}

	id, err := ctx.Collection.Add(e)
	if err != nil {
		return nil, translateError(err)
	}

	e["id"] = id
	result := restdata.Entity{}
	err = api.fillEntity(ctx.Collection, e, &result)
	if err != nil {
		return nil, err
	}
	return responseCreated{
		Location: result.URL,
		Body:     result,
	}, nil
}

// EntityGet retrieves a single entity.
func (api *restAPI) EntityGet(ctx *context) (interface{}, error) {
	e, err := ctx.Collection.Get(ctx.EntityID)
	if err != nil {
		return nil, translateError(err)
	}
	result := restdata.Entity{}
	err = api.fillEntity(ctx.Collection, e, &result)
	return result, err
}

// EntityPut replaces the stored state of a single entity.
func (api *restAPI) EntityPut(ctx *context, in interface{}) (interface{}, error) {
	req, valid := in.(restdata.Entity)
	if !valid {
		return nil, errUnmarshal
	}
	e, err := req.Data.Entity(ctx.Collection.Schema())
	if err != nil {
		return nil, restdata.ErrBadRequest{Err: err}
	}

	err = ctx.Collection.Update(ctx.EntityID, e)
	if err != nil {
		return nil, translateError(err)
	}

	e["id"] = ctx.EntityID
	result := restdata.Entity{}
	err = api.fillEntity(ctx.Collection, e, &result)
	return result, err
}

// EntityDelete removes a single entity.
func (api *restAPI) EntityDelete(ctx *context) (interface{}, error) {
	err := ctx.Collection.Remove(ctx.EntityID)
	if err != nil {
		return nil, translateError(err)
	}
	return nil, nil
}
