// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/resource"
	"github.com/cenix/go-everest/restdata"
	"github.com/cenix/go-everest/spec"
)

// errUnmarshal is returned if the put/post contract is violated and
// a handler function is passed the wrong type.
var errUnmarshal = restdata.ErrBadRequest{
	Err: errors.New("Invalid input format"),
}

// context holds all of the information and objects that can be
// extracted from URL parameters.
type context struct {
	Collection  resource.Collection
	EntityID    string
	QueryParams url.Values
}

func (api *restAPI) Context(req *http.Request) (*context, error) {
	ctx := &context{QueryParams: req.URL.Query()}
	vars := mux.Vars(req)

	if name, present := vars["collection"]; present {
		c, err := api.Repository.Collection(name)
		if err != nil {
			if _, missing := err.(resource.ErrNoSuchCollection); missing {
				err = restdata.ErrNotFound{Err: err}
			}
			return nil, err
		}
		ctx.Collection = c
	}

	if id, present := vars["entity"]; present {
		id, err := restdata.MaybeDecodeName(id)
		if err != nil {
			return nil, restdata.ErrBadRequest{Err: err}
		}
		ctx.EntityID = id
	}

	return ctx, nil
}

// Query builds a resource query from the q, sort, start, and size
// URL parameters.  This can fail (on a malformed filter or sort
// expression, an unknown attribute, or a non-integer window
// parameter) so it should only be called by routes that want it.
func (ctx *context) Query(refs spec.RefResolver) (q resource.Query, err error) {
	if expr := ctx.QueryParams.Get("q"); expr != "" {
		var parsed cql.Expression
		parsed, err = cql.ParseExpression(expr)
		if err == nil {
			q.Filter, err = spec.BuildExpression(parsed,
				ctx.Collection.Schema(), refs)
		}
		if err != nil {
			err = restdata.ErrBadRequest{Err: err}
			return
		}
	}
	if expr := ctx.QueryParams.Get("sort"); expr != "" {
		q.Order, err = cql.ParseOrder(expr)
		if err != nil {
			err = restdata.ErrBadRequest{Err: err}
			return
		}
	}
	q.Start, err = ctx.intParam("start")
	if err == nil {
		q.Size, err = ctx.intParam("size")
	}
	return
}

func (ctx *context) intParam(name string) (int, error) {
	raw := ctx.QueryParams.Get(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err == nil && value < 0 {
		err = errors.New(name + " must not be negative")
	}
	if err != nil {
		return 0, restdata.ErrBadRequest{Err: err}
	}
	return value, nil
}
