// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/cenix/go-everest/cache"
	"github.com/cenix/go-everest/resource"
	"github.com/cenix/go-everest/restdata"
	"github.com/cenix/go-everest/spec"
)

// NewRouter creates a new HTTP handler that serves a resource
// repository.  All resources are under the URL path root, e.g.
// /people/jones.  For more control over this setup, create a
// mux.Router and call PopulateRouter instead.
func NewRouter(r resource.Repository) http.Handler {
	router := mux.NewRouter()
	PopulateRouter(router, r)
	return router
}

// PopulateRouter adds repository routes to an existing
// github.com/gorilla/mux router object.  This can be used, for
// instance, to place the REST interface under a subpath:
//
//	r := mux.NewRouter()
//	s := r.PathPrefix("/api").Subrouter()
//	PopulateRouter(s, repository)
func PopulateRouter(router *mux.Router, r resource.Repository) {
	api := &restAPI{Repository: r, Router: router}
	// Reference lookups hit the backend once per URL in a filter
	// expression; cache them briefly so a query repeated across
	// pages does not re-fetch its references every time.
	api.Refs = cache.NewResolver(selfResolver{api: api}, 256, time.Minute)
	api.PopulateRouter(router)
}

// restAPI holds the persistent state for the REST API.
type restAPI struct {
	Repository resource.Repository
	Router     *mux.Router

	// Refs resolves resource reference URLs appearing in filter
	// expressions back to entity identities.
	Refs spec.RefResolver
}

// PopulateRouter adds all repository URL paths to a router.
func (api *restAPI) PopulateRouter(r *mux.Router) {
	r.Path("/").Name("root").Handler(&resourceHandler{
		Representation: restdata.RootData{},
		Context:        api.Context,
		Get:            api.RootDocument,
	})
	r.Path("/{collection}").Name("collection").Handler(&resourceHandler{
		Representation: restdata.Entity{},
		Context:        api.Context,
		Get:            api.CollectionList,
		Post:           api.CollectionPost,
	})
	r.Path("/{collection}/{entity}").Name("entity").Handler(&resourceHandler{
		Representation: restdata.Entity{},
		Context:        api.Context,
		Get:            api.EntityGet,
		Put:            api.EntityPut,
		Delete:         api.EntityDelete,
	})
}

// RootDocument returns the service's root resource, listing every
// collection with its URI templates.
func (api *restAPI) RootDocument(ctx *context) (interface{}, error) {
	resp := restdata.RootData{}
	builder := buildURLs(api.Router).
		URL(&resp.URL, "root").
		Template(&resp.CollectionURL, "collection", "collection")
	if builder.Error != nil {
		return nil, builder.Error
	}
	for _, schema := range api.Repository.Collections() {
		result := restdata.Collection{}
		err := api.fillCollection(schema.Name, &result)
		if err != nil {
			return nil, err
		}
		resp.Collections = append(resp.Collections, result)
	}
	return resp, nil
}

func (api *restAPI) fillCollection(name string, result *restdata.Collection) error {
	result.Name = name
	return buildURLs(api.Router, "collection", name).
		URL(&result.URL, "collection").
		URL(&result.EntitiesURL, "collection").
		QueryTemplate(&result.EntitiesURL, "q", "sort", "start", "size").
		Template(&result.EntityURL, "entity", "entity").
		Error
}
