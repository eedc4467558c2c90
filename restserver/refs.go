// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/cenix/go-everest/restdata"
	"github.com/cenix/go-everest/spec"
)

// selfResolver resolves resource reference URLs that point back at
// this server's own entity routes.  The host part of a reference is
// ignored; only the path decides which entity is meant, so
// references keep working behind proxies or on alternate ports.
type selfResolver struct {
	api *restAPI
}

func (r selfResolver) Resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", spec.ErrUnresolvableRef{URL: ref, Err: err}
	}

	req := &http.Request{
		Method: "GET",
		URL:    &url.URL{Path: u.Path},
	}
	match := mux.RouteMatch{}
	if !r.api.Router.Match(req, &match) ||
		match.Route == nil || match.Route.GetName() != "entity" {
		return "", spec.ErrUnresolvableRef{URL: ref}
	}

	id, err := restdata.MaybeDecodeName(match.Vars["entity"])
	if err != nil {
		return "", spec.ErrUnresolvableRef{URL: ref, Err: err}
	}
	c, err := r.api.Repository.Collection(match.Vars["collection"])
	if err != nil {
		return "", spec.ErrUnresolvableRef{URL: ref, Err: err}
	}
	// The reference must name an entity that actually exists.
	if _, err = c.Get(id); err != nil {
		return "", spec.ErrUnresolvableRef{URL: ref, Err: err}
	}
	return id, nil
}
