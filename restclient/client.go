// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

// Package restclient provides an HTTP REST client that talks to the
// matching server in the restserver package.
//
// The server in github.com/cenix/go-everest/cmd/everestd runs a
// compatible REST server.  Call New() with the base URL of that
// service; for instance,
//
//	c, err := restclient.New("http://localhost:5980/")
//
// Collection filters are passed as query expressions, the same
// strings the server accepts in its "q" parameter; they are parsed
// and evaluated on the server side.
package restclient

import (
	"net/url"
	"strconv"

	"github.com/cenix/go-everest/restdata"
)

// New creates a new client that speaks to an external REST server.
func New(baseURL string) (*Client, error) {
	var (
		err error
		url *url.URL
		c   *Client
	)
	url, err = url.Parse(baseURL)
	if err == nil {
		c = &Client{
			resource: resource{URL: url},
		}
		err = c.Refresh()
	}

	if err != nil {
		return nil, err
	}
	return c, nil
}

// Client is a connection to a REST server's root document.
type Client struct {
	resource
	Representation restdata.RootData
}

// Refresh re-fetches the root document.
func (c *Client) Refresh() error {
	c.Representation = restdata.RootData{}
	return c.Get(&c.Representation)
}

// Collections lists the collections the server publishes.
func (c *Client) Collections() []string {
	names := make([]string, len(c.Representation.Collections))
	for i, coll := range c.Representation.Collections {
		names[i] = coll.Name
	}
	return names
}

// Collection retrieves a handle on a single collection by its
// resource name.
func (c *Client) Collection(name string) (*Collection, error) {
	coll := &Collection{}
	err := c.GetFrom(c.Representation.CollectionURL,
		map[string]interface{}{"collection": name},
		&coll.Representation)
	if err != nil {
		return nil, err
	}
	coll.URL, err = c.URL.Parse(coll.Representation.URL)
	if err != nil {
		return nil, err
	}
	return coll, nil
}

// Collection is a handle on one collection of a REST server.
//
// The GET of a collection returns a page of its listing, so the
// representation here is the collection record out of the server's
// root document, and Refresh() is deliberately absent.
type Collection struct {
	resource
	Representation restdata.Collection
}

// ListOptions restricts a collection listing.  The zero value lists
// the entire collection.
type ListOptions struct {
	// Filter is a query expression selecting the entities to
	// list, e.g. `age:greater-than:33`.  Empty selects all.
	Filter string

	// Sort orders the listing, e.g. "age:desc~name:asc".
	Sort string

	// Start skips that many entities from the front of the
	// filtered, ordered listing.
	Start int

	// Size limits the number of entities per page.  Zero means
	// no limit.
	Size int
}

// List retrieves one page of the collection's entity listing.
func (c *Collection) List(opts ListOptions) (restdata.Page, error) {
	vars := map[string]interface{}{}
	if opts.Filter != "" {
		vars["q"] = opts.Filter
	}
	if opts.Sort != "" {
		vars["sort"] = opts.Sort
	}
	if opts.Start > 0 {
		vars["start"] = strconv.Itoa(opts.Start)
	}
	if opts.Size > 0 {
		vars["size"] = strconv.Itoa(opts.Size)
	}
	page := restdata.Page{}
	err := c.GetFrom(c.Representation.EntitiesURL, vars, &page)
	return page, err
}

// Get retrieves a single entity by its identity.
func (c *Collection) Get(id string) (restdata.Entity, error) {
	entity := restdata.Entity{}
	err := c.GetFrom(c.Representation.EntityURL,
		map[string]interface{}{"entity": id}, &entity)
	return entity, err
}

// Add creates a new entity, returning the server's record of it.  If
// e carries no identity the server assigns one.
func (c *Collection) Add(e restdata.Entity) (restdata.Entity, error) {
	result := restdata.Entity{}
	err := c.PostTo(c.Representation.EntitiesURL,
		map[string]interface{}{}, e, &result)
	return result, err
}

// Update replaces the stored state of an existing entity.
func (c *Collection) Update(id string, e restdata.Entity) (restdata.Entity, error) {
	result := restdata.Entity{}
	err := c.PutTo(c.Representation.EntityURL,
		map[string]interface{}{"entity": id}, e, &result)
	return result, err
}

// Remove deletes a single entity by its identity.
func (c *Collection) Remove(id string) error {
	return c.DeleteAt(c.Representation.EntityURL,
		map[string]interface{}{"entity": id}, nil)
}
