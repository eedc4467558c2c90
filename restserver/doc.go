// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

// Package restserver publishes a resource repository as a REST
// service.  The restclient package is a matching client.
//
// The complete REST API is defined in the restdata package.  In
// particular, note that the URLs described here are not actually part
// of the API.
//
// HTTP Considerations
//
// Clients should use the standard HTTP Accept: header to request a
// specific format.  See "MIME Types" below.
//
// This interface does not (currently) support HTTP caching or
// authentication headers.
//
// MIME Types
//
// This interface understands MIME types as follows:
//
//	application/vnd.cenix.everest.v1+json
//
// JSON representation of version 1 of this interface.
//
//	application/vnd.cenix.everest+json
//	application/json
//	text/json
//
// JSON representation of latest version of this interface.
//
// URL Scheme
//
// Collections are addressed by their resource name, and entities by
// their identity within their collection.  For instance, the entity
// "jones" in the collection "people" has a resource URL of
// /people/jones.  If the identity is not URL-safe printable ASCII,
// it must be base64 encoded using the URL-safe alphabet (RFC 4648
// section 5), with no padding, and adding an additional - at the
// front: /people/-LQ is the entity whose identity is "-".
//
// The following URLs are defined:
//
//	/
//	/{collection}
//	/{collection}/{entity}
//
// GET of a collection lists its entities; the "q" parameter filters
// the listing with a query expression, "sort" orders it, and "start"
// and "size" slice it.  POST to a collection creates an entity.  GET,
// PUT, and DELETE of an entity retrieve, replace, and remove it.
package restserver
