// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

// Package restdata defines common data structures shared between the
// restserver and restclient packages.  Generally JSON encodings of
// these are passed across the wire as the
// application/vnd.cenix.everest.v1+json MIME type.
//
// In spite of the "v1" label this representation is not considered
// fully stable yet.
//
// API Usage
//
// HTTP GET the root document at its specified URL.  This will return
// a JSON serialization of the RootData object.  That serialization
// has links to other resources; follow these links, possibly filling
// in template values, to get to other resources.
//
// Many of the URL fields are actually RFC 6570 URI templates.  This
// is a fancy way of saying that they are URL strings with a
// {parameter} in curly braces (or, in some cases, {?p1,p2} to
// describe query strings).  For instance, if the system is rooted at
// /, a JSON serialization of a Collection will look like
//
//	{
//	    "url": "/people",
//	    "name": "people",
//	    "entities_url": "/people{?q,sort,start,size}",
//	    "entity_url": "/people/{entity}"
//	}
//
// While the URL structure is predictable and formulaic, it is not
// actually part of the API contract.  The only specific guarantee is
// that retrieving the root resource will return a serialization of
// RootData.
//
// Encoding Considerations
//
// An entity identity that appears in a URL string must be made of
// ASCII characters that can be represented unescaped.  Other
// identities are escaped by encoding their byte representations
// using the base64 URL-safe encoding with no padding, and prepending
// a hyphen.  Identities that would be otherwise safe and begin with
// hyphens are also encoded.
//
// Entity attribute values are conveyed as their natural JSON types,
// except for timestamps, which are represented as RFC 3339 strings,
// "2012-03-04T05:06:07.890Z".  Member attributes are conveyed as the
// identity of the referenced entity.
//
// HTTP Considerations
//
// Each URL reference notes the applicable HTTP verbs.  In most cases
// simple resource references support GET, PUT, and DELETE, and
// collections support GET and POST.  Any resource that supports GET
// also supports HEAD.
//
// When an entity representation is PUT, it replaces the stored state
// of the entity; attributes absent from the uploaded data are
// removed.
//
// Filtering
//
// Collection listings accept a "q" query parameter holding a filter
// expression: criteria of the form attribute:operator:values joined
// by "~", for instance
//
//	/people?q=age:greater-than:33~site.name:equal-to:"boston"
//
// A "sort" parameter orders the result by attribute:asc or
// attribute:desc keys, again joined by "~", and "start" and "size"
// slice it.  A filter or sort expression that cannot be parsed, or
// that names unknown attributes, fails with 400 Bad Request.
//
// Errors
//
// Most errors are returned as encodings of the ErrorResponse type.
// This can round-trip the well-known resource errors but may return
// most other errors as plain strings that are not the same objects
// as other standard errors.
//
// If Go server code panics, this should be captured and returned as
// an ErrorResponse with error code "panic".
package restdata

// V1JSONMediaType is the preferred, most specific MIME type for the
// JSON representation of this content.
const V1JSONMediaType = "application/vnd.cenix.everest.v1+json"

// JSONMediaType requests the most recent version of the JSON
// representation of this content.
const JSONMediaType = "application/vnd.cenix.everest+json"

// EntityData is the attribute state of a single entity as it appears
// on the wire.  Timestamp attributes are strings here; the Entity()
// and FromEntity() functions in this package convert between this
// form and the schema-typed in-process form.
type EntityData map[string]interface{}

// Resource is a base type for all resources in this module.
type Resource struct {
	// URL points at this resource.  If this record is a "short"
	// record, the contents of this URL are the full record.  This
	// field does not need to be provided when posting data (and
	// indeed for HTTP PUT requests you need to know the URL to
	// post at all).
	URL string `json:"url"`
}

// NamedResource is a resource with a name.
type NamedResource struct {
	Resource

	// Name holds the name of this resource.  This is generally
	// immutable.  This field does not need to be provided when
	// posting data.
	Name string `json:"name"`
}

// RootData is returned by the root path.
type RootData struct {
	Resource

	// Collections lists the resource collections this service
	// publishes, including their URI templates.
	Collections []Collection `json:"collections"`

	// CollectionURL points at the representation of a single
	// collection.  This endpoint supports HTTP GET, and its
	// representation is a Collection.  This is a URI template
	// with a single parameter, "collection", which should be
	// substituted for the name of the collection.
	CollectionURL string `json:"collection_url"`
}

// CollectionShort provides minimal data to identify a single
// collection.
type CollectionShort struct {
	NamedResource
}

// Collection provides pointers to associated data about a
// collection.
type Collection struct {
	CollectionShort

	// EntitiesURL points at the entity listing of this
	// collection.  This endpoint supports HTTP GET, returning a
	// Page, and HTTP POST, submitting an Entity and returning an
	// EntityShort pointing at the created entity.  This is a URI
	// template with query parameters "q", "sort", "start", and
	// "size"; see the package comment for their meaning.
	EntitiesURL string `json:"entities_url"`

	// EntityURL points at a single entity by identity.  This
	// endpoint supports HTTP GET, PUT, and DELETE, and its
	// representation is an Entity.  This is a URI template with a
	// single parameter, "entity", which should be substituted for
	// the (possibly escaped) identity of the entity.
	EntityURL string `json:"entity_url"`
}

// EntityShort provides minimal data to identify a single entity.
type EntityShort struct {
	Resource

	// ID holds the identity of this entity within its
	// collection.  This field does not need to be provided when
	// posting data; the server assigns an identity if it is
	// absent.
	ID string `json:"id"`
}

// Entity is the full representation of a single entity.
type Entity struct {
	EntityShort

	// Data holds the entity's attribute state.
	Data EntityData `json:"data"`
}

// Page is one window into a collection listing.
type Page struct {
	Resource

	// Total is the number of entities the listing's filter
	// selects, ignoring the start/size window.
	Total int `json:"total"`

	// Start is the offset of the first entity in this page
	// within the filtered, ordered listing.
	Start int `json:"start"`

	// Size is the requested maximum number of entities per page,
	// or zero if no limit was requested.
	Size int `json:"size,omitempty"`

	// Entities holds the entities in this page.
	Entities []Entity `json:"entities"`
}

// ErrorResponse can be a response to any method, generally
// accompanied by a failing HTTP status code.
type ErrorResponse struct {
	// Error is a short description of the failure.  This may be
	// the name or type of a well-known resource error, the string
	// "panic", or the string "error" for some other kind of
	// error.
	Error string `json:"error"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`

	// Value is an extra parameter to the error if applicable.
	Value string `json:"value,omitempty"`

	// Stack holds a formatted backtrace, if the method failed
	// due to a panic.
	Stack string `json:"stack,omitempty"`
}
