// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"

	"github.com/cenix/go-everest/cql"
	"github.com/cenix/go-everest/resource"
	"github.com/cenix/go-everest/schema"
	"github.com/cenix/go-everest/spec"
)

// ErrorStatus describes errors that correspond to specific HTTP status
// codes.
type ErrorStatus interface {
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrUnsupportedMediaType is returned from Decode() if the provided
// Content-Type: is unrecognized.  This translates directly into the
// equivalent HTTP 415 error.
type ErrUnsupportedMediaType struct {
	Type string
}

func (e ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("Unsupported media type %q", e.Type)
}

// HTTPStatus returns a fixed 415 Unsupported Media Type error code.
func (e ErrUnsupportedMediaType) HTTPStatus() int {
	return http.StatusUnsupportedMediaType
}

// ErrNotFound is a wrapper error that indicates that, due to the
// embedded error, a REST service should return a 404 Not Found error.
type ErrNotFound struct {
	Err error
}

func (e ErrNotFound) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 404 Not Found error code.
func (e ErrNotFound) HTTPStatus() int {
	return http.StatusNotFound
}

// ErrBadRequest is returned as an error when there is an error decoding
// HTTP headers, the request body, or a filter expression.
type ErrBadRequest struct {
	Err error
}

func (e ErrBadRequest) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 400 Bad Request HTTP status code.
func (e ErrBadRequest) HTTPStatus() int {
	return http.StatusBadRequest
}

// ErrConflict is a wrapper error for requests that contradict stored
// state, such as adding an entity whose identity already exists.
type ErrConflict struct {
	Err error
}

func (e ErrConflict) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 409 Conflict HTTP status code.
func (e ErrConflict) HTTPStatus() int {
	return http.StatusConflict
}

// FromError populates an ErrorResponse to fill in its fields based
// on an error value.  This remaps the well-known resource errors to
// specific e.Error codes.
func (e *ErrorResponse) FromError(err error) {
	switch err {
	case resource.ErrIDMismatch:
		e.Error = "ErrIDMismatch"
	case resource.ErrBadEntityID:
		e.Error = "ErrBadEntityID"
	}
	switch et := err.(type) {
	case resource.ErrNoSuchCollection:
		e.Error = "ErrNoSuchCollection"
		e.Value = et.Name
	case resource.ErrNoSuchEntity:
		e.Error = "ErrNoSuchEntity"
		e.Value = et.ID
	case resource.ErrDuplicateEntity:
		e.Error = "ErrDuplicateEntity"
		e.Value = et.ID
	case cql.ParseError:
		e.Error = "ErrCannotParse"
		e.Value = et.Input
	case schema.ErrNoSuchAttribute:
		e.Error = "ErrNoSuchAttribute"
		e.Value = strings.Join(et.Path, ".")
	case spec.ErrUnresolvableRef:
		e.Error = "ErrUnresolvableRef"
		e.Value = et.URL
	case spec.ErrUnsortableAttribute:
		e.Error = "ErrUnsortableAttribute"
		e.Value = strings.Join(et.Path, ".")
	case ErrNotFound:
		// Discard this wrapper and return the embedded error
		e.FromError(et.Err)
	case ErrBadRequest:
		e.FromError(et.Err)
	case ErrConflict:
		e.FromError(et.Err)
	}
}

// ToError converts e back to a well-known resource error, if that is
// possible.  If not, returns a plain error with e.Message text.
func (e *ErrorResponse) ToError() error {
	switch e.Error {
	case "ErrIDMismatch":
		return resource.ErrIDMismatch
	case "ErrBadEntityID":
		return resource.ErrBadEntityID
	case "ErrNoSuchCollection":
		return resource.ErrNoSuchCollection{Name: e.Value}
	case "ErrNoSuchEntity":
		return resource.ErrNoSuchEntity{ID: e.Value}
	case "ErrDuplicateEntity":
		return resource.ErrDuplicateEntity{ID: e.Value}
	case "ErrCannotParse":
		return cql.ParseError{Input: e.Value, Reason: e.Message}
	case "ErrNoSuchAttribute":
		return schema.ErrNoSuchAttribute{Path: strings.Split(e.Value, ".")}
	case "ErrUnresolvableRef":
		return spec.ErrUnresolvableRef{URL: e.Value}
	case "ErrUnsortableAttribute":
		return spec.ErrUnsortableAttribute{Path: strings.Split(e.Value, ".")}
	default:
		return errors.New(e.Message)
	}
}

// FromPanic populates an error response based on a panic.  Typical use
// is:
//
//	defer func() {
//	    if obj := recovered(); obj != nil {
//	        resp := restdata.ErrorResponse{}
//	        resp.FromPanic(obj)
//	        // write resp out as makes sense
//	    }
//	}
func (e *ErrorResponse) FromPanic(obj interface{}) {
	e.Error = "panic"
	if recoveredError, isError := obj.(error); isError {
		e.Message = recoveredError.Error()
	} else {
		e.Message = fmt.Sprintf("%+v", obj)
	}
	var stack [4096]byte
	len := runtime.Stack(stack[:], false)
	e.Stack = string(stack[:len])
}
