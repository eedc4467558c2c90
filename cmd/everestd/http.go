// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"

	"github.com/cenix/go-everest/resource"
	"github.com/cenix/go-everest/restserver"
)

// HTTP serves the REST interface over HTTP.
type HTTP struct {
	repository resource.Repository
	laddr      string
	logger     *logrus.Logger
}

// Serve runs an HTTP server on the specified local address.  This
// serves connections forever, and probably wants to be run in a
// goroutine.  Panics on any error in the initial setup or in
// accepting connections.
func (h *HTTP) Serve() {
	r := mux.NewRouter()
	restserver.PopulateRouter(r, h.repository)
	r.Handle("/metrics", promhttp.Handler())

	n := negroni.New(negroni.NewRecovery())
	if h.logger != nil {
		l := negroni.NewLogger()
		l.ALogger = h.logger
		n.Use(l)
	}
	n.UseHandler(r)
	http.ListenAndServe(h.laddr, n)
}
