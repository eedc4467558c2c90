// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cenix/go-everest/resource"
)

var collectionSize = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "cenix",
		Subsystem: "everest",
		Name:      "collection_size",
		Help:      "Number of entities in each resource collection",
	},
	[]string{
		"collection",
	},
)

func init() {
	prometheus.MustRegister(collectionSize)
}

func observe(repository resource.Repository) {
	for {
		for _, s := range repository.Collections() {
			coll, err := repository.Collection(s.Name)
			if err != nil {
				continue
			}
			count, err := coll.Count(resource.Query{})
			if err != nil {
				continue
			}
			collectionSize.With(prometheus.Labels{
				"collection": s.Name,
			}).Set(float64(count))
		}
		time.Sleep(15 * time.Second)
	}
}
