// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

// Package cache provides caching of resource-reference resolution.
// Turning a reference URL back into an entity identity can cost a
// round trip per reference per query, and the answer for a given URL
// almost never changes; the resolver here remembers recent answers
// in a bounded LRU cache, with an optional time limit after which an
// answer must be fetched again.
//
// Only successful resolutions are cached.  A reference that fails to
// resolve is retried on every lookup, so a dangling reference starts
// working as soon as its target appears.
package cache

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/cenix/go-everest/spec"
)

type resolver struct {
	upstream spec.RefResolver
	clock    clock.Clock
	ttl      time.Duration
	cache    *lru
}

// resolution is one cached lookup.  Its cache key is the reference
// URL.
type resolution struct {
	url     string
	id      string
	expires time.Time
}

func (r resolution) Name() string { return r.url }

// NewResolver wraps another reference resolver in a cache holding up
// to size recent resolutions.  A ttl of zero keeps resolutions until
// they are evicted; a positive ttl also re-resolves any answer older
// than that.
func NewResolver(upstream spec.RefResolver, size int, ttl time.Duration) spec.RefResolver {
	return NewResolverWithClock(upstream, size, ttl, clock.New())
}

// NewResolverWithClock creates a caching resolver with an explicit
// time source.  Most application code should call NewResolver, and
// use the default (real) time source; this entry point is intended
// for tests that need to inject a mock time source.
func NewResolverWithClock(upstream spec.RefResolver, size int, ttl time.Duration, clk clock.Clock) spec.RefResolver {
	return &resolver{
		upstream: upstream,
		clock:    clk,
		ttl:      ttl,
		cache:    newLRU(size),
	}
}

func (r *resolver) Resolve(url string) (string, error) {
	if r.ttl > 0 {
		if item := r.cache.Peek(url); item != nil {
			if !item.(resolution).expires.After(r.clock.Now()) {
				r.cache.Remove(url)
			}
		}
	}

	item, err := r.cache.Get(url, func(u string) (named, error) {
		id, err := r.upstream.Resolve(u)
		if err != nil {
			return nil, err
		}
		res := resolution{url: u, id: id}
		if r.ttl > 0 {
			res.expires = r.clock.Now().Add(r.ttl)
		}
		return res, nil
	})
	if err != nil {
		return "", err
	}
	return item.(resolution).id, nil
}
