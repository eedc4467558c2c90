// Copyright 2016-2017 Cenix BioScience GmbH.
// This software is released under an MIT/X11 open source license.

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type aName string

func (a aName) Name() string { return string(a) }

func mkName(name string) (named, error) {
	return aName(name), nil
}

func failName(name string) (named, error) {
	return nil, assert.AnError
}

// has asserts that an item with name is in the cache.
func has(t *testing.T, l *lru, name string) {
	item := l.Peek(name)
	if assert.NotNil(t, item) {
		assert.Equal(t, name, item.Name())
	}
}

// hasNot asserts that no item with name is in the cache.
func hasNot(t *testing.T, l *lru, name string) {
	assert.Nil(t, l.Peek(name))
}

func get(t *testing.T, l *lru, name string) {
	item, err := l.Get(name, mkName)
	if assert.NoError(t, err) {
		assert.Equal(t, name, item.Name())
	}
}

func TestLRUPut(t *testing.T) {
	l := newLRU(2)
	l.Put(aName("sam"))
	has(t, l, "sam")
	hasNot(t, l, "horton")
}

// TestLRUAutoInsert tests lru.Get() adding absent items, and the
// oldest item being evicted at capacity.
func TestLRUAutoInsert(t *testing.T) {
	l := newLRU(2)
	get(t, l, "marvin")
	get(t, l, "horton")
	has(t, l, "marvin")
	has(t, l, "horton")

	// Adding a third name evicts the oldest
	get(t, l, "sam")
	hasNot(t, l, "marvin")
	has(t, l, "horton")
	has(t, l, "sam")
}

func TestLRUInsertError(t *testing.T) {
	l := newLRU(2)
	get(t, l, "marvin")

	_, err := l.Get("sam", failName)
	assert.Error(t, err)
	// Since no item was added, nothing was evicted
	has(t, l, "marvin")
	hasNot(t, l, "sam")

	// A failing fetch function is not called for a present item
	item, err := l.Get("marvin", failName)
	if assert.NoError(t, err) {
		assert.Equal(t, "marvin", item.Name())
	}
}

// TestLRUOrder tests that getting an item causes it to not get
// evicted.
func TestLRUOrder(t *testing.T) {
	l := newLRU(2)
	get(t, l, "marvin")
	get(t, l, "horton")

	// An additional get for marvin makes him more-recently-used,
	// so adding sam pushes horton out
	get(t, l, "marvin")
	get(t, l, "sam")
	has(t, l, "marvin")
	hasNot(t, l, "horton")
	has(t, l, "sam")
}

func TestLRURemoval(t *testing.T) {
	l := newLRU(2)
	get(t, l, "marvin")
	l.Remove("marvin")
	hasNot(t, l, "marvin")

	// Removing an absent name does nothing
	l.Remove("sam")
	hasNot(t, l, "sam")

	// Removing a more-recent item must not evict an older one
	get(t, l, "marvin")
	get(t, l, "horton")
	l.Remove("horton")
	get(t, l, "sam")
	has(t, l, "marvin")
	hasNot(t, l, "horton")
	has(t, l, "sam")
}
