// Package store holds the authoritative in-memory recipe collection.
package store

import (
	"errors"
	"sync"

	"github.com/pageza/recipebox/backend/internal/model"
)

// ErrDuplicateID is returned by Add when the id is already present.
var ErrDuplicateID = errors.New("recipe id already exists")

// ChangeFunc is called after every effective mutation with a snapshot of the
// collection in insertion order.
type ChangeFunc func(snapshot []model.Recipe)

// RecipeStore is an insertion-ordered recipe collection. It is the only
// writer of recipe data; every read returns copies.
//
// Listeners run synchronously after the mutation, in mutation order. They
// may read from the store but must not mutate it.
type RecipeStore struct {
	writeMu   sync.Mutex
	mu        sync.RWMutex
	recipes   []model.Recipe
	index     map[string]int
	version   uint64
	listeners []ChangeFunc
}

// New creates an empty RecipeStore.
func New() *RecipeStore {
	return &RecipeStore{index: make(map[string]int)}
}

// OnChange registers fn to be notified after each mutation.
func (s *RecipeStore) OnChange(fn ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Add appends recipe to the collection. The caller supplies a unique id.
func (s *RecipeStore) Add(recipe model.Recipe) error {
	var err error
	s.mutate(func() bool {
		if _, exists := s.index[recipe.ID]; exists {
			err = ErrDuplicateID
			return false
		}
		s.index[recipe.ID] = len(s.recipes)
		s.recipes = append(s.recipes, recipe.Clone())
		return true
	})
	return err
}

// Update replaces the entry whose id matches recipe.ID, keeping its position.
// Updating an unknown id leaves the collection untouched and returns false.
func (s *RecipeStore) Update(recipe model.Recipe) bool {
	return s.mutate(func() bool {
		i, ok := s.index[recipe.ID]
		if !ok {
			return false
		}
		s.recipes[i] = recipe.Clone()
		return true
	})
}

// Delete removes the entry with the given id. It returns false if nothing
// was removed.
func (s *RecipeStore) Delete(id string) bool {
	return s.mutate(func() bool {
		i, ok := s.index[id]
		if !ok {
			return false
		}
		s.recipes = append(s.recipes[:i], s.recipes[i+1:]...)
		delete(s.index, id)
		for j := i; j < len(s.recipes); j++ {
			s.index[s.recipes[j].ID] = j
		}
		return true
	})
}

// Get returns a copy of the recipe with the given id.
func (s *RecipeStore) Get(id string) (model.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return model.Recipe{}, false
	}
	return s.recipes[i].Clone(), true
}

// List returns the collection in insertion order.
func (s *RecipeStore) List() []model.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Len returns the number of recipes.
func (s *RecipeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

// Version increases by one with every effective mutation.
func (s *RecipeStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// mutate applies fn under the write lock and, if fn reports a change, bumps
// the version and notifies listeners before the next mutation can start.
func (s *RecipeStore) mutate(fn func() bool) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return false
	}
	s.version++
	var snapshot []model.Recipe
	listeners := s.listeners
	if len(listeners) > 0 {
		snapshot = s.snapshotLocked()
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
	return true
}

func (s *RecipeStore) snapshotLocked() []model.Recipe {
	out := make([]model.Recipe, len(s.recipes))
	for i, r := range s.recipes {
		out[i] = r.Clone()
	}
	return out
}
