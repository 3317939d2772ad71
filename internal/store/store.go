// Package store holds the in-memory collection of pizzas served by the API.
package store

import (
	"sync"

	"github.com/franciscosanchezn/minimal-pizza-api/internal/models"
)

// MemoryStore keeps pizzas in insertion order for the lifetime of the process.
// Ids are supplied by the caller and are not required to be unique.
type MemoryStore struct {
	mu     sync.RWMutex
	pizzas []models.Pizza
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pizzas: make([]models.Pizza, 0)}
}

// GetPizza returns the first pizza with the given id.
// The boolean is false when no pizza matches.
func (s *MemoryStore) GetPizza(id int) (models.Pizza, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.pizzas {
		if p.ID == id {
			return p, true
		}
	}
	return models.Pizza{}, false
}

// GetPizzas returns a copy of every pizza in insertion order.
func (s *MemoryStore) GetPizzas() []models.Pizza {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Pizza, len(s.pizzas))
	copy(out, s.pizzas)
	return out
}

// CreatePizza appends the pizza and returns it. Duplicate ids are accepted.
func (s *MemoryStore) CreatePizza(pizza models.Pizza) models.Pizza {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pizzas = append(s.pizzas, pizza)
	return pizza
}

// UpdatePizza replaces name and description of every pizza sharing the id.
// It reports whether anything matched; an unknown id leaves the store untouched.
func (s *MemoryStore) UpdatePizza(pizza models.Pizza) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := false
	for i := range s.pizzas {
		if s.pizzas[i].ID == pizza.ID {
			s.pizzas[i].Name = pizza.Name
			s.pizzas[i].Description = pizza.Description
			updated = true
		}
	}
	return updated
}

// RemovePizza deletes the first pizza with the given id and reports whether one was removed.
func (s *MemoryStore) RemovePizza(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.pizzas {
		if p.ID == id {
			s.pizzas = append(s.pizzas[:i], s.pizzas[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of stored pizzas.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pizzas)
}
