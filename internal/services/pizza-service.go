package services

import (
	"errors"

	"github.com/franciscosanchezn/minimal-pizza-api/internal/models"
)

// ErrPizzaNotFound is returned when no pizza matches the requested ID
var ErrPizzaNotFound = errors.New("pizza not found")

// PizzaService provides methods to interact with the pizza collection
type PizzaService interface {
	// GetAllPizzas retrieves all pizzas in insertion order
	GetAllPizzas() ([]models.Pizza, error)
	// GetPizzaByID retrieves a pizza by its ID
	GetPizzaByID(id int) (models.Pizza, error)
	// CreatePizza adds a new pizza to the collection
	CreatePizza(pizza models.Pizza) (models.Pizza, error)
	// UpdatePizza replaces name and description of the pizza with the same ID
	UpdatePizza(pizza models.Pizza) (models.Pizza, error)
	// DeletePizza removes a pizza by its ID
	DeletePizza(id int) error
	// CountPizzas returns the number of stored pizzas
	CountPizzas() (int64, error)
}

// PizzaStore is the in-memory collection backing the default PizzaService
type PizzaStore interface {
	GetPizza(id int) (models.Pizza, bool)
	GetPizzas() []models.Pizza
	CreatePizza(pizza models.Pizza) models.Pizza
	UpdatePizza(pizza models.Pizza) bool
	RemovePizza(id int) bool
	Len() int
}

// pizzaService is the store-backed implementation of the PizzaService interface
type pizzaService struct {
	store PizzaStore
}

// NewPizzaService creates a new instance of PizzaService on top of an in-memory store
func NewPizzaService(store PizzaStore) PizzaService {
	return &pizzaService{store: store}
}

func (s *pizzaService) GetAllPizzas() ([]models.Pizza, error) {
	return s.store.GetPizzas(), nil
}

func (s *pizzaService) GetPizzaByID(id int) (models.Pizza, error) {
	pizza, ok := s.store.GetPizza(id)
	if !ok {
		return models.Pizza{}, ErrPizzaNotFound
	}
	return pizza, nil
}

func (s *pizzaService) CreatePizza(pizza models.Pizza) (models.Pizza, error) {
	return s.store.CreatePizza(pizza), nil
}

// UpdatePizza echoes the supplied pizza whether or not a record matched
func (s *pizzaService) UpdatePizza(pizza models.Pizza) (models.Pizza, error) {
	s.store.UpdatePizza(pizza)
	return pizza, nil
}

func (s *pizzaService) DeletePizza(id int) error {
	s.store.RemovePizza(id)
	return nil
}

func (s *pizzaService) CountPizzas() (int64, error) {
	return int64(s.store.Len()), nil
}
