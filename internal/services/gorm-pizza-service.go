package services

import (
	"errors"
	"fmt"

	"github.com/franciscosanchezn/minimal-pizza-api/internal/models"
	"gorm.io/gorm"
)

// pizzaRecord is the persisted row. Seq keeps insertion order and lets
// several rows share the same pizza ID.
type pizzaRecord struct {
	Seq         uint   `gorm:"primaryKey;autoIncrement"`
	PizzaID     int    `gorm:"index;not null"`
	Name        string
	Description string
}

func (pizzaRecord) TableName() string {
	return "pizzas"
}

func (r pizzaRecord) toModel() models.Pizza {
	return models.Pizza{ID: r.PizzaID, Name: r.Name, Description: r.Description}
}

// AutoMigrate creates or updates the pizzas table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&pizzaRecord{})
}

// gormPizzaService is the database-backed implementation of the PizzaService interface
type gormPizzaService struct {
	db *gorm.DB
}

// NewGormPizzaService creates a PizzaService persisting to the given database
func NewGormPizzaService(db *gorm.DB) PizzaService {
	return &gormPizzaService{db: db}
}

func (s *gormPizzaService) GetAllPizzas() ([]models.Pizza, error) {
	var records []pizzaRecord
	if err := s.db.Order("seq asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list pizzas: %w", err)
	}
	pizzas := make([]models.Pizza, 0, len(records))
	for _, r := range records {
		pizzas = append(pizzas, r.toModel())
	}
	return pizzas, nil
}

func (s *gormPizzaService) GetPizzaByID(id int) (models.Pizza, error) {
	record, err := s.first(id)
	if err != nil {
		return models.Pizza{}, err
	}
	return record.toModel(), nil
}

func (s *gormPizzaService) CreatePizza(pizza models.Pizza) (models.Pizza, error) {
	record := pizzaRecord{PizzaID: pizza.ID, Name: pizza.Name, Description: pizza.Description}
	if err := s.db.Create(&record).Error; err != nil {
		return models.Pizza{}, fmt.Errorf("create pizza %d: %w", pizza.ID, err)
	}
	return record.toModel(), nil
}

func (s *gormPizzaService) UpdatePizza(pizza models.Pizza) (models.Pizza, error) {
	// A map is used so empty strings are written too
	err := s.db.Model(&pizzaRecord{}).
		Where("pizza_id = ?", pizza.ID).
		Updates(map[string]interface{}{"name": pizza.Name, "description": pizza.Description}).Error
	if err != nil {
		return models.Pizza{}, fmt.Errorf("update pizza %d: %w", pizza.ID, err)
	}
	return pizza, nil
}

func (s *gormPizzaService) DeletePizza(id int) error {
	record, err := s.first(id)
	if errors.Is(err, ErrPizzaNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.db.Delete(&pizzaRecord{}, record.Seq).Error; err != nil {
		return fmt.Errorf("delete pizza %d: %w", id, err)
	}
	return nil
}

func (s *gormPizzaService) CountPizzas() (int64, error) {
	var count int64
	if err := s.db.Model(&pizzaRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count pizzas: %w", err)
	}
	return count, nil
}

func (s *gormPizzaService) first(id int) (pizzaRecord, error) {
	var record pizzaRecord
	err := s.db.Where("pizza_id = ?", id).Order("seq asc").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pizzaRecord{}, ErrPizzaNotFound
	}
	if err != nil {
		return pizzaRecord{}, fmt.Errorf("get pizza %d: %w", id, err)
	}
	return record, nil
}
