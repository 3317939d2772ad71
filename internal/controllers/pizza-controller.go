package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/minimal-pizza-api/internal/models"
	"github.com/franciscosanchezn/minimal-pizza-api/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// PizzaController handles HTTP requests related to pizzas
type PizzaController interface {
	// GetAllPizzas retrieves all pizzas
	GetAllPizzas(c *gin.Context)
	// GetPizzaByID retrieves a pizza by its ID
	GetPizzaByID(c *gin.Context)
	// CreatePizza creates a new pizza
	CreatePizza(c *gin.Context)
	// UpdatePizza updates an existing pizza
	UpdatePizza(c *gin.Context)
	// DeletePizza deletes a pizza by its ID
	DeletePizza(c *gin.Context)
}

type controller struct {
	service services.PizzaService
}

// NewPizzaController creates a new instance of PizzaController
func NewPizzaController(service services.PizzaService) PizzaController {
	return &controller{service: service}
}

// GetAllPizzas godoc
// @Summary Get all pizzas
// @Description Get every pizza in insertion order
// @Tags pizzas
// @Produce json
// @Success 200 {array} models.Pizza
// @Failure 500 {object} models.APIError
// @Router /pizzas [get]
func (c *controller) GetAllPizzas(ctx *gin.Context) {
	pizzas, err := c.service.GetAllPizzas()
	if err != nil {
		internalError(ctx, err, "Failed to retrieve pizzas")
		return
	}
	ctx.JSON(http.StatusOK, pizzas)
}

// GetPizzaByID godoc
// @Summary Get pizza by ID
// @Description Get a single pizza by its ID. An unknown ID answers 200 with an empty body.
// @Tags pizzas
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 200 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /pizzas/{id} [get]
func (c *controller) GetPizzaByID(ctx *gin.Context) {
	pizzaId, ok := parseID(ctx)
	if !ok {
		return
	}

	pizza, err := c.service.GetPizzaByID(pizzaId)
	if errors.Is(err, services.ErrPizzaNotFound) {
		ctx.Status(http.StatusOK)
		return
	}
	if err != nil {
		internalError(ctx, err, "Failed to retrieve pizza")
		return
	}
	ctx.JSON(http.StatusOK, pizza)
}

// CreatePizza godoc
// @Summary Create a new pizza
// @Description Create a new pizza with the input payload. The ID is supplied by the caller.
// @Tags pizzas
// @Accept json
// @Produce json
// @Param pizza body models.Pizza true "Pizza object"
// @Success 201 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /pizzas [post]
func (c *controller) CreatePizza(ctx *gin.Context) {
	var pizza models.Pizza
	if err := ctx.ShouldBindJSON(&pizza); err != nil {
		invalidBody(ctx, err)
		return
	}

	createdPizza, err := c.service.CreatePizza(pizza)
	if err != nil {
		internalError(ctx, err, "Failed to create pizza")
		return
	}
	ctx.JSON(http.StatusCreated, createdPizza)
}

// UpdatePizza godoc
// @Summary Update a pizza
// @Description Replace name and description of the pizza matching the payload ID. Unknown IDs are ignored.
// @Tags pizzas
// @Accept json
// @Produce json
// @Param pizza body models.Pizza true "Pizza object"
// @Success 200 {object} models.Pizza
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /pizzas [put]
func (c *controller) UpdatePizza(ctx *gin.Context) {
	var pizza models.Pizza
	if err := ctx.ShouldBindJSON(&pizza); err != nil {
		invalidBody(ctx, err)
		return
	}

	updatedPizza, err := c.service.UpdatePizza(pizza)
	if err != nil {
		internalError(ctx, err, "Failed to update pizza")
		return
	}
	ctx.JSON(http.StatusOK, updatedPizza)
}

// DeletePizza godoc
// @Summary Delete a pizza
// @Description Delete a pizza by its ID. Unknown IDs are ignored.
// @Tags pizzas
// @Param id path int true "Pizza ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /pizzas/{id} [delete]
func (c *controller) DeletePizza(ctx *gin.Context) {
	pizzaId, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.service.DeletePizza(pizzaId); err != nil {
		internalError(ctx, err, "Failed to delete pizza")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// parseID reads the :id path parameter, answering 400 when it is not an integer
func parseID(ctx *gin.Context) (int, bool) {
	id := ctx.Param("id")
	pizzaId, err := strconv.Atoi(id)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid pizza ID format",
			map[string]interface{}{"id": id}))
		return 0, false
	}
	return pizzaId, true
}

func invalidBody(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrPizzaInvalidData, "Invalid request body",
		map[string]interface{}{"reason": err.Error()}))
}

func internalError(ctx *gin.Context, err error, message string) {
	log.WithError(err).WithField("path", ctx.FullPath()).Error(message)
	ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, message))
}
