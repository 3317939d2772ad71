package controllers

import (
	"net/http"
	"time"

	"github.com/franciscosanchezn/minimal-pizza-api/internal/services"
	"github.com/gin-gonic/gin"
)

// HelloMessage is the body served at the root route
const HelloMessage = "Hello World!"

// HomeController serves the root greeting and the health check
type HomeController struct {
	serviceName string
	storeDriver string
	service     services.PizzaService
}

// NewHomeController creates a new HomeController
func NewHomeController(serviceName, storeDriver string, service services.PizzaService) *HomeController {
	return &HomeController{
		serviceName: serviceName,
		storeDriver: storeDriver,
		service:     service,
	}
}

// Hello godoc
// @Summary Hello World
// @Description Plain text greeting
// @Tags home
// @Produce plain
// @Success 200 {string} string "Hello World!"
// @Router / [get]
func (h *HomeController) Hello(c *gin.Context) {
	c.String(http.StatusOK, HelloMessage)
}

// Health godoc
// @Summary Health check
// @Description Check if the service is running and the pizza store answers
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HomeController) Health(c *gin.Context) {
	body := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   h.serviceName,
		"store":     h.storeDriver,
	}

	count, err := h.service.CountPizzas()
	if err != nil {
		body["status"] = "unhealthy"
		body["error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	body["pizzas"] = count
	c.JSON(http.StatusOK, body)
}
