package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/franciscosanchezn/minimal-pizza-api/internal/models"
	"github.com/franciscosanchezn/minimal-pizza-api/internal/services"
	"github.com/franciscosanchezn/minimal-pizza-api/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(service services.PizzaService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	pizzas := NewPizzaController(service)
	home := NewHomeController("test-service", "memory", service)

	router.GET("/", home.Hello)
	router.GET("/health", home.Health)
	router.GET("/pizzas", pizzas.GetAllPizzas)
	router.GET("/pizzas/:id", pizzas.GetPizzaByID)
	router.POST("/pizzas", pizzas.CreatePizza)
	router.PUT("/pizzas", pizzas.UpdatePizza)
	router.DELETE("/pizzas/:id", pizzas.DeletePizza)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHello(t *testing.T) {
	router := setupRouter(services.NewPizzaService(store.NewMemoryStore()))

	w := doRequest(t, router, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello World!", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestHealth(t *testing.T) {
	router := setupRouter(services.NewPizzaService(store.NewMemoryStore()))

	w := doRequest(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]interface{}](t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test-service", body["service"])
	assert.Equal(t, "memory", body["store"])
	assert.EqualValues(t, 0, body["pizzas"])
}

func TestPizzaLifecycle(t *testing.T) {
	router := setupRouter(services.NewPizzaService(store.NewMemoryStore()))

	margherita := models.Pizza{ID: 1, Name: "Margherita", Description: "Classic"}
	w := doRequest(t, router, http.MethodPost, "/pizzas", margherita)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, margherita, decode[models.Pizza](t, w))

	w = doRequest(t, router, http.MethodGet, "/pizzas/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, margherita, decode[models.Pizza](t, w))

	deluxe := models.Pizza{ID: 1, Name: "Margherita Deluxe", Description: "Classic+cheese"}
	w = doRequest(t, router, http.MethodPut, "/pizzas", deluxe)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, deluxe, decode[models.Pizza](t, w))

	w = doRequest(t, router, http.MethodGet, "/pizzas/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, deluxe, decode[models.Pizza](t, w))

	w = doRequest(t, router, http.MethodDelete, "/pizzas/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/pizzas/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestGetPizzaByIDUnknownIsEmpty(t *testing.T) {
	router := setupRouter(services.NewPizzaService(store.NewMemoryStore()))

	w := doRequest(t, router, http.MethodGet, "/pizzas/42", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestGetAllPizzas(t *testing.T) {
	router := setupRouter(services.NewPizzaService(store.NewMemoryStore()))

	w := doRequest(t, router, http.MethodGet, "/pizzas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	want := []models.Pizza{
		{ID: 2, Name: "Pepperoni", Description: "Spicy"},
		{ID: 1, Name: "Margherita", Description: "Classic"},
	}
	for _, p := range want {
		require.Equal(t, http.StatusCreated, doRequest(t, router, http.MethodPost, "/pizzas", p).Code)
	}

	w = doRequest(t, router, http.MethodGet, "/pizzas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, want, decode[[]models.Pizza](t, w))
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	router := setupRouter(services.NewPizzaService(store.NewMemoryStore()))
	existing := models.Pizza{ID: 1, Name: "Margherita", Description: "Classic"}
	require.Equal(t, http.StatusCreated, doRequest(t, router, http.MethodPost, "/pizzas", existing).Code)

	ghost := models.Pizza{ID: 9, Name: "Ghost", Description: "Nobody"}
	w := doRequest(t, router, http.MethodPut, "/pizzas", ghost)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ghost, decode[models.Pizza](t, w))

	w = doRequest(t, router, http.MethodDelete, "/pizzas/9", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, http.MethodGet, "/pizzas", nil)
	assert.Equal(t, []models.Pizza{existing}, decode[[]models.Pizza](t, w))
}

func TestBadRequests(t *testing.T) {
	router := setupRouter(services.NewPizzaService(store.NewMemoryStore()))

	testCases := []struct {
		name     string
		method   string
		path     string
		body     interface{}
		wantCode string
	}{
		{name: "non-integer id on get", method: http.MethodGet, path: "/pizzas/abc", wantCode: models.ErrBadRequest},
		{name: "non-integer id on delete", method: http.MethodDelete, path: "/pizzas/1.5", wantCode: models.ErrBadRequest},
		{name: "malformed body on create", method: http.MethodPost, path: "/pizzas", body: "{not json", wantCode: models.ErrPizzaInvalidData},
		{name: "wrong id type on create", method: http.MethodPost, path: "/pizzas", body: `{"id":"one"}`, wantCode: models.ErrPizzaInvalidData},
		{name: "malformed body on update", method: http.MethodPut, path: "/pizzas", body: "[]", wantCode: models.ErrPizzaInvalidData},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, tt.method, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantCode, decode[models.APIError](t, w).Code)
		})
	}
}

// failingService answers every call with an error
type failingService struct{}

var errBackend = errors.New("backend unavailable")

func (failingService) GetAllPizzas() ([]models.Pizza, error)          { return nil, errBackend }
func (failingService) GetPizzaByID(int) (models.Pizza, error)         { return models.Pizza{}, errBackend }
func (failingService) CreatePizza(models.Pizza) (models.Pizza, error) { return models.Pizza{}, errBackend }
func (failingService) UpdatePizza(models.Pizza) (models.Pizza, error) { return models.Pizza{}, errBackend }
func (failingService) DeletePizza(int) error                          { return errBackend }
func (failingService) CountPizzas() (int64, error)                    { return 0, errBackend }

func TestBackendErrors(t *testing.T) {
	router := setupRouter(failingService{})
	pizza := models.Pizza{ID: 1, Name: "Margherita"}

	testCases := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, "/pizzas", nil},
		{http.MethodGet, "/pizzas/1", nil},
		{http.MethodPost, "/pizzas", pizza},
		{http.MethodPut, "/pizzas", pizza},
		{http.MethodDelete, "/pizzas/1", nil},
	}

	for _, tt := range testCases {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := doRequest(t, router, tt.method, tt.path, tt.body)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, models.ErrInternalServer, decode[models.APIError](t, w).Code)
		})
	}

	t.Run("health reports unhealthy", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", decode[map[string]interface{}](t, w)["status"])
	})
}
