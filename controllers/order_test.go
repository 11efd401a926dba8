package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"pjhweb-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createOrder(t *testing.T, customerID uint) uint {
	t.Helper()
	w, resp := e.request(t, http.MethodPost, "/api/orders", gin.H{
		"customer_id": customerID,
		"title":       "Hosting setup",
		"items":       []gin.H{{"description": "Setup", "quantity": 2, "price": 150}},
		"tasks":       []gin.H{{"title": "Register domain"}},
		"deposit":     100,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return idOf(resp["order"])
}

func TestOrderCRUD(t *testing.T) {
	env := setupTestEnv(t)
	customerID := env.createCustomer(t, "")
	id := env.createOrder(t, customerID)
	path := fmt.Sprintf("/api/orders/%d", id)

	w, resp := env.request(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	order := resp["order"].(map[string]interface{})
	assert.Equal(t, "in_progress", order["status"])
	assert.Equal(t, 200.0, order["balance"])
	assert.Len(t, order["tasks"], 1)
	assert.Equal(t, 0.0, resp["paid"])
	assert.Equal(t, 300.0, resp["outstanding"])

	w, resp = env.request(t, http.MethodPut, path, gin.H{
		"status": "completed",
		"tasks":  []gin.H{{"title": "Register domain", "done": true}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	order = resp["order"].(map[string]interface{})
	assert.Equal(t, "completed", order["status"])
	assert.Equal(t, "Hosting setup", order["title"])
	task := order["tasks"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, true, task["done"])

	w, _ = env.request(t, http.MethodPut, path, gin.H{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = env.request(t, http.MethodGet, "/api/orders?status=completed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["orders"], 1)

	w, _ = env.request(t, http.MethodGet, "/api/orders?status=nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.request(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = env.request(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateOrderValidation(t *testing.T) {
	env := setupTestEnv(t)
	customerID := env.createCustomer(t, "")

	w, _ := env.request(t, http.MethodPost, "/api/orders", gin.H{"customer_id": customerID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.request(t, http.MethodPost, "/api/orders", gin.H{
		"customer_id": customerID,
		"title":       "x",
		"tasks":       []gin.H{{"done": true}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := env.request(t, http.MethodPost, "/api/orders", gin.H{"customer_id": 999, "title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Customer not found", resp["message"])
}

func TestOrderDiary(t *testing.T) {
	env := setupTestEnv(t)
	id := env.createOrder(t, env.createCustomer(t, ""))
	path := fmt.Sprintf("/api/orders/%d/diary", id)

	w, _ := env.request(t, http.MethodPost, path, gin.H{"note": "Kick-off call done"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w, _ = env.request(t, http.MethodPost, path, gin.H{"note": "Domain registered"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := env.request(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := resp["diary"].([]interface{})
	require.Len(t, entries, 2)
	assert.Equal(t, "Kick-off call done", entries[0].(map[string]interface{})["note"])

	var order models.Order
	require.NoError(t, env.db.First(&order, id).Error)
	require.Len(t, order.Diary, 2)
	assert.Equal(t, "Domain registered", order.Diary[1].Note)

	w, _ = env.request(t, http.MethodPost, path, gin.H{"note": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.request(t, http.MethodPost, "/api/orders/999/diary", gin.H{"note": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var rows int64
	require.NoError(t, env.db.Model(&models.OrderDiary{}).Count(&rows).Error)
	assert.Equal(t, int64(2), rows)
}

func TestOrderPayments(t *testing.T) {
	env := setupTestEnv(t)
	id := env.createOrder(t, env.createCustomer(t, ""))
	path := fmt.Sprintf("/api/orders/%d/payments", id)

	w, resp := env.request(t, http.MethodPost, path, gin.H{"amount": 100, "type": "deposit", "method": "bank transfer"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	paymentID := idOf(resp["payment"])

	for _, body := range []gin.H{
		{"amount": 0, "type": "deposit"},
		{"amount": -10, "type": "deposit"},
		{"amount": 10, "type": "tip"},
	} {
		w, _ = env.request(t, http.MethodPost, path, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	w, resp = env.request(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["payments"], 1)

	w, resp = env.request(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100.0, resp["paid"])
	assert.Equal(t, 200.0, resp["outstanding"])

	w, _ = env.request(t, http.MethodDelete, fmt.Sprintf("%s/%d", path, paymentID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = env.request(t, http.MethodDelete, fmt.Sprintf("%s/%d", path, paymentID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = env.request(t, http.MethodPost, "/api/orders/999/payments", gin.H{"amount": 10, "type": "full"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
