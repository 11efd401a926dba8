package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardOverview(t *testing.T) {
	env := setupTestEnv(t)
	customerID := env.createCustomer(t, "Acme Ltd")
	env.createQuote(t, customerID)
	rejected := idOf(env.createQuote(t, customerID))
	w, _ := env.request(t, http.MethodPost, fmt.Sprintf("/api/admin/quotes/%d/reject", rejected), nil)
	require.Equal(t, http.StatusOK, w.Code)

	orderID := env.createOrder(t, customerID)
	w, _ = env.request(t, http.MethodPost, fmt.Sprintf("/api/orders/%d/payments", orderID), gin.H{"amount": 120, "type": "deposit"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := env.request(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	overview := resp["overview"].(map[string]interface{})

	assert.Equal(t, 1.0, overview["total_customers"])
	quotes := overview["quotes_by_status"].(map[string]interface{})
	assert.Equal(t, 1.0, quotes["pending"])
	assert.Equal(t, 1.0, quotes["rejected"])
	assert.Equal(t, 0.0, quotes["accepted"])
	assert.Equal(t, 1.0, overview["orders_by_status"].(map[string]interface{})["in_progress"])
	assert.Equal(t, 120.0, overview["monthly_revenue"])
	assert.Equal(t, 180.0, overview["outstanding"])

	awaiting := overview["awaiting_reply"].([]interface{})
	require.Len(t, awaiting, 1)
	assert.Equal(t, "Jane Doe", awaiting[0].(map[string]interface{})["customer"])

	top := overview["top_customers"].([]interface{})
	require.Len(t, top, 1)
	assert.Equal(t, 120.0, top[0].(map[string]interface{})["spent"])
}
