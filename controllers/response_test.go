package controllers_test

import (
	"net/http"
	"testing"

	"pjhweb-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerResponseFlow(t *testing.T) {
	env := setupTestEnv(t)
	customerID := env.createCustomer(t, "Acme Ltd")
	quote := env.createQuote(t, customerID)
	path := "/api/responses/" + quote["response_token"].(string)

	w, resp := env.request(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme Ltd", resp["customer"].(map[string]interface{})["business"])
	assert.Equal(t, quote["quote_number"], resp["quote"].(map[string]interface{})["quote_number"])

	w, resp = env.request(t, http.MethodPost, path, gin.H{"action": "amend", "feedback": "Can we add a gallery?"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := resp["quote"].(map[string]interface{})
	assert.Equal(t, "amend_requested", updated["status"])
	assert.Equal(t, "Can we add a gallery?", updated["feedback"])

	var rows []models.QuoteHistory
	require.NoError(t, env.db.Where("quote_id = ?", idOf(quote)).Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, models.ActorCustomer, rows[1].Actor)
}

func TestCustomerResponseErrors(t *testing.T) {
	env := setupTestEnv(t)
	customerID := env.createCustomer(t, "")
	quote := env.createQuote(t, customerID)
	path := "/api/responses/" + quote["response_token"].(string)

	w, _ := env.request(t, http.MethodGet, "/api/responses/not-a-token", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp := env.request(t, http.MethodPost, "/api/responses/"+uuid.NewString(), gin.H{"action": "accept"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Quote not found", resp["message"])

	w, _ = env.request(t, http.MethodPost, path, gin.H{"action": "cancel"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.request(t, http.MethodPost, path, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
