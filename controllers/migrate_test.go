package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	env := setupTestEnv(t)

	w, resp := env.request(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["ok"])
}

func TestMigrateEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w, resp := env.request(t, http.MethodPost, "/api/migrate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "All migrations completed", resp["message"])

	w, _ = env.request(t, http.MethodPost, "/api/migrate", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMigrateEndpointFailure(t *testing.T) {
	env := setupTestEnv(t)
	require.NoError(t, env.db.Exec("ALTER TABLE customers DROP COLUMN email").Error)

	w, resp := env.request(t, http.MethodPost, "/api/migrate", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Migration failed", resp["message"])
	assert.Contains(t, resp["error"], "email")
}
