package controllers_test

import (
	"net/http"
	"testing"

	"pjhweb-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitContact(t *testing.T) {
	env := setupTestEnv(t)

	w, resp := env.request(t, http.MethodPost, "/api/contact", gin.H{
		"name":    "Sam",
		"email":   "sam@example.com",
		"phone":   "+44 7700 900123",
		"message": "I need a new website",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, resp["success"])
	require.Len(t, env.notifier.emails, 1)
	assert.Contains(t, env.notifier.emails[0], "office@pjhwebservices.co.uk|Website enquiry from Sam|")
	assert.Contains(t, env.notifier.emails[0], "I need a new website")
}

func TestSubmitContactValidation(t *testing.T) {
	env := setupTestEnv(t)

	for _, body := range []gin.H{
		{"email": "sam@example.com", "message": "hi"},
		{"name": "Sam", "email": "nope", "message": "hi"},
		{"name": "Sam", "email": "sam@example.com"},
		{"name": "Sam", "email": "sam@example.com", "message": "hi", "phone": "abc"},
	} {
		w, _ := env.request(t, http.MethodPost, "/api/contact", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	assert.Empty(t, env.notifier.emails)
}

func TestSubmitContactWithoutInbox(t *testing.T) {
	env := setupTestEnv(t, func(d *routes.Deps) { d.Config.ContactInbox = "" })

	w, _ := env.request(t, http.MethodPost, "/api/contact", gin.H{"name": "Sam", "email": "sam@example.com", "message": "hi"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
