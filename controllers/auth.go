package controllers

import (
	"net/http"
	"strings"

	"pjhweb-backend/utils"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthController logs in the single back-office admin
type AuthController struct {
	auth         *utils.TokenAuth
	adminEmail   string
	passwordHash string
}

func NewAuthController(auth *utils.TokenAuth, adminEmail, passwordHash string) *AuthController {
	return &AuthController{auth: auth, adminEmail: adminEmail, passwordHash: passwordHash}
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if !ac.auth.Enabled() || ac.adminEmail == "" || ac.passwordHash == "" {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Login is not configured")
		return
	}

	email := strings.TrimSpace(input.Email)
	if !strings.EqualFold(email, ac.adminEmail) || !utils.CheckPasswordHash(input.Password, ac.passwordHash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := ac.auth.GenerateToken(ac.adminEmail)
	if err != nil {
		utils.LogError("Error generating token", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.SetCookie(
		"token",
		token,
		int(ac.auth.Expiry().Seconds()),
		"/",
		"",
		true,
		true,
	)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
	})
}

// Me returns the admin identity carried by the token
func (ac *AuthController) Me(c *gin.Context) {
	email, exists := c.Get("adminEmail")
	if !exists {
		// gate is open, no token to read
		c.JSON(http.StatusOK, gin.H{"success": true, "admin": gin.H{"email": ac.adminEmail, "authenticated": false}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "admin": gin.H{"email": email, "authenticated": true}})
}
