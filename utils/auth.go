// utils/auth.go
package utils

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 12

// HashPassword hashes a password for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches the bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// TokenAuth issues and validates admin JWTs.
type TokenAuth struct {
	secret []byte
	expiry time.Duration
}

func NewTokenAuth(secret string, expiry time.Duration) *TokenAuth {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &TokenAuth{secret: []byte(secret), expiry: expiry}
}

// Enabled is false when no signing secret is configured.
func (a *TokenAuth) Enabled() bool {
	return a != nil && len(a.secret) > 0
}

func (a *TokenAuth) Expiry() time.Duration {
	return a.expiry
}

// GenerateToken signs a token for the given subject (the admin email).
func (a *TokenAuth) GenerateToken(subject string) (string, error) {
	if !a.Enabled() {
		return "", errors.New("JWT_SECRET not set")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": "admin",
		"exp":  now.Add(a.expiry).Unix(),
		"iat":  now.Unix(),
	})
	return token.SignedString(a.secret)
}

// ParseToken validates tokenString and returns its subject.
func (a *TokenAuth) ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}

// AuthMiddleware requires a valid admin token in the Authorization header
// or the token cookie. Without a secret it lets every request through.
func (a *TokenAuth) AuthMiddleware() gin.HandlerFunc {
	if !a.Enabled() {
		log.Println("⚠️  JWT_SECRET not set: admin routes are not protected")
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if len(tokenString) > 7 && strings.EqualFold(tokenString[:7], "Bearer ") {
			tokenString = tokenString[7:]
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			RespondWithError(c, http.StatusUnauthorized, "Authorization required")
			return
		}

		subject, err := a.ParseToken(tokenString)
		if err != nil {
			RespondWithError(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		c.Set("adminEmail", subject)
		c.Next()
	}
}
