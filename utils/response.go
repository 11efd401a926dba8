package utils

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
)

// RespondWithError aborts the request with the standard failure envelope.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// ParseIDParam reads a positive numeric path parameter. On failure it has
// already answered 400.
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		RespondWithError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// LogError writes a failed operation to the console, including postgres
// diagnostics when the error came from the driver.
func LogError(op string, err error) {
	log.Printf("❌ %s: %s", op, DescribeDBError(err))
}

// DescribeDBError renders err with its SQLSTATE and constraint name when
// it is a postgres error.
func DescribeDBError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Sprintf("%s (sqlstate=%s constraint=%s)", pgErr.Message, pgErr.Code, pgErr.ConstraintName)
	}
	return err.Error()
}
