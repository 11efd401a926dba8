package controllers

import (
	"log"
	"net/http"

	"pjhweb-backend/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MigrateController struct {
	db *gorm.DB
}

func NewMigrateController(db *gorm.DB) *MigrateController {
	return &MigrateController{db: db}
}

// RunMigrations re-runs the idempotent schema migration on demand
func (mc *MigrateController) RunMigrations(c *gin.Context) {
	if err := config.RunMigrations(c.Request.Context(), mc.db); err != nil {
		log.Printf("❌ Migration failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Migration failed",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "All migrations completed"})
}

// Health reports that the process is up
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
