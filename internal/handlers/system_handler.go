package handlers

import (
	"net/http"

	"boutique-pos/internal/database"
	"boutique-pos/internal/utils"

	"github.com/gin-gonic/gin"
)

// GetSystemStatus reports the terminal identity and store connectivity,
// shown on the PDV settings screen.
func GetSystemStatus(c *gin.Context) {
	dbStatus := "online"
	if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "offline"
	}

	c.JSON(http.StatusOK, gin.H{
		"terminal_id": utils.GetTerminalID(),
		"database":    dbStatus,
	})
}
