package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health 返回服务存活状态。
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
