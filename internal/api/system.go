package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dieledev/showcase/internal/store"
)

const serviceName = "showcase"

func health(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName, "version": version})
	}
}

func verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func storageDebug(stores *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, stores.Diagnose(c.Request.Context()))
	}
}
