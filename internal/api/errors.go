package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dieledev/showcase/internal/validate"
)

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// serverError records err for the request log and answers 500 with msg.
func serverError(c *gin.Context, err error, msg string) {
	_ = c.Error(err)
	fail(c, http.StatusInternalServerError, msg)
}

func validationFailed(c *gin.Context, fields validate.FieldErrors) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": fields})
}
