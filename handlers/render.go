package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dapurnusa/resto_backend/config"
	"github.com/dapurnusa/resto_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// renderError maps the error taxonomy onto HTTP. Every error response has the
// shape {"error": <message>, "code": <stable code>}.
func renderError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		if status == http.StatusInternalServerError {
			logger := config.GetLogger()
			config.LogError(logger, "render.go", "renderError", c.FullPath(), nil, err)
		}
		c.JSON(status, gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}
	logger := config.GetLogger()
	config.LogError(logger, "render.go", "renderError", c.FullPath(), nil, err)
	c.JSON(status, gin.H{"error": "internal error", "code": "Internal"})
}

func renderBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "invalid request",
			"code":   "Validation",
			"fields": utils.ProcessValidationErrors(validationErrors),
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error(), "code": "Validation"})
}

func stringQuery(c *gin.Context, key string) *string {
	if v := c.Query(key); v != "" {
		return &v
	}
	return nil
}

func dateQuery(c *gin.Context, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(key, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func intQuery(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}
