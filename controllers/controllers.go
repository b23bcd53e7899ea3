// Package controllers holds the gin handlers. Each controller is a struct
// over its component and exposes one method per route returning a
// gin.HandlerFunc.
package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cafe-ordering/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const requestTimeout = 30 * time.Second

var validate = validator.New()

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// confirmed reads the confirm query flag destructive routes require.
func confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}

// bind decodes the JSON body into v and validates its struct tags.
func bind(c *gin.Context, op string, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return apperr.Validationf(op, "invalid request body: %v", err)
	}
	if err := validate.Struct(v); err != nil {
		return apperr.Validationf(op, "%v", err)
	}
	return nil
}

func listed(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, gin.H{
		"status":  http.StatusOK,
		"message": message,
		"data":    data,
	})
}
