package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// apiError is the JSON error payload.
type apiError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// envelope is the JSON wrapper every endpoint responds with.
type envelope struct {
	Data  interface{} `json:"data,omitempty"`
	Error *apiError   `json:"error,omitempty"`
}

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, envelope{Data: data})
}

func respondError(c *gin.Context, logger *zap.Logger, err error, status int, message string) {
	logger.Error(message,
		zap.String("path", c.FullPath()),
		zap.Int("status", status),
		zap.Error(err))
	c.JSON(status, envelope{Error: &apiError{Status: status, Message: message}})
}
