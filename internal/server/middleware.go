package server

import (
	"errors"
	"net/http"
	"time"

	model "auction-house/internal/models"
	auctionhandler "auction-house/services/auction/handler"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

// SessionReader is the slice of the session manager the gate middleware
// consumes.
type SessionReader interface {
	IsAuthenticated() bool
	CurrentUser() (model.User, bool)
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// SessionGateMiddleware rejects requests without an authenticated session
// and exposes the current user to downstream handlers.
func SessionGateMiddleware(sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := sessions.CurrentUser()
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, errors.New("no active session"), "authentication required")
			c.Abort()
			return
		}
		c.Set(auctionhandler.CurrentUserKey, user)
		c.Next()
	}
}
