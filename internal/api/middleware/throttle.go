package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/rakasatria/folio/internal/utils"
)

// Throttle limits a client IP to one request per window. Used on the
// public contact endpoint to keep form spam off the notification path.
func Throttle(window time.Duration) gin.HandlerFunc {
	seen := gocache.New(window, 2*window)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if _, found := seen.Get(ip); found {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apiError{
				Code:    utils.CodeThrottled,
				Message: "too many requests, try again later",
			})
			return
		}
		seen.Set(ip, struct{}{}, window)
		c.Next()
	}
}
