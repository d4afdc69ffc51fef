package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/quoteflow/quote-service/internal/types"
)

const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware propagates the caller's request ID, minting one when the
// header is absent, and echoes it back in the response.
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUID()
	}

	c.Request = c.Request.WithContext(types.SetRequestID(c.Request.Context(), requestID))
	c.Header(HeaderRequestID, requestID)

	c.Next()
}
