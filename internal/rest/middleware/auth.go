package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quoteflow/quote-service/internal/api/dto"
	"github.com/quoteflow/quote-service/internal/auth"
	"github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/logger"
	"github.com/quoteflow/quote-service/internal/service"
	"github.com/quoteflow/quote-service/internal/types"
)

const HeaderAPIKey = "x-api-key"

// AuthenticateMiddleware authenticates requests via either:
//  1. a Supabase JWT in the Authorization header as a Bearer token, or
//  2. an API key in the x-api-key header.
//
// On success the owner's user ID (and email, when known) is stored in the
// request context for downstream handlers.
func AuthenticateMiddleware(provider auth.Provider, apiKeys service.APIKeyService, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if key := c.GetHeader(HeaderAPIKey); key != "" {
			record, err := apiKeys.Authenticate(ctx, key)
			if err != nil {
				log.Debugw("api key rejected", "error", err)
				abortUnauthorized(c, "Invalid API key")
				return
			}
			c.Request = c.Request.WithContext(types.SetUserID(ctx, record.UserID))
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Missing or malformed authorization header")
			return
		}

		claims, err := provider.ValidateToken(ctx, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			log.Debugw("token rejected", "error", err)
			abortUnauthorized(c, "Invalid token")
			return
		}
		if claims == nil || claims.UserID == "" {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		ctx = types.SetUserID(ctx, claims.UserID)
		if claims.Email != "" {
			ctx = types.SetUserEmail(ctx, claims.Email)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Err(errors.ErrCodeUnauthorized, message))
}
