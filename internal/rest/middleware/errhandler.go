package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/quoteflow/quote-service/internal/api/dto"
	ierr "github.com/quoteflow/quote-service/internal/errors"
	"github.com/quoteflow/quote-service/internal/logger"
)

// ErrorHandler renders any error a handler attached with c.Error into the
// standard envelope: a stable machine code plus the first hint as the human
// message.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		code := ierr.CodeFromErr(err)
		status := ierr.HTTPStatusFromErr(err)
		message := ierr.Hint(err, "Something went wrong")

		if status >= 500 {
			log.Errorw("request failed",
				"path", c.Request.URL.Path,
				"code", code,
				"error", err,
			)
		}

		c.JSON(status, dto.Err(code, message))
	}
}
